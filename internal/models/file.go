package models

import "time"

// StoredFile is the metadata of a blob kept in the database. Its content is
// split across FileChunk rows.
type StoredFile struct {
	ID          uint        `gorm:"primaryKey"`
	Filename    string      `gorm:"uniqueIndex;type:varchar(255);not null"`
	ContentType string      `gorm:"type:varchar(255)"`
	Length      int64       `gorm:"not null"`
	ChunkSize   int         `gorm:"not null"`
	UploadDate  time.Time   `gorm:"autoCreateTime"`
	Chunks      []FileChunk `gorm:"foreignKey:FileID;constraint:OnDelete:CASCADE"`
}

// FileChunk holds the n-th slice of a StoredFile.
type FileChunk struct {
	FileID uint   `gorm:"primaryKey;autoIncrement:false"`
	N      int    `gorm:"primaryKey;autoIncrement:false"`
	Data   []byte `gorm:"not null"`
}

// All returns every model that must be migrated.
func All() []interface{} {
	return []interface{}{&User{}, &CartItem{}, &Product{}, &Sequence{}, &StoredFile{}, &FileChunk{}}
}
