package services

import "errors"

var (
	ErrEmailTaken         = errors.New("existing user found with this email")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserNotFound       = errors.New("user not found")
	ErrSlotOutOfRange     = errors.New("cart slot out of range")
	ErrImageNotFound      = errors.New("image not found")
	ErrNotImage           = errors.New("not an image")
)
