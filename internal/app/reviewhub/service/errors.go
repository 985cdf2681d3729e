package service

import "errors"

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrCommentNotFound    = errors.New("comment not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
