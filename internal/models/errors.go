package models

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrTooLarge       = errors.New("upload too large")
	ErrNotFound       = errors.New("file not found")
	// ErrMissingOnDisk: ключ есть в реестре, а файла по пути уже нет.
	ErrMissingOnDisk = errors.New("registered file is missing on disk")
)
