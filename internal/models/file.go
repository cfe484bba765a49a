package models

import (
	"io"
	"time"
)

// FileRecord описывает загруженный файл в каталоге загрузок.
type FileRecord struct {
	Key        string    `json:"key"`
	Name       string    `json:"file_name"`
	Path       string    `json:"path"`
	Size       int64     `json:"size"`
	Sha256     string    `json:"sha256"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Download: открытый на чтение файл вместе с метаданными для заголовков ответа.
type Download struct {
	Name   string
	Size   int64
	Sha256 string
	Body   io.ReadCloser
}
