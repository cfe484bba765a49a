package models

// UploadResult возвращается после успешной загрузки и содержит ключевые метаданные.
type UploadResult struct {
	Key    string
	Path   string
	Size   int64
	Sha256 string
}
