// Package filedropproto описывает HTTP-протокол взаимодействия с сервисом filedrop.
package filedropproto

// Пути и параметры HTTP API.
const (
	PathHealthCheck = "/"
	PathList        = "/list"
	PathDownload    = "/download"
	PathUpload      = "/upload"
	PathHealth      = "/health"
	PathAdminGC     = "/admin/gc"

	QueryKey      = "key"
	QueryFilename = "filename"
	FormFileField = "file"
)

// Служебные заголовки.
const (
	HeaderFileName = "X-File-Name"
	HeaderFilename = "X-Filename"
	HeaderChecksum = "X-Checksum-Sha256"
	HeaderSize     = "X-Size"
)

// UploadResponse: тело ответа на POST /upload.
type UploadResponse struct {
	UploadPath string `json:"upload_path"`
}
