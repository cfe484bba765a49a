package filehttp

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/sir_venger/filedrop/internal/models"
	"github.com/sir_venger/filedrop/pkg/filedropproto"
	"github.com/sir_venger/filedrop/pkg/httperrors"
)

// upload принимает файл и отдаёт сгенерированный ключ.
func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	if s.opts.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	}

	body, name, err := uploadSource(r)
	if err != nil {
		s.log.Info("Rejected upload", "err", err)
		httperrors.Write(w, tooLarge(err))
		return
	}

	res, err := s.FilesService.Upload(r.Context(), body, name)
	if err != nil {
		err = tooLarge(err)
		if httperrors.Status(err) >= http.StatusInternalServerError {
			s.log.Error("Upload failed", "err", err, "name", name)
		} else {
			s.log.Info("Rejected upload", "err", err, "name", name)
		}
		httperrors.Write(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, filedropproto.UploadResponse{UploadPath: res.Key})
}

// uploadSource выбирает источник данных: первую файловую часть multipart либо само тело.
func uploadSource(r *http.Request) (io.Reader, string, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		name := extractFileName(r)
		if name == "" {
			return nil, "", fmt.Errorf("%w: file name is required", models.ErrInvalidRequest)
		}
		return r.Body, name, nil
	}

	mr, err := r.MultipartReader()
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", models.ErrInvalidRequest, err)
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, "", fmt.Errorf("%w: no file part in multipart body", models.ErrInvalidRequest)
		}
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				return nil, "", err
			}
			return nil, "", fmt.Errorf("%w: %v", models.ErrInvalidRequest, err)
		}
		if name := part.FileName(); name != "" {
			return part, name, nil
		}
	}
}

// extractFileName пытается вытащить имя файла из заголовков или query-параметра.
func extractFileName(r *http.Request) string {
	if v := strings.TrimSpace(r.Header.Get(filedropproto.HeaderFileName)); v != "" {
		return v
	}
	if v := strings.TrimSpace(r.Header.Get(filedropproto.HeaderFilename)); v != "" {
		return v
	}
	if v := strings.TrimSpace(r.URL.Query().Get(filedropproto.QueryFilename)); v != "" {
		return v
	}
	return ""
}

func tooLarge(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return fmt.Errorf("%w: limit %d bytes", models.ErrTooLarge, maxErr.Limit)
	}
	return err
}
