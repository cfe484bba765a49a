package filehttp

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/sir_venger/filedrop/internal/models"
	"github.com/sir_venger/filedrop/pkg/filedropproto"
	"github.com/sir_venger/filedrop/pkg/httperrors"
)

// download отдаёт содержимое файла по ключу как вложение.
func (s *Server) download(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get(filedropproto.QueryKey)

	d, err := s.FilesService.Open(r.Context(), key)
	if err != nil {
		s.lookupFailed(w, key, err)
		return
	}
	defer d.Body.Close()

	setFileHeaders(w, d)
	w.Header().Set("Content-Disposition", attachment(d.Name))
	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)

	if _, err = io.Copy(w, d.Body); err != nil {
		s.log.Warn("Download interrupted", "err", err, "key", key)
	}
}

// inspect отвечает на HEAD-запросы метаданными файла.
func (s *Server) inspect(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get(filedropproto.QueryKey)

	d, err := s.FilesService.Inspect(r.Context(), key)
	if err != nil {
		s.lookupFailed(w, key, err)
		return
	}

	setFileHeaders(w, d)
	w.Header().Set("Content-Disposition", attachment(d.Name))
	w.WriteHeader(http.StatusOK)
}

func (s *Server) lookupFailed(w http.ResponseWriter, key string, err error) {
	switch {
	case errors.Is(err, models.ErrMissingOnDisk):
		s.log.Error("Index and filesystem diverged", "err", err, "key", key)
	case httperrors.Status(err) >= http.StatusInternalServerError:
		s.log.Error("Download failed", "err", err, "key", key)
	default:
		s.log.Info("Download rejected", "err", err, "key", key)
	}
	httperrors.Write(w, err)
}

func setFileHeaders(w http.ResponseWriter, d models.Download) {
	size := strconv.FormatInt(d.Size, 10)
	w.Header().Set("Content-Length", size)
	w.Header().Set(filedropproto.HeaderSize, size)
	if d.Sha256 != "" {
		w.Header().Set(filedropproto.HeaderChecksum, d.Sha256)
	}
}

func attachment(name string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": name}); v != "" {
		return v
	}
	return "attachment"
}
