package filehttp

import (
	"net/http"

	"github.com/sir_venger/filedrop/pkg/httperrors"
)

// listUploads отдаёт имена файлов из каталога загрузок.
func (s *Server) listUploads(w http.ResponseWriter, r *http.Request) {
	names, err := s.FilesService.List(r.Context())
	if err != nil {
		s.log.Error("Failed to list uploads", "err", err)
		httperrors.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, names)
}
