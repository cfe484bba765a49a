package filehttp

import (
	"encoding/json"
	"net/http"
)

// healthStats: payload ответа /health.
type healthStats struct {
	OK         bool  `json:"ok"`
	Files      int   `json:"files"`
	TotalBytes int64 `json:"total_bytes"`
	Keys       int   `json:"keys"`
}

func (s *Server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// health возвращает агрегированную статистику по каталогу загрузок.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	st, err := s.FilesService.Stats(r.Context())
	if err != nil {
		s.log.Error("Failed to collect stats", "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, healthStats{
		OK:         true,
		Files:      st.Files,
		TotalBytes: st.TotalBytes,
		Keys:       st.Keys,
	})
}

func (s *Server) handleLivenessCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

func (s *Server) handleReadinessCheck(w http.ResponseWriter, _ *http.Request) {
	if !s.isReady.Load() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleDrain(w http.ResponseWriter, _ *http.Request) {
	if !s.isReady.Swap(false) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "already draining"})
		return
	}
	s.log.Info("Server marked as not ready")
	writeJSON(w, http.StatusOK, map[string]string{"status": "draining"})
}

func (s *Server) handleUndrain(w http.ResponseWriter, _ *http.Request) {
	if s.isReady.Swap(true) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "already ready"})
		return
	}
	s.log.Info("Server marked as ready")
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
