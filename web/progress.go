// ABOUTME: Progress API: GET and PUT the completed capability checkbox IDs stored under a key.
package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/2389-research/fishbone/progress"
)

type progressBody struct {
	Key       string   `json:"key,omitempty"`
	Completed []string `json:"completed"`
}

func (s *Server) progressKey(w http.ResponseWriter, r *http.Request) (string, bool) {
	if s.cfg.Progress == nil {
		plainError(w, "progress store disabled", http.StatusNotFound)
		return "", false
	}
	key := chi.URLParam(r, "key")
	if !progress.ValidKey(key) {
		plainError(w, progress.ErrInvalidKey.Error(), http.StatusBadRequest)
		return "", false
	}
	return key, true
}

func (s *Server) handleProgressKeys(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Progress == nil {
		plainError(w, "progress store disabled", http.StatusNotFound)
		return
	}
	keys, err := s.cfg.Progress.Keys(r.Context())
	if err != nil {
		s.log.Error("list progress keys", zap.Error(err))
		plainError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if keys == nil {
		keys = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"keys": keys})
}

func (s *Server) handleProgressGet(w http.ResponseWriter, r *http.Request) {
	key, ok := s.progressKey(w, r)
	if !ok {
		return
	}
	ids, err := s.cfg.Progress.Get(r.Context(), key)
	if err != nil {
		s.log.Error("read progress", zap.String("key", key), zap.Error(err))
		plainError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	s.metrics.progress.WithLabelValues("get").Inc()
	writeJSON(w, http.StatusOK, progressBody{Key: key, Completed: ids})
}

func (s *Server) handleProgressPut(w http.ResponseWriter, r *http.Request) {
	key, ok := s.progressKey(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxProgressBody)
	var body progressBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			plainError(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		plainError(w, "bad request", http.StatusBadRequest)
		return
	}

	if err := s.cfg.Progress.Put(r.Context(), key, body.Completed); err != nil {
		s.log.Error("write progress", zap.String("key", key), zap.Error(err))
		plainError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	ids, err := s.cfg.Progress.Get(r.Context(), key)
	if err != nil {
		s.log.Error("read progress", zap.String("key", key), zap.Error(err))
		plainError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	s.metrics.progress.WithLabelValues("put").Inc()
	s.log.Debug("progress saved", zap.String("key", key), zap.Int("completed", len(ids)))
	writeJSON(w, http.StatusOK, progressBody{Key: key, Completed: ids})
}
