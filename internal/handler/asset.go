package handler

import (
	"io"
	"net/http"
	"path/filepath"

	"github.com/askboard-dev/askboard/internal/logger"
	"github.com/go-chi/chi/v5"
)

var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// GetAsset streams an image blob by its opaque key. A missing blob is a 404;
// records may legitimately reference released blobs for a short while.
func (h *Handler) GetAsset(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	blob, err := h.blobs.Read(key)
	if err != nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	defer blob.Close()

	if ct, ok := contentTypes[filepath.Ext(key)]; ok {
		w.Header().Set("Content-Type", ct)
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := io.Copy(w, blob); err != nil {
		logger.Log.Warn("failed to stream asset", "key", key, "error", err)
	}
}
