package handler

import (
	"encoding/json"
	"net/http"

	"github.com/askboard-dev/askboard/internal/config"
	"github.com/askboard-dev/askboard/internal/logger"
	"github.com/askboard-dev/askboard/internal/service"
	"github.com/askboard-dev/askboard/internal/storage/fs"
)

// Pinger reports readiness of the relational store.
type Pinger interface {
	Ping() error
}

type Handler struct {
	auth     service.AuthService
	topic    service.TopicService
	message  service.MessageService
	user     service.UserService
	location service.LocationService
	blobs    *fs.Storage
	pinger   Pinger
	cfg      *config.Config
}

func New(auth service.AuthService, topic service.TopicService, message service.MessageService, user service.UserService, location service.LocationService, blobs *fs.Storage, pinger Pinger, cfg *config.Config) *Handler {
	return &Handler{auth, topic, message, user, location, blobs, pinger, cfg}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}
