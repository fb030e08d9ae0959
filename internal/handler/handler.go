package handler

import (
	"encoding/json"
	"net/http"

	"github.com/refugio-dev/refugio/internal/config"
	"github.com/refugio-dev/refugio/internal/logger"
	"github.com/refugio-dev/refugio/internal/service"
)

type Handler struct {
	auth   service.AuthService
	animal service.AnimalService
	news   service.NewsService
	health Pinger
	cfg    *config.Config
}

func New(auth service.AuthService, animal service.AnimalService, news service.NewsService, health Pinger, cfg *config.Config) *Handler {
	return &Handler{auth, animal, news, health, cfg}
}

func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("can't encode response", "error", err)
	}
}
