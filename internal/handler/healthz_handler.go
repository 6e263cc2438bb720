package handler

import (
	"encoding/json"
	"net/http"

	"watchlist-server/config"
	"watchlist-server/internal/util"
)

type HealthzHandler struct {
	database    *config.Database
	redisClient *config.RedisClient
}

func NewHealthzHandler(database *config.Database, redisClient *config.RedisClient) *HealthzHandler {
	return &HealthzHandler{database: database, redisClient: redisClient}
}

// Healthz godoc
// @Summary Проверка работоспособности сервиса
// @Tags Healthz
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} requestresponse.ErrorResponse
// @Router /healthz [get]
func (h *HealthzHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	if err := h.database.PingContext(ctx); err != nil {
		util.HandleError(w, "БД недоступна", http.StatusServiceUnavailable)
		return
	}

	if err := h.redisClient.Client.Ping(ctx).Err(); err != nil {
		util.HandleError(w, "Redis недоступен", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
