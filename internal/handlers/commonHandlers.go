package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"otpstore/internal/repositories"
	"otpstore/internal/services"
)

type CommonHandler struct {
	otpRepo    repositories.OTPRepository
	otpService services.OTPService
}

func NewCommonHandler(otpRepo repositories.OTPRepository, otpService services.OTPService) *CommonHandler {
	return &CommonHandler{otpRepo: otpRepo, otpService: otpService}
}

func (h *CommonHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), time.Second)
	defer cancel()

	resp := map[string]string{
		"message": "It's healthy",
		"entries": strconv.Itoa(h.otpService.Count()),
	}
	status := http.StatusOK
	if err := h.otpRepo.Ping(ctx); err != nil {
		log.Error().Err(err).Msg("Storage health check failed")
		resp["message"] = "storage down"
		resp["error"] = err.Error()
		status = http.StatusServiceUnavailable
	}

	jsonResp, err := json.Marshal(resp)
	if err != nil {
		log.Error().Err(err).Msg("Error marshalling JSON response for HealthHandler")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(jsonResp)
}
