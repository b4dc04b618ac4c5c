package http

import (
	"encoding/json"
	"net/http"

	"saldo/internal/core"
	"saldo/internal/log"
)

type configDTO struct {
	StartingBalance float64 `json:"startingBalance"`
	StartingDate    string  `json:"startingDate"`
	Timezone        string  `json:"timezone"`
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.store.GetConfig(r.Context())
	if err != nil {
		s.logger.Error("get config failed", log.FieldError, err.Error())
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, configDTO{
		StartingBalance: cfg.StartingBalance.Float(),
		StartingDate:    cfg.StartingDate.String(),
		Timezone:        cfg.Timezone,
	})
}

func (s *Server) handlePutConfig(w http.ResponseWriter, r *http.Request) {
	var dto configDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	startingDate, err := core.ParseDate(dto.StartingDate)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	cfg := core.AccountConfig{
		StartingBalance: core.FromFloat(dto.StartingBalance),
		StartingDate:    startingDate,
		Timezone:        dto.Timezone,
	}
	if err := s.store.PutConfig(r.Context(), cfg); err != nil {
		writeDomainError(w, err)
		return
	}
	s.purgeProjectionCaches()

	s.logger.Info("config updated",
		log.FieldOperation, log.OpUpdate,
		log.FieldBalanceCents, cfg.StartingBalance.Cents,
		"timezone", cfg.Timezone)
	writeJSON(w, http.StatusOK, dto)
}
