package http

import (
	"encoding/json"
	"net/http"

	"saldo/internal/core"
	"saldo/internal/log"
)

type recurringPatternDTO struct {
	Frequency string `json:"frequency"`
	Interval  int    `json:"interval"`
	EndDate   string `json:"endDate,omitempty"`
}

type transactionDTO struct {
	ID               string               `json:"id"`
	Date             string               `json:"date"`
	Name             string               `json:"name"`
	Amount           float64              `json:"amount"`
	Note             string               `json:"note,omitempty"`
	IsRecurring      bool                 `json:"isRecurring"`
	RecurringPattern *recurringPatternDTO `json:"recurringPattern,omitempty"`
}

func transactionToDTO(tx core.Transaction) transactionDTO {
	dto := transactionDTO{
		ID:          tx.ID,
		Date:        tx.Date.String(),
		Name:        tx.Name,
		Amount:      tx.Amount.Float(),
		Note:        tx.Note,
		IsRecurring: tx.IsRecurring,
	}
	if tx.IsRecurring && tx.Recurrence != nil {
		dto.RecurringPattern = &recurringPatternDTO{
			Frequency: string(tx.Recurrence.Frequency),
			Interval:  tx.Recurrence.Interval,
		}
		if !tx.Recurrence.EndDate.IsZero() {
			dto.RecurringPattern.EndDate = tx.Recurrence.EndDate.String()
		}
	}
	return dto
}

func transactionFromDTO(dto transactionDTO) (core.Transaction, error) {
	date, err := core.ParseDate(dto.Date)
	if err != nil {
		return core.Transaction{}, err
	}

	tx := core.Transaction{
		ID:          dto.ID,
		Date:        date,
		Name:        dto.Name,
		Amount:      core.FromFloat(dto.Amount),
		Note:        dto.Note,
		IsRecurring: dto.IsRecurring,
	}

	if dto.IsRecurring && dto.RecurringPattern != nil {
		pattern := &core.RecurrencePattern{
			Frequency: core.Frequency(dto.RecurringPattern.Frequency),
			Interval:  dto.RecurringPattern.Interval,
		}
		if dto.RecurringPattern.EndDate != "" {
			pattern.EndDate, err = core.ParseDate(dto.RecurringPattern.EndDate)
			if err != nil {
				return core.Transaction{}, err
			}
		}
		tx.Recurrence = pattern
	}
	return tx, nil
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.store.ListTransactions(r.Context())
	if err != nil {
		s.logger.Error("list transactions failed",
			log.FieldOperation, log.OpList,
			log.FieldError, err.Error())
		writeDomainError(w, err)
		return
	}

	dtos := make([]transactionDTO, 0, len(txs))
	for _, tx := range txs {
		dtos = append(dtos, transactionToDTO(tx))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var dto transactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	dto.ID = "" // server assigns ids

	tx, err := transactionFromDTO(dto)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	created, err := s.store.CreateTransaction(r.Context(), tx)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.purgeProjectionCaches()

	s.logger.Info("transaction created",
		log.FieldOperation, log.OpCreate,
		log.FieldTransactionID, created.ID,
		log.FieldAmountCents, created.Amount.Cents)
	writeJSON(w, http.StatusCreated, transactionToDTO(created))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var dto transactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	dto.ID = r.PathValue("id")

	tx, err := transactionFromDTO(dto)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	updated, err := s.store.UpdateTransaction(r.Context(), tx)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.purgeProjectionCaches()

	s.logger.Info("transaction updated",
		log.FieldOperation, log.OpUpdate,
		log.FieldTransactionID, updated.ID)
	writeJSON(w, http.StatusOK, transactionToDTO(updated))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.DeleteTransaction(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	s.purgeProjectionCaches()

	s.logger.Info("transaction deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldTransactionID, id)
	w.WriteHeader(http.StatusNoContent)
}
