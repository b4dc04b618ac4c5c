package http

import (
	"fmt"
	"net/http"
	"strconv"

	"saldo/internal/core"
	"saldo/internal/log"
)

type occurrenceDTO struct {
	ID       string  `json:"id"`
	SourceID string  `json:"sourceId"`
	Date     string  `json:"date"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Note     string  `json:"note,omitempty"`
}

type balanceDayDTO struct {
	Date         string          `json:"date"`
	Balance      float64         `json:"balance"`
	Transactions []occurrenceDTO `json:"transactions"`
}

type calendarDayDTO struct {
	balanceDayDTO
	IsCurrentMonth bool `json:"isCurrentMonth"`
}

func occurrenceToDTO(occ core.Occurrence) occurrenceDTO {
	return occurrenceDTO{
		ID:       occ.ID,
		SourceID: occ.SourceID,
		Date:     occ.Date.String(),
		Name:     occ.Name,
		Amount:   occ.Amount.Float(),
		Note:     occ.Note,
	}
}

func balancePointToDTO(point core.DailyBalancePoint) balanceDayDTO {
	dto := balanceDayDTO{
		Date:         point.Date.String(),
		Balance:      point.Balance.Float(),
		Transactions: make([]occurrenceDTO, 0, len(point.Transactions)),
	}
	for _, occ := range point.Transactions {
		dto.Transactions = append(dto.Transactions, occurrenceToDTO(occ))
	}
	return dto
}

func parseWindow(r *http.Request) (core.Date, core.Date, error) {
	start, err := core.ParseDate(r.URL.Query().Get("startDate"))
	if err != nil {
		return core.Date{}, core.Date{}, fmt.Errorf("startDate: %w", err)
	}
	end, err := core.ParseDate(r.URL.Query().Get("endDate"))
	if err != nil {
		return core.Date{}, core.Date{}, fmt.Errorf("endDate: %w", err)
	}
	return start, end, nil
}

func (s *Server) handleBalanceHistory(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseWindow(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	cacheKey := start.String() + ":" + end.String()
	if cached, ok := s.balanceCache.Get(cacheKey); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	series, err := s.projections.BalanceSeries(r.Context(), start, end)
	if err != nil {
		s.logger.Error("balance history failed",
			log.FieldWindowStart, start.String(),
			log.FieldWindowEnd, end.String(),
			log.FieldError, err.Error())
		writeDomainError(w, err)
		return
	}

	dtos := make([]balanceDayDTO, 0, len(series))
	for _, point := range series {
		dtos = append(dtos, balancePointToDTO(point))
	}
	s.balanceCache.Set(cacheKey, dtos)
	writeJSON(w, http.StatusOK, dtos)
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "year must be a number")
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "month must be a number")
		return
	}

	cacheKey := strconv.Itoa(year) + "-" + strconv.Itoa(month)
	if cached, ok := s.calendarCache.Get(cacheKey); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	grid, err := s.projections.MonthGrid(r.Context(), year, month)
	if err != nil {
		s.logger.Error("calendar failed",
			log.FieldYear, year,
			log.FieldMonth, month,
			log.FieldError, err.Error())
		writeDomainError(w, err)
		return
	}

	dtos := make([]calendarDayDTO, 0, len(grid))
	for _, day := range grid {
		dtos = append(dtos, calendarDayDTO{
			balanceDayDTO:  balancePointToDTO(day.DailyBalancePoint),
			IsCurrentMonth: day.IsCurrentMonth,
		})
	}
	s.calendarCache.Set(cacheKey, dtos)
	writeJSON(w, http.StatusOK, dtos)
}

func (s *Server) handleProjectedTransactions(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseWindow(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	occs, err := s.projections.ProjectedTransactions(r.Context(), start, end)
	if err != nil {
		s.logger.Error("projected transactions failed",
			log.FieldWindowStart, start.String(),
			log.FieldWindowEnd, end.String(),
			log.FieldError, err.Error())
		writeDomainError(w, err)
		return
	}

	dtos := make([]occurrenceDTO, 0, len(occs))
	for _, occ := range occs {
		dtos = append(dtos, occurrenceToDTO(occ))
	}
	writeJSON(w, http.StatusOK, dtos)
}
