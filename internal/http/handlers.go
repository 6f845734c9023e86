package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"billfold/internal/core"
	"billfold/internal/storage"
)

type createExpenseRequest struct {
	Amount      json.Number `json:"amount"`
	Category    string      `json:"category"`
	Date        string      `json:"date"`
	Description string      `json:"description"`
}

type incomeRequest struct {
	Amount json.Number `json:"amount"`
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cents, err := core.ParseDecimalToCents(req.Amount.String())
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid amount")
		return
	}
	date, err := core.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid date, expected YYYY-MM-DD")
		return
	}

	exp, err := s.expenses.Create(r.Context(), core.Money{Cents: cents}, req.Category, date, req.Description)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, exp)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	var filter storage.ListFilter

	if v := r.URL.Query().Get("start_date"); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "Invalid start_date, expected YYYY-MM-DD")
			return
		}
		filter.Start = d
	}
	if v := r.URL.Query().Get("end_date"); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "Invalid end_date, expected YYYY-MM-DD")
			return
		}
		filter.End = d
	}

	items, err := s.expenses.List(r.Context(), filter)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	removed, err := s.expenses.Delete(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "Expense not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Expense deleted successfully"})
}

func (s *Server) handleGetIncome(w http.ResponseWriter, r *http.Request) {
	inc, err := s.income.Get(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inc)
}

func (s *Server) handleUpdateIncome(w http.ResponseWriter, r *http.Request) {
	var req incomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cents, err := core.ParseDecimalToCents(req.Amount.String())
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid amount")
		return
	}

	inc, err := s.income.Set(r.Context(), core.Money{Cents: cents})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inc)
}

func (s *Server) handleMonthlyReport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.reports.Generate(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// writeDomainError maps domain errors onto HTTP statuses: validation
// failures are the client's fault, storage faults are ours.
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrInvalidDateRange):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, storage.ErrStorageUnavailable):
		slog.ErrorContext(r.Context(), "Record store unavailable", "error", err, "url", r.URL.Path)
		writeError(w, http.StatusInternalServerError, "Record store unavailable")
	default:
		slog.ErrorContext(r.Context(), "Unhandled request error", "error", err, "url", r.URL.Path)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
