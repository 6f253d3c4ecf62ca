package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"contas/internal/core"
	applog "contas/internal/log"
	"contas/internal/report"
)

// draftRequest is the wire shape of a new transaction. Field names
// match the persisted record format.
type draftRequest struct {
	Date        string      `json:"data"`
	Kind        core.Kind   `json:"tipo"`
	Amount      core.Amount `json:"valor"`
	Person      core.Person `json:"pessoa"`
	Description string      `json:"descricao"`
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.createTransaction(w, r)
	case http.MethodGet:
		s.listTransactions(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req draftRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	tx, err := s.ledger.Add(r.Context(), core.Draft{
		Date:        strings.TrimSpace(req.Date),
		Kind:        req.Kind,
		Amount:      req.Amount,
		Person:      req.Person,
		Description: sanitizeInput(req.Description),
	})
	if err != nil {
		if errors.Is(err, core.ErrValidation) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Failed to save transaction",
			applog.FieldError, err,
			applog.FieldOperation, applog.OpCreate)
		// The change was rolled back; warn the caller the entry was not kept.
		writeError(w, http.StatusInternalServerError, "could not persist transaction, entry was not saved")
		return
	}

	writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := report.Filter{Search: q.Get("q")}
	if v := q.Get("tipo"); v != "" {
		kind := core.Kind(v)
		if err := kind.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown tipo %q", v))
			return
		}
		filter.Kind = kind
	}
	if v := q.Get("pessoa"); v != "" {
		person := core.Person(v)
		if err := person.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown pessoa %q", v))
			return
		}
		filter.Person = person
	}

	snap := s.ledger.Snapshot()
	writeJSON(w, http.StatusOK, report.History(snap.Transactions, filter))
}

func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.Header().Set("Allow", "DELETE")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	// Deleting an unknown id is a no-op, so this only fails when
	// persistence does.
	if err := s.ledger.Remove(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Failed to remove transaction",
			applog.FieldTransactionID, id,
			applog.FieldError, err,
			applog.FieldOperation, applog.OpDelete)
		writeError(w, http.StatusInternalServerError, "could not persist removal, entry was kept")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBalances(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, s.ledger.Snapshot().Balances)
}

func (s *Server) handleMonthlyChart(w http.ResponseWriter, r *http.Request) {
	s.serveChart(w, r, "monthly", func(txs []core.Transaction) any {
		return report.MonthlyFlow(txs)
	})
}

func (s *Server) handleDistributionChart(w http.ResponseWriter, r *http.Request) {
	s.serveChart(w, r, "distribution", func(txs []core.Transaction) any {
		return report.Distribution(txs)
	})
}

// serveChart serves a projection, cached per ledger revision so repeat
// chart loads between mutations skip the aggregation pass.
func (s *Server) serveChart(w http.ResponseWriter, r *http.Request, name string, project func([]core.Transaction) any) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	snap := s.ledger.Snapshot()
	key := fmt.Sprintf("%s:%d", name, snap.Revision)

	if payload, ok := s.chartCache.Get(key); ok {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(payload)
		return
	}

	payload, err := json.Marshal(project(snap.Transactions))
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to encode chart", applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "could not build chart data")
		return
	}
	s.chartCache.Set(key, payload)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	now := time.Now()
	doc := s.ledger.Export(now)
	blob, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to encode export", applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "could not build export")
		return
	}

	filename := fmt.Sprintf("controle-financeiro-%s.json", now.UTC().Format(core.DateLayout))
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(blob)

	slog.InfoContext(r.Context(), "Ledger exported",
		applog.FieldOperation, applog.OpExport,
		"transactions", len(doc.Transactions))
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.Header().Set("Allow", "DELETE")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := s.ledger.ClearAll(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Failed to clear ledger",
			applog.FieldError, err,
			applog.FieldOperation, applog.OpClear)
		writeError(w, http.StatusInternalServerError, "could not clear data")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
