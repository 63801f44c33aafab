// Package server exposes a household store over a JSON HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/etnz/household"
	"github.com/etnz/household/date"
	"github.com/etnz/household/metrics"
	"github.com/etnz/household/renderer"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/text/language"
)

// maxBody bounds request bodies.
const maxBody = 1 << 20

// Server is the household HTTP API server.
type Server struct {
	store    *household.Store
	metrics  *metrics.Metrics
	lang     language.Tag
	currency string
}

// New creates a server for the store. Metrics may be nil.
func New(store *household.Store, m *metrics.Metrics, lang language.Tag, currency string) *Server {
	return &Server{store: store, metrics: m, lang: lang, currency: currency}
}

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/snapshot", s.handleSnapshot)
		r.Get("/summary", s.handleSummary)
		r.Post("/debts/{id}/settle", s.handleSettle)
		r.Route("/{kind}", func(r chi.Router) {
			r.Get("/", s.handleList)
			r.Post("/", s.handleCreate)
			r.Patch("/{id}", s.handleUpdate)
			r.Delete("/{id}", s.handleDelete)
		})
	})
	return r
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

// summary is the JSON form of the dashboard aggregates.
type summary struct {
	Version        uint64             `json:"version"`
	NetWorth       household.Totals   `json:"netWorth"`
	EmergencyFund  household.Totals   `json:"emergencyFund"`
	BudgetAlloc    household.Totals   `json:"budgetAllocated"`
	BudgetSpent    household.Totals   `json:"budgetSpent"`
	OwedToMe       household.Totals   `json:"owedToMe"`
	IOwe           household.Totals   `json:"iOwe"`
	Loans          household.Totals   `json:"loans"`
	MonthlyPayment household.Totals   `json:"monthlyPayments"`
	Portfolio      []groupSummary     `json:"portfolio"`
	Spending       []categorySpending `json:"spending"`
}

type groupSummary struct {
	ID       string            `json:"id,omitempty"`
	Name     string            `json:"name"`
	Assets   int               `json:"assets"`
	Value    household.Totals  `json:"value"`
	GainLoss household.Totals  `json:"gainLoss"`
	Share    household.Percent `json:"share"`
}

type categorySpending struct {
	Category string           `json:"category"`
	Total    household.Totals `json:"total"`
	Count    int              `json:"count"`
}

// handleSummary returns the aggregates, as JSON or as the markdown dashboard
// with ?format=markdown. ?period= restricts the spending, e.g. 2025-03.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()
	var period date.Range
	if p := r.URL.Query().Get("period"); p != "" {
		var err error
		if period, err = date.ParseRange(p); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	if r.URL.Query().Get("format") == "markdown" {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		io.WriteString(w, renderer.Dashboard(snap, renderer.Options{Language: s.lang, Currency: s.currency, Period: period}))
		return
	}

	sum := summary{
		Version:       snap.Version(),
		NetWorth:      snap.NetWorth(),
		EmergencyFund: snap.EmergencyFund(),
	}
	sum.BudgetAlloc, sum.BudgetSpent = snap.BudgetTotals()
	sum.OwedToMe, sum.IOwe, _ = snap.DebtBalance()
	sum.Loans, sum.MonthlyPayment = snap.Liabilities()
	for _, g := range snap.Portfolio() {
		sum.Portfolio = append(sum.Portfolio, groupSummary{
			ID:       g.Group.ID,
			Name:     g.Group.Name,
			Assets:   g.Assets,
			Value:    g.Value,
			GainLoss: g.GainLoss(),
			Share:    g.Share,
		})
	}
	for _, c := range snap.Spending(period) {
		sum.Spending = append(sum.Spending, categorySpending{Category: c.Category, Total: c.Total, Count: c.Count})
	}
	writeJSON(w, http.StatusOK, sum)
}

// kind reads the {kind} URL parameter, singular or plural.
func kind(w http.ResponseWriter, r *http.Request) (household.Kind, bool) {
	k, err := household.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return "", false
	}
	return k, true
}

// handleList lists the records of a kind. Expenses accept the category,
// period, sort (date or amount) and order (asc or desc) query parameters.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	k, ok := kind(w, r)
	if !ok {
		return
	}
	snap := s.store.Snapshot()
	if k != household.KindExpense {
		records := snap.RecordsOf(k)
		if records == nil {
			records = []household.Record{}
		}
		writeJSON(w, http.StatusOK, records)
		return
	}

	q := r.URL.Query()
	expenses := snap.Expenses()
	if c := q.Get("category"); c != "" {
		expenses = household.FilterBy(expenses, household.ExpenseCategory, c)
	}
	if p := q.Get("period"); p != "" {
		period, err := date.ParseRange(p)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		expenses = household.Filter(expenses, func(e household.Expense) bool { return period.Contains(e.Date) })
	}
	order, err := household.ParseOrder(q.Get("order"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	switch q.Get("sort") {
	case "", "date":
		expenses = household.SortByDate(expenses, household.ExpenseDate, order)
	case "amount":
		expenses = household.SortByAmount(expenses, household.ExpenseAmount, order)
	default:
		writeError(w, http.StatusBadRequest, "sort must be date or amount")
		return
	}
	if expenses == nil {
		expenses = []household.Expense{}
	}
	writeJSON(w, http.StatusOK, expenses)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	k, ok := kind(w, r)
	if !ok {
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rec, err := household.DecodeRecordOf(k, body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := household.Validate(rec); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	id, err := s.store.Add(rec)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	k, ok := kind(w, r)
	if !ok {
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.UpdateJSON(k, chi.URLParam(r, "id"), body); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDelete never fails: deleting an unknown record is a no-op, reported
// in the response.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	k, ok := kind(w, r)
	if !ok {
		return
	}
	deleted := s.store.Delete(k, chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}

func (s *Server) handleSettle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.ToggleSettled(id); err != nil {
		writeStoreError(w, err)
		return
	}
	d, _ := s.store.Snapshot().Debt(id)
	writeJSON(w, http.StatusOK, d)
}

func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, household.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, household.ErrInvalidPatch):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"message": msg,
			"status":  status,
		},
	})
}
