// Package reportapi serves aggregated reports plus the CSV/JSON export
// and import endpoints.
package reportapi

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/centavoapp/centavo/internal/export"
	"github.com/centavoapp/centavo/internal/http/respond"
	"github.com/centavoapp/centavo/internal/importer"
	"github.com/centavoapp/centavo/internal/report"
)

type Handler struct {
	reports  *report.Service
	exporter *export.Service
	imports  *importer.Service
}

func NewHandler(reports *report.Service, exporter *export.Service, imports *importer.Service) *Handler {
	return &Handler{reports: reports, exporter: exporter, imports: imports}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.forPeriod)
	r.Get("/summary", h.summary)
}

func (h *Handler) ExportRoutes(r chi.Router) {
	r.Get("/csv", h.exportCSV)
	r.Get("/json", h.exportJSON)
}

func (h *Handler) ImportRoutes(r chi.Router) {
	r.Post("/", h.importCSV)
}

// forPeriod builds the period report. period defaults to all time;
// wallet_id defaults to the current wallet.
func (h *Handler) forPeriod(w http.ResponseWriter, r *http.Request) {
	period := report.Period(r.URL.Query().Get("period"))
	if !period.Valid() {
		respond.BadRequest(w, "period must be week, month, quarter or year")
		return
	}

	walletID := uuid.Nil

	if s := r.URL.Query().Get("wallet_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			respond.BadRequest(w, "invalid wallet_id")
			return
		}

		walletID = id
	}

	respond.JSON(w, http.StatusOK, h.reports.ForPeriod(period, walletID))
}

type summaryResponse struct {
	TotalIncome       int64            `json:"total_income"`
	TotalExpense      int64            `json:"total_expense"`
	Balance           int64            `json:"balance"`
	ExpenseByCategory map[string]int64 `json:"expense_by_category"`
	IncomeByCategory  map[string]int64 `json:"income_by_category"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	period := report.Period(r.URL.Query().Get("period"))
	if !period.Valid() {
		respond.BadRequest(w, "period must be week, month, quarter or year")
		return
	}

	income := h.reports.TotalIncome(period)
	expense := h.reports.TotalExpense(period)

	respond.JSON(w, http.StatusOK, summaryResponse{
		TotalIncome:       income,
		TotalExpense:      expense,
		Balance:           income - expense,
		ExpenseByCategory: h.reports.ExpenseByCategory(),
		IncomeByCategory:  h.reports.IncomeByCategory(),
	})
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	// Render to a buffer first so errors still produce a clean JSON
	// response instead of a half-written download.
	var buf bytes.Buffer

	if err := h.exporter.WriteCSV(&buf); err != nil {
		respond.Error(w, err)
		return
	}

	filename := fmt.Sprintf("transactions_%s.csv", time.Now().Format(time.DateOnly))

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	_, _ = buf.WriteTo(w)
}

func (h *Handler) exportJSON(w http.ResponseWriter, r *http.Request) {
	doc, err := h.exporter.BuildDocument()
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, doc)
}

// importCSV accepts either a multipart upload under the "file" field
// or a raw CSV body.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	var src io.Reader = r.Body

	if err := r.ParseMultipartForm(10 << 20); err == nil {
		file, _, err := r.FormFile("file")
		if err != nil {
			respond.BadRequest(w, "missing file field")
			return
		}
		defer file.Close()

		src = file
	}

	walletID := uuid.Nil

	if s := r.URL.Query().Get("wallet_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			respond.BadRequest(w, "invalid wallet_id")
			return
		}

		walletID = id
	}

	result, err := h.imports.Import(r.Context(), src, walletID)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, result)
}
