package handlers

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"brokerdash/internal/sheets"
)

type sheetsEnvelope struct {
	Success   bool           `json:"success"`
	Data      *sheets.Result `json:"data,omitempty"`
	Timestamp string         `json:"timestamp,omitempty"`
	Source    string         `json:"source,omitempty"`
	Error     string         `json:"error,omitempty"`
	Message   string         `json:"message,omitempty"`
}

func fetchAndIngest(r *http.Request, src sheets.RowSource, layout sheets.ColumnLayout) (sheets.Result, error) {
	rows, err := src.Fetch(r.Context())
	if err != nil {
		return sheets.Result{}, err
	}
	return sheets.Ingest(rows, layout)
}

// SheetsData runs the ingestion pipeline end to end on every request and
// returns the classified result. Source failures come back as an explicit
// 500 envelope; an empty sheet is a 200 with empty lists. The two are not
// the same thing and are never conflated.
func SheetsData(src sheets.RowSource, layout sheets.ColumnLayout, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := fetchAndIngest(r, src, layout)
		if err != nil {
			lg.Errorw("sheet ingestion failed", "kind", sheets.KindOf(err).String(), "source", src.Name(), "error", err)
			respondStatusJSON(w, http.StatusInternalServerError, sheetsEnvelope{
				Success: false,
				Error:   "Failed to fetch sheet data",
				Message: err.Error(),
			})
			return
		}
		lg.Infow("sheet ingested", "source", src.Name(),
			"properties", len(result.Properties), "inquiries", len(result.Inquiries), "clients", len(result.Clients))
		respondJSON(w, sheetsEnvelope{
			Success:   true,
			Data:      &result,
			Timestamp: time.Now().Format(time.RFC3339),
			Source:    src.Name(),
		})
	}
}

type listingView struct {
	ID          int    `json:"id"`
	Location    string `json:"location"`
	Description string `json:"description"`
	ClientEmail string `json:"clientEmail"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	ClientCity  string `json:"clientCity"`
	TimeIST     string `json:"timeIST"`
}

func toListingView(rec sheets.Record) listingView {
	orNA := func(s string) string {
		if s == "" {
			return "N/A"
		}
		return s
	}
	return listingView{
		ID:          rec.ID,
		Location:    sheets.FormatLocation(rec.Details.ColD),
		Description: rec.Details.ColE,
		ClientEmail: rec.ClientEmail,
		Email:       orNA(rec.Columns["Email"]),
		Phone:       orNA(rec.Columns["Phone"]),
		ClientCity:  orNA(rec.Columns["Client City"]),
		TimeIST:     rec.Columns["Time IST"],
	}
}

var istLayouts = []string{
	"2006-01-02 15:04:05",
	"1/2/2006 15:04:05",
	"2/1/2006 15:04",
	time.RFC3339,
}

func parseTimeIST(s string) time.Time {
	for _, layout := range istLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func listingViews(recs []sheets.Record) []listingView {
	views := make([]listingView, 0, len(recs))
	for _, rec := range recs {
		views = append(views, toListingView(rec))
	}
	// Newest first; rows without a parseable timestamp sink to the bottom.
	sort.SliceStable(views, func(i, j int) bool {
		return parseTimeIST(views[i].TimeIST).After(parseTimeIST(views[j].TimeIST))
	})
	return views
}

// Properties returns the formatted landlord listings, newest first.
func Properties(src sheets.RowSource, layout sheets.ColumnLayout, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := fetchAndIngest(r, src, layout)
		if err != nil {
			lg.Errorw("properties fetch failed", "error", err)
			respondStatusJSON(w, http.StatusInternalServerError, sheetsEnvelope{Success: false, Error: "Failed to fetch sheet data", Message: err.Error()})
			return
		}
		respondJSON(w, map[string]any{"success": true, "properties": listingViews(result.Properties)})
	}
}

// Inquiries returns the formatted space inquiries, newest first.
func Inquiries(src sheets.RowSource, layout sheets.ColumnLayout, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := fetchAndIngest(r, src, layout)
		if err != nil {
			lg.Errorw("inquiries fetch failed", "error", err)
			respondStatusJSON(w, http.StatusInternalServerError, sheetsEnvelope{Success: false, Error: "Failed to fetch sheet data", Message: err.Error()})
			return
		}
		respondJSON(w, map[string]any{"success": true, "inquiries": listingViews(result.Inquiries)})
	}
}

// Clients derives the client directory from property rows and collapses
// duplicates by completeness. Distinct from the ingestion-level first-wins
// dedup: this one keys on name+phone and prefers fuller records.
func Clients(src sheets.RowSource, layout sheets.ColumnLayout, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := fetchAndIngest(r, src, layout)
		if err != nil {
			lg.Errorw("clients fetch failed", "error", err)
			respondStatusJSON(w, http.StatusInternalServerError, sheetsEnvelope{Success: false, Error: "Failed to fetch sheet data", Message: err.Error()})
			return
		}
		mapped := make([]sheets.Client, 0, len(result.Properties))
		for _, p := range result.Properties {
			c := sheets.Client{
				ID:        p.ID,
				Name:      p.ClientName,
				City:      p.Columns["Client City"],
				UniqueKey: strings.ToLower(p.ClientName + "_" + p.ClientEmail),
			}
			if c.Name == "" {
				c.Name = "Unknown"
			}
			if strings.Contains(p.ClientEmail, "@") {
				c.Email = p.ClientEmail
			}
			if len(p.ClientPhone) >= 6 {
				c.Phone = p.ClientPhone
			}
			if company := p.Columns["Company"]; company != "" && company != "Not provided" {
				c.Company = company
			}
			mapped = append(mapped, c)
		}
		respondJSON(w, map[string]any{"success": true, "clients": sheets.Dedupe(mapped)})
	}
}
