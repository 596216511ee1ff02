// Package sheets turns raw spreadsheet rows into typed property, inquiry and
// client records. The whole pipeline is pure and synchronous: one fetch, one
// pass, no cache.
package sheets

import (
	"encoding/json"
	"strings"
)

type Details struct {
	ColC string `json:"col_C"`
	ColD string `json:"col_D"`
	ColE string `json:"col_E"`
}

// Record is one classified row. Columns keeps the raw row under its original
// header names; the typed fields are the normalized subset. Ids are assigned
// per output list in iteration order and are not stable across fetches.
type Record struct {
	ID              int
	Type            string // "property" or "inquiry"
	ClientName      string
	ClientEmail     string
	ClientPhone     string
	RequirementType string
	Details         Details
	Columns         map[string]string
}

// MarshalJSON flattens the raw columns to the top level, with the typed
// fields written last so they win header-name collisions. Matches the shape
// the dashboard frontend has always consumed.
func (r Record) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, len(r.Columns)+7)
	for k, v := range r.Columns {
		m[k] = v
	}
	m["id"] = r.ID
	m["type"] = r.Type
	m["clientName"] = r.ClientName
	m["clientEmail"] = r.ClientEmail
	m["clientPhone"] = r.ClientPhone
	m["requirementType"] = r.RequirementType
	m["details"] = r.Details
	return json.Marshal(m)
}

type Client struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	City      string `json:"city"`
	Company   string `json:"company"`
	UniqueKey string `json:"uniqueKey"`
}

type Result struct {
	Properties []Record `json:"properties"`
	Inquiries  []Record `json:"inquiries"`
	Clients    []Client `json:"clients"`
}

func emptyResult() Result {
	return Result{Properties: []Record{}, Inquiries: []Record{}, Clients: []Client{}}
}

var tenantNeedles = []string{"findtenant", "find tenant", "finding tenant"}
var spaceNeedles = []string{"findspace", "find space", "finding space"}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// IsProperty reports whether a requirement-type cell marks a landlord row.
func IsProperty(requirementType string) bool {
	return containsAny(strings.ToLower(requirementType), tenantNeedles)
}

// IsInquiry reports whether a requirement-type cell marks a space seeker.
// Not mutually exclusive with IsProperty: a row containing both markers
// lands in both lists, as the business has always read the sheet.
func IsInquiry(requirementType string) bool {
	return containsAny(strings.ToLower(requirementType), spaceNeedles)
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Ingest classifies data rows into properties and inquiries and derives the
// deduplicated client directory. The first row is the header row. Rows
// matching neither marker are dropped from both lists but still contribute a
// client when they carry both a name and an email.
func Ingest(rows [][]string, layout ColumnLayout) (Result, error) {
	if len(rows) == 0 {
		return emptyResult(), nil
	}
	headers := rows[0]
	if err := layout.Validate(headers); err != nil {
		return emptyResult(), err
	}

	res := emptyResult()
	clientKeys := make(map[string]bool)

	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}

		columns := make(map[string]string, len(headers))
		for i, h := range headers {
			columns[h] = cell(row, i)
		}

		name := cell(row, layout.Name)
		email := cell(row, layout.Email)
		phone := cell(row, layout.Phone)
		reqType := cell(row, layout.RequirementType)
		details := Details{
			ColC: cell(row, layout.DetailC),
			ColD: cell(row, layout.DetailD),
			ColE: cell(row, layout.DetailE),
		}

		rec := Record{
			ClientName:      name,
			ClientEmail:     email,
			ClientPhone:     phone,
			RequirementType: reqType,
			Details:         details,
			Columns:         columns,
		}

		if IsProperty(reqType) {
			rec.ID = len(res.Properties) + 1
			rec.Type = "property"
			res.Properties = append(res.Properties, rec)
		}
		if IsInquiry(reqType) {
			rec.ID = len(res.Inquiries) + 1
			rec.Type = "inquiry"
			res.Inquiries = append(res.Inquiries, rec)
		}

		// First occurrence wins; consumers that want completeness-based
		// merging go through Dedupe instead.
		key := strings.ToLower(name + "_" + email)
		if name != "" && email != "" && !clientKeys[key] {
			clientKeys[key] = true
			res.Clients = append(res.Clients, Client{
				ID:        len(res.Clients) + 1,
				Name:      name,
				Email:     email,
				Phone:     phone,
				City:      cell(row, layout.City),
				Company:   cell(row, layout.Company),
				UniqueKey: key,
			})
		}
	}
	return res, nil
}
