package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brokerdash/internal/sheets"
)

var sheetRows = [][]string{
	{"Client", "Requirement Type", "Col C", "Location", "Description", "Email", "Phone", "Company", "I", "J", "Client City", "Time IST"},
	{"Jane Doe", "Finding Tenant", "", "2000 sq ft, India", "₹50/sqft", "jane@x.com", "9998887777", "Acme", "", "", "Bangalore", "2026-08-01 10:00:00"},
	{"Raj", "Finding Space", "", "HSR, India", "budget 40k", "raj@x.com", "8887776666", "", "", "", "Pune", "2026-08-02 09:00:00"},
	{"Jane Doe", "Finding Tenant", "", "Indiranagar, India", "", "jane@x.com", "999-888-7777", "Not provided", "", "", "", "2026-08-03 12:00:00"},
}

func sheetsGet(t *testing.T, env *testEnv, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.AddCookie(env.sessionCookie(t, "jane@x.com"))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func TestSheetsDataEnvelope(t *testing.T) {
	env := newTestEnv(t, stubSource{rows: sheetRows}, "https://accounts.zoho.example")
	rec := sheetsGet(t, env, "/api/sheets-data")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success   bool           `json:"success"`
		Data      *sheets.Result `json:"data"`
		Source    string         `json:"source"`
		Timestamp string         `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "stub", body.Source)
	assert.NotEmpty(t, body.Timestamp)
	require.NotNil(t, body.Data)
	assert.Len(t, body.Data.Properties, 2)
	assert.Len(t, body.Data.Inquiries, 1)
	assert.Len(t, body.Data.Clients, 2)
}

func TestSheetsDataFailureIsNotEmptySuccess(t *testing.T) {
	src := stubSource{err: &sheets.SourceError{Kind: sheets.KindAuth, Err: errors.New("bad credentials")}}
	env := newTestEnv(t, src, "https://accounts.zoho.example")
	rec := sheetsGet(t, env, "/api/sheets-data")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Failed to fetch sheet data", body.Error)
	assert.Contains(t, body.Message, "bad credentials")
}

func TestSheetsDataEmptySheetIsSuccess(t *testing.T) {
	env := newTestEnv(t, stubSource{rows: nil}, "https://accounts.zoho.example")
	rec := sheetsGet(t, env, "/api/sheets-data")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool           `json:"success"`
		Data    *sheets.Result `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Empty(t, body.Data.Properties)
}

func TestSheetsDataRequiresSession(t *testing.T) {
	env := newTestEnv(t, stubSource{rows: sheetRows}, "https://accounts.zoho.example")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sheets-data", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPropertiesViewFormatsAndSorts(t *testing.T) {
	env := newTestEnv(t, stubSource{rows: sheetRows}, "https://accounts.zoho.example")
	rec := sheetsGet(t, env, "/api/properties")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success    bool `json:"success"`
		Properties []struct {
			Location   string `json:"location"`
			Email      string `json:"email"`
			ClientCity string `json:"clientCity"`
			TimeIST    string `json:"timeIST"`
		} `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Properties, 2)
	// Newest first.
	assert.Equal(t, "2026-08-03 12:00:00", body.Properties[0].TimeIST)
	assert.Equal(t, "N/A", body.Properties[0].ClientCity)
	assert.Equal(t, "2000 sq ft, India", body.Properties[1].Location)
}

func TestClientsViewDedupes(t *testing.T) {
	env := newTestEnv(t, stubSource{rows: sheetRows}, "https://accounts.zoho.example")
	rec := sheetsGet(t, env, "/api/clients")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool            `json:"success"`
		Clients []sheets.Client `json:"clients"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	// Two Jane Doe property rows share name+phone digits; the fuller one wins.
	require.Len(t, body.Clients, 1)
	assert.Equal(t, "Jane Doe", body.Clients[0].Name)
	assert.Equal(t, "Acme", body.Clients[0].Company)
	assert.Equal(t, "Bangalore", body.Clients[0].City)
}
