package sheets

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// RowSource yields the full set of rows for one sheet. Implementations
// return *SourceError so callers can distinguish failure kinds.
type RowSource interface {
	Fetch(ctx context.Context) ([][]string, error)
	Name() string
}

// GoogleSheetsSource reads the sheet over the Sheets API v4 with
// service-account credentials.
type GoogleSheetsSource struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	sheetName     string
}

func NewGoogleSheetsSource(ctx context.Context, serviceAccountEmail, privateKey, spreadsheetID, sheetName string) (*GoogleSheetsSource, error) {
	if serviceAccountEmail == "" || privateKey == "" {
		return nil, srcErr(KindAuth, "missing Google service account credentials")
	}
	conf := &jwt.Config{
		Email:      serviceAccountEmail,
		PrivateKey: []byte(privateKey),
		Scopes:     []string{sheetsapi.SpreadsheetsReadonlyScope},
		TokenURL:   google.JWTTokenURL,
	}
	svc, err := sheetsapi.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &GoogleSheetsSource{svc: svc, spreadsheetID: spreadsheetID, sheetName: sheetName}, nil
}

func (s *GoogleSheetsSource) Name() string { return "google-sheets" }

func (s *GoogleSheetsSource) Fetch(ctx context.Context) ([][]string, error) {
	resp, err := s.svc.Spreadsheets.Values.
		Get(s.spreadsheetID, s.sheetName+"!A:Z").
		Context(ctx).Do()
	if err != nil {
		if ge, ok := err.(*googleapi.Error); ok {
			switch ge.Code {
			case http.StatusUnauthorized, http.StatusForbidden:
				return nil, srcErr(KindAuth, "sheets api rejected credentials: %w", err)
			case http.StatusBadRequest, http.StatusNotFound:
				return nil, srcErr(KindMalformed, "sheets api rejected range %q: %w", s.sheetName, err)
			}
		}
		return nil, srcErr(KindNetwork, "sheets api unreachable: %w", err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, v := range raw {
			if v == nil {
				continue
			}
			row[i] = fmt.Sprint(v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
