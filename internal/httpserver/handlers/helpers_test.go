package handlers_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"brokerdash/internal/auth"
	"brokerdash/internal/config"
	"brokerdash/internal/httpserver"
	"brokerdash/internal/models"
	"brokerdash/internal/sheets"
	"brokerdash/internal/zoho"
)

type stubSource struct {
	rows [][]string
	err  error
}

func (s stubSource) Fetch(ctx context.Context) ([][]string, error) { return s.rows, s.err }
func (s stubSource) Name() string                                  { return "stub" }

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.TeamMember{}, &models.Session{}, &models.AuthState{},
		&models.AuditLog{}, &models.Deal{},
	))
	return db
}

type testEnv struct {
	db       *gorm.DB
	cfg      *config.Config
	provider *zoho.Provider
	router   http.Handler
}

func newTestEnv(t *testing.T, src sheets.RowSource, accountsServer string) *testEnv {
	t.Helper()
	t.Setenv("SESSION_SECRET", "test-secret")
	db := testDB(t)
	cfg := &config.Config{
		AdminEmail:         "admin@x.com",
		ZohoAccountsServer: accountsServer,
		ZohoRedirectURL:    "http://localhost:8080/auth/callback",
	}
	provider := zoho.New("cid", "secret", cfg.ZohoRedirectURL)
	router := httpserver.NewRouter(db, zap.NewNop().Sugar(), cfg, provider, src, sheets.DefaultLayout())
	return &testEnv{db: db, cfg: cfg, provider: provider, router: router}
}

// sessionCookie establishes a server-side session for email and returns the
// signed cookie a logged-in browser would carry.
func (e *testEnv) sessionCookie(t *testing.T, email string) *http.Cookie {
	t.Helper()
	jti := uuid.NewString()
	require.NoError(t, e.db.Create(&models.Session{
		JTI:       jti,
		Email:     email,
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}).Error)
	tok, err := auth.Sign(email, jti)
	require.NoError(t, err)
	return &http.Cookie{Name: auth.SessionCookie, Value: tok}
}

func (e *testEnv) addTeam(t *testing.T, email string) {
	t.Helper()
	require.NoError(t, e.db.Create(&models.TeamMember{Email: email, AddedBy: "test", CreatedAt: time.Now()}).Error)
}
