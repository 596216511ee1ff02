package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"brokerdash/internal/auth"
	"brokerdash/internal/config"
	"brokerdash/internal/models"
	"brokerdash/internal/zoho"
)

const stateTTL = 10 * time.Minute

func secureCookies(cfg *config.Config) bool {
	return strings.HasPrefix(cfg.ZohoRedirectURL, "https://")
}

// Login stores an anti-forgery state and redirects the browser to the
// provider's consent screen.
func Login(p *zoho.Provider, db *gorm.DB, lg *zap.SugaredLogger, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountsServer := r.URL.Query().Get("accounts-server")
		if accountsServer == "" {
			accountsServer = cfg.ZohoAccountsServer
		}
		state := uuid.NewString()
		now := time.Now()
		if err := db.Create(&models.AuthState{
			State:          state,
			AccountsServer: accountsServer,
			ExpiresAt:      now.Add(stateTTL),
			CreatedAt:      now,
		}).Error; err != nil {
			lg.Errorw("store auth state", "error", err)
			http.Error(w, "login unavailable", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, p.AuthCodeURL(state, accountsServer), http.StatusFound)
	}
}

// Callback finishes the authorization-code flow: verify the state we issued,
// exchange the code, fetch the profile, then establish a server-side session
// and the full cookie set. No cookie is written on any failure path.
func Callback(p *zoho.Provider, db *gorm.DB, lg *zap.SugaredLogger, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		code := q.Get("code")
		if code == "" {
			http.Error(w, "missing code parameter", http.StatusBadRequest)
			return
		}

		state := q.Get("state")
		var st models.AuthState
		if state == "" || db.First(&st, "state = ?", state).Error != nil {
			lg.Warnw("callback with unknown state", "state", state)
			http.Error(w, "invalid state", http.StatusBadRequest)
			return
		}
		// Single use: consume before anything can fail.
		db.Delete(&models.AuthState{}, "state = ?", state)
		if time.Now().After(st.ExpiresAt) {
			http.Error(w, "state expired", http.StatusBadRequest)
			return
		}

		accountsServer := q.Get("accounts-server")
		if accountsServer == "" {
			accountsServer = st.AccountsServer
		}

		tok, err := p.Exchange(r.Context(), code, accountsServer)
		if err != nil {
			lg.Errorw("token exchange failed", "error", err)
			http.Error(w, "token exchange failed", http.StatusInternalServerError)
			return
		}
		info, err := p.FetchUserInfo(r.Context(), tok.AccessToken, accountsServer)
		if err != nil {
			lg.Errorw("userinfo fetch failed", "error", err)
			http.Error(w, "could not resolve user identity", http.StatusUnauthorized)
			return
		}
		email := strings.ToLower(info.Email)

		jti := uuid.NewString()
		now := time.Now()
		if err := db.Create(&models.Session{
			JTI:       jti,
			Email:     email,
			ExpiresAt: now.Add(auth.SessionTTL()),
			CreatedAt: now,
		}).Error; err != nil {
			lg.Errorw("create session", "error", err)
			http.Error(w, "session error", http.StatusInternalServerError)
			return
		}
		signed, err := auth.Sign(email, jti)
		if err != nil {
			lg.Errorw("sign session token", "error", err)
			http.Error(w, "session error", http.StatusInternalServerError)
			return
		}

		auth.SetLoginCookies(w, auth.LoginCookies{
			SessionToken:   signed,
			AccessToken:    tok.AccessToken,
			AccessExpiry:   time.Until(tok.Expiry),
			RefreshToken:   tok.RefreshToken,
			Email:          email,
			AccountsServer: accountsServer,
			Secure:         secureCookies(cfg),
		})
		lg.Infow("session established", "email", email)
		http.Redirect(w, r, cfg.FrontendURL+"/dashboard", http.StatusFound)
	}
}

// Me reports the verified identity. Runs behind SessionAuth, so reaching
// here means the signed token checked out against a live session row.
func Me(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, map[string]any{"email": auth.Email(r.Context())})
	}
}

// Logout revokes the refresh token at the provider (best effort), revokes
// the server-side session, and clears every identity cookie together.
func Logout(p *zoho.Provider, db *gorm.DB, lg *zap.SugaredLogger, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountsServer := cfg.ZohoAccountsServer
		if c, err := r.Cookie(auth.AccountsServerCookie); err == nil && c.Value != "" {
			accountsServer = c.Value
		}
		if c, err := r.Cookie(auth.RefreshTokenCookie); err == nil && c.Value != "" {
			if err := p.Revoke(r.Context(), c.Value, accountsServer); err != nil {
				lg.Warnw("refresh token revoke failed", "error", err)
			}
		}

		if c, err := r.Cookie(auth.SessionCookie); err == nil && c.Value != "" {
			if claims, err := auth.Verify(c.Value); err == nil {
				now := time.Now()
				db.Model(&models.Session{}).Where("jti = ?", claims.JWTID).Update("revoked_at", &now)
			}
		}

		auth.ClearLoginCookies(w, secureCookies(cfg))
		respondJSON(w, map[string]any{
			"message":   "Logged out successfully",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}
