package auth

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"brokerdash/internal/models"
)

// SessionAuth verifies the signed session cookie and resolves it against the
// sessions table. Revoked or expired sessions fail even if the cookie is
// still present in the browser.
func SessionAuth(db *gorm.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(SessionCookie)
			if err != nil || c.Value == "" {
				http.Error(w, "not authenticated", http.StatusUnauthorized)
				return
			}
			claims, err := Verify(c.Value)
			if err != nil {
				http.Error(w, "invalid session", http.StatusUnauthorized)
				return
			}
			var sess models.Session
			if db.First(&sess, "jti = ?", claims.JWTID).Error != nil {
				http.Error(w, "session not found", http.StatusUnauthorized)
				return
			}
			if sess.RevokedAt != nil || time.Now().After(sess.ExpiresAt) {
				http.Error(w, "session expired/revoked", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// RequireTeam fails closed unless the caller's email is on the team
// allowlist. Denials are written to the audit log.
func RequireTeam(db *gorm.DB, lg *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email := strings.ToLower(Email(r.Context()))
			var count int64
			db.Model(&models.TeamMember{}).Where("LOWER(email) = ?", email).Count(&count)
			if count == 0 {
				meta, _ := json.Marshal(map[string]string{"path": r.URL.Path})
				_ = db.Create(&models.AuditLog{
					Actor:    email,
					Action:   "team.denied",
					Metadata: models.JSONB(meta),
				}).Error
				lg.Warnw("allowlist denial", "email", email, "path", r.URL.Path)
				http.Error(w, "not authorized for this application", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin restricts a route to the configured admin identity.
func RequireAdmin(adminEmail string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.EqualFold(Email(r.Context()), adminEmail) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
