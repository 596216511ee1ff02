package handlers

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"brokerdash/internal/auth"
	"brokerdash/internal/models"
)

// MyLogs lists the caller's own audit entries. The admin can pass ?all=1 to
// see everything.
func MyLogs(db *gorm.DB, lg *zap.SugaredLogger, adminEmail string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := auth.Email(r.Context())
		all := r.URL.Query().Get("all") == "1"
		var logs []models.AuditLog
		if all && strings.EqualFold(email, adminEmail) {
			_ = db.Order("created_at desc").Limit(200).Find(&logs).Error
		} else {
			_ = db.Where("actor = ?", email).Order("created_at desc").Limit(200).Find(&logs).Error
		}
		respondJSON(w, logs)
	}
}
