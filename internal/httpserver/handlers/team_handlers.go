package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"brokerdash/internal/auth"
	"brokerdash/internal/models"
)

func ListTeam(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var members []models.TeamMember
		_ = db.Order("created_at asc").Find(&members).Error
		respondJSON(w, members)
	}
}

func AddTeamMember(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email string `json:"email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		email := strings.TrimSpace(strings.ToLower(req.Email))
		if email == "" || !strings.Contains(email, "@") {
			http.Error(w, "valid email required", http.StatusBadRequest)
			return
		}
		m := models.TeamMember{
			Email:     email,
			AddedBy:   auth.Email(r.Context()),
			CreatedAt: time.Now(),
		}
		if err := db.Create(&m).Error; err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeAudit(db, m.AddedBy, "team.add", map[string]interface{}{"email": email})
		respondJSON(w, m)
	}
}

func RemoveTeamMember(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := db.Delete(&models.TeamMember{}, "id = ?", id).Error; err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeAudit(db, auth.Email(r.Context()), "team.remove", map[string]interface{}{"member_id": id})
		respondJSON(w, map[string]any{"deleted": true})
	}
}
