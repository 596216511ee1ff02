package handlers

import (
	"encoding/json"
	"net/http"

	"gorm.io/gorm"

	"brokerdash/internal/models"
)

func respondJSON(w http.ResponseWriter, v interface{}) {
	respondStatusJSON(w, http.StatusOK, v)
}

func respondStatusJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

// writeAudit appends an audit row; failures are deliberately ignored so an
// audit hiccup never blocks the action it describes.
func writeAudit(db *gorm.DB, actor, action string, meta map[string]interface{}) {
	b, _ := json.Marshal(meta)
	_ = db.Create(&models.AuditLog{Actor: actor, Action: action, Metadata: models.JSONB(b)}).Error
}
