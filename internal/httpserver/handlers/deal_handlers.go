package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"brokerdash/internal/auth"
	"brokerdash/internal/models"
)

func isAdmin(email, adminEmail string) bool {
	return adminEmail != "" && strings.EqualFold(email, adminEmail)
}

// ListDeals returns the caller's deals, newest first. The admin sees all.
func ListDeals(db *gorm.DB, lg *zap.SugaredLogger, adminEmail string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := auth.Email(r.Context())
		q := db.Order("created_at desc")
		if !isAdmin(email, adminEmail) {
			q = q.Where("created_by = ?", email)
		}
		var deals []models.Deal
		if err := q.Find(&deals).Error; err != nil {
			lg.Errorw("list deals", "error", err)
			http.Error(w, "could not load deals", http.StatusInternalServerError)
			return
		}
		respondJSON(w, deals)
	}
}

type dealReq struct {
	Status                *string           `json:"status"`
	ServiceType           *string           `json:"service_type"`
	Customer              *string           `json:"customer"`
	Location              *string           `json:"location"`
	Size                  *models.FlexFloat `json:"size"`
	CostOrBudget          *models.FlexFloat `json:"cost_or_budget"`
	RevenueFromOwner      *models.FlexFloat `json:"revenue_from_owner"`
	RevenueFromTenant     *models.FlexFloat `json:"revenue_from_tenant"`
	Notes                 *string           `json:"notes"`
	PropertyOrInquiryLink *string           `json:"property_or_inquiry_link"`
	StartDate             *string           `json:"start_date"`
	PaymentDate           *string           `json:"payment_date"`
	ClosedDate            *string           `json:"closed_date"`
}

// apply copies the supplied fields onto the deal, validating enums. The
// status itself goes through ApplyStatus so date side effects always fire.
func (req *dealReq) apply(d *models.Deal) (string, bool) {
	if req.Status != nil && !models.ValidDealStatus(*req.Status) {
		return "invalid status", false
	}
	if req.ServiceType != nil {
		if !models.ValidServiceType(*req.ServiceType) {
			return "invalid service_type", false
		}
		d.ServiceType = *req.ServiceType
	}
	if req.Customer != nil {
		d.Customer = strings.TrimSpace(*req.Customer)
	}
	if req.Location != nil {
		d.Location = strings.TrimSpace(*req.Location)
	}
	if req.Size != nil {
		d.Size = req.Size.Float64()
	}
	if req.CostOrBudget != nil {
		d.CostOrBudget = req.CostOrBudget.Float64()
	}
	if req.RevenueFromOwner != nil {
		d.RevenueFromOwner = req.RevenueFromOwner.Float64()
	}
	if req.RevenueFromTenant != nil {
		d.RevenueFromTenant = req.RevenueFromTenant.Float64()
	}
	if req.Notes != nil {
		d.Notes = strings.TrimSpace(*req.Notes)
	}
	if req.PropertyOrInquiryLink != nil {
		d.PropertyOrInquiryLink = *req.PropertyOrInquiryLink
	}
	if req.StartDate != nil && *req.StartDate != "" {
		d.StartDate = *req.StartDate
	}
	if req.PaymentDate != nil && *req.PaymentDate != "" {
		d.PaymentDate = req.PaymentDate
	}
	if req.ClosedDate != nil && *req.ClosedDate != "" {
		d.ClosedDate = req.ClosedDate
	}
	if req.Status != nil {
		d.ApplyStatus(*req.Status, models.Today())
	}
	d.ComputeTotal()
	return "", true
}

// CreateDeal inserts a deal owned by the caller. created_by is taken from
// the verified session, never from the request body.
func CreateDeal(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dealReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		email := auth.Email(r.Context())
		d := models.Deal{
			ID:          uuid.NewString(),
			Status:      models.StatusActive,
			ServiceType: models.ServiceOwner,
			StartDate:   models.Today(),
			CreatedBy:   email,
		}
		if msg, ok := req.apply(&d); !ok {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}
		if d.Customer == "" || d.Location == "" {
			http.Error(w, "customer and location are required", http.StatusBadRequest)
			return
		}
		if err := db.Create(&d).Error; err != nil {
			lg.Errorw("create deal", "error", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeAudit(db, email, "deal.create", map[string]interface{}{"deal_id": d.ID, "customer": d.Customer})
		respondJSON(w, d)
	}
}

// UpdateDeal mutates a deal the caller owns (or any deal, for the admin).
func UpdateDeal(db *gorm.DB, lg *zap.SugaredLogger, adminEmail string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		email := auth.Email(r.Context())
		var d models.Deal
		if err := db.First(&d, "id = ?", id).Error; err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if !strings.EqualFold(d.CreatedBy, email) && !isAdmin(email, adminEmail) {
			http.Error(w, "not your deal", http.StatusForbidden)
			return
		}
		var req dealReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if msg, ok := req.apply(&d); !ok {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}
		if d.Customer == "" || d.Location == "" {
			http.Error(w, "customer and location are required", http.StatusBadRequest)
			return
		}
		if err := db.Save(&d).Error; err != nil {
			lg.Errorw("update deal", "error", err, "id", id)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeAudit(db, email, "deal.update", map[string]interface{}{"deal_id": d.ID, "status": d.Status})
		respondJSON(w, d)
	}
}

// DeleteDeal removes a deal. Ownership is enforced here, not in the UI.
func DeleteDeal(db *gorm.DB, lg *zap.SugaredLogger, adminEmail string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		email := auth.Email(r.Context())
		var d models.Deal
		if err := db.First(&d, "id = ?", id).Error; err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if !strings.EqualFold(d.CreatedBy, email) && !isAdmin(email, adminEmail) {
			http.Error(w, "not your deal", http.StatusForbidden)
			return
		}
		if err := db.Delete(&models.Deal{}, "id = ?", id).Error; err != nil {
			lg.Errorw("delete deal", "error", err, "id", id)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeAudit(db, email, "deal.delete", map[string]interface{}{"deal_id": id})
		respondJSON(w, map[string]any{"deleted": true})
	}
}
