package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"brokerdash/internal/auth"
	"brokerdash/internal/config"
	"brokerdash/internal/httpserver/handlers"
	"brokerdash/internal/sheets"
	"brokerdash/internal/zoho"
)

func NewRouter(db *gorm.DB, lg *zap.SugaredLogger, cfg *config.Config, provider *zoho.Provider, source sheets.RowSource, layout sheets.ColumnLayout) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, middleware.Logger)

	r.Get("/auth/login", handlers.Login(provider, db, lg, cfg))
	r.Get("/auth/callback", handlers.Callback(provider, db, lg, cfg))
	r.Get("/auth/logout", handlers.Logout(provider, db, lg, cfg))
	r.Post("/auth/logout", handlers.Logout(provider, db, lg, cfg))

	r.Group(func(protected chi.Router) {
		protected.Use(auth.SessionAuth(db))
		protected.Get("/auth/me", handlers.Me(db, lg))

		protected.Get("/api/sheets-data", handlers.SheetsData(source, layout, lg))
		protected.Get("/api/properties", handlers.Properties(source, layout, lg))
		protected.Get("/api/inquiries", handlers.Inquiries(source, layout, lg))
		protected.Get("/api/clients", handlers.Clients(source, layout, lg))

		protected.Group(func(deals chi.Router) {
			deals.Use(auth.RequireTeam(db, lg))
			deals.Get("/api/deals", handlers.ListDeals(db, lg, cfg.AdminEmail))
			deals.Post("/api/deals", handlers.CreateDeal(db, lg))
			deals.Patch("/api/deals/{id}", handlers.UpdateDeal(db, lg, cfg.AdminEmail))
			deals.Delete("/api/deals/{id}", handlers.DeleteDeal(db, lg, cfg.AdminEmail))
			deals.Get("/api/logs", handlers.MyLogs(db, lg, cfg.AdminEmail))
		})

		protected.Group(func(admin chi.Router) {
			admin.Use(auth.RequireAdmin(cfg.AdminEmail))
			admin.Get("/api/team", handlers.ListTeam(db, lg))
			admin.Post("/api/team", handlers.AddTeamMember(db, lg))
			admin.Delete("/api/team/{id}", handlers.RemoveTeamMember(db, lg))
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	return r
}
