package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"brokerdash/internal/config"
	"brokerdash/internal/httpserver"
	"brokerdash/internal/logger"
	"brokerdash/internal/models"
	"brokerdash/internal/sheets"
	"brokerdash/internal/zoho"
)

func main() {
	_ = godotenv.Load()
	lg := logger.New()
	defer lg.Sync()

	cfg, err := config.Load()
	if err != nil {
		lg.Fatalw("config", "error", err)
	}
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		lg.Fatalw("db connect failed", "error", err)
	}
	if err := db.AutoMigrate(&models.TeamMember{}, &models.Session{}, &models.AuthState{}, &models.AuditLog{}, &models.Deal{}); err != nil {
		lg.Fatalw("automigrate failed", "error", err)
	}
	seedAdmin(db, cfg, lg)
	cleanupExpired(db, lg)

	provider := zoho.New(cfg.ZohoClientID, cfg.ZohoClientSecret, cfg.ZohoRedirectURL)
	source := newSource(cfg, lg)

	router := httpserver.NewRouter(db, lg, cfg, provider, source, sheets.DefaultLayout())
	lg.Infow("listening", "port", cfg.HTTPPort, "sheet_source", source.Name())
	if err := http.ListenAndServe(":"+cfg.HTTPPort, router); err != nil {
		log.Fatal(err)
	}
}

func newSource(cfg *config.Config, lg *zap.SugaredLogger) sheets.RowSource {
	if cfg.HasSheetsCredentials() {
		src, err := sheets.NewGoogleSheetsSource(context.Background(),
			cfg.ServiceAccountEmail, cfg.ServiceAccountKey, cfg.SpreadsheetID, cfg.SheetName)
		if err == nil {
			return src
		}
		lg.Warnw("google sheets source unavailable, falling back to workbook", "error", err)
	}
	return sheets.NewExcelSource(cfg.ExcelPath)
}

// seedAdmin makes sure the admin identity can always reach the deal routes.
func seedAdmin(db *gorm.DB, cfg *config.Config, lg *zap.SugaredLogger) {
	var count int64
	db.Model(&models.TeamMember{}).Where("LOWER(email) = ?", cfg.AdminEmail).Count(&count)
	if count > 0 {
		return
	}
	if err := db.Create(&models.TeamMember{Email: cfg.AdminEmail, AddedBy: "seed", CreatedAt: time.Now()}).Error; err != nil {
		lg.Warnw("seed admin team member", "error", err)
		return
	}
	lg.Infow("seeded admin team member", "email", cfg.AdminEmail)
}

// cleanupExpired drops stale sessions and unconsumed login states at boot.
func cleanupExpired(db *gorm.DB, lg *zap.SugaredLogger) {
	now := time.Now()
	if tx := db.Delete(&models.Session{}, "expires_at < ?", now); tx.Error == nil && tx.RowsAffected > 0 {
		lg.Infow("pruned expired sessions", "count", tx.RowsAffected)
	}
	if tx := db.Delete(&models.AuthState{}, "expires_at < ?", now); tx.Error == nil && tx.RowsAffected > 0 {
		lg.Infow("pruned expired auth states", "count", tx.RowsAffected)
	}
}
