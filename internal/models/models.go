package models

import "time"

// TeamMember is the allowlist gating every deal mutation. A caller whose
// email is not present here is rejected before any deal row is touched.
type TeamMember struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	AddedBy   string    `json:"added_by"`
	CreatedAt time.Time `json:"created_at"`
}

func (TeamMember) TableName() string { return "team" }

// Session is the server-side record behind a signed session cookie. The
// cookie carries the jti; identity is only ever read from this row.
type Session struct {
	JTI       string     `gorm:"primaryKey;size:64" json:"jti"`
	Email     string     `gorm:"index;not null" json:"email"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// AuthState stores the anti-forgery state issued at login. Callback consumes
// it exactly once; anything expired or unknown fails the exchange.
type AuthState struct {
	State          string    `gorm:"primaryKey;size:64" json:"state"`
	AccountsServer string    `json:"accounts_server"`
	ExpiresAt      time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt      time.Time `json:"created_at"`
}

type AuditLog struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Actor     string    `gorm:"index" json:"actor"`
	Action    string    `gorm:"not null" json:"action"`
	Metadata  JSONB     `gorm:"type:jsonb;default:'{}'" json:"metadata"`
	CreatedAt time.Time `json:"created_at"`
}
