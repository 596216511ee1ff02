package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookie is the signed, httpOnly cookie carrying the session token.
const SessionCookie = "session"

func sessionTTL() time.Duration {
	if s := os.Getenv("SESSION_TTL"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			return d
		}
	}
	return 30 * 24 * time.Hour
}

// SessionTTL is exported for cookie Max-Age and session-row expiry so the
// two never drift apart.
func SessionTTL() time.Duration { return sessionTTL() }

// Sign issues an HS256 token binding an email to a server-side session id.
func Sign(email, jti string) (string, error) {
	key := []byte(os.Getenv("SESSION_SECRET"))
	claims := jwt.MapClaims{
		"sub": email,
		"jti": jti,
		"exp": time.Now().Add(sessionTTL()).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// Verify checks the signature and expiry and returns the embedded identity.
// A cookie that merely exists proves nothing; only a valid signature does.
func Verify(tokenStr string) (Claims, error) {
	key := []byte(os.Getenv("SESSION_SECRET"))
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return key, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !tok.Valid {
		return Claims{}, errors.New("invalid session token")
	}
	mapc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("invalid claims")
	}
	email, _ := mapc["sub"].(string)
	jti, _ := mapc["jti"].(string)
	if email == "" || jti == "" {
		return Claims{}, errors.New("incomplete claims")
	}
	return Claims{Email: email, JWTID: jti}, nil
}
