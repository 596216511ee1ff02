package auth

import (
	"net/http"
	"time"
)

// Cookie names shared with the frontend. zohoUserEmail is deliberately
// readable by page scripts; it is display-only and never trusted server-side.
const (
	AccessTokenCookie    = "accessToken"
	RefreshTokenCookie   = "refreshToken"
	UserEmailCookie      = "zohoUserEmail"
	AccountsServerCookie = "accountsServer"
)

type LoginCookies struct {
	SessionToken   string
	AccessToken    string
	AccessExpiry   time.Duration
	RefreshToken   string
	Email          string
	AccountsServer string
	Secure         bool
}

// SetLoginCookies writes the whole cookie set in one place so login and
// logout stay symmetric.
func SetLoginCookies(w http.ResponseWriter, lc LoginCookies) {
	if lc.AccessExpiry <= 0 {
		lc.AccessExpiry = time.Hour
	}
	long := int(SessionTTL().Seconds())
	set := func(name, value string, maxAge int, httpOnly bool) {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    value,
			Path:     "/",
			MaxAge:   maxAge,
			HttpOnly: httpOnly,
			Secure:   lc.Secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
	set(SessionCookie, lc.SessionToken, long, true)
	set(AccessTokenCookie, lc.AccessToken, int(lc.AccessExpiry.Seconds()), true)
	set(RefreshTokenCookie, lc.RefreshToken, long, true)
	set(UserEmailCookie, lc.Email, long, false)
	set(AccountsServerCookie, lc.AccountsServer, long, true)
}

func ClearLoginCookies(w http.ResponseWriter, secure bool) {
	for _, name := range []string{SessionCookie, AccessTokenCookie, RefreshTokenCookie, UserEmailCookie, AccountsServerCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: name != UserEmailCookie,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
