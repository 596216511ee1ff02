// Package zoho implements the authorization-code flow against Zoho's
// accounts service. Zoho is multi-region: the callback tells us which
// accounts server issued the code, so every call takes the server base URL.
package zoho

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
)

const DefaultAccountsServer = "https://accounts.zoho.com"

var defaultScopes = []string{
	"ZohoMail.accounts.READ",
	"profile.userinfo.read",
	"email",
}

type Provider struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string

	// HTTPClient overrides the client used for userinfo and revoke calls.
	HTTPClient *http.Client
}

func New(clientID, clientSecret, redirectURL string) *Provider {
	return &Provider{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       defaultScopes,
	}
}

func (p *Provider) config(accountsServer string) *oauth2.Config {
	server := strings.TrimSuffix(accountsServer, "/")
	if server == "" {
		server = DefaultAccountsServer
	}
	return &oauth2.Config{
		ClientID:     p.ClientID,
		ClientSecret: p.ClientSecret,
		RedirectURL:  p.RedirectURL,
		Scopes:       p.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  server + "/oauth/v2/auth",
			TokenURL: server + "/oauth/v2/token",
		},
	}
}

func (p *Provider) client() *http.Client {
	if p.HTTPClient != nil {
		return p.HTTPClient
	}
	return http.DefaultClient
}

func (p *Provider) ctx(ctx context.Context) context.Context {
	if p.HTTPClient != nil {
		return context.WithValue(ctx, oauth2.HTTPClient, p.HTTPClient)
	}
	return ctx
}

// AuthCodeURL builds the browser redirect. access_type=offline and
// prompt=consent make Zoho return a refresh token on every grant.
func (p *Provider) AuthCodeURL(state, accountsServer string) string {
	return p.config(accountsServer).AuthCodeURL(state,
		oauth2.SetAuthURLParam("access_type", "offline"),
		oauth2.SetAuthURLParam("prompt", "consent"))
}

// Exchange trades the authorization code for tokens.
func (p *Provider) Exchange(ctx context.Context, code, accountsServer string) (*oauth2.Token, error) {
	tok, err := p.config(accountsServer).Exchange(p.ctx(ctx), code)
	if err != nil {
		return nil, fmt.Errorf("token exchange: %w", err)
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("token exchange returned no access_token")
	}
	return tok, nil
}

// Refresh obtains a fresh access token from a stored refresh token.
func (p *Provider) Refresh(ctx context.Context, refreshToken, accountsServer string) (*oauth2.Token, error) {
	src := p.config(accountsServer).TokenSource(p.ctx(ctx), &oauth2.Token{RefreshToken: refreshToken})
	tok, err := src.Token()
	if err != nil {
		return nil, fmt.Errorf("token refresh: %w", err)
	}
	return tok, nil
}

// UserInfo is the subset of the Zoho profile the dashboard cares about.
// Field names match Zoho's capitalized JSON keys.
type UserInfo struct {
	Email       string `json:"Email"`
	DisplayName string `json:"Display_Name"`
	FirstName   string `json:"First_Name"`
	LastName    string `json:"Last_Name"`
	ZUID        int64  `json:"ZUID"`
}

// FetchUserInfo loads the profile for an access token. A profile without an
// email is an error: the email is the identity everything else keys on.
func (p *Provider) FetchUserInfo(ctx context.Context, accessToken, accountsServer string) (UserInfo, error) {
	server := strings.TrimSuffix(accountsServer, "/")
	if server == "" {
		server = DefaultAccountsServer
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server+"/oauth/user/info", nil)
	if err != nil {
		return UserInfo{}, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	resp, err := p.client().Do(req)
	if err != nil {
		return UserInfo{}, fmt.Errorf("userinfo request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return UserInfo{}, fmt.Errorf("userinfo request: status %d", resp.StatusCode)
	}
	var info UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return UserInfo{}, fmt.Errorf("userinfo decode: %w", err)
	}
	if info.Email == "" {
		return UserInfo{}, fmt.Errorf("userinfo has no Email field")
	}
	return info, nil
}

// Revoke invalidates a token at the provider. Logout treats failures as
// best-effort; cookies are cleared regardless.
func (p *Provider) Revoke(ctx context.Context, token, accountsServer string) error {
	server := strings.TrimSuffix(accountsServer, "/")
	if server == "" {
		server = DefaultAccountsServer
	}
	form := url.Values{"token": {token}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		server+"/oauth/v2/token/revoke", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := p.client().Do(req)
	if err != nil {
		return fmt.Errorf("revoke request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("revoke request: status %d", resp.StatusCode)
	}
	return nil
}
