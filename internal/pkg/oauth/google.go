package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mpetrenko/calendar-insights-backend/internal/model"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"
)

type clientSecrets map[string]creds

type creds struct {
	ClientId                string   `json:"client_id"`
	ProjectId               string   `json:"project_id"`
	AuthUri                 string   `json:"auth_uri"`
	TokenUri                string   `json:"token_uri"`
	AuthProviderX509CertUrl string   `json:"auth_provider_x509_cert_url"`
	ClientSecret            string   `json:"client_secret"`
	RedirectUris            []string `json:"redirect_uris"`
}

func loadClientSecret(path, clientType string) (creds, error) {
	file, err := os.Open(path)
	if err != nil {
		return creds{}, fmt.Errorf("can't open client secret: %w", err)
	}
	defer file.Close()

	cs := make(clientSecrets)
	if err := json.NewDecoder(file).Decode(&cs); err != nil {
		return creds{}, fmt.Errorf("can't parse secrets: %w", err)
	}

	return cs[clientType], nil
}

// Flow drives the calendar consent: building the consent URL, exchanging
// the callback code and minting token sources for sync.
type Flow struct {
	conf *oauth2.Config
}

func NewFlow(secretPath, clientType, redirectURL string) (*Flow, error) {
	secret, err := loadClientSecret(secretPath, clientType)
	if err != nil {
		return nil, err
	}

	return &Flow{
		conf: &oauth2.Config{
			ClientID:     secret.ClientId,
			ClientSecret: secret.ClientSecret,
			Endpoint:     google.Endpoint,
			RedirectURL:  redirectURL,
			Scopes:       []string{calendar.CalendarReadonlyScope},
		},
	}, nil
}

// ConsentURL returns the offline-access consent URL. state travels
// through Google untouched and is how the callback identifies the user.
func (f *Flow) ConsentURL(state string) string {
	return f.conf.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("include_granted_scopes", "true"),
	)
}

func (f *Flow) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := f.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange: %w", err)
	}

	return token, nil
}

// TokenSource builds a self-refreshing source from stored credentials.
// The stored access token's expiry is unknown, so it is treated as
// expired and refreshed up front.
func (f *Flow) TokenSource(ctx context.Context, c *model.Credentials) oauth2.TokenSource {
	return f.conf.TokenSource(ctx, &oauth2.Token{
		AccessToken:  c.AccessToken,
		RefreshToken: c.RefreshToken,
		Expiry:       time.Now().Add(-time.Minute),
	})
}
