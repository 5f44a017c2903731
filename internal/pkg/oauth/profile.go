package oauth

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	people "google.golang.org/api/people/v1"
)

type Parser struct {
	secretPath  string
	clientType  string
	redirectURL string
}

func NewParser(secretPath, clientType, redirectURL string) *Parser {
	return &Parser{
		secretPath:  secretPath,
		clientType:  clientType,
		redirectURL: redirectURL,
	}
}

type GoogleInfo struct {
	Name    string
	Email   string
	Picture string
}

// GetInfoGoogle exchanges a sign-in auth code and reads the user's
// primary profile fields from the People API.
func (p *Parser) GetInfoGoogle(ctx context.Context, authCode string) (*GoogleInfo, error) {
	secret, err := loadClientSecret(p.secretPath, p.clientType)
	if err != nil {
		return nil, err
	}

	conf := oauth2.Config{
		ClientID:     secret.ClientId,
		ClientSecret: secret.ClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  p.redirectURL,
		Scopes: []string{
			people.UserinfoEmailScope,
			people.UserinfoProfileScope,
		},
	}

	token, err := conf.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("code exchange: %w", err)
	}

	peopleService, err := people.NewService(ctx,
		option.WithScopes(
			people.UserinfoEmailScope,
			people.UserinfoProfileScope,
		),
		option.WithTokenSource(conf.TokenSource(ctx, token)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to People API: %w", err)
	}

	resp, err := peopleService.People.
		Get("people/me").
		PersonFields("names,emailAddresses,photos").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to make request for user info: %w", err)
	}

	if resp.HTTPStatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get user info: code: %d", resp.HTTPStatusCode)
	}

	info := &GoogleInfo{}

	for _, n := range resp.Names {
		if n.Metadata.Primary {
			info.Name = n.DisplayName
			break
		}
	}

	for _, e := range resp.EmailAddresses {
		if e.Metadata.Primary {
			info.Email = e.Value
			break
		}
	}

	for _, p := range resp.Photos {
		if p.Metadata.Primary {
			info.Picture = p.Url
			break
		}
	}

	return info, nil
}
