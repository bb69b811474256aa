package auth

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// ClientCred wraps the client-credentials flow used when pushing roster
// changes to the operations dashboard. The token is cached and renewed
// lazily when it expires.
type ClientCred struct {
	conf  clientcredentials.Config
	token *oauth2.Token
}

func NewClientCred(conf Conf) *ClientCred {
	return &ClientCred{conf: conf.toOauth2Config()}
}

// GetToken returns the cached access token, fetching a new one from the
// token endpoint when none is held or the held one expired.
func (c *ClientCred) GetToken(ctx context.Context) (string, error) {
	if c.token != nil && c.token.Valid() {
		return c.token.AccessToken, nil
	}
	if err := c.refresh(ctx); err != nil {
		return "", err
	}
	return c.token.AccessToken, nil
}

// SetAuthHeader stamps the request with a valid bearer token.
func (c *ClientCred) SetAuthHeader(r *http.Request) error {
	if c.token == nil || !c.token.Valid() {
		if err := c.refresh(r.Context()); err != nil {
			return err
		}
	}
	c.token.SetAuthHeader(r)
	return nil
}

func (c *ClientCred) refresh(ctx context.Context) error {
	token, err := c.conf.Token(ctx)
	if err != nil {
		return fmt.Errorf("fetch token: %w", err)
	}
	c.token = token
	return nil
}
