package auth

import "golang.org/x/oauth2/clientcredentials"

// Conf holds the client-credentials settings for the dashboard API.
type Conf struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	TokenURL     string `json:"token_url"`
}

// Enabled reports whether credentials were configured at all. An empty
// Conf means the dashboard accepts unauthenticated pushes.
func (c Conf) Enabled() bool {
	return c.ClientID != "" || c.TokenURL != ""
}

func (c Conf) toOauth2Config() clientcredentials.Config {
	return clientcredentials.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		TokenURL:     c.TokenURL,
	}
}
