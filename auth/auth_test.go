package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetTokenAndSetAuthHeader(t *testing.T) {
	// Static token endpoint standing in for the dashboard's auth server.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"token123","token_type":"bearer","expires_in":3600}`))
	}))
	defer server.Close()

	cfg := Conf{ClientID: "id", ClientSecret: "secret", TokenURL: server.URL}
	client := NewClientCred(cfg)

	token, err := client.GetToken(context.Background())
	if err != nil {
		t.Fatalf("GetToken returned error: %v", err)
	}
	if token != "token123" {
		t.Fatalf("unexpected token %s", token)
	}

	req, _ := http.NewRequest(http.MethodGet, "http://example.com", nil)
	if err := client.SetAuthHeader(req); err != nil {
		t.Fatalf("SetAuthHeader returned error: %v", err)
	}
	if got := req.Header.Get("Authorization"); got != "Bearer token123" {
		t.Fatalf("unexpected Authorization header %q", got)
	}
}

func TestConfEnabled(t *testing.T) {
	if (Conf{}).Enabled() {
		t.Fatal("empty conf should be disabled")
	}
	if !(Conf{TokenURL: "https://auth.example.com/token"}).Enabled() {
		t.Fatal("conf with token URL should be enabled")
	}
}
