package vk

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	domainerrors "github.com/arsuhinars/open-polls/internal/domain/errors"
	"github.com/arsuhinars/open-polls/internal/domain/ports"
	"github.com/arsuhinars/open-polls/internal/infrastructure/config"
)

func testConfig(authURL, tokenURL, apiBaseURL string) *config.VKConfig {
	return &config.VKConfig{
		ClientID:     "12345",
		ClientSecret: "secret",
		AuthURL:      authURL,
		TokenURL:     tokenURL,
		APIBaseURL:   apiBaseURL,
		APIVersion:   "5.131",
	}
}

func TestClient_AuthorizationURL(t *testing.T) {
	client := NewClient(
		testConfig("https://oauth.vk.com/authorize", "https://oauth.vk.com/access_token", "https://api.vk.com/method/"),
		"https://example.com/auth/callback",
	)

	raw := client.AuthorizationURL("state-token")

	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("URL inválida: %v", err)
	}

	query := parsed.Query()
	expected := map[string]string{
		"client_id":     "12345",
		"redirect_uri":  "https://example.com/auth/callback",
		"response_type": "code",
		"state":         "state-token",
		"display":       "page",
		"v":             "5.131",
	}
	for key, want := range expected {
		if got := query.Get(key); got != want {
			t.Errorf("parâmetro %s: esperava %q, obteve %q", key, want, got)
		}
	}
}

func TestClient_ExchangeCode(t *testing.T) {
	t.Run("extrai access token e user_id da resposta", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"tok-1","expires_in":86400,"user_id":54321}`))
		}))
		defer server.Close()

		client := NewClient(
			testConfig(server.URL+"/authorize", server.URL+"/access_token", server.URL+"/method/"),
			"https://example.com/auth/callback",
		)

		token, err := client.ExchangeCode(context.Background(), "auth-code")
		if err != nil {
			t.Fatalf("falha na troca do code: %v", err)
		}

		if token.AccessToken != "tok-1" {
			t.Errorf("esperava access token 'tok-1', obteve %q", token.AccessToken)
		}
		if token.ProviderUserID != 54321 {
			t.Errorf("esperava user_id 54321, obteve %d", token.ProviderUserID)
		}
		if token.ExpiresAt.IsZero() {
			t.Error("esperava data de expiração preenchida")
		}
	})

	t.Run("resposta sem user_id é erro do provedor", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"tok-1","expires_in":86400}`))
		}))
		defer server.Close()

		client := NewClient(
			testConfig(server.URL+"/authorize", server.URL+"/access_token", server.URL+"/method/"),
			"https://example.com/auth/callback",
		)

		if _, err := client.ExchangeCode(context.Background(), "auth-code"); !errors.Is(err, domainerrors.ErrIdentityProvider) {
			t.Errorf("esperava ErrIdentityProvider, obteve %v", err)
		}
	})

	t.Run("recusa do endpoint de token é erro do provedor", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"invalid_grant","error_description":"Code is expired."}`))
		}))
		defer server.Close()

		client := NewClient(
			testConfig(server.URL+"/authorize", server.URL+"/access_token", server.URL+"/method/"),
			"https://example.com/auth/callback",
		)

		if _, err := client.ExchangeCode(context.Background(), "stale-code"); !errors.Is(err, domainerrors.ErrIdentityProvider) {
			t.Errorf("esperava ErrIdentityProvider, obteve %v", err)
		}
	})
}

func TestClient_FetchProfile(t *testing.T) {
	token := &ports.IdentityToken{AccessToken: "tok-1", ProviderUserID: 54321}

	t.Run("lê nome e foto do users.get", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/method/users.get" {
				t.Errorf("esperava path /method/users.get, obteve %s", r.URL.Path)
			}
			query := r.URL.Query()
			if query.Get("access_token") != "tok-1" {
				t.Errorf("esperava access_token na query, obteve %q", query.Get("access_token"))
			}
			if query.Get("fields") != "photo_100" {
				t.Errorf("esperava fields=photo_100, obteve %q", query.Get("fields"))
			}
			if query.Get("v") != "5.131" {
				t.Errorf("esperava v=5.131, obteve %q", query.Get("v"))
			}

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"response":[{"id":54321,"first_name":"Arseny","photo_100":"https://vk.com/p.jpg"}]}`))
		}))
		defer server.Close()

		client := NewClient(
			testConfig(server.URL+"/authorize", server.URL+"/access_token", server.URL+"/method/"),
			"https://example.com/auth/callback",
		)

		profile, err := client.FetchProfile(context.Background(), token)
		if err != nil {
			t.Fatalf("falha ao ler perfil: %v", err)
		}

		if profile.Name != "Arseny" {
			t.Errorf("esperava nome 'Arseny', obteve %q", profile.Name)
		}
		if profile.PhotoURL != "https://vk.com/p.jpg" {
			t.Errorf("esperava foto, obteve %q", profile.PhotoURL)
		}
	})

	t.Run("erro da API vira erro do provedor", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"error":{"error_code":5,"error_msg":"User authorization failed"}}`))
		}))
		defer server.Close()

		client := NewClient(
			testConfig(server.URL+"/authorize", server.URL+"/access_token", server.URL+"/method/"),
			"https://example.com/auth/callback",
		)

		if _, err := client.FetchProfile(context.Background(), token); !errors.Is(err, domainerrors.ErrIdentityProvider) {
			t.Errorf("esperava ErrIdentityProvider, obteve %v", err)
		}
	})

	t.Run("resposta vazia é erro do provedor", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"response":[]}`))
		}))
		defer server.Close()

		client := NewClient(
			testConfig(server.URL+"/authorize", server.URL+"/access_token", server.URL+"/method/"),
			"https://example.com/auth/callback",
		)

		if _, err := client.FetchProfile(context.Background(), token); !errors.Is(err, domainerrors.ErrIdentityProvider) {
			t.Errorf("esperava ErrIdentityProvider, obteve %v", err)
		}
	})
}
