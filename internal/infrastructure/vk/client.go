package vk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	domainerrors "github.com/arsuhinars/open-polls/internal/domain/errors"
	"github.com/arsuhinars/open-polls/internal/domain/ports"
	"github.com/arsuhinars/open-polls/internal/infrastructure/config"
)

// Client implementa ports.IdentityProvider para o OAuth do VK.
// A troca do authorization code segue o fluxo padrão; o perfil vem do
// método users.get da API.
type Client struct {
	oauth      oauth2.Config
	apiBaseURL string
	apiVersion string
	httpClient *http.Client
}

// NewClient cria um novo client do VK. redirectURL é a URL pública do
// endpoint de callback e precisa bater com a registrada no app do VK.
func NewClient(cfg *config.VKConfig, redirectURL string) ports.IdentityProvider {
	return &Client{
		oauth: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  redirectURL,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.AuthURL,
				TokenURL: cfg.TokenURL,
			},
		},
		apiBaseURL: cfg.APIBaseURL,
		apiVersion: cfg.APIVersion,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) AuthorizationURL(state string) string {
	return c.oauth.AuthCodeURL(state,
		oauth2.SetAuthURLParam("display", "page"),
		oauth2.SetAuthURLParam("v", c.apiVersion),
	)
}

func (c *Client) ExchangeCode(ctx context.Context, code string) (*ports.IdentityToken, error) {
	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domainerrors.ErrIdentityProvider, err)
	}

	// O endpoint de token do VK devolve o id do usuário junto com o token
	userID, ok := token.Extra("user_id").(float64)
	if !ok {
		return nil, fmt.Errorf("%w: token response misses user_id", domainerrors.ErrIdentityProvider)
	}

	return &ports.IdentityToken{
		AccessToken:    token.AccessToken,
		ProviderUserID: int64(userID),
		ExpiresAt:      token.Expiry,
	}, nil
}

type usersGetResponse struct {
	Response []struct {
		ID        int64  `json:"id"`
		FirstName string `json:"first_name"`
		Photo100  string `json:"photo_100"`
	} `json:"response"`
	Error *struct {
		ErrorCode int    `json:"error_code"`
		ErrorMsg  string `json:"error_msg"`
	} `json:"error"`
}

func (c *Client) FetchProfile(ctx context.Context, token *ports.IdentityToken) (*ports.IdentityProfile, error) {
	methodURL, err := url.Parse(c.apiBaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid api base url: %s", domainerrors.ErrIdentityProvider, err)
	}
	methodURL = methodURL.JoinPath("users.get")

	query := methodURL.Query()
	query.Set("fields", "photo_100")
	query.Set("access_token", token.AccessToken)
	query.Set("v", c.apiVersion)
	methodURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, methodURL.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domainerrors.ErrIdentityProvider, err)
	}
	defer resp.Body.Close()

	var result usersGetResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: %s", domainerrors.ErrIdentityProvider, err)
	}

	if result.Error != nil {
		return nil, fmt.Errorf("%w: users.get error %d: %s",
			domainerrors.ErrIdentityProvider, result.Error.ErrorCode, result.Error.ErrorMsg)
	}
	if len(result.Response) == 0 {
		return nil, fmt.Errorf("%w: users.get returned no profile", domainerrors.ErrIdentityProvider)
	}

	return &ports.IdentityProfile{
		Name:     result.Response[0].FirstName,
		PhotoURL: result.Response[0].Photo100,
	}, nil
}
