package identity

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/net/context"
)

const (
	DefaultIdentityURL = "https://identitytoolkit.googleapis.com"
	DefaultTokenURL    = "https://securetoken.googleapis.com"
	DefaultDomain      = "acadport.app"

	minPasswordLength = 6
)

type Kind string

const (
	KindInvalidCredentials Kind = "invalid-credentials"
	KindAlreadyExists      Kind = "already-exists"
	KindInvalidInput       Kind = "invalid-input"
	KindOther              Kind = "other"
)

// AuthError is a rejected sign-in, sign-up or refresh. Message is safe to show.
type AuthError struct {
	Kind    Kind
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// Account is a signed-in principal with its tokens.
type Account struct {
	UID          string        `json:"uid"`
	Email        string        `json:"email"`
	DisplayName  string        `json:"displayName"`
	IDToken      string        `json:"idToken"`
	RefreshToken string        `json:"refreshToken"`
	ExpiresIn    time.Duration `json:"-"`
}

type SignUpRequest struct {
	Name     string
	UserID   string
	Password string
	Confirm  string
}

type Client interface {
	// SignIn authenticates the user id, mapped onto the account domain.
	SignIn(ctx context.Context, userID string, password string) (*Account, error)
	SignUp(ctx context.Context, req SignUpRequest) (*Account, error)
	// Refresh exchanges a refresh token for a fresh ID token.
	Refresh(ctx context.Context, refreshToken string) (*Account, error)
}

type Config struct {
	APIKey      string
	Domain      string
	IdentityURL string
	TokenURL    string
}

type client struct {
	http     *resty.Client
	apiKey   string
	domain   string
	identity string
	token    string
}

var _ Client = (*client)(nil)

func NewClient(http *resty.Client, cfg Config) Client {
	if cfg.Domain == "" {
		cfg.Domain = DefaultDomain
	}
	if cfg.IdentityURL == "" {
		cfg.IdentityURL = DefaultIdentityURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = DefaultTokenURL
	}
	return &client{
		http:     http,
		apiKey:   cfg.APIKey,
		domain:   cfg.Domain,
		identity: strings.TrimSuffix(cfg.IdentityURL, "/"),
		token:    strings.TrimSuffix(cfg.TokenURL, "/"),
	}
}

// Email maps a user id onto the account domain.
func Email(userID string, domain string) string {
	return strings.TrimSpace(userID) + "@" + domain
}

type passwordRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type profileRequest struct {
	IDToken           string `json:"idToken"`
	DisplayName       string `json:"displayName"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type accountResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

type tokenResponse struct {
	UserID       string `json:"user_id"`
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    string `json:"expires_in"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *client) SignIn(ctx context.Context, userID string, password string) (*Account, error) {
	if strings.TrimSpace(userID) == "" || password == "" {
		return nil, &AuthError{Kind: KindInvalidCredentials, Message: "user id and password are required"}
	}
	response := &accountResponse{}
	err := c.post(ctx, "accounts:signInWithPassword", passwordRequest{
		Email:             Email(userID, c.domain),
		Password:          password,
		ReturnSecureToken: true,
	}, response)
	if err != nil {
		return nil, err
	}
	return response.account(), nil
}

func (c *client) SignUp(ctx context.Context, req SignUpRequest) (*Account, error) {
	if req.Password != req.Confirm {
		return nil, &AuthError{Kind: KindInvalidInput, Message: "Passwords do not match!"}
	}
	if len(req.Password) < minPasswordLength {
		return nil, &AuthError{Kind: KindInvalidInput, Message: "Password must be at least 6 characters!"}
	}
	if strings.TrimSpace(req.UserID) == "" {
		return nil, &AuthError{Kind: KindInvalidInput, Message: "User ID is required!"}
	}

	created := &accountResponse{}
	err := c.post(ctx, "accounts:signUp", passwordRequest{
		Email:             Email(req.UserID, c.domain),
		Password:          req.Password,
		ReturnSecureToken: true,
	}, created)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	updated := &accountResponse{}
	err = c.post(ctx, "accounts:update", profileRequest{
		IDToken:           created.IDToken,
		DisplayName:       name,
		ReturnSecureToken: true,
	}, updated)
	if err != nil {
		slog.With("error", err.Error()).Error("failed to set display name", "uid", created.LocalID)
		return nil, err
	}

	account := created.account()
	account.DisplayName = name
	// accounts:update may rotate the tokens.
	if updated.IDToken != "" {
		account.IDToken = updated.IDToken
		account.RefreshToken = updated.RefreshToken
	}
	return account, nil
}

func (c *client) Refresh(ctx context.Context, refreshToken string) (*Account, error) {
	if refreshToken == "" {
		return nil, &AuthError{Kind: KindInvalidCredentials, Message: "refresh token is required"}
	}
	response := &tokenResponse{}
	responseError := &errorResponse{}
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetFormData(map[string]string{
			"grant_type":    "refresh_token",
			"refresh_token": refreshToken,
		}).
		SetResult(response).
		SetError(responseError).
		Post(c.token + "/v1/token")
	if err != nil {
		slog.With("error", err.Error()).Error("Error refreshing token")
		return nil, err
	}
	if resp.IsError() {
		return nil, toAuthError(resp.StatusCode(), responseError)
	}
	return &Account{
		UID:          response.UserID,
		IDToken:      response.IDToken,
		RefreshToken: response.RefreshToken,
		ExpiresIn:    seconds(response.ExpiresIn),
	}, nil
}

func (c *client) post(ctx context.Context, method string, body any, result any) error {
	responseError := &errorResponse{}
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(result).
		SetError(responseError).
		Post(fmt.Sprintf("%s/v1/%s", c.identity, method))
	if err != nil {
		slog.With("error", err.Error()).Error("Error calling identity toolkit", "method", method)
		return err
	}
	if resp.IsError() {
		return toAuthError(resp.StatusCode(), responseError)
	}
	return nil
}

func (r *accountResponse) account() *Account {
	return &Account{
		UID:          r.LocalID,
		Email:        r.Email,
		DisplayName:  r.DisplayName,
		IDToken:      r.IDToken,
		RefreshToken: r.RefreshToken,
		ExpiresIn:    seconds(r.ExpiresIn),
	}
}

func seconds(s string) time.Duration {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return time.Duration(n) * time.Second
}

// toAuthError maps an identity toolkit error code, such as "EMAIL_EXISTS" or
// "WEAK_PASSWORD : Password should be at least 6 characters", to an AuthError.
func toAuthError(status int, body *errorResponse) *AuthError {
	message := body.Error.Message
	code, _, _ := strings.Cut(message, " ")
	switch code {
	case "EMAIL_EXISTS":
		return &AuthError{Kind: KindAlreadyExists, Message: "User ID already exists!"}
	case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS", "USER_DISABLED",
		"INVALID_REFRESH_TOKEN", "TOKEN_EXPIRED", "USER_NOT_FOUND", "INVALID_ID_TOKEN":
		return &AuthError{Kind: KindInvalidCredentials, Message: message}
	case "WEAK_PASSWORD", "INVALID_EMAIL", "MISSING_PASSWORD", "INVALID_DISPLAY_NAME":
		return &AuthError{Kind: KindInvalidInput, Message: message}
	}
	if message == "" {
		message = fmt.Sprintf("identity request failed with status %d", status)
	}
	return &AuthError{Kind: KindOther, Message: message}
}
