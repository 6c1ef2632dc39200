package validator

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"acadport/services/session"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/gin-gonic/gin"
	"github.com/lestrrat-go/jwx/jwt"
	middleware "github.com/oapi-codegen/gin-middleware"
)

type verifierFunc func(ctx context.Context, idToken string) (session.Principal, error)

func (f verifierFunc) Verify(ctx context.Context, idToken string) (session.Principal, error) {
	return f(ctx, idToken)
}

func TestGetJWSFromRequest(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr error
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", nil},
		{"", "", ErrNoAuthHeader},
		{"Basic dXNlcjpwYXNz", "", ErrInvalidAuthHeader},
		{"Bearer ", "", ErrInvalidAuthHeader},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/records", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		got, err := GetJWSFromRequest(req)
		if got != tt.want || !errors.Is(err, tt.wantErr) {
			t.Errorf("GetJWSFromRequest(%q) = %q, %v", tt.header, got, err)
		}
	}
}

func TestPrincipalFromToken(t *testing.T) {
	token := jwt.New()
	if _, err := PrincipalFromToken(token); !errors.Is(err, ErrClaimsInvalid) {
		t.Errorf("token without subject: %v", err)
	}

	_ = token.Set(jwt.SubjectKey, "uid-1")
	_ = token.Set("email", "ada@acadport.app")
	_ = token.Set("name", "Ada")
	got, err := PrincipalFromToken(token)
	if err != nil {
		t.Fatal(err)
	}
	want := session.Principal{UID: "uid-1", Email: "ada@acadport.app", DisplayName: "Ada"}
	if got != want {
		t.Errorf("principal = %+v, want %+v", got, want)
	}

	issued := time.Date(2025, 10, 19, 12, 0, 0, 0, time.UTC)
	_ = token.Set(jwt.IssuedAtKey, issued)
	if got, _ := PrincipalFromToken(token); !got.IssuedAt.Equal(issued) {
		t.Errorf("IssuedAt = %v, want iat %v", got.IssuedAt, issued)
	}

	signedIn := issued.Add(-time.Hour)
	_ = token.Set("auth_time", float64(signedIn.Unix()))
	if got, _ := PrincipalFromToken(token); !got.IssuedAt.Equal(signedIn) {
		t.Errorf("IssuedAt = %v, want auth_time %v", got.IssuedAt, signedIn)
	}
}

func authInput(scheme string, header string) *openapi3filter.AuthenticationInput {
	req := httptest.NewRequest(http.MethodGet, "/records", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	return &openapi3filter.AuthenticationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{Request: req},
		SecuritySchemeName:     scheme,
	}
}

func TestAuthenticator(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rejected := errors.New("token expired")
	auth := NewAuthenticator(verifierFunc(func(ctx context.Context, idToken string) (session.Principal, error) {
		if idToken != "good" {
			return session.Principal{}, rejected
		}
		return session.Principal{UID: "uid-1"}, nil
	}))

	tests := []struct {
		name    string
		scheme  string
		header  string
		wantErr bool
	}{
		{"ok", "bearerAuth", "Bearer good", false},
		{"other scheme", "apiKey", "Bearer good", true},
		{"missing header", "bearerAuth", "", true},
		{"rejected token", "bearerAuth", "Bearer bad", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gCtx, _ := gin.CreateTestContext(httptest.NewRecorder())
			ctx := context.WithValue(context.Background(), middleware.GinContextKey, gCtx)

			err := auth(ctx, authInput(tt.scheme, tt.header))
			if (err != nil) != tt.wantErr {
				t.Fatalf("auth() error = %v", err)
			}
			access, ok := FromContext(gCtx)
			if ok == tt.wantErr {
				t.Fatalf("FromContext() ok = %v", ok)
			}
			if ok && (access.Principal.UID != "uid-1" || access.IDToken != "good") {
				t.Errorf("access = %+v", access)
			}
		})
	}
}
