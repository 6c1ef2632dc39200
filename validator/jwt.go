package validator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"acadport/services/session"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/gin-gonic/gin"
	"github.com/lestrrat-go/jwx/jwk"
	"github.com/lestrrat-go/jwx/jwt"
	middleware "github.com/oapi-codegen/gin-middleware"
)

type key string

const accessInfo key = "access_info"

// GoogleKeysURL serves the public keys that sign Firebase ID tokens.
const GoogleKeysURL = "https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com"

// Access is what the authenticator leaves on the request context.
type Access struct {
	Principal session.Principal
	IDToken   string
}

// FromContext returns the access info of an authenticated request. ctx is the
// *gin.Context of the request.
func FromContext(ctx context.Context) (*Access, bool) {
	t, ok := ctx.Value(string(accessInfo)).(*Access)
	return t, ok
}

// SetAccess marks the request as authenticated.
func SetAccess(c *gin.Context, access *Access) {
	c.Set(string(accessInfo), access)
}

var (
	ErrNoAuthHeader      = errors.New("Authorization header is missing")
	ErrInvalidAuthHeader = errors.New("Authorization header is malformed")
	ErrClaimsInvalid     = errors.New("Provided claims do not identify a user")
)

// GetJWSFromRequest extracts a JWS string from an Authorization: Bearer <jws> header
func GetJWSFromRequest(req *http.Request) (string, error) {
	authHdr := req.Header.Get("Authorization")
	// Check for the Authorization header.
	if authHdr == "" {
		return "", ErrNoAuthHeader
	}
	// We expect a header value of the form "Bearer <token>", with 1 space after
	// Bearer, per RFC 6750.
	prefix := "Bearer "
	if !strings.HasPrefix(authHdr, prefix) {
		return "", ErrInvalidAuthHeader
	}
	jws := strings.TrimPrefix(authHdr, prefix)
	if jws == "" {
		return "", ErrInvalidAuthHeader
	}
	return jws, nil
}

type Verifier interface {
	// Verify checks the signature and claims of a Firebase ID token.
	Verify(ctx context.Context, idToken string) (session.Principal, error)
}

type firebaseVerifier struct {
	keys     *jwk.AutoRefresh
	keysURL  string
	audience string
	issuer   string
}

var _ Verifier = (*firebaseVerifier)(nil)

// NewVerifier verifies ID tokens issued for projectID. The key set is fetched
// lazily and refreshed in the background for as long as ctx lives.
func NewVerifier(ctx context.Context, projectID string, keysURL string) Verifier {
	if keysURL == "" {
		keysURL = GoogleKeysURL
	}
	keys := jwk.NewAutoRefresh(ctx)
	keys.Configure(keysURL, jwk.WithMinRefreshInterval(15*time.Minute))
	return &firebaseVerifier{
		keys:     keys,
		keysURL:  keysURL,
		audience: projectID,
		issuer:   "https://securetoken.google.com/" + projectID,
	}
}

func (v *firebaseVerifier) Verify(ctx context.Context, idToken string) (session.Principal, error) {
	set, err := v.keys.Fetch(ctx, v.keysURL)
	if err != nil {
		slog.With("error", err.Error()).Error("failed to fetch token signing keys")
		return session.Principal{}, fmt.Errorf("fetching signing keys: %w", err)
	}
	token, err := jwt.ParseString(idToken, jwt.WithKeySet(set))
	if err != nil {
		return session.Principal{}, fmt.Errorf("parsing id token: %w", err)
	}
	err = jwt.Validate(token,
		jwt.WithAudience(v.audience),
		jwt.WithIssuer(v.issuer),
		jwt.WithAcceptableSkew(time.Minute),
	)
	if err != nil {
		return session.Principal{}, fmt.Errorf("validating id token: %w", err)
	}
	return PrincipalFromToken(token)
}

// PrincipalFromToken reads the user from verified Firebase claims. IssuedAt is
// the sign-in time (auth_time), which refreshed tokens keep; iat when absent.
func PrincipalFromToken(token jwt.Token) (session.Principal, error) {
	if token.Subject() == "" {
		return session.Principal{}, ErrClaimsInvalid
	}
	p := session.Principal{UID: token.Subject(), IssuedAt: token.IssuedAt()}
	claims := token.PrivateClaims()
	if authTime, ok := claims["auth_time"].(float64); ok {
		p.IssuedAt = time.Unix(int64(authTime), 0)
	}
	if email, ok := claims["email"].(string); ok {
		p.Email = email
	}
	if name, ok := claims["name"].(string); ok {
		p.DisplayName = name
	}
	return p, nil
}

// NewAuthenticator returns the openapi3filter authentication func for the
// bearerAuth scheme. Verified requests carry an *Access on their gin context.
func NewAuthenticator(v Verifier) openapi3filter.AuthenticationFunc {
	return func(ctx context.Context, input *openapi3filter.AuthenticationInput) error {
		// Our security scheme is named bearerAuth, ensure this is the case
		if input.SecuritySchemeName != "bearerAuth" {
			return fmt.Errorf("security scheme %s != 'bearerAuth'", input.SecuritySchemeName)
		}

		jws, err := GetJWSFromRequest(input.RequestValidationInput.Request)
		if err != nil {
			return fmt.Errorf("getting jws: %w", err)
		}
		p, err := v.Verify(ctx, jws)
		if err != nil {
			return err
		}

		SetAccess(middleware.GetGinContext(ctx), &Access{Principal: p, IDToken: jws})
		return nil
	}
}
