package identity

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/net/context"
)

type fakeToolkit struct {
	mu       sync.Mutex
	calls    []string
	bodies   []map[string]any
	handlers map[string]func(w http.ResponseWriter, body map[string]any)
}

func (f *fakeToolkit) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{}
	if r.Header.Get("Content-Type") == "application/json" {
		_ = json.NewDecoder(r.Body).Decode(&body)
	} else {
		_ = r.ParseForm()
		for k := range r.PostForm {
			body[k] = r.PostForm.Get(k)
		}
	}
	body["key"] = r.URL.Query().Get("key")

	f.mu.Lock()
	f.calls = append(f.calls, r.URL.Path)
	f.bodies = append(f.bodies, body)
	h := f.handlers[r.URL.Path]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if h == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	h(w, body)
}

func reply(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func fail(message string) func(w http.ResponseWriter, body map[string]any) {
	return func(w http.ResponseWriter, body map[string]any) {
		reply(w, http.StatusBadRequest, map[string]any{
			"error": map[string]any{"code": 400, "message": message},
		})
	}
}

func newTestClient(t *testing.T, f *fakeToolkit) Client {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return NewClient(resty.New(), Config{
		APIKey:      "test-key",
		IdentityURL: srv.URL,
		TokenURL:    srv.URL + "/",
	})
}

func TestSignIn(t *testing.T) {
	f := &fakeToolkit{handlers: map[string]func(http.ResponseWriter, map[string]any){
		"/v1/accounts:signInWithPassword": func(w http.ResponseWriter, body map[string]any) {
			reply(w, http.StatusOK, map[string]any{
				"localId": "uid-1", "email": body["email"], "displayName": "Ada",
				"idToken": "id-token", "refreshToken": "refresh-token", "expiresIn": "3600",
			})
		},
	}}
	c := newTestClient(t, f)

	account, err := c.SignIn(context.Background(), " ada ", "secret1")
	if err != nil {
		t.Fatal(err)
	}
	want := &Account{UID: "uid-1", Email: "ada@acadport.app", DisplayName: "Ada", IDToken: "id-token", RefreshToken: "refresh-token", ExpiresIn: time.Hour}
	if *account != *want {
		t.Errorf("account = %+v, want %+v", account, want)
	}
	if f.bodies[0]["key"] != "test-key" || f.bodies[0]["returnSecureToken"] != true {
		t.Errorf("request = %+v", f.bodies[0])
	}
}

func TestSignInRejected(t *testing.T) {
	tests := []struct {
		message string
		kind    Kind
	}{
		{"INVALID_LOGIN_CREDENTIALS", KindInvalidCredentials},
		{"INVALID_PASSWORD", KindInvalidCredentials},
		{"TOO_MANY_ATTEMPTS_TRY_LATER : Access disabled", KindOther},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			c := newTestClient(t, &fakeToolkit{handlers: map[string]func(http.ResponseWriter, map[string]any){
				"/v1/accounts:signInWithPassword": fail(tt.message),
			}})
			_, err := c.SignIn(context.Background(), "ada", "wrong-password")
			var authErr *AuthError
			if !errors.As(err, &authErr) {
				t.Fatalf("SignIn() error = %v", err)
			}
			if authErr.Kind != tt.kind || authErr.Message != tt.message {
				t.Errorf("error = %+v", authErr)
			}
		})
	}
}

func TestSignUp(t *testing.T) {
	f := &fakeToolkit{handlers: map[string]func(http.ResponseWriter, map[string]any){
		"/v1/accounts:signUp": func(w http.ResponseWriter, body map[string]any) {
			reply(w, http.StatusOK, map[string]any{
				"localId": "uid-2", "email": body["email"], "idToken": "first", "refreshToken": "r1", "expiresIn": "3600",
			})
		},
		"/v1/accounts:update": func(w http.ResponseWriter, body map[string]any) {
			reply(w, http.StatusOK, map[string]any{
				"localId": "uid-2", "displayName": body["displayName"], "idToken": "second", "refreshToken": "r2",
			})
		},
	}}
	c := newTestClient(t, f)

	account, err := c.SignUp(context.Background(), SignUpRequest{Name: " Grace ", UserID: "grace", Password: "secret1", Confirm: "secret1"})
	if err != nil {
		t.Fatal(err)
	}
	if account.UID != "uid-2" || account.DisplayName != "Grace" || account.IDToken != "second" || account.RefreshToken != "r2" {
		t.Errorf("account = %+v", account)
	}
	if len(f.calls) != 2 || f.bodies[1]["idToken"] != "first" {
		t.Errorf("calls = %v, bodies = %+v", f.calls, f.bodies)
	}
}

func TestSignUpRejected(t *testing.T) {
	tests := []struct {
		name    string
		req     SignUpRequest
		kind    Kind
		message string
		calls   int
	}{
		{"mismatch", SignUpRequest{UserID: "g", Password: "secret1", Confirm: "secret2"}, KindInvalidInput, "Passwords do not match!", 0},
		{"short", SignUpRequest{UserID: "g", Password: "abc", Confirm: "abc"}, KindInvalidInput, "Password must be at least 6 characters!", 0},
		{"taken", SignUpRequest{UserID: "g", Password: "secret1", Confirm: "secret1"}, KindAlreadyExists, "User ID already exists!", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeToolkit{handlers: map[string]func(http.ResponseWriter, map[string]any){
				"/v1/accounts:signUp": fail("EMAIL_EXISTS"),
			}}
			c := newTestClient(t, f)
			_, err := c.SignUp(context.Background(), tt.req)
			var authErr *AuthError
			if !errors.As(err, &authErr) || authErr.Kind != tt.kind || authErr.Message != tt.message {
				t.Errorf("SignUp() error = %v", err)
			}
			if len(f.calls) != tt.calls {
				t.Errorf("calls = %v", f.calls)
			}
		})
	}
}

func TestRefresh(t *testing.T) {
	f := &fakeToolkit{handlers: map[string]func(http.ResponseWriter, map[string]any){
		"/v1/token": func(w http.ResponseWriter, body map[string]any) {
			if body["grant_type"] != "refresh_token" || body["refresh_token"] != "r1" {
				fail("INVALID_REFRESH_TOKEN")(w, body)
				return
			}
			reply(w, http.StatusOK, map[string]any{
				"user_id": "uid-1", "id_token": "fresh", "refresh_token": "r2", "expires_in": "3600",
			})
		},
	}}
	c := newTestClient(t, f)

	account, err := c.Refresh(context.Background(), "r1")
	if err != nil {
		t.Fatal(err)
	}
	if account.UID != "uid-1" || account.IDToken != "fresh" || account.ExpiresIn != time.Hour {
		t.Errorf("account = %+v", account)
	}

	_, err = c.Refresh(context.Background(), "stale")
	var authErr *AuthError
	if !errors.As(err, &authErr) || authErr.Kind != KindInvalidCredentials {
		t.Errorf("Refresh(stale) error = %v", err)
	}
}
