package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/renewables/energy-dashboard/internal/core/domain"
	"github.com/renewables/energy-dashboard/internal/core/ports"
)

type stubVerifier struct {
	token  string
	claims *ports.Claims
}

func (s stubVerifier) Verify(token string) (*ports.Claims, error) {
	if token != s.token {
		return nil, domain.ErrInvalidToken
	}
	return s.claims, nil
}

var aliceVerifier = stubVerifier{
	token:  "good-token",
	claims: &ports.Claims{UserID: "u1", Email: "alice@example.com", Name: "Alice", Role: domain.RoleAdmin},
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(aliceVerifier)(func(c echo.Context) error {
		called = true
		if c.Get(KeyUserID) != "u1" {
			t.Fatalf("user id not set")
		}
		if c.Get(KeyRole) != domain.RoleAdmin {
			t.Fatalf("role not set")
		}
		if c.Get(KeyEmail) != "alice@example.com" {
			t.Fatalf("email not set")
		}
		if claims, ok := c.Get(KeyClaims).(*ports.Claims); !ok || claims.Name != "Alice" {
			t.Fatalf("claims not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_LowercaseScheme(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer good-token")
	c := e.NewContext(req, httptest.NewRecorder())

	handler := Auth(aliceVerifier)(func(c echo.Context) error { return nil })
	if err := handler(c); err != nil {
		t.Fatalf("expected lowercase scheme to be accepted, got %v", err)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Token abc"},
		{"empty token", "Bearer "},
		{"unknown token", "Bearer not-a-token"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			c := e.NewContext(req, httptest.NewRecorder())

			handler := Auth(aliceVerifier)(func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})

			err := handler(c)
			var he *echo.HTTPError
			switch {
			case errors.As(err, &he):
				if he.Code != http.StatusUnauthorized {
					t.Fatalf("expected 401, got %d", he.Code)
				}
			case errors.Is(err, domain.ErrInvalidToken):
			default:
				t.Fatalf("expected an unauthorized error, got %v", err)
			}
		})
	}
}
