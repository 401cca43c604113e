package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/example/taskboard/modules/auth"
	"github.com/gofiber/fiber/v2"
)

// mockAuthPort implements auth.AuthPort with injectable behavior.
type mockAuthPort struct {
	loginFunc    func(ctx context.Context, username, password string) (string, error)
	validateFunc func(ctx context.Context, token string) (string, error)
}

func (m *mockAuthPort) Login(ctx context.Context, username, password string) (string, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, username, password)
	}
	return "", auth.ErrInvalidCredentials
}

func (m *mockAuthPort) ValidateToken(ctx context.Context, token string) (string, error) {
	if m.validateFunc != nil {
		return m.validateFunc(ctx, token)
	}
	return "", auth.ErrInvalidToken
}

func newMiddlewareTestApp(authPort auth.AuthPort) *fiber.App {
	app := fiber.New()
	app.Use(AuthMiddleware(authPort))
	app.Get("/protected", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user": c.Locals(UserContextKey)})
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	authPort := &mockAuthPort{
		validateFunc: func(_ context.Context, token string) (string, error) {
			if token == "valid-token" {
				return "admin", nil
			}
			return "", auth.ErrInvalidToken
		},
	}
	app := newMiddlewareTestApp(authPort)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{
			name:       "valid token",
			authHeader: "Bearer valid-token",
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			authHeader: "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty token",
			authHeader: "Bearer ",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer bad-token",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestAuthMiddleware_StoresIdentity(t *testing.T) {
	authPort := &mockAuthPort{
		validateFunc: func(_ context.Context, token string) (string, error) {
			return "admin", nil
		},
	}

	app := fiber.New()
	app.Use(AuthMiddleware(authPort))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.SendString(fmt.Sprintf("%v", c.Locals(UserContextKey)))
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer anything")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	body := make([]byte, 64)
	n, _ := resp.Body.Read(body)
	if got := string(body[:n]); got != "admin" {
		t.Errorf("stored identity = %q, want %q", got, "admin")
	}
}
