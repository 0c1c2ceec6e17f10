package middleware

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/health-platform-api/utils/auth"
)

// optionalTestApp mounts Optional() in front of a handler that reports the
// auth context. The nil DB is safe: every case here falls through before
// the blacklist or user lookup.
func optionalTestApp() *fiber.App {
	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret:        "test-secret",
		Expiry:        time.Hour,
		RefreshExpiry: time.Hour,
		Issuer:        "test",
	})
	m := NewAuthMiddleware(jwtManager, nil)

	app := fiber.New()
	app.Get("/", m.Optional(), func(c *fiber.Ctx) error {
		_, ok := GetUserID(c)
		return c.JSON(fiber.Map{"authenticated": ok})
	})
	return app
}

func getAuthenticated(t *testing.T, app *fiber.App, authHeader string) bool {
	t.Helper()
	req := httptest.NewRequest("GET", "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}

	var parsed struct {
		Authenticated bool `json:"authenticated"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		t.Fatalf("failed to parse body %q: %v", body, err)
	}
	return parsed.Authenticated
}

func TestOptionalAllowsAnonymous(t *testing.T) {
	app := optionalTestApp()
	if getAuthenticated(t, app, "") {
		t.Error("request without a token should pass through unauthenticated")
	}
}

func TestOptionalIgnoresMalformedHeader(t *testing.T) {
	app := optionalTestApp()
	if getAuthenticated(t, app, "Token abc") {
		t.Error("malformed authorization header should pass through unauthenticated")
	}
}

func TestOptionalIgnoresInvalidToken(t *testing.T) {
	app := optionalTestApp()
	if getAuthenticated(t, app, "Bearer not-a-real-token") {
		t.Error("invalid token should pass through unauthenticated")
	}
}
