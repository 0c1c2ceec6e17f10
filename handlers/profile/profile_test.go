package profile

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func testApp() *fiber.App {
	h := NewProfileHandler(nil, nil)
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(1))
		return c.Next()
	}, h.Create)
	return app
}

func postJSON(t *testing.T, app *fiber.App, body string) int {
	t.Helper()
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestCreateRejectsInvalidProfiles(t *testing.T) {
	app := testApp()

	tests := []struct {
		name string
		body string
	}{
		{"missing first name", `{"height": 170}`},
		{"height too high", `{"first_name": "Asha", "height": 5000}`},
		{"negative weight", `{"first_name": "Asha", "weight": -5}`},
		{"weight too high", `{"first_name": "Asha", "weight": 600}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if status := postJSON(t, app, tt.body); status != fiber.StatusUnprocessableEntity {
				t.Errorf("expected 422 for %s, got %d", tt.name, status)
			}
		})
	}
}
