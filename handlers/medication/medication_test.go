package medication

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func testApp() *fiber.App {
	h := NewMedicationHandler(nil)
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

func TestCreateRejectsInvalidRequests(t *testing.T) {
	app := testApp()

	if status := postJSON(t, app, `{"dosage": "500mg"}`); status != fiber.StatusUnprocessableEntity {
		t.Errorf("expected 422 for missing name, got %d", status)
	}

	longName := strings.Repeat("x", 201)
	if status := postJSON(t, app, `{"name": "`+longName+`"}`); status != fiber.StatusUnprocessableEntity {
		t.Errorf("expected 422 for 201-char name, got %d", status)
	}

	if status := postJSON(t, app, `{"name": "Metformin", "reminder_times": ["25:00"]}`); status != fiber.StatusBadRequest {
		t.Errorf("expected 400 for invalid reminder time, got %d", status)
	}
}

func TestValidateReminderTimes(t *testing.T) {
	tests := []struct {
		times []string
		ok    bool
	}{
		{nil, true},
		{[]string{"08:00", "20:30"}, true},
		{[]string{"23:59"}, true},
		{[]string{"24:00"}, false},
		{[]string{"8:00"}, false},
		{[]string{"08:60"}, false},
		{[]string{"morning"}, false},
	}

	for _, tt := range tests {
		req := MedicationRequest{Name: "Metformin", ReminderTimes: tt.times}
		msg := req.validateReminderTimes()
		if tt.ok && msg != "" {
			t.Errorf("expected %v to be accepted, got %q", tt.times, msg)
		}
		if !tt.ok && msg == "" {
			t.Errorf("expected %v to be rejected", tt.times)
		}
	}
}
