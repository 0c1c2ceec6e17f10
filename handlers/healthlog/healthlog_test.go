package healthlog

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/health-platform-api/utils/validation"
)

// testApp mounts the handler behind a stub auth context. The nil DB is
// safe because rejected requests never reach it.
func testApp() *fiber.App {
	h := NewHealthLogHandler(nil)
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

func TestCreateRejectsOutOfRangeVitals(t *testing.T) {
	app := testApp()

	tests := []struct {
		name string
		body string
	}{
		{"heart rate too high", `{"heart_rate": 1000}`},
		{"heart rate too low", `{"heart_rate": 5}`},
		{"systolic too high", `{"blood_pressure_systolic": 400}`},
		{"negative blood sugar", `{"blood_sugar": -10}`},
		{"weight too high", `{"weight": 600}`},
		{"temperature too low", `{"temperature": 20}`},
		{"oxygen saturation too low", `{"oxygen_saturation": 30}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if status := postJSON(t, app, tt.body); status != fiber.StatusUnprocessableEntity {
				t.Errorf("expected 422 for %s, got %d", tt.name, status)
			}
		})
	}
}

func TestCreateRejectsEmptyEntry(t *testing.T) {
	app := testApp()
	if status := postJSON(t, app, `{"notes": "felt fine"}`); status != fiber.StatusBadRequest {
		t.Errorf("expected 400 for entry without measurements, got %d", status)
	}
}

func TestCreateRequestBounds(t *testing.T) {
	v := validation.NewValidator()

	hr := 72
	weight := 70.5
	spo2 := 98
	valid := CreateRequest{HeartRate: &hr, Weight: &weight, OxygenSaturation: &spo2}
	if err := v.ValidateStruct(valid); err != nil {
		t.Errorf("expected in-range vitals to pass validation, got %v", err)
	}

	badHR := 1000
	if err := v.ValidateStruct(CreateRequest{HeartRate: &badHR}); err == nil {
		t.Error("expected heart rate 1000 to fail validation")
	}
}
