package mlserver

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestPredictSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/predict" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		var req PredictRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}

		decoded, err := base64.StdEncoding.DecodeString(req.Image)
		if err != nil {
			t.Errorf("image is not valid base64: %v", err)
		}
		if string(decoded) != "fake-image-bytes" {
			t.Errorf("unexpected image payload %q", decoded)
		}
		if req.MimeType != "image/jpeg" {
			t.Errorf("mimetype = %s", req.MimeType)
		}

		json.NewEncoder(w).Encode(PredictResponse{
			Prediction: "Stone",
			Confidence: 0.91,
			Probabilities: map[string]float64{
				"Normal": 0.05,
				"Stone":  0.91,
				"Cyst":   0.03,
				"Tumor":  0.01,
			},
			Model: "kidney-v2",
		})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	resp, err := client.Predict(context.Background(), []byte("fake-image-bytes"), "image/jpeg", "scan.jpg")
	if err != nil {
		t.Fatalf("Predict returned error: %v", err)
	}

	if resp.Prediction != "Stone" {
		t.Errorf("prediction = %s, want Stone", resp.Prediction)
	}
	if resp.Confidence != 0.91 {
		t.Errorf("confidence = %v, want 0.91", resp.Confidence)
	}
	if len(resp.Probabilities) != 4 {
		t.Errorf("expected 4 probability entries, got %d", len(resp.Probabilities))
	}
}

func TestPredictConnectionRefused(t *testing.T) {
	// Bind a listener, then close it so the port refuses connections
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(Config{BaseURL: url})
	_, err := client.Predict(context.Background(), []byte("x"), "image/jpeg", "scan.jpg")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestPredictTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, PredictTimeout: 50 * time.Millisecond})
	_, err := client.Predict(context.Background(), []byte("x"), "image/jpeg", "scan.jpg")
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("expected ErrTimeout, got %v", err)
	}
}

func TestPredictAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"error": "unsupported image format"})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	_, err := client.Predict(context.Background(), []byte("x"), "image/bmp", "scan.bmp")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", apiErr.StatusCode)
	}
	if apiErr.Message != "unsupported image format" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestPredictBatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/predict/batch" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(BatchPredictResponse{
			Results: []PredictResponse{
				{Prediction: "Normal", Confidence: 0.98},
				{Prediction: "Cyst", Confidence: 0.77},
			},
		})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	resp, err := client.PredictBatch(context.Background(), []PredictRequest{
		{Image: "aGk=", MimeType: "image/jpeg", Filename: "a.jpg"},
		{Image: "aGk=", MimeType: "image/jpeg", Filename: "b.jpg"},
	})
	if err != nil {
		t.Fatalf("PredictBatch returned error: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(resp.Results))
	}
	if resp.Results[1].Prediction != "Cyst" {
		t.Errorf("second prediction = %s", resp.Results[1].Prediction)
	}
}
