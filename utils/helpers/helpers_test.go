package helpers

import (
	"testing"
	"time"
)

func TestCalculateBMI(t *testing.T) {
	tests := []struct {
		name     string
		weightKg float64
		heightCm float64
		want     float64
	}{
		{"normal weight", 70, 175, 22.86},
		{"obese", 98, 175, 32.0},
		{"underweight", 45, 170, 15.57},
		{"zero weight", 0, 175, 0},
		{"zero height", 70, 0, 0},
		{"negative height", 70, -175, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateBMI(tt.weightKg, tt.heightCm)
			if got != tt.want {
				t.Errorf("CalculateBMI(%v, %v) = %v, want %v", tt.weightKg, tt.heightCm, got, tt.want)
			}
		})
	}
}

func TestCalculateAge(t *testing.T) {
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		dob  time.Time
		want int
	}{
		{"birthday passed this year", time.Date(1990, time.March, 10, 0, 0, 0, 0, time.UTC), 36},
		{"birthday today", time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC), 36},
		{"birthday not yet this year", time.Date(1990, time.November, 2, 0, 0, 0, 0, time.UTC), 35},
		{"same month earlier day", time.Date(1990, time.June, 10, 0, 0, 0, 0, time.UTC), 36},
		{"same month later day", time.Date(1990, time.June, 20, 0, 0, 0, 0, time.UTC), 35},
		{"zero date of birth", time.Time{}, 0},
		{"future date of birth", time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateAge(tt.dob, now)
			if got != tt.want {
				t.Errorf("CalculateAge(%v) = %d, want %d", tt.dob, got, tt.want)
			}
		})
	}
}

func TestGenerateRandomToken(t *testing.T) {
	token, err := GenerateRandomToken(32)
	if err != nil {
		t.Fatalf("GenerateRandomToken returned error: %v", err)
	}
	if len(token) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(token))
	}

	other, err := GenerateRandomToken(32)
	if err != nil {
		t.Fatalf("GenerateRandomToken returned error: %v", err)
	}
	if token == other {
		t.Error("expected two generated tokens to differ")
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  User@Example.COM "); got != "user@example.com" {
		t.Errorf("NormalizeEmail = %q", got)
	}
}
