package helpers

import (
	"crypto/rand"
	"encoding/hex"
	"math"
	"strings"
	"time"
)

// CalculateBMI computes body mass index from weight in kilograms and height
// in centimeters, rounded to 2 decimal places. Returns 0 when either input
// is non-positive.
func CalculateBMI(weightKg, heightCm float64) float64 {
	if weightKg <= 0 || heightCm <= 0 {
		return 0
	}

	heightM := heightCm / 100
	bmi := weightKg / (heightM * heightM)
	return math.Round(bmi*100) / 100
}

// CalculateAge returns completed years between dateOfBirth and now,
// accounting for a birthday that has not yet occurred this year.
func CalculateAge(dateOfBirth, now time.Time) int {
	if dateOfBirth.IsZero() || dateOfBirth.After(now) {
		return 0
	}

	age := now.Year() - dateOfBirth.Year()

	// Birthday not reached yet this year
	if now.Month() < dateOfBirth.Month() ||
		(now.Month() == dateOfBirth.Month() && now.Day() < dateOfBirth.Day()) {
		age--
	}

	if age < 0 {
		return 0
	}
	return age
}

// GenerateRandomToken returns a hex-encoded random token of byteLen bytes
func GenerateRandomToken(byteLen int) (string, error) {
	if byteLen <= 0 {
		byteLen = 32
	}

	buf := make([]byte, byteLen)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// NormalizeEmail lowercases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
