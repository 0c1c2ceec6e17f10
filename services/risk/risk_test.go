package risk

import (
	"math"
	"testing"

	"github.com/sahilchouksey/health-platform-api/model"
)

func TestAssessWorkedExample(t *testing.T) {
	// Obese BMI (+15), age 50 (+10), diabetes (+7.5), smoking (+10) = 42.5
	profile := &model.Profile{Age: 50, BMI: 32}
	history := &model.MedicalHistory{
		Diabetes:      true,
		Smoking:       true,
		ActivityLevel: model.ActivityModerate,
	}

	got := Assess(profile, history, nil)
	if got.Score != 43 {
		t.Errorf("score = %d, want 43", got.Score)
	}
	if got.Level != model.RiskModerate {
		t.Errorf("level = %s, want %s", got.Level, model.RiskModerate)
	}
	if len(got.Factors) != 4 {
		t.Errorf("expected 4 factors, got %d", len(got.Factors))
	}
}

func TestAssessMissingInputs(t *testing.T) {
	got := Assess(nil, nil, nil)
	if got.Score != 0 {
		t.Errorf("empty assessment score = %d, want 0", got.Score)
	}
	if got.Level != model.RiskLow {
		t.Errorf("empty assessment level = %s, want %s", got.Level, model.RiskLow)
	}
}

func TestAssessClampsAt100(t *testing.T) {
	profile := &model.Profile{Age: 70, BMI: 40}
	history := &model.MedicalHistory{
		Diabetes:            true,
		Hypertension:        true,
		HeartCondition:      true,
		Thyroid:             true,
		Smoking:             true,
		Alcohol:             true,
		ActivityLevel:       model.ActivitySedentary,
		FamilyDiabetes:      true,
		FamilyHypertension:  true,
		FamilyHeartDisease:  true,
		FamilyCancer:        true,
		FamilyKidneyDisease: true,
	}
	detections := []model.DetectionHistory{
		{Prediction: "Tumor", Confidence: 0.95},
		{Prediction: "Stone", Confidence: 0.9},
		{Prediction: "Cyst", Confidence: 0.85},
		{Prediction: "Tumor", Confidence: 0.99},
	}

	got := Assess(profile, history, detections)
	if got.Score != 100 {
		t.Errorf("score = %d, want 100", got.Score)
	}
	if got.Level != model.RiskCritical {
		t.Errorf("level = %s, want %s", got.Level, model.RiskCritical)
	}
}

func TestAssessHealthyBMIIsProtective(t *testing.T) {
	base := Assess(nil, &model.MedicalHistory{Smoking: true, ActivityLevel: model.ActivityActive}, nil)
	withHealthy := Assess(&model.Profile{BMI: 22}, &model.MedicalHistory{Smoking: true, ActivityLevel: model.ActivityActive}, nil)

	if withHealthy.Score >= base.Score {
		t.Errorf("healthy BMI should lower score: base=%d withHealthy=%d", base.Score, withHealthy.Score)
	}
	if withHealthy.Score < 0 {
		t.Errorf("score must not go below 0, got %d", withHealthy.Score)
	}
}

func TestAssessMonotonicInConditions(t *testing.T) {
	profile := &model.Profile{Age: 50, BMI: 28}
	fewer := Assess(profile, &model.MedicalHistory{Diabetes: true, ActivityLevel: model.ActivityModerate}, nil)
	more := Assess(profile, &model.MedicalHistory{Diabetes: true, Hypertension: true, ActivityLevel: model.ActivityModerate}, nil)

	if more.Score <= fewer.Score {
		t.Errorf("adding a condition must not lower the score: %d -> %d", fewer.Score, more.Score)
	}
}

func TestAssessIgnoresLowConfidenceDetections(t *testing.T) {
	detections := []model.DetectionHistory{
		{Prediction: "Tumor", Confidence: 0.5},
		{Prediction: "Normal", Confidence: 0.99},
	}
	got := Assess(nil, nil, detections)
	if got.Score != 0 {
		t.Errorf("low-confidence and normal detections should not count, score = %d", got.Score)
	}
}

func TestLevelFromScoreTotality(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0, model.RiskLow},
		{24.9, model.RiskLow},
		{25, model.RiskModerate},
		{49.9, model.RiskModerate},
		{50, model.RiskHigh},
		{74.9, model.RiskHigh},
		{75, model.RiskCritical},
		{100, model.RiskCritical},
	}

	for _, tt := range tests {
		if got := LevelFromScore(tt.score); got != tt.want {
			t.Errorf("LevelFromScore(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestScoreDetection(t *testing.T) {
	tests := []struct {
		prediction string
		confidence float64
		wantLevel  string
		wantScore  float64
	}{
		{"Tumor", 1.0, model.RiskCritical, 100},
		{"Tumor", 0.5, model.RiskCritical, 92.5},
		{"Stone", 0.8, model.RiskHigh, 76},
		{"Cyst", 0.6, model.RiskModerate, 50},
		{"Normal", 0.9, model.RiskLow, 11.5},
		{"Unknown", 0.5, model.RiskLow, 17.5},
	}

	for _, tt := range tests {
		level, score := ScoreDetection(tt.prediction, tt.confidence)
		if level != tt.wantLevel {
			t.Errorf("ScoreDetection(%s, %v) level = %s, want %s", tt.prediction, tt.confidence, level, tt.wantLevel)
		}
		if math.Abs(score-tt.wantScore) > 1e-9 {
			t.Errorf("ScoreDetection(%s, %v) score = %v, want %v", tt.prediction, tt.confidence, score, tt.wantScore)
		}
	}
}
