package risk

import (
	"fmt"
	"math"

	"github.com/sahilchouksey/health-platform-api/model"
)

// Factor types reported in an assessment
const (
	FactorBMI       = "BMI"
	FactorAge       = "AGE"
	FactorChronic   = "CHRONIC_CONDITION"
	FactorLifestyle = "LIFESTYLE"
	FactorFamily    = "FAMILY_HISTORY"
	FactorDetection = "DETECTION"
)

// Factor is one contribution to the overall risk score
type Factor struct {
	Name   string  `json:"name"`
	Impact float64 `json:"impact"`
	Type   string  `json:"type"`
}

// Assessment is the output of the overall health-risk scorer
type Assessment struct {
	Score   int      `json:"score"` // 0-100, higher is riskier
	Level   string   `json:"level"`
	Factors []Factor `json:"factors"`
}

// Assess computes the overall health-risk score from whatever inputs are
// available. Missing inputs contribute nothing; the function never errors.
func Assess(profile *model.Profile, history *model.MedicalHistory, recentDetections []model.DetectionHistory) Assessment {
	var score float64
	var factors []Factor

	add := func(name string, impact float64, factorType string) {
		score += impact
		factors = append(factors, Factor{Name: name, Impact: impact, Type: factorType})
	}

	if profile != nil {
		if impact, label := bmiImpact(profile.BMI); label != "" {
			add(label, impact, FactorBMI)
		}
		switch {
		case profile.Age > 60:
			add("Age over 60", 15, FactorAge)
		case profile.Age > 45:
			add("Age over 45", 10, FactorAge)
		case profile.Age > 30:
			add("Age over 30", 5, FactorAge)
		}
	}

	if history != nil {
		if history.Diabetes {
			add("Diabetes", 7.5, FactorChronic)
		}
		if history.Hypertension {
			add("Hypertension", 7.5, FactorChronic)
		}
		if history.HeartCondition {
			add("Heart condition", 7.5, FactorChronic)
		}
		if history.Thyroid {
			add("Thyroid disorder", 7.5, FactorChronic)
		}

		if history.Smoking {
			add("Smoking", 10, FactorLifestyle)
		}
		if history.Alcohol {
			add("Alcohol consumption", 5, FactorLifestyle)
		}
		if history.ActivityLevel == model.ActivitySedentary {
			add("Sedentary lifestyle", 5, FactorLifestyle)
		}

		familyFlags := 0
		for _, set := range []bool{
			history.FamilyDiabetes,
			history.FamilyHypertension,
			history.FamilyHeartDisease,
			history.FamilyCancer,
			history.FamilyKidneyDisease,
		} {
			if set {
				familyFlags++
			}
		}
		if familyFlags > 0 {
			impact := math.Min(float64(familyFlags)*2.5, 10)
			add(fmt.Sprintf("Family history (%d conditions)", familyFlags), impact, FactorFamily)
		}
	}

	abnormal := 0
	for _, d := range recentDetections {
		if d.Prediction != "" && d.Prediction != "Normal" && d.Confidence > 0.7 {
			abnormal++
		}
	}
	if abnormal > 0 {
		impact := math.Min(float64(abnormal)*5, 15)
		add(fmt.Sprintf("Abnormal scan findings (%d)", abnormal), impact, FactorDetection)
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	rounded := int(math.Round(score))
	return Assessment{
		Score:   rounded,
		Level:   LevelFromScore(float64(rounded)),
		Factors: factors,
	}
}

// bmiImpact returns the risk contribution for a BMI value. The healthy band
// is protective. A zero BMI means the profile is incomplete and is skipped.
func bmiImpact(bmi float64) (float64, string) {
	switch {
	case bmi <= 0:
		return 0, ""
	case bmi < 16:
		return 20, "Severely underweight"
	case bmi < 18.5:
		return 12, "Underweight"
	case bmi < 25:
		return -5, "Healthy BMI"
	case bmi < 30:
		return 8, "Overweight"
	case bmi < 35:
		return 15, "Obese"
	default:
		return 20, "Severely obese"
	}
}

// LevelFromScore maps any score in [0,100] to a risk level
func LevelFromScore(score float64) string {
	switch {
	case score >= 75:
		return model.RiskCritical
	case score >= 50:
		return model.RiskHigh
	case score >= 25:
		return model.RiskModerate
	default:
		return model.RiskLow
	}
}

// ScoreDetection assigns a risk level and score to a single classified scan
// based on its predicted label and confidence.
func ScoreDetection(prediction string, confidence float64) (string, float64) {
	switch prediction {
	case "Tumor":
		return model.RiskCritical, 85 + confidence*15
	case "Stone":
		return model.RiskHigh, 60 + confidence*20
	case "Cyst":
		return model.RiskModerate, 35 + confidence*25
	default:
		return model.RiskLow, 10 + (1-confidence)*15
	}
}
