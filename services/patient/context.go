package patient

import (
	"fmt"
	"strings"

	"github.com/sahilchouksey/health-platform-api/model"
	"github.com/sahilchouksey/health-platform-api/services/llm"
	"gorm.io/gorm"
)

// recentDetectionLimit is how many scans feed the assistant context
const recentDetectionLimit = 3

// Snapshot bundles the loaded records with the prompt-ready context
type Snapshot struct {
	Profile    *model.Profile
	History    *model.MedicalHistory
	Detections []model.DetectionHistory
	Context    llm.PatientContext
}

// Load assembles a patient snapshot for LLM prompts. Missing records are
// skipped, never errors; an empty snapshot is valid.
func Load(db *gorm.DB, userID uint) Snapshot {
	var snap Snapshot

	var profile model.Profile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err == nil {
		snap.Profile = &profile
	}

	var history model.MedicalHistory
	if err := db.Where("user_id = ?", userID).First(&history).Error; err == nil {
		snap.History = &history
	}

	db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(recentDetectionLimit).
		Find(&snap.Detections)

	snap.Context = buildContext(snap.Profile, snap.History, snap.Detections)
	return snap
}

// ContextMap renders the snapshot as a JSON-storable map, persisted next
// to assistant replies so past conversations keep their grounding.
func (s Snapshot) ContextMap() model.JSONMap {
	m := model.JSONMap{}

	if s.Profile != nil {
		m["profile"] = map[string]interface{}{
			"age":    s.Profile.Age,
			"gender": s.Profile.Gender,
			"bmi":    s.Profile.BMI,
		}
	}
	if s.History != nil {
		m["conditions"] = conditionNames(s.History)
	}
	if len(s.Detections) > 0 {
		var scans []map[string]interface{}
		for _, d := range s.Detections {
			scans = append(scans, map[string]interface{}{
				"type":       d.DetectionType,
				"prediction": d.Prediction,
				"risk_level": d.RiskLevel,
			})
		}
		m["recent_detections"] = scans
	}
	return m
}

func buildContext(profile *model.Profile, history *model.MedicalHistory, detections []model.DetectionHistory) llm.PatientContext {
	var pc llm.PatientContext

	if profile != nil {
		pc.Name = strings.TrimSpace(fmt.Sprintf("%s %s", profile.FirstName, profile.LastName))
		pc.Age = profile.Age
		pc.Gender = profile.Gender
		pc.BMI = profile.BMI
		pc.HealthGoal = profile.HealthGoal
	}

	if history != nil {
		pc.Conditions = conditionNames(history)
		pc.Lifestyle = lifestyleNotes(history)
		pc.Allergies = history.Allergies
		pc.CurrentSymptoms = history.CurrentSymptoms
	}

	for _, d := range detections {
		pc.RecentDetections = append(pc.RecentDetections, llm.DetectionSummary{
			Type:       d.DetectionType,
			Prediction: d.Prediction,
			Confidence: d.Confidence,
			RiskLevel:  d.RiskLevel,
		})
	}

	return pc
}

func conditionNames(h *model.MedicalHistory) []string {
	var names []string
	if h.Diabetes {
		names = append(names, "diabetes")
	}
	if h.Hypertension {
		names = append(names, "hypertension")
	}
	if h.HeartCondition {
		names = append(names, "heart condition")
	}
	if h.Thyroid {
		names = append(names, "thyroid disorder")
	}
	return names
}

func lifestyleNotes(h *model.MedicalHistory) []string {
	var notes []string
	if h.Smoking {
		notes = append(notes, "smoker")
	}
	if h.Alcohol {
		notes = append(notes, "drinks alcohol")
	}
	if h.ActivityLevel != "" {
		notes = append(notes, "activity level "+strings.ToLower(h.ActivityLevel))
	}
	if h.SleepDuration != "" {
		notes = append(notes, "sleep "+strings.ToLower(strings.ReplaceAll(h.SleepDuration, "_", " ")))
	}
	return notes
}
