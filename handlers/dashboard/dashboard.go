package dashboard

import (
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/health-platform-api/model"
	"github.com/sahilchouksey/health-platform-api/services/llm"
	"github.com/sahilchouksey/health-platform-api/services/patient"
	"github.com/sahilchouksey/health-platform-api/services/risk"
	"github.com/sahilchouksey/health-platform-api/utils"
	"github.com/sahilchouksey/health-platform-api/utils/middleware"
	"github.com/sahilchouksey/health-platform-api/utils/response"
	"gorm.io/gorm"
)

// DashboardHandler aggregates the user's health data
type DashboardHandler struct {
	db         *gorm.DB
	dispatcher *llm.Dispatcher
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(db *gorm.DB, dispatcher *llm.Dispatcher) *DashboardHandler {
	return &DashboardHandler{
		db:         db,
		dispatcher: dispatcher,
	}
}

// Get returns the dashboard aggregate: profile, history, recent scans,
// recent vitals, active medications, and the local risk assessment.
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	snap := patient.Load(h.db, userID)

	var recentDetections []model.DetectionHistory
	h.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(5).
		Find(&recentDetections)

	var recentLogs []model.HealthLog
	h.db.Where("user_id = ?", userID).
		Order("log_date DESC").
		Limit(7).
		Find(&recentLogs)

	var activeMedications []model.Medication
	h.db.Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		Find(&activeMedications)

	assessment := risk.Assess(snap.Profile, snap.History, recentDetections)

	return response.Success(c, fiber.Map{
		"profile":            snap.Profile,
		"medical_history":    snap.History,
		"recent_detections":  recentDetections,
		"recent_health_logs": recentLogs,
		"active_medications": activeMedications,
		"risk_assessment":    assessment,
	})
}

// llmRiskAssessment is the JSON shape requested from the model
type llmRiskAssessment struct {
	RiskScore       int      `json:"riskScore"`
	RiskLevel       string   `json:"riskLevel"`
	Factors         []string `json:"factors"`
	Recommendations []string `json:"recommendations"`
}

// RiskScore returns an LLM-generated risk assessment, falling back to the
// local scorer whenever the model fails or returns malformed JSON.
func (h *DashboardHandler) RiskScore(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	snap := patient.Load(h.db, userID)
	backend := llm.ParseBackend(c.Query("ai_backend"))

	prompt := llm.BuildRiskAssessmentPrompt(snap.Context)
	text, usedBackend, err := h.dispatcher.Complete(c.Context(),
		[]llm.Message{{Role: "user", Content: prompt}},
		llm.Options{Temperature: 0.2, MaxTokens: 1024, TopP: 0.9},
		backend)

	if err == nil {
		var parsed llmRiskAssessment
		if jsonErr := utils.ExtractJSONTo(text, &parsed); jsonErr == nil && validLLMAssessment(parsed) {
			return response.Success(c, fiber.Map{
				"risk_score":      parsed.RiskScore,
				"risk_level":      parsed.RiskLevel,
				"factors":         parsed.Factors,
				"recommendations": parsed.Recommendations,
				"source":          string(usedBackend),
			})
		}
		log.Printf("[dashboard] LLM risk response unusable, using local scorer")
	} else {
		log.Printf("[dashboard] LLM risk assessment failed: %v", err)
	}

	assessment := risk.Assess(snap.Profile, snap.History, snap.Detections)
	return response.Success(c, fiber.Map{
		"risk_score": assessment.Score,
		"risk_level": assessment.Level,
		"factors":    assessment.Factors,
		"source":     "local",
	})
}

func validLLMAssessment(a llmRiskAssessment) bool {
	if a.RiskScore < 0 || a.RiskScore > 100 {
		return false
	}
	switch a.RiskLevel {
	case model.RiskLow, model.RiskModerate, model.RiskHigh, model.RiskCritical:
		return true
	default:
		return false
	}
}

// trendPoint is one time-series sample
type trendPoint struct {
	Date             string   `json:"date"`
	Weight           *float64 `json:"weight,omitempty"`
	SystolicBP       *int     `json:"systolic_bp,omitempty"`
	DiastolicBP      *int     `json:"diastolic_bp,omitempty"`
	BloodSugar       *float64 `json:"blood_sugar,omitempty"`
	HeartRate        *int     `json:"heart_rate,omitempty"`
	OxygenSaturation *int     `json:"oxygen_saturation,omitempty"`
}

// Trends returns vitals series over a trailing day window
func (h *DashboardHandler) Trends(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	days, _ := strconv.Atoi(c.Query("days", "30"))
	if days < 1 || days > 365 {
		days = 30
	}

	since := time.Now().AddDate(0, 0, -days)

	var logs []model.HealthLog
	if err := h.db.Where("user_id = ? AND log_date >= ?", userID, since).
		Order("log_date ASC").
		Find(&logs).Error; err != nil {
		return response.InternalServerError(c, "Failed to load health logs")
	}

	points := make([]trendPoint, 0, len(logs))
	for _, l := range logs {
		points = append(points, trendPoint{
			Date:             time.Time(l.LogDate).Format("2006-01-02"),
			Weight:           l.Weight,
			SystolicBP:       l.BloodPressureSystolic,
			DiastolicBP:      l.BloodPressureDiastolic,
			BloodSugar:       l.BloodSugar,
			HeartRate:        l.HeartRate,
			OxygenSaturation: l.OxygenSaturation,
		})
	}

	return response.Success(c, fiber.Map{
		"days":   days,
		"trends": points,
	})
}
