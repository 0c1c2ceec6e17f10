package profile

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/health-platform-api/model"
	"github.com/sahilchouksey/health-platform-api/utils/middleware"
	"github.com/sahilchouksey/health-platform-api/utils/response"
	"gorm.io/gorm"
)

// MedicalHistoryRequest is the writable medical history
type MedicalHistoryRequest struct {
	Diabetes       bool `json:"diabetes"`
	Hypertension   bool `json:"hypertension"`
	HeartCondition bool `json:"heart_condition"`
	Thyroid        bool `json:"thyroid"`

	Smoking       bool   `json:"smoking"`
	Alcohol       bool   `json:"alcohol"`
	ActivityLevel string `json:"activity_level"`
	SleepDuration string `json:"sleep_duration"`

	FamilyDiabetes      bool `json:"family_diabetes"`
	FamilyHypertension  bool `json:"family_hypertension"`
	FamilyHeartDisease  bool `json:"family_heart_disease"`
	FamilyCancer        bool `json:"family_cancer"`
	FamilyKidneyDisease bool `json:"family_kidney_disease"`

	Allergies       string `json:"allergies"`
	CurrentSymptoms string `json:"current_symptoms"`
}

var validActivityLevels = map[string]bool{
	model.ActivitySedentary:  true,
	model.ActivityLight:      true,
	model.ActivityModerate:   true,
	model.ActivityActive:     true,
	model.ActivityVeryActive: true,
}

var validSleepDurations = map[string]bool{
	"":                   true,
	model.SleepLessThan5: true,
	model.Sleep5To7:      true,
	model.Sleep7To9:      true,
	model.SleepMoreThan9: true,
}

// GetMedicalHistory returns the user's medical history
func (h *ProfileHandler) GetMedicalHistory(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	var history model.MedicalHistory
	if err := h.db.Where("user_id = ?", userID).First(&history).Error; err != nil {
		return response.NotFound(c, "Medical history not found")
	}

	return response.Success(c, history)
}

// UpsertMedicalHistory creates or replaces the user's medical history
func (h *ProfileHandler) UpsertMedicalHistory(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	var req MedicalHistoryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.ActivityLevel == "" {
		req.ActivityLevel = model.ActivitySedentary
	}
	if !validActivityLevels[req.ActivityLevel] {
		return response.BadRequest(c, "Invalid activity level")
	}
	if !validSleepDurations[req.SleepDuration] {
		return response.BadRequest(c, "Invalid sleep duration")
	}

	var history model.MedicalHistory
	err := h.db.Where("user_id = ?", userID).First(&history).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return response.InternalServerError(c, "Failed to load medical history")
	}

	created := err == gorm.ErrRecordNotFound
	history.UserID = userID
	history.Diabetes = req.Diabetes
	history.Hypertension = req.Hypertension
	history.HeartCondition = req.HeartCondition
	history.Thyroid = req.Thyroid
	history.Smoking = req.Smoking
	history.Alcohol = req.Alcohol
	history.ActivityLevel = req.ActivityLevel
	history.SleepDuration = req.SleepDuration
	history.FamilyDiabetes = req.FamilyDiabetes
	history.FamilyHypertension = req.FamilyHypertension
	history.FamilyHeartDisease = req.FamilyHeartDisease
	history.FamilyCancer = req.FamilyCancer
	history.FamilyKidneyDisease = req.FamilyKidneyDisease
	history.Allergies = req.Allergies
	history.CurrentSymptoms = req.CurrentSymptoms

	if err := h.db.Save(&history).Error; err != nil {
		return response.InternalServerError(c, "Failed to save medical history")
	}

	if created {
		return response.Created(c, history)
	}
	return response.Success(c, history)
}
