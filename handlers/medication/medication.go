package medication

import (
	"encoding/json"
	"regexp"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/health-platform-api/model"
	"github.com/sahilchouksey/health-platform-api/utils/middleware"
	"github.com/sahilchouksey/health-platform-api/utils/response"
	"github.com/sahilchouksey/health-platform-api/utils/validation"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MedicationHandler handles medication CRUD requests
type MedicationHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewMedicationHandler creates a new medication handler
func NewMedicationHandler(db *gorm.DB) *MedicationHandler {
	return &MedicationHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// MedicationRequest is the writable medication entry
type MedicationRequest struct {
	Name          string   `json:"name" validate:"required,min=1,max=200"`
	Dosage        string   `json:"dosage" validate:"max=100"`
	Frequency     string   `json:"frequency" validate:"max=100"`
	StartDate     string   `json:"start_date"` // YYYY-MM-DD
	EndDate       string   `json:"end_date"`   // YYYY-MM-DD, optional
	IsActive      *bool    `json:"is_active"`
	ReminderTimes []string `json:"reminder_times"` // "HH:MM" entries
	Notes         string   `json:"notes"`
	SideEffects   string   `json:"side_effects"`
}

var reminderTimeRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// validateReminderTimes covers the HH:MM format the struct tags cannot
func (r *MedicationRequest) validateReminderTimes() string {
	for _, t := range r.ReminderTimes {
		if !reminderTimeRe.MatchString(t) {
			return "Reminder times must be in HH:MM format"
		}
	}
	return ""
}

func (r *MedicationRequest) applyTo(m *model.Medication) error {
	m.Name = r.Name
	m.Dosage = r.Dosage
	m.Frequency = r.Frequency
	m.Notes = r.Notes
	m.SideEffects = r.SideEffects

	if r.StartDate != "" {
		start, err := time.Parse("2006-01-02", r.StartDate)
		if err != nil {
			return err
		}
		m.StartDate = start
	}

	if r.EndDate != "" {
		end, err := time.Parse("2006-01-02", r.EndDate)
		if err != nil {
			return err
		}
		m.EndDate = &end
	} else {
		m.EndDate = nil
	}

	if r.IsActive != nil {
		m.IsActive = *r.IsActive
	}

	if r.ReminderTimes != nil {
		encoded, err := json.Marshal(r.ReminderTimes)
		if err != nil {
			return err
		}
		m.ReminderTimes = datatypes.JSON(encoded)
	}

	return nil
}

// Create adds a medication entry
func (h *MedicationHandler) Create(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	var req MedicationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}
	if msg := req.validateReminderTimes(); msg != "" {
		return response.BadRequest(c, msg)
	}

	med := model.Medication{
		UserID:   userID,
		IsActive: true,
	}
	if err := req.applyTo(&med); err != nil {
		return response.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
	}
	if med.StartDate.IsZero() {
		med.StartDate = time.Now()
	}

	if err := h.db.Create(&med).Error; err != nil {
		return response.InternalServerError(c, "Failed to save medication")
	}

	return response.Created(c, med)
}

// List returns the user's medications with an optional is_active filter
func (h *MedicationHandler) List(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	query := h.db.Where("user_id = ?", userID)
	if active := c.Query("is_active"); active != "" {
		parsed, err := strconv.ParseBool(active)
		if err != nil {
			return response.BadRequest(c, "is_active must be true or false")
		}
		query = query.Where("is_active = ?", parsed)
	}

	var medications []model.Medication
	if err := query.Order("created_at DESC").Find(&medications).Error; err != nil {
		return response.InternalServerError(c, "Failed to load medications")
	}

	return response.Success(c, medications)
}

// Update modifies a medication owned by the user
func (h *MedicationHandler) Update(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid medication id")
	}

	var req MedicationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}
	if msg := req.validateReminderTimes(); msg != "" {
		return response.BadRequest(c, msg)
	}

	var med model.Medication
	if err := h.db.Where("id = ? AND user_id = ?", id, userID).First(&med).Error; err != nil {
		return response.NotFound(c, "Medication not found")
	}

	if err := req.applyTo(&med); err != nil {
		return response.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
	}

	if err := h.db.Save(&med).Error; err != nil {
		return response.InternalServerError(c, "Failed to update medication")
	}

	return response.Success(c, med)
}

// Delete removes a medication owned by the user
func (h *MedicationHandler) Delete(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid medication id")
	}

	result := h.db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Medication{})
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to delete medication")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Medication not found")
	}

	return response.SuccessWithMessage(c, "Medication deleted", nil)
}
