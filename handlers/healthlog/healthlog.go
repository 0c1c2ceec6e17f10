package healthlog

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/health-platform-api/model"
	"github.com/sahilchouksey/health-platform-api/utils/helpers"
	"github.com/sahilchouksey/health-platform-api/utils/middleware"
	"github.com/sahilchouksey/health-platform-api/utils/response"
	"github.com/sahilchouksey/health-platform-api/utils/validation"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// HealthLogHandler handles vitals logging requests
type HealthLogHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewHealthLogHandler creates a new health log handler
func NewHealthLogHandler(db *gorm.DB) *HealthLogHandler {
	return &HealthLogHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateRequest is a new vitals entry. All measurements are optional but
// at least one must be present.
type CreateRequest struct {
	BloodPressureSystolic  *int     `json:"blood_pressure_systolic" validate:"omitempty,gte=40,lte=300"`
	BloodPressureDiastolic *int     `json:"blood_pressure_diastolic" validate:"omitempty,gte=20,lte=200"`
	HeartRate              *int     `json:"heart_rate" validate:"omitempty,gte=20,lte=300"`
	BloodSugar             *float64 `json:"blood_sugar" validate:"omitempty,gte=0,lte=1000"`
	Weight                 *float64 `json:"weight" validate:"omitempty,gt=0,lte=500"`
	Temperature            *float64 `json:"temperature" validate:"omitempty,gte=30,lte=45"`
	OxygenSaturation       *int     `json:"oxygen_saturation" validate:"omitempty,gte=50,lte=100"`
	Notes                  string   `json:"notes"`
	LogDate                string   `json:"log_date"` // YYYY-MM-DD, defaults to today
}

func (r *CreateRequest) hasMeasurement() bool {
	return r.BloodPressureSystolic != nil ||
		r.BloodPressureDiastolic != nil ||
		r.HeartRate != nil ||
		r.BloodSugar != nil ||
		r.Weight != nil ||
		r.Temperature != nil ||
		r.OxygenSaturation != nil
}

// Create records a vitals entry, deriving BMI from the profile height
func (h *HealthLogHandler) Create(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if !req.hasMeasurement() {
		return response.BadRequest(c, "At least one measurement is required")
	}

	logDate := time.Now()
	if req.LogDate != "" {
		parsed, err := time.Parse("2006-01-02", req.LogDate)
		if err != nil {
			return response.BadRequest(c, "Invalid log_date, expected YYYY-MM-DD")
		}
		logDate = parsed
	}

	entry := model.HealthLog{
		UserID:                 userID,
		BloodPressureSystolic:  req.BloodPressureSystolic,
		BloodPressureDiastolic: req.BloodPressureDiastolic,
		HeartRate:              req.HeartRate,
		BloodSugar:             req.BloodSugar,
		Weight:                 req.Weight,
		Temperature:            req.Temperature,
		OxygenSaturation:       req.OxygenSaturation,
		Notes:                  req.Notes,
		LogDate:                datatypes.Date(logDate),
	}

	// BMI derives from the logged weight and the profile height
	if req.Weight != nil {
		var profile model.Profile
		if err := h.db.Where("user_id = ?", userID).First(&profile).Error; err == nil && profile.Height > 0 {
			bmi := helpers.CalculateBMI(*req.Weight, profile.Height)
			entry.BMI = &bmi
		}
	}

	if err := h.db.Create(&entry).Error; err != nil {
		return response.InternalServerError(c, "Failed to save health log")
	}

	return response.Created(c, entry)
}

// List returns the user's health logs, newest first, paginated
func (h *HealthLogHandler) List(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var total int64
	if err := h.db.Model(&model.HealthLog{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count health logs")
	}

	var logs []model.HealthLog
	if err := h.db.Where("user_id = ?", userID).
		Order("log_date DESC, created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&logs).Error; err != nil {
		return response.InternalServerError(c, "Failed to load health logs")
	}

	return response.Paginated(c, logs, response.CalculatePagination(page, limit, total))
}

// Latest returns the most recent health log entry
func (h *HealthLogHandler) Latest(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	var entry model.HealthLog
	if err := h.db.Where("user_id = ?", userID).
		Order("log_date DESC, created_at DESC").
		First(&entry).Error; err != nil {
		return response.NotFound(c, "No health logs found")
	}

	return response.Success(c, entry)
}
