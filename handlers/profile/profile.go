package profile

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/health-platform-api/model"
	"github.com/sahilchouksey/health-platform-api/services/storage"
	"github.com/sahilchouksey/health-platform-api/utils/helpers"
	"github.com/sahilchouksey/health-platform-api/utils/middleware"
	"github.com/sahilchouksey/health-platform-api/utils/response"
	"github.com/sahilchouksey/health-platform-api/utils/validation"
	"gorm.io/gorm"
)

// ProfileHandler handles profile and medical history requests
type ProfileHandler struct {
	db        *gorm.DB
	storage   *storage.Client
	validator *validation.Validator
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(db *gorm.DB, storageClient *storage.Client) *ProfileHandler {
	return &ProfileHandler{
		db:        db,
		storage:   storageClient,
		validator: validation.NewValidator(),
	}
}

// ProfileRequest is the writable subset of a profile. Age and BMI are
// derived server-side and ignored if sent.
type ProfileRequest struct {
	FirstName             string  `json:"first_name" validate:"required,min=1,max=100"`
	LastName              string  `json:"last_name" validate:"max=100"`
	Gender                string  `json:"gender" validate:"max=20"`
	DateOfBirth           string  `json:"date_of_birth"` // YYYY-MM-DD
	Height                float64 `json:"height" validate:"gte=0,lte=300"`
	Weight                float64 `json:"weight" validate:"gte=0,lte=500"`
	Phone                 string  `json:"phone" validate:"max=20"`
	Address               string  `json:"address"`
	City                  string  `json:"city" validate:"max=100"`
	State                 string  `json:"state" validate:"max=100"`
	Pincode               string  `json:"pincode" validate:"max=10"`
	EmergencyContactName  string  `json:"emergency_contact_name" validate:"max=200"`
	EmergencyContactPhone string  `json:"emergency_contact_phone" validate:"max=20"`
	HealthGoal            string  `json:"health_goal"`
}

func (r *ProfileRequest) parseDateOfBirth() (time.Time, error) {
	if r.DateOfBirth == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", r.DateOfBirth)
}

// applyTo copies the request onto a profile and recomputes derived fields
func (r *ProfileRequest) applyTo(p *model.Profile) error {
	dob, err := r.parseDateOfBirth()
	if err != nil {
		return err
	}

	p.FirstName = r.FirstName
	p.LastName = r.LastName
	p.Gender = r.Gender
	p.DateOfBirth = dob
	p.Height = r.Height
	p.Weight = r.Weight
	p.Phone = r.Phone
	p.Address = r.Address
	p.City = r.City
	p.State = r.State
	p.Pincode = r.Pincode
	p.EmergencyContactName = r.EmergencyContactName
	p.EmergencyContactPhone = r.EmergencyContactPhone
	p.HealthGoal = r.HealthGoal

	// Derived fields follow their sources in the same write
	p.Age = helpers.CalculateAge(dob, time.Now())
	p.BMI = helpers.CalculateBMI(r.Weight, r.Height)
	return nil
}

// Create creates the user's profile
func (h *ProfileHandler) Create(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	var req ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var existing model.Profile
	if err := h.db.Where("user_id = ?", userID).First(&existing).Error; err == nil {
		return response.Conflict(c, "Profile already exists")
	}

	profile := model.Profile{UserID: userID}
	if err := req.applyTo(&profile); err != nil {
		return response.BadRequest(c, "Invalid date of birth, expected YYYY-MM-DD")
	}

	if err := h.db.Create(&profile).Error; err != nil {
		return response.InternalServerError(c, "Failed to create profile")
	}

	return response.Created(c, profile)
}

// Get returns the user's profile
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	var profile model.Profile
	if err := h.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return response.NotFound(c, "Profile not found")
	}

	return response.Success(c, profile)
}

// Update updates the user's profile, recomputing age and BMI
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	var req ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var profile model.Profile
	if err := h.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return response.NotFound(c, "Profile not found")
	}

	if err := req.applyTo(&profile); err != nil {
		return response.BadRequest(c, "Invalid date of birth, expected YYYY-MM-DD")
	}

	if err := h.db.Save(&profile).Error; err != nil {
		return response.InternalServerError(c, "Failed to update profile")
	}

	return response.Success(c, profile)
}

// UploadPicture stores a new profile picture and deletes the old one
func (h *ProfileHandler) UploadPicture(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	var profile model.Profile
	if err := h.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return response.NotFound(c, "Profile not found")
	}

	fileHeader, err := c.FormFile("picture")
	if err != nil {
		return response.BadRequest(c, "Picture file is required")
	}
	if !storage.IsImage(fileHeader.Filename) {
		return response.BadRequest(c, "Only image files are supported")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.InternalServerError(c, "Failed to read uploaded file")
	}
	defer file.Close()

	oldKey := profile.ProfilePictureKey

	key := storage.GenerateKey(storage.PrefixProfilePictures, fileHeader.Filename)
	url, err := h.storage.Upload(c.Context(), key, file, storage.GetContentType(fileHeader.Filename))
	if err != nil {
		return response.InternalServerError(c, "Failed to upload picture")
	}

	if err := h.db.Model(&profile).Updates(map[string]interface{}{
		"profile_picture":     url,
		"profile_picture_key": key,
	}).Error; err != nil {
		return response.InternalServerError(c, "Failed to save picture URL")
	}

	// Old picture removal is best effort
	if oldKey != "" {
		if err := h.storage.Delete(c.Context(), oldKey); err != nil {
			log.Printf("[profile] failed to delete old picture %s: %v", oldKey, err)
		}
	}

	return response.Success(c, fiber.Map{"profile_picture": url})
}
