package detection

import (
	"errors"
	"io"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/health-platform-api/model"
	"github.com/sahilchouksey/health-platform-api/services/llm"
	"github.com/sahilchouksey/health-platform-api/services/mlserver"
	"github.com/sahilchouksey/health-platform-api/services/patient"
	"github.com/sahilchouksey/health-platform-api/services/risk"
	"github.com/sahilchouksey/health-platform-api/services/storage"
	"github.com/sahilchouksey/health-platform-api/utils/middleware"
	"github.com/sahilchouksey/health-platform-api/utils/response"
	"gorm.io/gorm"
)

// maxImageSize bounds scan uploads (10 MB)
const maxImageSize = 10 * 1024 * 1024

// DetectionHandler handles scan upload and history requests
type DetectionHandler struct {
	db         *gorm.DB
	classifier *mlserver.Client
	storage    *storage.Client
	dispatcher *llm.Dispatcher
}

// NewDetectionHandler creates a new detection handler
func NewDetectionHandler(db *gorm.DB, classifier *mlserver.Client, storageClient *storage.Client, dispatcher *llm.Dispatcher) *DetectionHandler {
	return &DetectionHandler{
		db:         db,
		classifier: classifier,
		storage:    storageClient,
		dispatcher: dispatcher,
	}
}

// Upload runs the full scan pipeline: store image, classify, score risk,
// fetch an AI suggestion, persist the record.
func (h *DetectionHandler) Upload(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	detectionType := c.FormValue("detection_type")
	if detectionType == "" {
		return response.BadRequest(c, "detection_type is required")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return response.BadRequest(c, "Image file is required")
	}
	if fileHeader.Size > maxImageSize {
		return response.BadRequest(c, "Image exceeds the 10MB size limit")
	}
	if !storage.IsImage(fileHeader.Filename) {
		return response.BadRequest(c, "Only image files are supported")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.InternalServerError(c, "Failed to read uploaded file")
	}
	defer file.Close()

	imageData, err := io.ReadAll(file)
	if err != nil {
		return response.InternalServerError(c, "Failed to read uploaded file")
	}

	contentType := storage.GetContentType(fileHeader.Filename)

	// Store the image first so the record can reference it
	key := storage.DetectionKey(detectionType, fileHeader.Filename)
	imageURL, err := h.storage.UploadBytes(c.Context(), key, imageData, contentType)
	if err != nil {
		return response.InternalServerError(c, "Failed to store image")
	}

	// Classify
	prediction, err := h.classifier.Predict(c.Context(), imageData, contentType, fileHeader.Filename)
	if err != nil {
		// The stored image is orphaned on classification failure
		if delErr := h.storage.Delete(c.Context(), key); delErr != nil {
			log.Printf("[detection] failed to clean up image %s: %v", key, delErr)
		}
		return h.classifierError(c, err)
	}

	riskLevel, riskScore := risk.ScoreDetection(prediction.Prediction, prediction.Confidence)

	// AI suggestion never fails the upload
	snap := patient.Load(h.db, userID)
	backend := llm.ParseBackend(c.FormValue("ai_backend"))
	suggestion := h.dispatcher.Suggest(c.Context(), snap.Context,
		detectionType, prediction.Prediction, prediction.Confidence, riskLevel, backend)

	record := model.DetectionHistory{
		UserID:           userID,
		DetectionType:    detectionType,
		ImageURL:         imageURL,
		ImageKey:         key,
		OriginalFilename: fileHeader.Filename,
		ImageSize:        fileHeader.Size,
		Prediction:       prediction.Prediction,
		Confidence:       prediction.Confidence,
		Probabilities:    model.Probabilities(prediction.Probabilities),
		ModelVersion:     prediction.Model,
		RiskLevel:        riskLevel,
		RiskScore:        riskScore,
		AISuggestions:    suggestion.Text,
		Status:           model.StatusPendingReview,
	}

	if err := h.db.Create(&record).Error; err != nil {
		return response.InternalServerError(c, "Failed to save detection")
	}

	return response.Created(c, fiber.Map{
		"detection":   record,
		"ai_degraded": suggestion.Degraded,
	})
}

// classifierError maps classifier failures onto HTTP statuses
func (h *DetectionHandler) classifierError(c *fiber.Ctx, err error) error {
	if errors.Is(err, mlserver.ErrUnavailable) {
		return response.ServiceUnavailable(c, "ML server unavailable")
	}
	if errors.Is(err, mlserver.ErrTimeout) {
		return response.Error(c, fiber.StatusGatewayTimeout, "Request timeout", "GATEWAY_TIMEOUT")
	}

	var apiErr *mlserver.APIError
	if errors.As(err, &apiErr) {
		return response.Error(c, apiErr.StatusCode, apiErr.Message, "ML_SERVER_ERROR")
	}
	return response.InternalServerError(c, "Classification failed")
}

// History lists the user's detections, newest first, with optional type filter
func (h *DetectionHandler) History(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	query := h.db.Model(&model.DetectionHistory{}).Where("user_id = ?", userID)
	if t := c.Query("type"); t != "" {
		query = query.Where("detection_type = ?", t)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count detections")
	}

	var detections []model.DetectionHistory
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&detections).Error; err != nil {
		return response.InternalServerError(c, "Failed to load detections")
	}

	return response.Paginated(c, detections, response.CalculatePagination(page, limit, total))
}

// PreviousImages returns the last 10 uploads of a detection type
func (h *DetectionHandler) PreviousImages(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	detectionType := c.Query("type")
	if detectionType == "" {
		return response.BadRequest(c, "type query parameter is required")
	}

	var detections []model.DetectionHistory
	if err := h.db.
		Select("id", "image_url", "original_filename", "prediction", "created_at").
		Where("user_id = ? AND detection_type = ?", userID, detectionType).
		Order("created_at DESC").
		Limit(10).
		Find(&detections).Error; err != nil {
		return response.InternalServerError(c, "Failed to load images")
	}

	return response.Success(c, detections)
}

// Get returns a single detection owned by the user
func (h *DetectionHandler) Get(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid detection id")
	}

	var detection model.DetectionHistory
	if err := h.db.Where("id = ? AND user_id = ?", id, userID).First(&detection).Error; err != nil {
		return response.NotFound(c, "Detection not found")
	}

	return response.Success(c, detection)
}

// UpdateNotesRequest carries the only mutable detection fields
type UpdateNotesRequest struct {
	UserNotes string `json:"user_notes"`
	Status    string `json:"status"`
}

// UpdateNotes updates user notes and review status on a detection
func (h *DetectionHandler) UpdateNotes(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid detection id")
	}

	var req UpdateNotesRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Status != "" && req.Status != model.StatusPendingReview && req.Status != model.StatusReviewed {
		return response.BadRequest(c, "Invalid status")
	}

	var detection model.DetectionHistory
	if err := h.db.Where("id = ? AND user_id = ?", id, userID).First(&detection).Error; err != nil {
		return response.NotFound(c, "Detection not found")
	}

	updates := map[string]interface{}{"user_notes": req.UserNotes}
	if req.Status != "" {
		updates["status"] = req.Status
	}

	if err := h.db.Model(&detection).Updates(updates).Error; err != nil {
		return response.InternalServerError(c, "Failed to update detection")
	}

	return response.Success(c, detection)
}
