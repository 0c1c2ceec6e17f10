package report

import (
	"errors"
	"io"
	"log"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/health-platform-api/model"
	"github.com/sahilchouksey/health-platform-api/services/llm"
	"github.com/sahilchouksey/health-platform-api/services/report"
	"github.com/sahilchouksey/health-platform-api/services/storage"
	"github.com/sahilchouksey/health-platform-api/utils/middleware"
	"github.com/sahilchouksey/health-platform-api/utils/pdfvalidation"
	"github.com/sahilchouksey/health-platform-api/utils/response"
	"gorm.io/gorm"
)

// maxImageSize bounds report photo uploads (10 MB)
const maxImageSize = 10 * 1024 * 1024

// ReportHandler handles medical report simplification requests
type ReportHandler struct {
	db         *gorm.DB
	simplifier *report.Simplifier
	storage    *storage.Client
}

// NewReportHandler creates a new report handler
func NewReportHandler(db *gorm.DB, simplifier *report.Simplifier, storageClient *storage.Client) *ReportHandler {
	return &ReportHandler{
		db:         db,
		simplifier: simplifier,
		storage:    storageClient,
	}
}

// Upload accepts a medical report as a PDF or a photo and returns a
// plain-language explanation alongside the extracted text.
func (h *ReportHandler) Upload(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "Report file is required")
	}

	backend := llm.ParseBackend(c.FormValue("ai_backend"))

	filename := strings.ToLower(fileHeader.Filename)
	switch {
	case strings.HasSuffix(filename, ".pdf"):
		return h.uploadPDF(c, userID, fileHeader, backend)
	case storage.IsImage(fileHeader.Filename):
		return h.uploadImage(c, userID, fileHeader, backend)
	default:
		return response.BadRequest(c, "Only PDF and image files are supported")
	}
}

func (h *ReportHandler) uploadPDF(c *fiber.Ctx, userID uint, fileHeader *multipart.FileHeader, backend llm.Backend) error {
	file, err := fileHeader.Open()
	if err != nil {
		return response.InternalServerError(c, "Failed to read uploaded file")
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return response.InternalServerError(c, "Failed to read uploaded file")
	}

	validation, err := pdfvalidation.ValidatePDFBytes(content, pdfvalidation.MedicalReportLimits)
	if err != nil {
		return response.InternalServerError(c, "Failed to validate PDF")
	}
	if !validation.Valid {
		return response.BadRequest(c, validation.Error)
	}

	result, err := h.simplifier.SimplifyPDF(c.Context(), content, backend)
	if err != nil {
		if errors.Is(err, report.ErrScannedPDF) {
			return response.BadRequest(c, "This PDF appears to be scanned. Please upload a photo of the report instead.")
		}
		return response.InternalServerError(c, "Failed to simplify report")
	}

	record := model.SimplifiedReport{
		UserID:                userID,
		OriginalFileName:      fileHeader.Filename,
		FileType:              "pdf",
		ExtractedText:         result.ExtractedText,
		SimplifiedExplanation: result.Simplified,
		AIModel:               string(result.Backend),
	}
	if err := h.db.Create(&record).Error; err != nil {
		return response.InternalServerError(c, "Failed to save report")
	}

	return response.Created(c, fiber.Map{
		"report":      record,
		"ai_degraded": result.Degraded,
	})
}

func (h *ReportHandler) uploadImage(c *fiber.Ctx, userID uint, fileHeader *multipart.FileHeader, backend llm.Backend) error {
	if fileHeader.Size > maxImageSize {
		return response.BadRequest(c, "Image exceeds the 10MB size limit")
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

	key := storage.GenerateKey(storage.PrefixMedicalReports, fileHeader.Filename)
	imageURL, err := h.storage.UploadBytes(c.Context(), key, imageData, contentType)
	if err != nil {
		return response.InternalServerError(c, "Failed to store report image")
	}

	result, err := h.simplifier.SimplifyImage(c.Context(), imageData, contentType, backend)
	if err != nil {
		if delErr := h.storage.Delete(c.Context(), key); delErr != nil {
			log.Printf("[report] failed to clean up image %s: %v", key, delErr)
		}
		return response.InternalServerError(c, "Failed to simplify report")
	}

	record := model.SimplifiedReport{
		UserID:                userID,
		OriginalFileName:      fileHeader.Filename,
		FileType:              "image",
		ImageURL:              imageURL,
		ImageKey:              key,
		ExtractedText:         result.ExtractedText,
		SimplifiedExplanation: result.Simplified,
		AIModel:               string(result.Backend),
	}
	if err := h.db.Create(&record).Error; err != nil {
		return response.InternalServerError(c, "Failed to save report")
	}

	return response.Created(c, fiber.Map{
		"report":      record,
		"ai_degraded": result.Degraded,
	})
}

// History lists the user's simplified reports, newest first, paginated
func (h *ReportHandler) History(c *fiber.Ctx) error {
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

	var total int64
	if err := h.db.Model(&model.SimplifiedReport{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count reports")
	}

	var reports []model.SimplifiedReport
	if err := h.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&reports).Error; err != nil {
		return response.InternalServerError(c, "Failed to load reports")
	}

	return response.Paginated(c, reports, response.CalculatePagination(page, limit, total))
}

// Get returns a single simplified report owned by the user
func (h *ReportHandler) Get(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid report id")
	}

	var record model.SimplifiedReport
	if err := h.db.Where("id = ? AND user_id = ?", id, userID).First(&record).Error; err != nil {
		return response.NotFound(c, "Report not found")
	}

	return response.Success(c, record)
}

// Delete removes a simplified report and its stored image, if any
func (h *ReportHandler) Delete(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid report id")
	}

	var record model.SimplifiedReport
	if err := h.db.Where("id = ? AND user_id = ?", id, userID).First(&record).Error; err != nil {
		return response.NotFound(c, "Report not found")
	}

	if record.ImageKey != "" {
		if err := h.storage.Delete(c.Context(), record.ImageKey); err != nil {
			log.Printf("[report] failed to delete stored image %s: %v", record.ImageKey, err)
		}
	}

	if err := h.db.Delete(&record).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete report")
	}

	return response.SuccessWithMessage(c, "Report deleted", nil)
}
