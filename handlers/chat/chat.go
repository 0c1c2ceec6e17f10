package chat

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/health-platform-api/model"
	"github.com/sahilchouksey/health-platform-api/services/llm"
	"github.com/sahilchouksey/health-platform-api/services/patient"
	"github.com/sahilchouksey/health-platform-api/utils/middleware"
	"github.com/sahilchouksey/health-platform-api/utils/response"
	"gorm.io/gorm"
)

// historyFetchLimit is how many stored messages feed the prompt window
const historyFetchLimit = 10

// maxMessageLength bounds a single chat message
const maxMessageLength = 4000

// ChatHandler handles health-assistant chat requests
type ChatHandler struct {
	db         *gorm.DB
	dispatcher *llm.Dispatcher
}

// NewChatHandler creates a new chat handler
func NewChatHandler(db *gorm.DB, dispatcher *llm.Dispatcher) *ChatHandler {
	return &ChatHandler{
		db:         db,
		dispatcher: dispatcher,
	}
}

// SendMessageRequest is an incoming chat message
type SendMessageRequest struct {
	Message   string `json:"message" validate:"required"`
	AIBackend string `json:"ai_backend,omitempty"`
}

// SendMessage persists the user turn, dispatches to the assistant, and
// persists the reply with its context snapshot.
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		return response.BadRequest(c, "Message is required")
	}
	if len(req.Message) > maxMessageLength {
		return response.BadRequest(c, "Message is too long")
	}

	userMessage := model.ChatMessage{
		UserID:  userID,
		Role:    model.RoleUser,
		Message: req.Message,
	}
	if err := h.db.Create(&userMessage).Error; err != nil {
		return response.InternalServerError(c, "Failed to save message")
	}

	// Prior turns, oldest first, excluding the turn just saved
	var prior []model.ChatMessage
	h.db.Where("user_id = ? AND id != ?", userID, userMessage.ID).
		Order("created_at DESC").
		Limit(historyFetchLimit).
		Find(&prior)

	history := make([]llm.HistoryTurn, 0, len(prior))
	for i := len(prior) - 1; i >= 0; i-- {
		history = append(history, llm.HistoryTurn{Role: prior[i].Role, Message: prior[i].Message})
	}

	snap := patient.Load(h.db, userID)
	result := h.dispatcher.Chat(c.Context(), req.Message, snap.Context, history, llm.ParseBackend(req.AIBackend))

	assistantMessage := model.ChatMessage{
		UserID:  userID,
		Role:    model.RoleAssistant,
		Message: result.Text,
		Context: snap.ContextMap(),
	}
	if err := h.db.Create(&assistantMessage).Error; err != nil {
		return response.InternalServerError(c, "Failed to save assistant reply")
	}

	return response.Success(c, fiber.Map{
		"user_message":      userMessage,
		"assistant_message": assistantMessage,
		"ai_degraded":       result.Degraded,
	})
}

// GetHistory returns the conversation, oldest first, paginated
func (h *ChatHandler) GetHistory(c *fiber.Ctx) error {
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
	if err := h.db.Model(&model.ChatMessage{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count messages")
	}

	var messages []model.ChatMessage
	if err := h.db.Where("user_id = ?", userID).
		Order("created_at ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&messages).Error; err != nil {
		return response.InternalServerError(c, "Failed to load messages")
	}

	return response.Paginated(c, messages, response.CalculatePagination(page, limit, total))
}

// ClearHistory deletes the entire conversation
func (h *ChatHandler) ClearHistory(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	result := h.db.Where("user_id = ?", userID).Delete(&model.ChatMessage{})
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to clear history")
	}

	return response.SuccessWithMessage(c, "Chat history cleared", fiber.Map{
		"deleted": result.RowsAffected,
	})
}
