package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/health-platform-api/model"
	"github.com/sahilchouksey/health-platform-api/utils/helpers"
	"github.com/sahilchouksey/health-platform-api/utils/middleware"
	"github.com/sahilchouksey/health-platform-api/utils/response"
)

// VerifyEmail marks the account verified using the token from the URL
func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return response.BadRequest(c, "Verification token is required")
	}

	var user model.User
	if err := h.db.Where("verification_token = ?", token).First(&user).Error; err != nil {
		return response.BadRequest(c, "Invalid verification token")
	}

	if err := h.db.Model(&user).Updates(map[string]interface{}{
		"email_verified":     true,
		"verification_token": nil,
	}).Error; err != nil {
		return response.InternalServerError(c, "Failed to verify email")
	}

	return response.SuccessWithMessage(c, "Email verified successfully", nil)
}

// ResendVerification issues a fresh verification token
func (h *AuthHandler) ResendVerification(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	var user model.User
	if err := h.db.First(&user, userID).Error; err != nil {
		return response.NotFound(c, "User not found")
	}

	if user.EmailVerified {
		return response.BadRequest(c, "Email is already verified")
	}

	token, err := helpers.GenerateRandomToken(32)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate verification token")
	}

	if err := h.db.Model(&user).UpdateColumn("verification_token", token).Error; err != nil {
		return response.InternalServerError(c, "Failed to store verification token")
	}

	return response.SuccessWithMessage(c, "Verification email sent", nil)
}
