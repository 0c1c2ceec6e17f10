package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/health-platform-api/model"
	authutil "github.com/sahilchouksey/health-platform-api/utils/auth"
	"github.com/sahilchouksey/health-platform-api/utils/helpers"
	"github.com/sahilchouksey/health-platform-api/utils/middleware"
	"github.com/sahilchouksey/health-platform-api/utils/response"
	"github.com/sahilchouksey/health-platform-api/utils/validation"
)

// resetTokenTTL bounds how long a password reset link stays valid
const resetTokenTTL = time.Hour

// UpdatePasswordRequest changes the password of a logged-in user
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// UpdatePassword changes the authenticated user's password
func (h *AuthHandler) UpdatePassword(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	var req UpdatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return response.BadRequest(c, "Current and new password are required")
	}
	if ok, problems := validation.ValidatePassword(req.NewPassword); !ok {
		return response.BadRequest(c, problems[0])
	}

	var user model.User
	if err := h.db.First(&user, userID).Error; err != nil {
		return response.NotFound(c, "User not found")
	}

	if err := authutil.VerifyPassword(user.PasswordHash, req.CurrentPassword); err != nil {
		return response.Unauthorized(c, "Current password is incorrect")
	}

	hashed, err := authutil.HashPassword(req.NewPassword)
	if err != nil {
		return response.InternalServerError(c, "Failed to process password")
	}

	if err := h.db.Model(&user).UpdateColumn("password_hash", hashed).Error; err != nil {
		return response.InternalServerError(c, "Failed to update password")
	}

	return response.SuccessWithMessage(c, "Password updated successfully", nil)
}

// ForgotPasswordRequest starts a password reset flow
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ForgotPassword issues a time-limited reset token. The response is the
// same whether or not the account exists.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Email = helpers.NormalizeEmail(req.Email)
	if !validation.ValidateEmail(req.Email) {
		return response.BadRequest(c, "Invalid email format")
	}

	const acknowledgement = "If an account exists for that email, a reset link has been sent"

	var user model.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return response.SuccessWithMessage(c, acknowledgement, nil)
	}

	token, err := helpers.GenerateRandomToken(32)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate reset token")
	}

	expiry := time.Now().Add(resetTokenTTL)
	if err := h.db.Model(&user).Updates(map[string]interface{}{
		"reset_token":        token,
		"reset_token_expiry": expiry,
	}).Error; err != nil {
		return response.InternalServerError(c, "Failed to store reset token")
	}

	return response.SuccessWithMessage(c, acknowledgement, nil)
}

// ResetPasswordRequest completes a password reset flow
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// ResetPassword sets a new password using a reset token from the URL
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return response.BadRequest(c, "Reset token is required")
	}

	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if ok, problems := validation.ValidatePassword(req.NewPassword); !ok {
		return response.BadRequest(c, problems[0])
	}

	var user model.User
	if err := h.db.Where("reset_token = ? AND reset_token_expiry > ?", token, time.Now()).
		First(&user).Error; err != nil {
		return response.BadRequest(c, "Invalid or expired reset token")
	}

	hashed, err := authutil.HashPassword(req.NewPassword)
	if err != nil {
		return response.InternalServerError(c, "Failed to process password")
	}

	if err := h.db.Model(&user).Updates(map[string]interface{}{
		"password_hash":      hashed,
		"reset_token":        nil,
		"reset_token_expiry": nil,
	}).Error; err != nil {
		return response.InternalServerError(c, "Failed to reset password")
	}

	return response.SuccessWithMessage(c, "Password reset successfully", nil)
}
