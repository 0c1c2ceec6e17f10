package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/health-platform-api/model"
	authutil "github.com/sahilchouksey/health-platform-api/utils/auth"
	"github.com/sahilchouksey/health-platform-api/utils/helpers"
	"github.com/sahilchouksey/health-platform-api/utils/response"
	"github.com/sahilchouksey/health-platform-api/utils/validation"
)

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Register handles user registration
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Email = helpers.NormalizeEmail(req.Email)

	// Validate request
	if req.Email == "" || req.Password == "" {
		return response.BadRequest(c, "Email and password are required")
	}
	if !validation.ValidateEmail(req.Email) {
		return response.BadRequest(c, "Invalid email format")
	}
	if ok, problems := validation.ValidatePassword(req.Password); !ok {
		return response.BadRequest(c, problems[0])
	}

	// Check if user already exists
	var existingUser model.User
	if err := h.db.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
		return response.Conflict(c, "User with this email already exists")
	}

	// Hash password
	hashedPassword, err := authutil.HashPassword(req.Password)
	if err != nil {
		return response.InternalServerError(c, "Failed to process password")
	}

	// Verification token is returned out-of-band by the email pipeline;
	// here it is only persisted.
	verificationToken, err := helpers.GenerateRandomToken(32)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate verification token")
	}

	user := model.User{
		Email:             req.Email,
		PasswordHash:      hashedPassword,
		VerificationToken: &verificationToken,
	}

	if err := h.db.Create(&user).Error; err != nil {
		return response.InternalServerError(c, "Failed to create user")
	}

	accessToken, _, err := h.jwtManager.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate access token")
	}

	refreshToken, _, err := h.jwtManager.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate refresh token")
	}

	res := TokenPairResponse{
		User:         newUserResponse(&user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    accessTokenTTLSeconds,
	}

	return response.Created(c, res)
}
