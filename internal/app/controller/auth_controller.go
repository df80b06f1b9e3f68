package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rentease/rentease-backend/internal/app/service"
	apperrors "github.com/rentease/rentease-backend/internal/errors"
	"github.com/rentease/rentease-backend/internal/middleware"
)

type AuthController struct {
	authService          service.AuthService
	passwordResetService service.PasswordResetService
}

func NewAuthController(authService service.AuthService, passwordResetService service.PasswordResetService) *AuthController {
	return &AuthController{
		authService:          authService,
		passwordResetService: passwordResetService,
	}
}

type SignupRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required,len=6"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// Signup handles account creation
// POST /api/auth/signup
func (ctrl *AuthController) Signup(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid signup request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Name, email and password are required")
		return
	}

	if req.Password != req.ConfirmPassword {
		log.Warn("Signup failed: password mismatch", map[string]interface{}{
			"email": req.Email,
		})
		apperrors.BadRequest(c, apperrors.ValidationPasswordMismatch, "Passwords do not match")
		return
	}

	user, err := ctrl.authService.Signup(req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailAlreadyExists) {
			log.Warn("Signup failed: email already exists", map[string]interface{}{
				"email": req.Email,
			})
			apperrors.BadRequest(c, apperrors.AuthEmailAlreadyExists, "User already exists")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "signup user")
		return
	}

	log.Info("User signed up", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
	})
}

// Login verifies credentials and issues a token
// POST /api/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid login request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Email and password are required")
		return
	}

	user, token, err := ctrl.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			log.Warn("Login failed: invalid credentials", map[string]interface{}{
				"email": req.Email,
			})
			apperrors.BadRequest(c, apperrors.AuthInvalidCredentials, "Invalid email or password")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "login user")
		return
	}

	log.Info("User logged in", map[string]interface{}{
		"user_id": user.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

// ForgotPassword emails a one-time reset code
// POST /api/auth/forgot-password
func (ctrl *AuthController) ForgotPassword(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid forgot-password request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Email is required")
		return
	}

	if err := ctrl.passwordResetService.RequestReset(req.Email); err != nil {
		if errors.Is(err, service.ErrEmailNotFound) {
			apperrors.BadRequest(c, apperrors.AuthEmailNotFound, "Email not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "request password reset")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "OTP sent to your email",
	})
}

// ResetPassword verifies the code and sets the new password
// POST /api/auth/reset-password
func (ctrl *AuthController) ResetPassword(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid reset-password request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Email, code and new password are required")
		return
	}

	if err := ctrl.passwordResetService.ResetPassword(req.Email, req.OTP, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrInvalidResetCode) {
			apperrors.BadRequest(c, apperrors.AuthCodeInvalid, "Invalid or expired OTP")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "reset password")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password reset successful",
	})
}
