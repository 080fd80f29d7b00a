package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/projecto-dev/projecto/db"
	"github.com/projecto-dev/projecto/internal/auth"
	"github.com/projecto-dev/projecto/internal/models"
	"github.com/projecto-dev/projecto/internal/types"
	"github.com/projecto-dev/projecto/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterUserRequest struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Frontend  bool   `json:"frontend"`
	Backend   bool   `json:"backend"`
}

type LoginUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// validate reports per-field problems so the client can attach messages to
// form inputs. An empty map means the request is acceptable.
func (r *RegisterUserRequest) validate() map[string]string {
	fieldErrors := make(map[string]string)

	if strings.TrimSpace(r.Email) == "" {
		fieldErrors["email"] = "Email is required"
	}
	if r.FirstName == "" {
		fieldErrors["firstname"] = "First name is required"
	}
	if r.LastName == "" {
		fieldErrors["lastname"] = "Last name is required"
	}
	if len(r.Password) < 8 {
		fieldErrors["password"] = "Password must be at least 8 characters"
	}

	return fieldErrors
}

func RegisterUser(ctx *gin.Context) {
	var body RegisterUserRequest

	if err := ctx.BindJSON(&body); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if fieldErrors := body.validate(); len(fieldErrors) > 0 {
		ctx.JSON(http.StatusBadRequest, fieldErrors)
		return
	}

	body.Email = strings.ToLower(strings.TrimSpace(body.Email))

	var existingUser models.User

	err := db.DB.Where("email = ?", body.Email).First(&existingUser).Error

	if err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"email": "Email already exists"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error when checking existing user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)

	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	newUser := models.User{
		Email:        body.Email,
		FirstName:    body.FirstName,
		LastName:     body.LastName,
		Frontend:     body.Frontend,
		Backend:      body.Backend,
		IsActive:     true,
		PasswordHash: string(passwordHash),
	}

	if err := db.DB.Create(&newUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusBadRequest, gin.H{"email": "Email already exists"})
			return
		}
		log.Printf("Failed to create user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, types.UserResponse{
		FirstName: newUser.FirstName,
		LastName:  newUser.LastName,
		Email:     newUser.Email,
		Frontend:  newUser.Frontend,
		Backend:   newUser.Backend,
	})
}

// ObtainTokenPair is the login endpoint: it exchanges credentials for an
// access/refresh token pair.
func ObtainTokenPair(ctx *gin.Context) {
	var body LoginUserRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	body.Email = strings.ToLower(strings.TrimSpace(body.Email))

	var user models.User

	err := db.DB.Where("email = ? AND is_active = ?", body.Email, true).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		log.Printf("Database error when fetching user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	pair, err := auth.GenerateTokenPair(user.ID, user.Email)

	if err != nil {
		log.Printf("Failed to generate token pair: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, pair)
}

// RefreshToken issues a fresh access token for a valid, non-revoked refresh
// token.
func RefreshToken(ctx *gin.Context) {
	var body RefreshTokenRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Refresh token is required"})
		return
	}

	claims, err := auth.VerifyRefreshToken(body.Refresh)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
		return
	}

	userIDFloat, ok := claims["user_id"].(float64)
	email, emailOK := claims["email"].(string)

	if !ok || !emailOK {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
		return
	}

	access, err := auth.GenerateAccessToken(uint(userIDFloat), email)

	if err != nil {
		log.Printf("Failed to generate access token: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"access": access})
}

// LogoutUser blacklists the supplied refresh token. 205 tells the client to
// reset its view, matching the original API contract.
func LogoutUser(ctx *gin.Context) {
	var body LogoutRequest

	if err := ctx.BindJSON(&body); err != nil || body.RefreshToken == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Refresh token required"})
		return
	}

	if err := auth.RevokeRefreshToken(body.RefreshToken); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired refresh token"})
		return
	}

	ctx.JSON(http.StatusResetContent, gin.H{"success": "Logged out"})
}

// Me returns the authenticated user's profile. The /home and /me routes
// share it.
func Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx.JSON(http.StatusOK, types.UserResponse{
		FirstName: currentUser.FirstName,
		LastName:  currentUser.LastName,
		Email:     currentUser.Email,
		Frontend:  currentUser.Frontend,
		Backend:   currentUser.Backend,
	})
}
