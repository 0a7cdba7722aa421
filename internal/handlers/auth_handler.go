package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ceylonstyle/salon-backend/internal/config"
	"github.com/ceylonstyle/salon-backend/internal/httperr"
	"github.com/ceylonstyle/salon-backend/internal/middleware"
	"github.com/ceylonstyle/salon-backend/internal/models"
	"github.com/ceylonstyle/salon-backend/internal/validators"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type CreateAdminRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	SetupKey string `json:"setup_key" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	role := req.Role
	switch role {
	case "":
		role = models.RoleCustomer
	case models.RoleCustomer, models.RoleSalonOwner:
	default:
		httperr.BadRequest(c, "invalid_role", "Role must be customer or salon_owner.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not look valid.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not process password.")
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         role,
		IsActive:     true,
	}

	if err := h.db.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			httperr.Conflict(c, "email_already_registered", "An account with this email already exists.")
			return
		}
		httperr.Internal(c, "failed_to_create_user", "Could not create account.")
		return
	}

	if role == models.RoleCustomer {
		profile := models.CustomerProfile{
			UserID:           user.ID,
			SubscriptionTier: models.TierFree,
		}
		if err := h.db.Create(&profile).Error; err != nil {
			httperr.Internal(c, "failed_to_create_profile", "Could not create account.")
			return
		}
	}

	accessToken, refreshToken, err := h.generateTokenPair(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not issue tokens.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":          publicUser(&user),
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Email or password is incorrect.")
			return
		}
		httperr.Internal(c, "internal_error", "Could not sign in.")
		return
	}

	if !user.IsActive {
		httperr.Forbidden(c, "account_disabled", "This account has been disabled.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Email or password is incorrect.")
		return
	}

	accessToken, refreshToken, err := h.generateTokenPair(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not issue tokens.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":          publicUser(&user),
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	token, err := jwt.Parse(req.RefreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(h.config.RefreshTokenSecret), nil
	})
	if err != nil || !token.Valid {
		httperr.Unauthorized(c, "invalid_refresh_token", "Refresh token is invalid or expired.")
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		httperr.Unauthorized(c, "invalid_refresh_token", "Refresh token is invalid or expired.")
		return
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		httperr.Unauthorized(c, "invalid_refresh_token", "Refresh token is invalid or expired.")
		return
	}

	var user models.User
	if err := h.db.First(&user, uint(sub)).Error; err != nil || !user.IsActive {
		httperr.Unauthorized(c, "invalid_refresh_token", "Refresh token is invalid or expired.")
		return
	}

	accessToken, refreshToken, err := h.generateTokenPair(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not issue tokens.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

// CreateAdmin bootstraps an admin account. Guarded by the setup key, so
// it is a no-op on deployments that never configure one.
func (h *AuthHandler) CreateAdmin(c *gin.Context) {
	var req CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if h.config.AdminSetupKey == "" || req.SetupKey != h.config.AdminSetupKey {
		httperr.Forbidden(c, "invalid_setup_key", "Setup key is not valid.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not process password.")
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hashed),
		Role:         models.RoleAdmin,
		IsActive:     true,
	}

	if err := h.db.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			httperr.Conflict(c, "email_already_registered", "An account with this email already exists.")
			return
		}
		httperr.Internal(c, "failed_to_create_user", "Could not create account.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": publicUser(&user)})
}

// --------- JWT ---------

func (h *AuthHandler) generateTokenPair(user *models.User) (string, string, error) {
	now := time.Now()

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  now.Add(accessTokenTTL).Unix(),
		"iat":  now.Unix(),
	})
	accessToken, err := access.SignedString([]byte(h.config.JWTSecret))
	if err != nil {
		return "", "", err
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": user.ID,
		"exp": now.Add(refreshTokenTTL).Unix(),
		"iat": now.Unix(),
	})
	refreshToken, err := refresh.SignedString([]byte(h.config.RefreshTokenSecret))
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// --------- Helpers ---------

func publicUser(user *models.User) gin.H {
	return gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"phone": user.Phone,
		"role":  user.Role,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func currentUserID(c *gin.Context) uint {
	return c.MustGet(middleware.ContextUserID).(uint)
}

func currentUserRole(c *gin.Context) string {
	return c.GetString(middleware.ContextUserRole)
}
