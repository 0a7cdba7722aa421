package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ceylonstyle/salon-backend/internal/httperr"
	"github.com/ceylonstyle/salon-backend/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

type UpdateMeRequest struct {
	Name              *string `json:"name"`
	Phone             *string `json:"phone"`
	Gender            *string `json:"gender"`
	Address           *string `json:"address"`
	City              *string `json:"city"`
	PreferredLanguage *string `json:"preferred_language"`
	ProfileImage      *string `json:"profile_image"`
}

func (h *MeHandler) Get(c *gin.Context) {
	userID := currentUserID(c)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Account not found.")
		return
	}

	resp := gin.H{"user": user}

	if user.Role == models.RoleCustomer {
		var profile models.CustomerProfile
		if err := h.db.Where("user_id = ?", userID).First(&profile).Error; err == nil {
			resp["profile"] = profile
		}
	}

	if user.Role == models.RoleSalonOwner {
		var salon models.Salon
		if err := h.db.Where("owner_id = ?", userID).First(&salon).Error; err == nil {
			resp["salon"] = salon
		}
	}

	c.JSON(http.StatusOK, resp)
}

func (h *MeHandler) Update(c *gin.Context) {
	userID := currentUserID(c)

	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Account not found.")
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Gender != nil {
		updates["gender"] = *req.Gender
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.PreferredLanguage != nil {
		updates["preferred_language"] = *req.PreferredLanguage
	}
	if req.ProfileImage != nil {
		updates["profile_image"] = *req.ProfileImage
	}

	if len(updates) > 0 {
		if err := h.db.Model(&user).Updates(updates).Error; err != nil {
			httperr.Internal(c, "failed_to_update_user", "Could not update account.")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
