package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"agendapro-backend/config"
	"agendapro-backend/models"
	"agendapro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Email           string       `json:"email" binding:"required,email"`
	Phone           string       `json:"phone"`
	Name            string       `json:"name" binding:"required"`
	Password        string       `json:"password" binding:"required,min=8"`
	BusinessName    string       `json:"businessName" binding:"required"`
	BusinessAddress string       `json:"businessAddress"`
	WorkingHours    models.JSONB `json:"workingHours"`
}

type LoginInput struct {
	Identifier string `json:"identifier" binding:"required"` // Can be email or phone
	Password   string `json:"password" binding:"required"`
}

func Register(c *gin.Context) {
	var input RegisterInput

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Check if email or phone already exists
	var existingUser models.User
	result := config.DB.Where("email = ? OR (phone <> '' AND phone = ?)", input.Email, input.Phone).First(&existingUser)

	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email or phone already registered")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	newUser := models.User{
		Email:           input.Email,
		Phone:           input.Phone,
		Name:            input.Name,
		Password:        input.Password, // Will be hashed in BeforeCreate hook
		BusinessName:    input.BusinessName,
		BusinessAddress: input.BusinessAddress,
		WorkingHours:    input.WorkingHours,
		AutoLockMinutes: config.Security.DefaultAutoLockMinutes,
	}

	// Set default working hours if not provided
	if newUser.WorkingHours == nil {
		newUser.WorkingHours = models.JSONB{
			"monday":    map[string]interface{}{"open": "09:00", "close": "20:00", "closed": false},
			"tuesday":   map[string]interface{}{"open": "09:00", "close": "20:00", "closed": false},
			"wednesday": map[string]interface{}{"open": "09:00", "close": "20:00", "closed": false},
			"thursday":  map[string]interface{}{"open": "09:00", "close": "20:00", "closed": false},
			"friday":    map[string]interface{}{"open": "09:00", "close": "20:00", "closed": false},
			"saturday":  map[string]interface{}{"open": "09:00", "close": "21:00", "closed": false},
			"sunday":    map[string]interface{}{"open": "10:00", "close": "19:00", "closed": true},
		}
	}

	if err := config.DB.Create(&newUser).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	if err := createDefaultReminderTemplate(newUser.ID); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create reminder template")
		return
	}

	token, err := utils.GenerateToken(newUser.ID.String())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	expiryHours := 24
	maxAge := expiryHours * 3600

	c.SetCookie(
		"token",
		token,
		maxAge,
		"/",
		"",
		true,
		true,
	)

	// Return response without password
	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   token,
		"user": gin.H{
			"id":           newUser.ID,
			"email":        newUser.Email,
			"phone":        newUser.Phone,
			"businessName": newUser.BusinessName,
		},
	})
}

func Login(c *gin.Context) {
	var input LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	// Clean identifier
	identifier := strings.TrimSpace(input.Identifier)

	// Determine if identifier is email or phone
	var user models.User
	query := config.DB.Where("email = ? OR phone = ?", identifier, identifier)
	result := query.First(&user)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Check password
	if !utils.CheckPasswordHash(input.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(user.ID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	// Update last login
	now := time.Now()
	config.DB.Model(&user).Update("last_login", &now)

	expiryHours := 24
	maxAge := expiryHours * 3600

	c.SetCookie(
		"token",
		token,
		maxAge,
		"/",
		"",
		true,
		true,
	)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":           user.ID,
			"email":        user.Email,
			"phone":        user.Phone,
			"businessName": user.BusinessName,
		},
	})
}

func createDefaultReminderTemplate(userID uuid.UUID) error {
	template := models.ReminderTemplate{
		ID:      uuid.New(),
		UserID:  userID,
		Message: "Hola [ClientName], te recordamos tu cita de [Service] mañana a las [Time]. ¡Te esperamos!",
	}
	return config.DB.Create(&template).Error
}

func Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	// Return user info
	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":           user.ID,
			"email":        user.Email,
			"name":         user.Name,
			"businessName": user.BusinessName,
		},
	})
}
