package controllers

import (
	"net/http"

	"agendapro-backend/config"
	"agendapro-backend/models"
	"agendapro-backend/utils"

	"github.com/gin-gonic/gin"
)

type UpdateProfileInput struct {
	Name            *string      `json:"name"`
	Phone           *string      `json:"phone"`
	BusinessName    *string      `json:"businessName"`
	BusinessAddress *string      `json:"businessAddress"`
	WorkingHours    models.JSONB `json:"workingHours"`
}

func GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":                  user.Name,
		"email":                 user.Email,
		"phone":                 user.Phone,
		"businessName":          user.BusinessName,
		"businessAddress":       user.BusinessAddress,
		"workingHours":          user.WorkingHours,
		"appointmentReminders":  user.AppointmentReminders,
		"whatsAppNotifications": user.WhatsAppNotifications,
		"smsNotifications":      user.SMSNotifications,
	})
}

func UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Phone != nil {
		if *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		user.Phone = *input.Phone
	}
	if input.BusinessName != nil {
		user.BusinessName = *input.BusinessName
	}
	if input.BusinessAddress != nil {
		user.BusinessAddress = *input.BusinessAddress
	}
	if input.WorkingHours != nil {
		user.WorkingHours = input.WorkingHours
	}

	if err := config.DB.Save(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

func UpdateNotificationSettings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input struct {
		AppointmentReminders  bool `json:"appointmentReminders"`
		WhatsAppNotifications bool `json:"whatsAppNotifications"`
		SMSNotifications      bool `json:"smsNotifications"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	if err := config.DB.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"appointment_reminders":  input.AppointmentReminders,
			"whatsapp_notifications": input.WhatsAppNotifications,
			"sms_notifications":      input.SMSNotifications,
		}).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update notification settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification settings updated"})
}

type UpdateReminderTemplateInput struct {
	IsActive *bool   `json:"isActive"`
	Message  *string `json:"message"`
}

func GetReminderTemplate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var template models.ReminderTemplate
	if err := config.DB.Where("user_id = ?", userID).First(&template).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Reminder template not found")
		return
	}

	c.JSON(http.StatusOK, template)
}

func UpdateReminderTemplate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input UpdateReminderTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	var template models.ReminderTemplate
	if err := config.DB.Where("user_id = ?", userID).First(&template).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Reminder template not found")
		return
	}

	if input.IsActive != nil {
		template.IsActive = *input.IsActive
	}
	if input.Message != nil {
		template.Message = *input.Message
	}

	if err := config.DB.Save(&template).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update reminder template")
		return
	}

	c.JSON(http.StatusOK, template)
}

// GetSecuritySettings returns the device lock state for the account. When
// the lock feature is disabled server-wide everything reads as off.
func GetSecuritySettings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	lockEnabled := user.LockEnabled && config.Security.LockAvailable

	c.JSON(http.StatusOK, gin.H{
		"lockAvailable":    config.Security.LockAvailable,
		"lockEnabled":      lockEnabled,
		"pinSet":           user.PinHash != "",
		"biometricEnabled": user.BiometricEnabled,
		"autoLockMinutes":  user.AutoLockMinutes,
	})
}

type UpdateSecurityInput struct {
	LockEnabled      *bool `json:"lockEnabled"`
	BiometricEnabled *bool `json:"biometricEnabled"`
	AutoLockMinutes  *int  `json:"autoLockMinutes" binding:"omitempty,min=1,max=120"`
}

func UpdateSecuritySettings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if !config.Security.LockAvailable {
		utils.RespondWithError(c, http.StatusForbidden, "Device lock is disabled")
		return
	}

	var input UpdateSecurityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	if input.LockEnabled != nil {
		if *input.LockEnabled && user.PinHash == "" {
			utils.RespondWithError(c, http.StatusBadRequest, "Set a PIN before enabling the lock")
			return
		}
		user.LockEnabled = *input.LockEnabled
	}
	if input.BiometricEnabled != nil {
		user.BiometricEnabled = *input.BiometricEnabled
	}
	if input.AutoLockMinutes != nil {
		user.AutoLockMinutes = *input.AutoLockMinutes
	}

	if err := config.DB.Save(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update security settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Security settings updated"})
}

type SetPinInput struct {
	Pin string `json:"pin" binding:"required,len=4,numeric"`
}

// SetPin stores a bcrypt hash of the 4-digit PIN. The plain PIN never
// persists anywhere.
func SetPin(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if !config.Security.LockAvailable {
		utils.RespondWithError(c, http.StatusForbidden, "Device lock is disabled")
		return
	}

	var input SetPinInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "PIN must be exactly 4 digits")
		return
	}

	hash, err := utils.HashPassword(input.Pin)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to hash PIN")
		return
	}

	if err := config.DB.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"pin_hash":     hash,
			"pin_attempts": 0,
		}).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save PIN")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "PIN updated"})
}

// pinLocked reports whether the failure count has exhausted the configured
// attempt budget. A budget of 0 disables the lockout.
func pinLocked(attempts int) bool {
	return config.Security.MaxPinAttempts > 0 && attempts >= config.Security.MaxPinAttempts
}

type VerifyPinInput struct {
	Pin string `json:"pin" binding:"required,len=4,numeric"`
}

func VerifyPin(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input VerifyPinInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "PIN must be exactly 4 digits")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	if pinLocked(user.PinAttempts) {
		utils.RespondWithError(c, http.StatusTooManyRequests, "Too many failed attempts, reset your PIN")
		return
	}

	if user.PinHash == "" || !utils.CheckPasswordHash(input.Pin, user.PinHash) {
		config.DB.Model(&user).Update("pin_attempts", user.PinAttempts+1)
		utils.RespondWithError(c, http.StatusUnauthorized, "Incorrect PIN")
		return
	}

	if user.PinAttempts > 0 {
		config.DB.Model(&user).Update("pin_attempts", 0)
	}

	c.JSON(http.StatusOK, gin.H{"valid": true})
}
