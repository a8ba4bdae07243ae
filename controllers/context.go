package controllers

import (
	"net/http"

	"agendapro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentUserID pulls the authenticated account id that AuthMiddleware
// stashed in the context. On failure it has already written the response.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return uuid.Nil, false
	}

	s, ok := raw.(string)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid user ID claim")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(s)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return uuid.Nil, false
	}
	return id, true
}
