package handler

import (
	"PdfVault/internal/dto"
	"PdfVault/internal/service"
	"PdfVault/model"
	"PdfVault/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Login authenticates a user and returns a token.
func Login(c *gin.Context) {
	var loginRequest dto.LoginRequest
	if err := c.ShouldBind(&loginRequest); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	var user *model.User
	var err error
	if user, err = service.IsExist(loginRequest.Username); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user not found"})
		return
	}
	if !user.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "account not activated"})
		return
	}
	if err = service.CheckPassword(loginRequest.Username, loginRequest.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password error"})
		return
	}
	token, err := utils.GenerateToken(user.ID, user.UserName, user.Level)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "success",
		"token":   token,
		"user":    user,
	})
}
