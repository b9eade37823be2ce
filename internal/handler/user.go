package handler

import (
	"PdfVault/internal/dto"
	"PdfVault/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListUsers returns all users. Admin only.
func ListUsers(c *gin.Context) {
	users, err := service.ListUsers(caller(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, users)
}

// GetSelf returns the caller's own record.
func GetSelf(c *gin.Context) {
	user, err := service.GetUserByID(caller(c).ID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, user)
}

// CreateUser creates a user with an explicit level. Admin only.
func CreateUser(c *gin.Context) {
	var req dto.UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	user, err := service.AdminCreateUser(caller(c), req.Username, req.Email, req.Password, req.Level)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, user)
}

// UpdateUser updates a user; non-admins may only change their own
// username and email.
func UpdateUser(c *gin.Context) {
	var req dto.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	user, err := service.UpdateUser(caller(c), req.UserID, req.Username, req.Email, req.Level)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, user)
}

// DeleteUser removes a user and their files. Admin only; self-deletion is
// always rejected.
func DeleteUser(c *gin.Context) {
	var req dto.UserDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if err := service.DeleteUser(c.Request.Context(), caller(c), req.UserID); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"user_id": req.UserID})
}
