package handler

import (
	"PdfVault/internal/dto"
	"PdfVault/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListTags returns the flat sorted tag name list.
func ListTags(c *gin.Context) {
	names, err := service.ListTagNames(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, names)
}

// ListTagUsage returns tags with usage counts and referencing file names.
func ListTagUsage(c *gin.Context) {
	rows, err := service.ListTagUsage(caller(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, rows)
}

// CreateTag creates a tag.
func CreateTag(c *gin.Context) {
	var req dto.TagCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	tag, err := service.CreateTag(caller(c), req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, tag)
}

// RenameTag renames a tag.
func RenameTag(c *gin.Context) {
	var req dto.TagRenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	tag, err := service.RenameTag(caller(c), req.TagID, req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, tag)
}

// DeleteTag deletes an unused tag.
func DeleteTag(c *gin.Context) {
	var req dto.TagDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if err := service.DeleteTag(caller(c), req.TagID); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"tag_id": req.TagID})
}
