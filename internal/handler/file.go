package handler

import (
	"PdfVault/internal/dto"
	"PdfVault/internal/service"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// parseFileID reads a :fileID path parameter.
func parseFileID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("fileID"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file id"})
		return 0, false
	}
	return id, true
}

// splitTags parses a comma-separated tag field from a form.
func splitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

// ListFiles returns the caller's scoped file list with optional search and
// tag filter.
func ListFiles(c *gin.Context) {
	var req dto.FileListRequest
	// Both fields are optional, so a bare request body means no filter.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	items, err := service.ListFiles(c.Request.Context(), caller(c), req.Search, req.Tags)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, items)
}

// GetFile returns a single scoped file.
func GetFile(c *gin.Context) {
	id, valid := parseFileID(c)
	if !valid {
		return
	}
	item, err := service.GetFile(c.Request.Context(), caller(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, item)
}

// UploadFile accepts a multipart PDF upload with metadata and tags.
func UploadFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		name = fileHeader.Filename
	}

	blob, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "open upload failed"})
		return
	}
	defer blob.Close()

	item, err := service.UploadFile(c.Request.Context(), caller(c), service.UploadInput{
		Name:        name,
		Description: c.PostForm("description"),
		Tags:        splitTags(c.PostForm("tags")),
		Blob:        blob,
		Size:        fileHeader.Size,
		ContentType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, item)
}

// UpdateFile replaces a file's metadata and full tag set.
func UpdateFile(c *gin.Context) {
	var req dto.FileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	item, err := service.UpdateFile(c.Request.Context(), caller(c), req.FileID, req.Name, req.Description, req.Tags)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, item)
}

// DeleteFile removes a file row, its tag links and its blob.
func DeleteFile(c *gin.Context) {
	var req dto.FileDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if err := service.DeleteFile(c.Request.Context(), caller(c), req.FileID); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"file_id": req.FileID})
}

// DownloadFile streams a file's blob to the caller.
func DownloadFile(c *gin.Context) {
	id, valid := parseFileID(c)
	if !valid {
		return
	}
	object, info, fileName, err := service.OpenFileBlob(c.Request.Context(), caller(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	defer object.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", fileName))
	contentType := info.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	if info.Size > 0 {
		c.Header("Content-Length", strconv.FormatInt(info.Size, 10))
	}
	if _, err := io.Copy(c.Writer, object); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
