package service

import (
	"PdfVault/config"
	"PdfVault/internal/authz"
	"PdfVault/internal/dto"
	"PdfVault/internal/repo"
	"PdfVault/internal/storage"
	"PdfVault/internal/task"
	"PdfVault/model"
	"PdfVault/utils"
	"context"
	"io"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UploadInput carries everything needed to create a file record.
type UploadInput struct {
	Name        string
	Description string
	Tags        []string
	Blob        io.Reader
	Size        int64
	ContentType string
}

// projectFile serializes a hydrated file for the caller's role. Viewers get
// the minimal projection: no description, file type, size or owner.
func projectFile(caller authz.Caller, item FileWithTags) dto.FileItem {
	out := dto.FileItem{
		ID:        item.File.ID,
		Name:      item.File.Name,
		CreatedAt: item.File.CreatedAt,
		Tags:      item.Tags,
	}
	if caller.Level == model.LevelViewer {
		return out
	}
	out.Description = item.File.Description
	out.FileType = item.File.FileType
	out.Size = item.File.Size
	out.UserID = item.File.UserID
	return out
}

// ListFiles returns the scoped, filtered, projected file list for a caller.
func ListFiles(ctx context.Context, caller authz.Caller, search string, tags []string) ([]dto.FileItem, error) {
	tagsKey := strings.Join(normalizeTagFilter(tags), ",")
	if cached, ok := utils.GetFileListFromCache(ctx, caller.ID, caller.Level, search, tagsKey); ok {
		return cached, nil
	}

	rows, err := ScopedFiles(caller, search, tags)
	if err != nil {
		return nil, err
	}
	items := make([]dto.FileItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, projectFile(caller, row))
	}

	utils.SetFileListToCache(ctx, caller.ID, caller.Level, search, tagsKey, items)
	return items, nil
}

// GetFile returns a single scoped row with tags and a presigned access URL.
func GetFile(ctx context.Context, caller authz.Caller, fileID uint64) (*dto.FileItem, error) {
	var file model.File
	if err := repo.Db.Where("id = ?", fileID).First(&file).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound("file not found")
		}
		return nil, ErrStorage(err)
	}
	if !authz.Decide(caller, authz.OpFileRead, file.UserID) {
		return nil, ErrAuthorization("no access to this file")
	}
	tags, err := ResolveTagNames(file.ID)
	if err != nil {
		return nil, ErrStorage(err)
	}
	item := projectFile(caller, FileWithTags{File: file, Tags: tags})
	item.URL = accessURL(ctx, file)
	return &item, nil
}

// accessURL builds a presigned download URL; empty when the store is
// unavailable. Never fatal to the request.
func accessURL(ctx context.Context, file model.File) string {
	if storage.Default == nil {
		return ""
	}
	url, err := storage.Default.PresignedGetObjectWithResponse(
		ctx,
		config.AppConfig.BucketName,
		file.FilePath,
		config.AppConfig.PresignExpiry,
		map[string]string{
			"response-content-disposition": "attachment; filename=\"" + utils.SanitizeHeaderFilename(file.Name) + "\"",
		},
	)
	if err != nil {
		log.Printf("presign object %s failed: %v", file.FilePath, err)
		return ""
	}
	return url
}

// UploadFile persists the blob, inserts the file row and attaches tags in
// one transaction, then returns the hydrated record.
func UploadFile(ctx context.Context, caller authz.Caller, in UploadInput) (*dto.FileItem, error) {
	if !authz.Decide(caller, authz.OpFileCreate, caller.ID) {
		return nil, ErrAuthorization("viewers cannot upload files")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrValidation("file name required")
	}
	if in.ContentType != "application/pdf" && !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		return nil, ErrValidation("only PDF files are accepted")
	}
	if in.Size <= 0 {
		return nil, ErrValidation("empty file")
	}
	if max := config.AppConfig.MaxUploadBytes; max > 0 && in.Size > max {
		return nil, ErrValidation("file exceeds upload limit")
	}

	objectName := uuid.NewString() + "_" + utils.SanitizeHeaderFilename(name)
	bucket := config.AppConfig.BucketName
	if storage.Default == nil {
		return nil, ErrStorage(nil)
	}
	if err := storage.Default.PutObject(ctx, bucket, objectName, in.Blob, in.Size, storage.PutOptions{
		ContentType: in.ContentType,
	}); err != nil {
		return nil, ErrStorage(err)
	}

	file := model.File{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		FilePath:    objectName,
		FileType:    in.ContentType,
		Size:        in.Size,
		UserID:      caller.ID,
	}
	err := repo.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&file).Error; err != nil {
			return err
		}
		return ApplyTags(tx, file.ID, in.Tags)
	})
	if err != nil {
		// The blob is already stored; hand it to the cleanup worker so a
		// failed insert does not leak objects.
		if qErr := task.EnqueueBlobCleanup(ctx, bucket, objectName); qErr != nil {
			log.Printf("enqueue blob cleanup for %s failed: %v", objectName, qErr)
		}
		return nil, ErrStorage(err)
	}

	utils.InvalidateFileListCache(ctx)
	utils.InvalidateTagNamesCache(ctx)

	tags, err := ResolveTagNames(file.ID)
	if err != nil {
		return nil, ErrStorage(err)
	}
	item := projectFile(caller, FileWithTags{File: file, Tags: tags})
	item.URL = accessURL(ctx, file)
	return &item, nil
}

// UpdateFile replaces name/description (falling back to the existing value
// when blank) and the full tag set.
func UpdateFile(ctx context.Context, caller authz.Caller, fileID uint64, name, description string, tags []string) (*dto.FileItem, error) {
	var file model.File
	if err := repo.Db.Where("id = ?", fileID).First(&file).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound("file not found")
		}
		return nil, ErrStorage(err)
	}
	if !authz.Decide(caller, authz.OpFileUpdate, file.UserID) {
		return nil, ErrAuthorization("only the owner or an admin may update a file")
	}

	if trimmed := strings.TrimSpace(name); trimmed != "" {
		file.Name = trimmed
	}
	if trimmed := strings.TrimSpace(description); trimmed != "" {
		file.Description = trimmed
	}

	err := repo.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.File{}).Where("id = ?", file.ID).
			Updates(map[string]interface{}{
				"name":        file.Name,
				"description": file.Description,
			}).Error; err != nil {
			return err
		}
		if err := ClearTags(tx, file.ID); err != nil {
			return err
		}
		return ApplyTags(tx, file.ID, tags)
	})
	if err != nil {
		return nil, ErrStorage(err)
	}

	utils.InvalidateFileListCache(ctx)
	utils.InvalidateTagNamesCache(ctx)

	resolved, err := ResolveTagNames(file.ID)
	if err != nil {
		return nil, ErrStorage(err)
	}
	item := projectFile(caller, FileWithTags{File: file, Tags: resolved})
	return &item, nil
}

// DeleteFile removes the row and its junction rows, then deletes the blob
// best-effort. A failed blob delete is logged and queued for the cleanup
// worker; it never fails the request.
func DeleteFile(ctx context.Context, caller authz.Caller, fileID uint64) error {
	var file model.File
	if err := repo.Db.Where("id = ?", fileID).First(&file).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound("file not found")
		}
		return ErrStorage(err)
	}
	if !authz.Decide(caller, authz.OpFileDelete, file.UserID) {
		return ErrAuthorization("only the owner or an admin may delete a file")
	}

	err := repo.Db.Transaction(func(tx *gorm.DB) error {
		if err := ClearTags(tx, file.ID); err != nil {
			return err
		}
		return tx.Delete(&file).Error
	})
	if err != nil {
		return ErrStorage(err)
	}

	removeBlob(ctx, config.AppConfig.BucketName, file.FilePath)
	utils.InvalidateFileListCache(ctx)
	return nil
}

// OpenFileBlob opens a file's blob for streaming, gated like any other
// read. The returned name is header-safe.
func OpenFileBlob(ctx context.Context, caller authz.Caller, fileID uint64) (io.ReadCloser, storage.ObjectInfo, string, error) {
	var file model.File
	if err := repo.Db.Where("id = ?", fileID).First(&file).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, storage.ObjectInfo{}, "", ErrNotFound("file not found")
		}
		return nil, storage.ObjectInfo{}, "", ErrStorage(err)
	}
	if !authz.Decide(caller, authz.OpFileRead, file.UserID) {
		return nil, storage.ObjectInfo{}, "", ErrAuthorization("no access to this file")
	}
	if storage.Default == nil {
		return nil, storage.ObjectInfo{}, "", ErrStorage(nil)
	}
	object, info, err := storage.Default.GetObject(ctx, config.AppConfig.BucketName, file.FilePath)
	if err != nil {
		return nil, storage.ObjectInfo{}, "", ErrStorage(err)
	}
	return object, info, utils.SanitizeHeaderFilename(file.Name), nil
}

// removeBlob deletes an object best-effort, falling back to the cleanup
// queue when the store rejects the delete.
func removeBlob(ctx context.Context, bucket, object string) {
	if object == "" {
		return
	}
	if storage.Default != nil {
		if err := storage.Default.RemoveObject(ctx, bucket, object); err == nil {
			return
		} else {
			log.Printf("remove object %s failed: %v", object, err)
		}
	}
	if err := task.EnqueueBlobCleanup(ctx, bucket, object); err != nil {
		log.Printf("enqueue blob cleanup for %s failed: %v", object, err)
	}
}
