package service

import (
	"PdfVault/internal/authz"
	"PdfVault/internal/repo"
	"PdfVault/model"
	"PdfVault/utils"
	"context"

	"gorm.io/gorm"
)

// TagUsage is the admin view of a tag: how many files reference it and
// which ones.
type TagUsage struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	UsageCount int64  `json:"usage_count"`
	FileNames  string `json:"file_names"`
}

// ListTagNames returns every tag name, sorted. Available to any
// authenticated caller.
func ListTagNames(ctx context.Context) ([]string, error) {
	if cached, ok := utils.GetTagNamesFromCache(ctx); ok {
		return cached, nil
	}
	names := make([]string, 0)
	if err := repo.Db.Model(&model.Tag{}).Order("name").Pluck("name", &names).Error; err != nil {
		return nil, ErrStorage(err)
	}
	utils.SetTagNamesToCache(ctx, names)
	return names, nil
}

// ListTagUsage returns tags with usage counts and the names of referencing
// files. Admin only.
func ListTagUsage(caller authz.Caller) ([]TagUsage, error) {
	if !authz.Decide(caller, authz.OpTagUsage, caller.ID) {
		return nil, ErrAuthorization("tag usage requires admin")
	}
	rows := make([]TagUsage, 0)
	err := repo.Db.Model(&model.Tag{}).
		Select("tag.id, tag.name, COUNT(file_tag.file_id) AS usage_count, COALESCE(GROUP_CONCAT(file.name), '') AS file_names").
		Joins("LEFT JOIN file_tag ON file_tag.tag_id = tag.id").
		Joins("LEFT JOIN file ON file.id = file_tag.file_id").
		Group("tag.id").
		Order("tag.name").
		Scan(&rows).Error
	if err != nil {
		return nil, ErrStorage(err)
	}
	return rows, nil
}

// CreateTag creates a tag with usage zero. Admin only; the name is
// normalized before the duplicate check.
func CreateTag(caller authz.Caller, name string) (*model.Tag, error) {
	if !authz.Decide(caller, authz.OpTagMutate, caller.ID) {
		return nil, ErrAuthorization("tag management requires admin")
	}
	name = NormalizeTagName(name)
	if name == "" {
		return nil, ErrValidation("tag name required")
	}
	var existing model.Tag
	err := repo.Db.Where("name = ?", name).First(&existing).Error
	if err == nil {
		return nil, ErrConflict("tag %q already exists", name)
	}
	if err != gorm.ErrRecordNotFound {
		return nil, ErrStorage(err)
	}
	tag := model.Tag{Name: name}
	if err := repo.Db.Create(&tag).Error; err != nil {
		return nil, ErrStorage(err)
	}
	utils.InvalidateTagNamesCache(context.Background())
	return &tag, nil
}

// RenameTag renames a tag, rejecting conflicts with any other tag.
func RenameTag(caller authz.Caller, id uint64, name string) (*model.Tag, error) {
	if !authz.Decide(caller, authz.OpTagMutate, caller.ID) {
		return nil, ErrAuthorization("tag management requires admin")
	}
	name = NormalizeTagName(name)
	if name == "" {
		return nil, ErrValidation("tag name required")
	}
	var tag model.Tag
	if err := repo.Db.Where("id = ?", id).First(&tag).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound("tag not found")
		}
		return nil, ErrStorage(err)
	}
	var other model.Tag
	err := repo.Db.Where("name = ? AND id <> ?", name, id).First(&other).Error
	if err == nil {
		return nil, ErrConflict("tag %q already exists", name)
	}
	if err != gorm.ErrRecordNotFound {
		return nil, ErrStorage(err)
	}
	if err := repo.Db.Model(&tag).Update("name", name).Error; err != nil {
		return nil, ErrStorage(err)
	}
	tag.Name = name
	utils.InvalidateTagNamesCache(context.Background())
	return &tag, nil
}

// DeleteTag removes a tag. A tag still referenced by any file is never
// deleted; the caller gets a conflict instead.
func DeleteTag(caller authz.Caller, id uint64) error {
	if !authz.Decide(caller, authz.OpTagMutate, caller.ID) {
		return ErrAuthorization("tag management requires admin")
	}
	var tag model.Tag
	if err := repo.Db.Where("id = ?", id).First(&tag).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound("tag not found")
		}
		return ErrStorage(err)
	}
	var usage int64
	if err := repo.Db.Model(&model.FileTag{}).Where("tag_id = ?", id).Count(&usage).Error; err != nil {
		return ErrStorage(err)
	}
	if usage > 0 {
		return ErrConflict("tag is in use by %d file(s)", usage)
	}
	if err := repo.Db.Delete(&tag).Error; err != nil {
		return ErrStorage(err)
	}
	utils.InvalidateTagNamesCache(context.Background())
	return nil
}
