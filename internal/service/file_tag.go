package service

import (
	"PdfVault/internal/repo"
	"PdfVault/model"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NormalizeTagName lowercases and trims a tag name. Every creation path
// applies the same policy so two tags can never differ only by case.
func NormalizeTagName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ResolveTagNames returns the tag names linked to fileID in tag-id order.
// A file with no tags yields an empty slice, not an error.
func ResolveTagNames(fileID uint64) ([]string, error) {
	names := make([]string, 0)
	err := repo.Db.Model(&model.Tag{}).
		Joins("JOIN file_tag ON file_tag.tag_id = tag.id").
		Where("file_tag.file_id = ?", fileID).
		Order("tag.id").
		Pluck("tag.name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// ApplyTags links fileID to every name in tagNames, creating missing tags.
// Names are processed sequentially so tag creation order is deterministic;
// the pair insert is ignore-on-conflict, which also deduplicates repeated
// names in the input.
func ApplyTags(tx *gorm.DB, fileID uint64, tagNames []string) error {
	for _, raw := range tagNames {
		name := NormalizeTagName(raw)
		if name == "" {
			continue
		}
		var tag model.Tag
		err := tx.Where("name = ?", name).First(&tag).Error
		if err != nil {
			if err != gorm.ErrRecordNotFound {
				return err
			}
			tag = model.Tag{Name: name}
			if err := tx.Create(&tag).Error; err != nil {
				return err
			}
		}
		pair := model.FileTag{FileID: fileID, TagID: tag.ID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&pair).Error; err != nil {
			return err
		}
	}
	return nil
}

// ClearTags removes every tag link for fileID. Update flows call this
// before ApplyTags to realize replace semantics.
func ClearTags(tx *gorm.DB, fileID uint64) error {
	return tx.Where("file_id = ?", fileID).Delete(&model.FileTag{}).Error
}
