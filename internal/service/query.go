package service

import (
	"PdfVault/internal/authz"
	"PdfVault/internal/repo"
	"PdfVault/model"
	"fmt"
	"strings"
)

// likeEscaper neutralizes LIKE metacharacters so a search term matches
// literally. Without it "50%" would match any name containing "50".
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// FileWithTags is a file row hydrated with its resolved tag names.
type FileWithTags struct {
	File model.File
	Tags []string
}

// ScopedFiles composes the row set a caller may see, per role, with the
// optional free-text search and tag intersection filter applied.
//
// Viewers never search or filter: both parameters are silently ignored for
// them rather than rejected. An empty tag list means no filter. The tag
// filter keeps only files whose tag set contains every requested tag.
func ScopedFiles(caller authz.Caller, search string, tags []string) ([]FileWithTags, error) {
	query := repo.Db.Model(&model.File{})

	if caller.Level == model.LevelUser {
		query = query.Where("user_id = ?", caller.ID)
	}

	search = strings.TrimSpace(search)
	if search != "" && caller.Level != model.LevelViewer {
		pattern := fmt.Sprintf("%%%s%%", likeEscaper.Replace(strings.ToLower(search)))
		query = query.Where("LOWER(name) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\'", pattern, pattern)
	}

	var files []model.File
	if err := query.Order("id").Find(&files).Error; err != nil {
		return nil, ErrStorage(err)
	}

	results := make([]FileWithTags, 0, len(files))
	for _, file := range files {
		names, err := ResolveTagNames(file.ID)
		if err != nil {
			return nil, ErrStorage(err)
		}
		results = append(results, FileWithTags{File: file, Tags: names})
	}

	wanted := normalizeTagFilter(tags)
	if len(wanted) > 0 && caller.Level != model.LevelViewer {
		filtered := results[:0]
		for _, item := range results {
			if hasAllTags(item.Tags, wanted) {
				filtered = append(filtered, item)
			}
		}
		results = filtered
	}

	return results, nil
}

func normalizeTagFilter(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		name := NormalizeTagName(tag)
		if name == "" {
			continue
		}
		out = append(out, name)
	}
	return out
}

func hasAllTags(have, wanted []string) bool {
	set := make(map[string]struct{}, len(have))
	for _, name := range have {
		set[name] = struct{}{}
	}
	for _, name := range wanted {
		if _, ok := set[name]; !ok {
			return false
		}
	}
	return true
}
