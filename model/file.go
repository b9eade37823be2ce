package model

import "time"

type File struct {
	ID uint64 `gorm:"primaryKey" json:"id"`

	Name string `gorm:"column:name;size:255;not null" json:"name"`

	Description string `gorm:"column:description;size:1000;not null;default:''" json:"description,omitempty"`

	// FilePath is the object name of the blob in the object store.
	FilePath string `gorm:"column:file_path;size:512;not null" json:"-"`

	FileType string `gorm:"column:file_type;size:128;not null;default:''" json:"file_type,omitempty"`

	Size int64 `gorm:"column:size;not null;default:0" json:"size,omitempty"`

	UserID uint64 `gorm:"column:user_id;not null;index" json:"user_id,omitempty"`
	User   User   `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (File) TableName() string {
	return "file"
}
