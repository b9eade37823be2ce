package model

// FileTag joins files and tags. The composite key makes pair inserts
// naturally deduplicating when combined with an ignore-on-conflict clause.
type FileTag struct {
	FileID uint64 `gorm:"column:file_id;primaryKey" json:"file_id"`
	File   File   `gorm:"foreignKey:FileID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	TagID uint64 `gorm:"column:tag_id;primaryKey" json:"tag_id"`
	Tag   Tag    `gorm:"foreignKey:TagID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName returns the database table name.
func (FileTag) TableName() string {
	return "file_tag"
}
