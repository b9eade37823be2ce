package model

type Tag struct {
	ID uint64 `gorm:"primaryKey" json:"id"`

	// Name is stored lowercased and trimmed; uniqueness is exact after
	// normalization.
	Name string `gorm:"column:name;size:100;not null;uniqueIndex" json:"name"`
}

// TableName returns the database table name.
func (Tag) TableName() string {
	return "tag"
}
