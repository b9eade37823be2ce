package model

import (
	"time"
)

const (
	LevelAdmin  = "admin"
	LevelUser   = "user"
	LevelViewer = "viewer"
)

// ValidLevel reports whether level is one of the three known roles.
func ValidLevel(level string) bool {
	switch level {
	case LevelAdmin, LevelUser, LevelViewer:
		return true
	}
	return false
}

type User struct {
	ID uint64 `gorm:"primaryKey" json:"id"`

	UserName string `gorm:"column:user_name;type:varchar(50);not null;unique" json:"username"`

	Password string `gorm:"column:pass_word;type:varchar(255);not null" json:"-"`

	Email string `gorm:"column:email;type:varchar(255);not null;unique" json:"email"`

	// Level gates which operations and which rows a caller may reach.
	Level string `gorm:"column:level;type:varchar(16);not null;default:'user'" json:"level"`

	IsActive bool `gorm:"column:is_active;not null;default:false" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (User) TableName() string {
	return "user_db"
}
