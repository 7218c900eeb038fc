// Package model contains the GORM-specific structs that mirror database tables.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
// UserName and Email are stored lowercased and carry unique indexes.
type UserModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserName      string    `gorm:"type:varchar(100);unique;not null;index"`
	Email         string    `gorm:"type:varchar(255);unique;not null"`
	FullName      string    `gorm:"type:varchar(100);not null;index"`
	AvatarURL     string    `gorm:"type:varchar(512);not null"`
	CoverImageURL string    `gorm:"type:varchar(512)"`
	PasswordHash  string    `gorm:"type:varchar(255);not null"`
	RefreshToken  string    `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
