package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Email     string    `gorm:"uniqueIndex;not null"`
	Username  string    `gorm:"uniqueIndex;not null"`
	Fullname  string    `gorm:"not null"`
	Password  string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Tasks []Task `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}

// WithoutPassword returns a copy safe to hand to callers.
func (u User) WithoutPassword() *User {
	u.Password = ""
	return &u
}
