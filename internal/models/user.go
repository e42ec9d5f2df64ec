package models

import "time"

type UserRole string

const (
	RoleAdmin       UserRole = "admin"
	RoleResponsible UserRole = "responsible" // sorumlu
	RoleDesk        UserRole = "desk"        // gişe personeli
)

// ReviewerRoles teslim edilen kayıtları inceleyebilen roller.
var ReviewerRoles = []UserRole{RoleAdmin, RoleResponsible}

type User struct {
	ID           uint     `gorm:"primaryKey"`
	DisplayName  string   `gorm:"size:100;not null"`
	Email        string   `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string   `gorm:"size:255;not null"`
	Role         UserRole `gorm:"size:20;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
