package models

import "time"

type Vehicle struct {
	ID            uint   `gorm:"primaryKey"`
	PlateNumber   string `gorm:"size:20;uniqueIndex;not null"`
	VehicleNumber int    `gorm:"uniqueIndex;not null"`
	RouteName     string `gorm:"size:100;index;not null"`
	DriverName    string `gorm:"size:100"`
	IBAN          string `gorm:"size:34"`
	TaxID         string `gorm:"size:20"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
