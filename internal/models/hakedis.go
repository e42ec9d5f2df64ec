package models

import "time"

type HakedisType string

const (
	HakedisHaftalik   HakedisType = "HAFTALIK"
	HakedisKrediKarti HakedisType = "KREDI_KARTI"
)

// Hakedis araç sahiplerine dönem ödemesi kaydı. Routes hat bazlı, Vehicles
// araç bazlı (kredi kartı) tutarları kuruş cinsinden jsonb tutar.
// TotalAmount ve Difference türetilmiş alanlardır.
type Hakedis struct {
	ID       uint        `gorm:"primaryKey"`
	Date     time.Time   `gorm:"index;not null"`
	Type     HakedisType `gorm:"size:20;index;not null"`
	Routes   string      `gorm:"type:jsonb;not null"` // hat adı -> tutar (kuruş)
	Vehicles string      `gorm:"type:jsonb"`          // araç no -> tutar (kuruş)

	Raporal     int64 `gorm:"not null"` // raporal cihaz toplamı (kuruş)
	Sistem      int64 `gorm:"not null"` // merkezi sistem toplamı (kuruş)
	TotalAmount int64 `gorm:"not null"` // Σ routes + Σ vehicles
	Difference  int64 `gorm:"not null"` // raporal − sistem

	CreatedBy string `gorm:"size:100;not null"` // oluşturan kullanıcının e-postası
	CreatedAt time.Time
	UpdatedAt time.Time
}
