package models

import "time"

type Employee struct {
	ID         uint   `gorm:"primaryKey"`
	FirstName  string `gorm:"size:50;not null"`
	LastName   string `gorm:"size:50;not null"`
	TCNo       string `gorm:"size:11;uniqueIndex;not null"`
	Email      string `gorm:"size:100"`
	Phone      string `gorm:"size:20"`
	Department string `gorm:"size:100"`
	Position   string `gorm:"size:100"`
	StartDate  time.Time
	IsActive   bool `gorm:"default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type LeaveType string

const (
	LeaveAnnual LeaveType = "annual" // yıllık izin
	LeaveSick   LeaveType = "sick"   // rapor
	LeaveExcuse LeaveType = "excuse" // mazeret
	LeaveUnpaid LeaveType = "unpaid" // ücretsiz
)

type LeaveStatus string

const (
	LeavePending   LeaveStatus = "pending"
	LeaveApproved  LeaveStatus = "approved"
	LeaveRejected  LeaveStatus = "rejected"
	LeaveCancelled LeaveStatus = "cancelled"
)

// LeaveRequest izin talebi. Kendi durum makinesi vardır: pending'den
// approve/reject incelemeyle, cancel talep sahibince yapılır. Teslim kayıtlarının
// aksine burada cancelled durumu meşrudur.
type LeaveRequest struct {
	ID          uint        `gorm:"primaryKey"`
	EmployeeID  uint        `gorm:"index;not null"`
	Employee    Employee
	LeaveType   LeaveType   `gorm:"size:20;not null"`
	StartDate   time.Time   `gorm:"not null"`
	EndDate     time.Time   `gorm:"not null"`
	TotalDays   int         `gorm:"not null"` // başlangıç ve bitiş dahil
	Status      LeaveStatus `gorm:"size:20;index;not null"`
	Description string      `gorm:"size:500"`
	RequestedAt time.Time

	ReviewedBy      *uint
	ReviewedByEmail string `gorm:"size:100"`
	ReviewNotes     string `gorm:"size:500"`
	ReviewedAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LeaveEntitlement çalışanın yıllık izin hakkı. Kalan gün türetilir:
// remaining = total − used.
type LeaveEntitlement struct {
	ID         uint `gorm:"primaryKey"`
	EmployeeID uint `gorm:"index:idx_entitlement_employee_year,unique;not null"`
	Year       int  `gorm:"index:idx_entitlement_employee_year,unique;not null"`
	TotalDays  int  `gorm:"not null"`
	UsedDays   int  `gorm:"not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
