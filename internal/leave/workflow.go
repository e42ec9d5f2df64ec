package leave

import (
	"fmt"
	"time"

	"gise-backend/internal/models"
)

// DayCount başlangıç ve bitiş günleri dahil takvim günü sayısı.
// Saat bileşenleri yok sayılır; aynı gün 1 döner.
func DayCount(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

// CanReview yalnızca bekleyen talepler incelenebilir.
func CanReview(status models.LeaveStatus) bool {
	return status == models.LeavePending
}

// CanCancel yalnızca bekleyen talepler iptal edilebilir; onaylanmış iznin
// iptali kapsam dışıdır.
func CanCancel(status models.LeaveStatus) bool {
	return status == models.LeavePending
}

// StatusAfterReview inceleme aksiyonunun hedef durumu.
func StatusAfterReview(action string) (models.LeaveStatus, error) {
	switch action {
	case "approve":
		return models.LeaveApproved, nil
	case "reject":
		return models.LeaveRejected, nil
	default:
		return "", fmt.Errorf("geçersiz aksiyon: %q", action)
	}
}

// ValidLeaveType izin türü kontrolü.
func ValidLeaveType(t string) bool {
	switch models.LeaveType(t) {
	case models.LeaveAnnual, models.LeaveSick, models.LeaveExcuse, models.LeaveUnpaid:
		return true
	}
	return false
}

// ConsumesEntitlement yalnızca yıllık izin hak düşer; rapor, mazeret ve
// ücretsiz izin hakediş bakiyesine dokunmaz.
func ConsumesEntitlement(t models.LeaveType) bool {
	return t == models.LeaveAnnual
}
