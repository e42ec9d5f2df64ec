package leave

import (
	"testing"
	"time"

	"gise-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDayCount(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"aynı gün", day(2025, 12, 1), day(2025, 12, 1), 1},
		{"iki gün", day(2025, 12, 1), day(2025, 12, 2), 2},
		{"hafta", day(2025, 12, 1), day(2025, 12, 7), 7},
		{"ay sınırı", day(2025, 11, 28), day(2025, 12, 2), 5},
		{"yıl sınırı", day(2025, 12, 30), day(2026, 1, 2), 4},
		{"ters aralık", day(2025, 12, 5), day(2025, 12, 1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DayCount(tt.start, tt.end))
		})
	}
}

func TestDayCountIgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2025, 12, 1, 23, 59, 0, 0, time.UTC)
	end := time.Date(2025, 12, 2, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 2, DayCount(start, end))
}

func TestCanReview(t *testing.T) {
	assert.True(t, CanReview(models.LeavePending))
	assert.False(t, CanReview(models.LeaveApproved))
	assert.False(t, CanReview(models.LeaveRejected))
	assert.False(t, CanReview(models.LeaveCancelled))
}

func TestCanCancel(t *testing.T) {
	assert.True(t, CanCancel(models.LeavePending))
	// onaylanmış izin iptal edilemez
	assert.False(t, CanCancel(models.LeaveApproved))
	assert.False(t, CanCancel(models.LeaveRejected))
	assert.False(t, CanCancel(models.LeaveCancelled))
}

func TestStatusAfterReview(t *testing.T) {
	status, err := StatusAfterReview("approve")
	assert.NoError(t, err)
	assert.Equal(t, models.LeaveApproved, status)

	status, err = StatusAfterReview("reject")
	assert.NoError(t, err)
	assert.Equal(t, models.LeaveRejected, status)

	_, err = StatusAfterReview("cancel")
	assert.Error(t, err)
	_, err = StatusAfterReview("")
	assert.Error(t, err)
}

func TestValidLeaveType(t *testing.T) {
	for _, valid := range []string{"annual", "sick", "excuse", "unpaid"} {
		assert.True(t, ValidLeaveType(valid), valid)
	}
	assert.False(t, ValidLeaveType("paid"))
	assert.False(t, ValidLeaveType(""))
}

func TestConsumesEntitlement(t *testing.T) {
	assert.True(t, ConsumesEntitlement(models.LeaveAnnual))
	assert.False(t, ConsumesEntitlement(models.LeaveSick))
	assert.False(t, ConsumesEntitlement(models.LeaveExcuse))
	assert.False(t, ConsumesEntitlement(models.LeaveUnpaid))
}
