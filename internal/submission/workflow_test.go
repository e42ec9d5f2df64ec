package submission

import (
	"testing"

	"gise-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCanReview(t *testing.T) {
	tests := []struct {
		status models.SubmissionStatus
		want   bool
	}{
		{models.StatusSubmitted, true},
		{models.StatusRevised, true},
		{models.StatusApproved, false},
		{models.StatusRejected, false},
		{models.StatusPendingRevision, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, CanReview(tt.status))
		})
	}
}

func TestCanResubmit(t *testing.T) {
	assert.True(t, CanResubmit(models.StatusPendingRevision))
	assert.False(t, CanResubmit(models.StatusSubmitted))
	assert.False(t, CanResubmit(models.StatusApproved))
	assert.False(t, CanResubmit(models.StatusRejected))
	assert.False(t, CanResubmit(models.StatusRevised))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(models.StatusApproved))
	assert.True(t, IsTerminal(models.StatusRejected))
	assert.False(t, IsTerminal(models.StatusSubmitted))
	assert.False(t, IsTerminal(models.StatusPendingRevision))
	assert.False(t, IsTerminal(models.StatusRevised))
}

func TestStatusAfterReview(t *testing.T) {
	got, err := StatusAfterReview(models.ReviewApprove)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusApproved, got)

	got, err = StatusAfterReview(models.ReviewReject)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusRejected, got)

	got, err = StatusAfterReview(models.ReviewRevise)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusPendingRevision, got)

	_, err = StatusAfterReview(models.ReviewAction("cancel"))
	assert.Error(t, err)
}

func TestValidStatusFilter(t *testing.T) {
	assert.True(t, ValidStatusFilter("submitted"))
	assert.True(t, ValidStatusFilter("pending_revision"))
	assert.False(t, ValidStatusFilter("draft")) // draft hiçbir zaman kalıcı durum değildir
	assert.False(t, ValidStatusFilter(""))
}
