package submission

import (
	"fmt"

	"gise-backend/internal/models"
)

// Durum makinesi:
//
//	(ilk teslim)      → submitted
//	submitted/revised → approved | rejected | pending_revision   (inceleme)
//	pending_revision  → revised                                  (yeniden teslim)
//
// approved ve rejected uç durumlardır; bu iki durumdaki kayıtlar salt okunur
// geçmiştir. Durum alanının sahibi sunucudur; istemci yalnızca başarılı yanıt
// sonrası yansıtır.

// CanReview kayıt incelemeye açık mı? Yalnızca submitted ve revised kayıtlar
// için onay/ret/revize kararı verilebilir.
func CanReview(s models.SubmissionStatus) bool {
	return s == models.StatusSubmitted || s == models.StatusRevised
}

// CanResubmit kayıt teslim eden tarafından düzenlenip yeniden gönderilebilir mi?
func CanResubmit(s models.SubmissionStatus) bool {
	return s == models.StatusPendingRevision
}

// IsTerminal kayıt için başka geçiş kalmadı mı?
func IsTerminal(s models.SubmissionStatus) bool {
	return s == models.StatusApproved || s == models.StatusRejected
}

// StatusAfterReview inceleme kararının hedef durumu.
func StatusAfterReview(action models.ReviewAction) (models.SubmissionStatus, error) {
	switch action {
	case models.ReviewApprove:
		return models.StatusApproved, nil
	case models.ReviewReject:
		return models.StatusRejected, nil
	case models.ReviewRevise:
		return models.StatusPendingRevision, nil
	}
	return "", fmt.Errorf("geçersiz inceleme aksiyonu: %s", action)
}

// ValidStatusFilter listeleme filtresinde kabul edilen durum değeri mi?
func ValidStatusFilter(s string) bool {
	switch models.SubmissionStatus(s) {
	case models.StatusSubmitted, models.StatusApproved, models.StatusRejected,
		models.StatusPendingRevision, models.StatusRevised:
		return true
	}
	return false
}
