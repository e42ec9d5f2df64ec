package submission

import (
	"fmt"
	"log"
	"time"

	"gise-backend/internal/audit"
	"gise-backend/internal/auth"
	"gise-backend/internal/database"
	"gise-backend/internal/models"
	"gise-backend/internal/recon"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes bir kayıt türünün teslim/inceleme uçlarını bağlar.
// İnceleme ucu rol korumalıdır; diğerleri tüm oturumlu kullanıcılara açıktır.
func RegisterRoutes(r fiber.Router, v recon.Variant) {
	r.Post("/submit", SubmitHandler(v))
	r.Get("/submitted", ListSubmittedHandler(v))
	r.Get("/submitted/:id", GetSubmittedHandler(v))
	r.Patch("/submitted/:id/review", auth.RequireRole(models.ReviewerRoles...), ReviewHandler(v))
	r.Put("/submitted/:id", UpdateHandler(v))
}

// -------------------------------------------------
// POST /api/{desk|bayi-dolum}/submit
// -------------------------------------------------
func SubmitHandler(v recon.Variant) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ActorFromContext(c)
		if err != nil {
			return err
		}

		var body SubmitRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		p, err := parseSubmitRequest(v, body)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		sub := models.Submission{
			RecordType:       string(v.Type),
			SubmittedBy:      actor.UserID,
			SubmittedByEmail: actor.Email,
			SubmittedAt:      time.Now(),
			Status:           models.StatusSubmitted,
		}
		if err := p.apply(&sub); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıt hazırlanamadı")
		}

		if err := database.DB.Create(&sub).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıt oluşturulamadı")
		}

		writeSubmissionAudit(actor, sub, models.AuditActionCreate,
			fmt.Sprintf("Gün sonu teslim edildi: %s %s - satış %s TL", sub.RecordType, sub.Date.Format("2006-01-02"), recon.Kurus(sub.TotalSales)))

		resp, err := toResponse(sub)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıt serileştirilemedi")
		}
		return c.Status(fiber.StatusCreated).JSON(resp)
	}
}

// -------------------------------------------------
// GET /api/{desk|bayi-dolum}/submitted?startDate=2025-12-01&endDate=2025-12-31&status=submitted
// -------------------------------------------------
func ListSubmittedHandler(v recon.Variant) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Submission{}).Where("record_type = ?", string(v.Type))

		if s := c.Query("startDate"); s != "" {
			from, err := time.Parse("2006-01-02", s)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "startDate geçersiz")
			}
			dbq = dbq.Where("date >= ?", from)
		}

		if s := c.Query("endDate"); s != "" {
			to, err := time.Parse("2006-01-02", s)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "endDate geçersiz")
			}
			dbq = dbq.Where("date <= ?", to)
		}

		if s := c.Query("status"); s != "" {
			if !ValidStatusFilter(s) {
				return fiber.NewError(fiber.StatusBadRequest, "status geçersiz")
			}
			dbq = dbq.Where("status = ?", s)
		}

		var subs []models.Submission
		if err := dbq.Order("date desc, id desc").Find(&subs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıtlar listelenemedi")
		}

		// Boş sonuç geçerli bir boş listedir, hata değildir
		resp := make([]SubmissionResponse, 0, len(subs))
		for _, sub := range subs {
			r, err := toResponse(sub)
			if err != nil {
				log.Printf("Kayıt %d serileştirilemedi: %v", sub.ID, err)
				continue
			}
			resp = append(resp, r)
		}

		return c.JSON(fiber.Map{"data": resp})
	}
}

// -------------------------------------------------
// GET /api/{desk|bayi-dolum}/submitted/:id
// -------------------------------------------------
func GetSubmittedHandler(v recon.Variant) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sub, err := findRecord(v, c.Params("id"))
		if err != nil {
			return err
		}

		resp, err := toResponse(*sub)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıt serileştirilemedi")
		}
		return c.JSON(fiber.Map{"data": resp})
	}
}

type ReviewRequest struct {
	Action string `json:"action"` // approve | reject | revise
	Notes  string `json:"notes"`
}

// -------------------------------------------------
// PATCH /api/{desk|bayi-dolum}/submitted/:id/review
// -------------------------------------------------
func ReviewHandler(v recon.Variant) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ActorFromContext(c)
		if err != nil {
			return err
		}
		// Route zaten rol korumalı; durum alanına yazan son kapı yine de burası
		if !actor.IsReviewer() {
			return fiber.NewError(fiber.StatusForbidden, "Bu işlem için yetkiniz yok")
		}

		var body ReviewRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		newStatus, err := StatusAfterReview(models.ReviewAction(body.Action))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz action (approve|reject|revise)")
		}

		sub, err := findRecord(v, c.Params("id"))
		if err != nil {
			return err
		}

		if !CanReview(sub.Status) {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Bu durumdaki kayıt incelenemez: %s", sub.Status))
		}

		before := fiber.Map{"status": sub.Status, "reviewAction": sub.ReviewAction, "reviewNotes": sub.ReviewNotes}

		now := time.Now()
		sub.Status = newStatus
		sub.ReviewedBy = &actor.UserID
		sub.ReviewedByEmail = actor.Email
		sub.ReviewedByRole = string(actor.Role)
		sub.ReviewAction = body.Action
		sub.ReviewNotes = body.Notes
		sub.ReviewedAt = &now

		if err := database.DB.Save(sub).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıt güncellenemedi")
		}

		writeSubmissionAudit(actor, *sub, models.AuditActionReview,
			fmt.Sprintf("İnceleme: %s -> %s", body.Action, newStatus), before)

		resp, err := toResponse(*sub)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıt serileştirilemedi")
		}
		return c.JSON(fiber.Map{"data": resp})
	}
}

// -------------------------------------------------
// PUT /api/{desk|bayi-dolum}/submitted/:id
// Sadece pending_revision durumundaki kayıt, teslim eden tarafından
// düzenlenip yeniden gönderilebilir; gövde tüm blokları değiştirir ve
// durum koşulsuz revised olur. Kayıt kimliği korunur, yeni kayıt açılmaz.
// -------------------------------------------------
func UpdateHandler(v recon.Variant) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ActorFromContext(c)
		if err != nil {
			return err
		}

		sub, err := findRecord(v, c.Params("id"))
		if err != nil {
			return err
		}

		if !CanResubmit(sub.Status) {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Sadece revize bekleyen kayıtlar güncellenebilir (durum: %s)", sub.Status))
		}
		if sub.SubmittedBy != actor.UserID {
			return fiber.NewError(fiber.StatusForbidden, "Sadece kaydı teslim eden kullanıcı güncelleyebilir")
		}

		var body SubmitRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		p, err := parseSubmitRequest(v, body)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		before := fiber.Map{"status": sub.Status, "totalSales": sub.TotalSales, "difference": sub.Difference}

		if err := p.apply(sub); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıt hazırlanamadı")
		}
		sub.Status = models.StatusRevised
		sub.SubmittedAt = time.Now()

		if err := database.DB.Save(sub).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıt güncellenemedi")
		}

		writeSubmissionAudit(actor, *sub, models.AuditActionUpdate,
			fmt.Sprintf("Kayıt revize edilip yeniden teslim edildi: %s %s", sub.RecordType, sub.Date.Format("2006-01-02")), before)

		resp, err := toResponse(*sub)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıt serileştirilemedi")
		}
		return c.JSON(fiber.Map{"data": resp})
	}
}

// findRecord id + kayıt türü ile arar; tür uyuşmazlığı da "bulunamadı"dır
// ki bir türün ucundan diğer türün kaydına dokunulamasın.
func findRecord(v recon.Variant, idParam string) (*models.Submission, error) {
	var id uint
	if _, err := fmt.Sscan(idParam, &id); err != nil || id == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
	}

	var sub models.Submission
	if err := database.DB.First(&sub, "id = ? AND record_type = ?", id, string(v.Type)).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Kayıt bulunamadı")
	}
	return &sub, nil
}

func writeSubmissionAudit(actor auth.Actor, sub models.Submission, action models.AuditAction, description string, before ...fiber.Map) {
	var beforeData any
	if len(before) > 0 {
		beforeData = before[0]
	}
	afterData := fiber.Map{
		"status":     sub.Status,
		"date":       sub.Date.Format("2006-01-02"),
		"totalSales": sub.TotalSales,
		"difference": sub.Difference,
	}
	if err := audit.WriteLog(audit.LogOptions{
		UserID:      actor.UserID,
		UserEmail:   actor.Email,
		EntityType:  "submission",
		EntityID:    sub.ID,
		Action:      action,
		Description: description,
		Before:      beforeData,
		After:       afterData,
	}); err != nil {
		// Log hatası kritik değil
		log.Printf("Audit log yazılamadı: %v", err)
	}
}
