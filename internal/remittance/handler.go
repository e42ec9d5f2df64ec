package remittance

import (
	"fmt"
	"time"

	"gise-backend/internal/database"
	"gise-backend/internal/models"
	"gise-backend/internal/recon"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

type EntryResponse struct {
	ID               uint                           `json:"id"`
	RecordType       string                         `json:"recordType"`
	Date             string                         `json:"date"`
	Status           models.SubmissionStatus        `json:"status"`
	BankSentCash     map[string]float64             `json:"bankSentCash"`
	Banknotes        map[string]recon.BanknoteCount `json:"banknotes"`
	SubmittedByEmail string                         `json:"submittedByEmail"`
	SubmittedAt      string                         `json:"submittedAt"`
	ReviewedByEmail  string                         `json:"reviewedByEmail,omitempty"`
	ReviewedByRole   string                         `json:"reviewedByRole,omitempty"`
	ReviewAction     string                         `json:"reviewAction,omitempty"`
	ReviewNotes      string                         `json:"reviewNotes,omitempty"`
	ReviewedAt       string                         `json:"reviewedAt,omitempty"`
}

type TotalsResponse struct {
	Dolum      float64 `json:"dolum"`
	Kart       float64 `json:"kart"`
	Vize       float64 `json:"vize"`
	GrandTotal float64 `json:"grandTotal"`
}

func toEntryResponse(e Entry) EntryResponse {
	bankSentTL := make(map[string]float64, len(e.BankSentCash)+1)
	for cat, amount := range e.BankSentCash {
		bankSentTL[string(cat)] = amount.Lira()
	}
	bankSentTL["totalSent"] = e.TotalSent.Lira()

	banknotes := make(map[string]recon.BanknoteCount, len(e.Banknotes))
	for cat, counts := range e.Banknotes {
		banknotes[string(cat)] = counts
	}

	resp := EntryResponse{
		ID:               e.ID,
		RecordType:       e.RecordType,
		Date:             e.Date.Format("2006-01-02"),
		Status:           e.Status,
		BankSentCash:     bankSentTL,
		Banknotes:        banknotes,
		SubmittedByEmail: e.SubmittedByEmail,
		SubmittedAt:      e.SubmittedAt.Format(time.RFC3339),
		ReviewedByEmail:  e.ReviewedByEmail,
		ReviewedByRole:   e.ReviewedByRole,
		ReviewAction:     e.ReviewAction,
		ReviewNotes:      e.ReviewNotes,
	}
	if e.ReviewedAt != nil {
		resp.ReviewedAt = e.ReviewedAt.Format(time.RFC3339)
	}
	return resp
}

// -------------------------------------------------
// GET /api/bank-remittance?type=desk&startDate=2025-12-01&endDate=2025-12-31
// İki kayıt türünü birleştirip bankaya gönderim içerenleri listeler.
// -------------------------------------------------
func ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Submission{})

		if t := c.Query("type"); t != "" {
			if _, err := recon.VariantFor(t); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "type geçersiz (desk|bayi-dolum)")
			}
			dbq = dbq.Where("record_type = ?", t)
		}

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

		var subs []models.Submission
		if err := dbq.Find(&subs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıtlar listelenemedi")
		}

		entries, totals := Aggregate(subs)

		resp := make([]EntryResponse, 0, len(entries))
		for _, e := range entries {
			resp = append(resp, toEntryResponse(e))
		}

		return c.JSON(fiber.Map{
			"data": resp,
			"totals": TotalsResponse{
				Dolum:      totals.Dolum.Lira(),
				Kart:       totals.Kart.Lira(),
				Vize:       totals.Vize.Lira(),
				GrandTotal: totals.Grand.Lira(),
			},
		})
	}
}

// -------------------------------------------------
// GET /api/bank-remittance/:id/pusula
// -------------------------------------------------
func PusulaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var id uint
		if _, err := fmt.Sscan(c.Params("id"), &id); err != nil || id == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
		}

		var sub models.Submission
		if err := database.DB.First(&sub, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kayıt bulunamadı")
		}

		e, err := EntryFromSubmission(sub)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıt çözümlenemedi")
		}

		f, filename, err := BuildPusula(e)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Pusula oluşturulamadı")
		}
		defer f.Close()

		return sendWorkbook(c, f, filename)
	}
}

type BulkPusulaRequest struct {
	IDs []uint `json:"ids"`
}

// -------------------------------------------------
// POST /api/bank-remittance/pusula
// Gövdedeki id listesi için toplu pusula üretir; id verilmezse
// bankaya gönderim içeren tüm kayıtlar dahil edilir.
// -------------------------------------------------
func BulkPusulaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body BulkPusulaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		dbq := database.DB.Model(&models.Submission{})
		if len(body.IDs) > 0 {
			dbq = dbq.Where("id IN ?", body.IDs)
		}

		var subs []models.Submission
		if err := dbq.Find(&subs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıtlar listelenemedi")
		}

		entries, _ := Aggregate(subs)
		if len(entries) == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Dışa aktarılacak kayıt bulunamadı")
		}

		f, filename, err := BuildBulkPusula(entries)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Pusula oluşturulamadı")
		}
		defer f.Close()

		return sendWorkbook(c, f, filename)
	}
}

func sendWorkbook(c *fiber.Ctx, f *excelize.File, filename string) error {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Dosya yazılamadı")
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(buf.Bytes())
}
