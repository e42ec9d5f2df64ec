package hakedis

import (
	"encoding/json"
	"fmt"
	"time"

	"gise-backend/internal/audit"
	"gise-backend/internal/auth"
	"gise-backend/internal/database"
	"gise-backend/internal/models"
	"gise-backend/internal/recon"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes hakediş uçlarını bağlar. Tüm uçlar oturumlu kullanıcıya
// açıktır; route sırası önemli: /range ve /weekly/summary, /:id'den önce
// kaydedilmeli ki parametre olarak yakalanmasın.
func RegisterRoutes(r fiber.Router) {
	r.Post("/", CreateHandler())
	r.Get("/", ListHandler())
	r.Get("/range", RangeHandler())
	r.Get("/weekly/summary", WeeklySummaryHandler())
	r.Get("/:id", GetHandler())
}

type CreateRequest struct {
	Date     string             `json:"date"` // YYYY-MM-DD
	Type     string             `json:"type"` // HAFTALIK | KREDI_KARTI
	Routes   map[string]float64 `json:"routes"`
	Vehicles map[string]float64 `json:"vehicles"`
	Raporal  float64            `json:"raporal"`
	Sistem   float64            `json:"sistem"`
}

type Response struct {
	ID          uint               `json:"id"`
	Date        string             `json:"date"`
	Type        string             `json:"type"`
	Routes      map[string]float64 `json:"routes"`
	Vehicles    map[string]float64 `json:"vehicles"`
	Raporal     float64            `json:"raporal"`
	Sistem      float64            `json:"sistem"`
	TotalAmount float64            `json:"totalAmount"`
	Difference  float64            `json:"difference"`
	CreatedBy   string             `json:"createdBy"`
	CreatedAt   string             `json:"createdAt"`
}

// -------------------------------------------------
// POST /api/hakedis
// -------------------------------------------------
func CreateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ActorFromContext(c)
		if err != nil {
			return err
		}

		var body CreateRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		date, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı geçersiz (YYYY-MM-DD bekleniyor)")
		}

		hType := models.HakedisType(body.Type)
		if hType != models.HakedisHaftalik && hType != models.HakedisKrediKarti {
			return fiber.NewError(fiber.StatusBadRequest, "Hakediş tipi geçersiz")
		}
		if len(body.Routes) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "En az bir hat tutarı girilmelidir")
		}

		amounts := Amounts{
			Routes:   toKurus(body.Routes),
			Vehicles: toKurus(body.Vehicles),
		}
		if err := amounts.Validate(); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		routesJSON, err := json.Marshal(amounts.Routes)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıt hazırlanamadı")
		}
		vehiclesJSON, err := json.Marshal(amounts.Vehicles)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıt hazırlanamadı")
		}

		raporal := recon.FromLira(body.Raporal)
		sistem := recon.FromLira(body.Sistem)

		rec := models.Hakedis{
			Date:        date,
			Type:        hType,
			Routes:      string(routesJSON),
			Vehicles:    string(vehiclesJSON),
			Raporal:     int64(raporal),
			Sistem:      int64(sistem),
			TotalAmount: int64(amounts.Total()),
			Difference:  int64(raporal - sistem),
			CreatedBy:   actor.Email,
		}
		if err := database.DB.Create(&rec).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hakediş kaydı oluşturulamadı")
		}

		audit.WriteLog(audit.LogOptions{
			UserID:      actor.UserID,
			UserEmail:   actor.Email,
			EntityType:  "hakedis",
			EntityID:    rec.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Hakediş kaydı oluşturuldu: %s %s - toplam %s TL", rec.Type, rec.Date.Format("2006-01-02"), recon.Kurus(rec.TotalAmount)),
			After:       rec,
		})

		resp, err := toResponse(rec)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıt serileştirilemedi")
		}
		return c.Status(fiber.StatusCreated).JSON(resp)
	}
}

// -------------------------------------------------
// GET /api/hakedis
// -------------------------------------------------
func ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var records []models.Hakedis
		if err := database.DB.Order("date DESC, id DESC").Find(&records).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hakediş kayıtları alınamadı")
		}
		return c.JSON(fiber.Map{"data": toResponses(records)})
	}
}

// -------------------------------------------------
// GET /api/hakedis/range?startDate=2025-12-01&endDate=2025-12-07
// -------------------------------------------------
func RangeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, end, err := parseRange(c)
		if err != nil {
			return err
		}

		var records []models.Hakedis
		if err := database.DB.
			Where("date >= ? AND date <= ?", start, end).
			Order("date DESC, id DESC").
			Find(&records).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hakediş kayıtları alınamadı")
		}
		return c.JSON(fiber.Map{"data": toResponses(records)})
	}
}

// -------------------------------------------------
// GET /api/hakedis/weekly/summary?startDate=2025-12-01&endDate=2025-12-07
// -------------------------------------------------
func WeeklySummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, end, err := parseRange(c)
		if err != nil {
			return err
		}

		var records []models.Hakedis
		if err := database.DB.
			Where("date >= ? AND date <= ?", start, end).
			Find(&records).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hakediş kayıtları alınamadı")
		}

		var vehicles []models.Vehicle
		if err := database.DB.Order("vehicle_number ASC").Find(&vehicles).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Araç listesi alınamadı")
		}

		summaries, totals, err := WeeklySummary(records, vehicles)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		rows := make([]fiber.Map, 0, len(summaries))
		for _, s := range summaries {
			rows = append(rows, fiber.Map{
				"vehicleNumber": s.VehicleNumber,
				"plateNumber":   s.PlateNumber,
				"routeName":     s.RouteName,
				"iban":          s.IBAN,
				"taxId":         s.TaxID,
				"haftalik": fiber.Map{
					"routeAmount":   s.Haftalik.RouteAmount.Lira(),
					"vehicleAmount": s.Haftalik.VehicleAmount.Lira(),
					"totalAmount":   s.Haftalik.total().Lira(),
				},
				"krediKarti": fiber.Map{
					"routeAmount":   s.KrediKarti.RouteAmount.Lira(),
					"vehicleAmount": s.KrediKarti.VehicleAmount.Lira(),
					"totalAmount":   s.KrediKarti.total().Lira(),
				},
				"grandTotal": s.GrandTotal.Lira(),
			})
		}

		return c.JSON(fiber.Map{
			"startDate": start.Format("2006-01-02"),
			"endDate":   end.Format("2006-01-02"),
			"summary": fiber.Map{
				"totalHaftalik":   totals.TotalHaftalik.Lira(),
				"totalKrediKarti": totals.TotalKrediKarti.Lira(),
				"grandTotal":      totals.GrandTotal.Lira(),
				"vehicleCount":    totals.VehicleCount,
			},
			"vehicles": rows,
		})
	}
}

// -------------------------------------------------
// GET /api/hakedis/:id
// -------------------------------------------------
func GetHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kayıt ID")
		}

		var rec models.Hakedis
		if err := database.DB.First(&rec, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Hakediş kaydı bulunamadı")
		}

		resp, err := toResponse(rec)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıt serileştirilemedi")
		}
		return c.JSON(resp)
	}
}

func parseRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", c.Query("startDate"))
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "startDate geçersiz (YYYY-MM-DD bekleniyor)")
	}
	end, err := time.Parse("2006-01-02", c.Query("endDate"))
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "endDate geçersiz (YYYY-MM-DD bekleniyor)")
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "endDate, startDate'ten önce olamaz")
	}
	return start, end, nil
}

func decodeAmounts(rec models.Hakedis) (Amounts, error) {
	a := Amounts{
		Routes:   map[string]recon.Kurus{},
		Vehicles: map[string]recon.Kurus{},
	}
	if rec.Routes != "" {
		if err := json.Unmarshal([]byte(rec.Routes), &a.Routes); err != nil {
			return Amounts{}, err
		}
	}
	if rec.Vehicles != "" {
		if err := json.Unmarshal([]byte(rec.Vehicles), &a.Vehicles); err != nil {
			return Amounts{}, err
		}
	}
	return a, nil
}

func toKurus(m map[string]float64) map[string]recon.Kurus {
	out := make(map[string]recon.Kurus, len(m))
	for k, v := range m {
		out[k] = recon.FromLira(v)
	}
	return out
}

func toLira(m map[string]recon.Kurus) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v.Lira()
	}
	return out
}

func toResponse(rec models.Hakedis) (Response, error) {
	amounts, err := decodeAmounts(rec)
	if err != nil {
		return Response{}, err
	}
	return Response{
		ID:          rec.ID,
		Date:        rec.Date.Format("2006-01-02"),
		Type:        string(rec.Type),
		Routes:      toLira(amounts.Routes),
		Vehicles:    toLira(amounts.Vehicles),
		Raporal:     recon.Kurus(rec.Raporal).Lira(),
		Sistem:      recon.Kurus(rec.Sistem).Lira(),
		TotalAmount: recon.Kurus(rec.TotalAmount).Lira(),
		Difference:  recon.Kurus(rec.Difference).Lira(),
		CreatedBy:   rec.CreatedBy,
		CreatedAt:   rec.CreatedAt.Format(time.RFC3339),
	}, nil
}

func toResponses(records []models.Hakedis) []Response {
	out := make([]Response, 0, len(records))
	for _, rec := range records {
		resp, err := toResponse(rec)
		if err != nil {
			continue
		}
		out = append(out, resp)
	}
	return out
}
