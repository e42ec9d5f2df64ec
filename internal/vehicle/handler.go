package vehicle

import (
	"strings"

	"gise-backend/internal/audit"
	"gise-backend/internal/auth"
	"gise-backend/internal/database"
	"gise-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type VehicleResponse struct {
	ID            uint   `json:"id"`
	PlateNumber   string `json:"plateNumber"`
	VehicleNumber int    `json:"vehicleNumber"`
	RouteName     string `json:"routeName"`
	DriverName    string `json:"driverName"`
	IBAN          string `json:"iban"`
	TaxID         string `json:"taxId"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

type CreateVehicleRequest struct {
	PlateNumber   string `json:"plateNumber"`
	VehicleNumber int    `json:"vehicleNumber"`
	RouteName     string `json:"routeName"`
	DriverName    string `json:"driverName"`
	IBAN          string `json:"iban"`
	TaxID         string `json:"taxId"`
}

type UpdateVehicleRequest struct {
	PlateNumber   *string `json:"plateNumber"`
	VehicleNumber *int    `json:"vehicleNumber"`
	RouteName     *string `json:"routeName"`
	DriverName    *string `json:"driverName"`
	IBAN          *string `json:"iban"`
	TaxID         *string `json:"taxId"`
}

func toResponse(v models.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:            v.ID,
		PlateNumber:   v.PlateNumber,
		VehicleNumber: v.VehicleNumber,
		RouteName:     v.RouteName,
		DriverName:    v.DriverName,
		IBAN:          v.IBAN,
		TaxID:         v.TaxID,
		CreatedAt:     v.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:     v.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// ----------------------------------------
// ARAÇ CRUD (yalnızca admin)
// ----------------------------------------

func CreateVehicleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateVehicleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri gönderildi")
		}

		body.PlateNumber = strings.ToUpper(strings.TrimSpace(body.PlateNumber))
		body.RouteName = strings.TrimSpace(body.RouteName)

		if body.PlateNumber == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Plaka boş olamaz")
		}
		if body.VehicleNumber <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Araç numarası geçersiz")
		}
		if body.RouteName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Hat adı boş olamaz")
		}

		// Plaka ve araç numarası benzersiz
		var exist models.Vehicle
		if err := database.DB.
			Where("plate_number = ? OR vehicle_number = ?", body.PlateNumber, body.VehicleNumber).
			First(&exist).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Bu plaka veya araç numarası zaten kayıtlı")
		}

		vehicle := models.Vehicle{
			PlateNumber:   body.PlateNumber,
			VehicleNumber: body.VehicleNumber,
			RouteName:     body.RouteName,
			DriverName:    strings.TrimSpace(body.DriverName),
			IBAN:          strings.ReplaceAll(strings.TrimSpace(body.IBAN), " ", ""),
			TaxID:         strings.TrimSpace(body.TaxID),
		}

		if err := database.DB.Create(&vehicle).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Araç oluşturulamadı")
		}

		if actor, err := auth.ActorFromContext(c); err == nil {
			audit.WriteLog(audit.LogOptions{
				UserID:      actor.UserID,
				UserEmail:   actor.Email,
				EntityType:  "vehicle",
				EntityID:    vehicle.ID,
				Action:      models.AuditActionCreate,
				Description: "Araç eklendi: " + vehicle.PlateNumber,
				After:       vehicle,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(vehicle))
	}
}

func ListVehiclesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var vehicles []models.Vehicle
		if err := database.DB.Order("vehicle_number ASC").Find(&vehicles).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Araçlar listelenemedi")
		}

		res := make([]VehicleResponse, 0, len(vehicles))
		for _, v := range vehicles {
			res = append(res, toResponse(v))
		}
		return c.JSON(fiber.Map{"data": res})
	}
}

func GetVehicleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var vehicle models.Vehicle
		if err := database.DB.First(&vehicle, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Araç bulunamadı")
		}
		return c.JSON(toResponse(vehicle))
	}
}

func UpdateVehicleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var vehicle models.Vehicle
		if err := database.DB.First(&vehicle, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Araç bulunamadı")
		}
		before := vehicle

		var body UpdateVehicleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri gönderildi")
		}

		if body.PlateNumber != nil {
			plate := strings.ToUpper(strings.TrimSpace(*body.PlateNumber))
			if plate == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Plaka boş olamaz")
			}
			vehicle.PlateNumber = plate
		}
		if body.VehicleNumber != nil {
			if *body.VehicleNumber <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Araç numarası geçersiz")
			}
			vehicle.VehicleNumber = *body.VehicleNumber
		}
		if body.RouteName != nil {
			route := strings.TrimSpace(*body.RouteName)
			if route == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Hat adı boş olamaz")
			}
			vehicle.RouteName = route
		}
		if body.DriverName != nil {
			vehicle.DriverName = strings.TrimSpace(*body.DriverName)
		}
		if body.IBAN != nil {
			vehicle.IBAN = strings.ReplaceAll(strings.TrimSpace(*body.IBAN), " ", "")
		}
		if body.TaxID != nil {
			vehicle.TaxID = strings.TrimSpace(*body.TaxID)
		}

		if err := database.DB.Save(&vehicle).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Araç güncellenemedi")
		}

		if actor, err := auth.ActorFromContext(c); err == nil {
			audit.WriteLog(audit.LogOptions{
				UserID:      actor.UserID,
				UserEmail:   actor.Email,
				EntityType:  "vehicle",
				EntityID:    vehicle.ID,
				Action:      models.AuditActionUpdate,
				Description: "Araç güncellendi: " + vehicle.PlateNumber,
				Before:      before,
				After:       vehicle,
			})
		}

		return c.JSON(toResponse(vehicle))
	}
}

func DeleteVehicleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var vehicle models.Vehicle
		if err := database.DB.First(&vehicle, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Araç bulunamadı")
		}

		if err := database.DB.Delete(&vehicle).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Araç silinemedi")
		}

		if actor, err := auth.ActorFromContext(c); err == nil {
			audit.WriteLog(audit.LogOptions{
				UserID:      actor.UserID,
				UserEmail:   actor.Email,
				EntityType:  "vehicle",
				EntityID:    vehicle.ID,
				Action:      models.AuditActionDelete,
				Description: "Araç silindi: " + vehicle.PlateNumber,
				Before:      vehicle,
			})
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
