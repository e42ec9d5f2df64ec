package leave

import (
	"fmt"
	"strings"
	"time"

	"gise-backend/internal/audit"
	"gise-backend/internal/auth"
	"gise-backend/internal/database"
	"gise-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RegisterRoutes izin modülü uçlarını bağlar. Çalışan CRUD'u ve hakediş
// tanımlama admin gerektirir; talep oluşturma ve listeleme tüm oturumlu
// kullanıcılara, inceleme admin ve sorumluya açıktır.
func RegisterRoutes(r fiber.Router) {
	r.Get("/employees", ListEmployeesHandler())
	r.Post("/employees", auth.RequireRole(models.RoleAdmin), CreateEmployeeHandler())
	r.Get("/employees/:id", GetEmployeeHandler())
	r.Put("/employees/:id", auth.RequireRole(models.RoleAdmin), UpdateEmployeeHandler())
	r.Delete("/employees/:id", auth.RequireRole(models.RoleAdmin), DeleteEmployeeHandler())

	r.Get("/requests", ListRequestsHandler())
	r.Post("/requests", CreateRequestHandler())
	r.Patch("/requests/:id/review", auth.RequireRole(models.ReviewerRoles...), ReviewRequestHandler())
	r.Patch("/requests/:id/cancel", CancelRequestHandler())

	r.Get("/entitlements", ListEntitlementsHandler())
	r.Get("/entitlements/:employeeId", EmployeeEntitlementsHandler())
	r.Put("/entitlements/:employeeId/:year", auth.RequireRole(models.RoleAdmin), UpsertEntitlementHandler())
}

// ----------------------------------------
// ÇALIŞAN CRUD
// ----------------------------------------

type EmployeeRequest struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	TCNo       string `json:"tcNo"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
	Position   string `json:"position"`
	StartDate  string `json:"startDate"` // YYYY-MM-DD
	IsActive   *bool  `json:"isActive"`
}

type EmployeeResponse struct {
	ID         uint   `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	TCNo       string `json:"tcNo"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
	Position   string `json:"position"`
	StartDate  string `json:"startDate"`
	IsActive   bool   `json:"isActive"`
}

func toEmployeeResponse(e models.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		TCNo:       e.TCNo,
		Email:      e.Email,
		Phone:      e.Phone,
		Department: e.Department,
		Position:   e.Position,
		StartDate:  e.StartDate.Format("2006-01-02"),
		IsActive:   e.IsActive,
	}
}

func CreateEmployeeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body EmployeeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri gönderildi")
		}

		body.FirstName = strings.TrimSpace(body.FirstName)
		body.LastName = strings.TrimSpace(body.LastName)
		body.TCNo = strings.TrimSpace(body.TCNo)

		if body.FirstName == "" || body.LastName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Ad ve soyad zorunlu")
		}
		if len(body.TCNo) != 11 {
			return fiber.NewError(fiber.StatusBadRequest, "TC kimlik numarası 11 haneli olmalı")
		}

		emp := models.Employee{
			FirstName:  body.FirstName,
			LastName:   body.LastName,
			TCNo:       body.TCNo,
			Email:      strings.ToLower(strings.TrimSpace(body.Email)),
			Phone:      strings.TrimSpace(body.Phone),
			Department: strings.TrimSpace(body.Department),
			Position:   strings.TrimSpace(body.Position),
			IsActive:   true,
		}
		if body.StartDate != "" {
			start, err := time.Parse("2006-01-02", body.StartDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "startDate geçersiz (YYYY-MM-DD bekleniyor)")
			}
			emp.StartDate = start
		}
		if body.IsActive != nil {
			emp.IsActive = *body.IsActive
		}

		if err := database.DB.Create(&emp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Çalışan oluşturulamadı")
		}
		return c.Status(fiber.StatusCreated).JSON(toEmployeeResponse(emp))
	}
}

func ListEmployeesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var employees []models.Employee
		if err := database.DB.Order("first_name ASC, last_name ASC").Find(&employees).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Çalışanlar listelenemedi")
		}

		res := make([]EmployeeResponse, 0, len(employees))
		for _, e := range employees {
			res = append(res, toEmployeeResponse(e))
		}
		return c.JSON(fiber.Map{"data": res})
	}
}

func GetEmployeeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var emp models.Employee
		if err := database.DB.First(&emp, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Çalışan bulunamadı")
		}
		return c.JSON(toEmployeeResponse(emp))
	}
}

func UpdateEmployeeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var emp models.Employee
		if err := database.DB.First(&emp, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Çalışan bulunamadı")
		}

		var body EmployeeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri gönderildi")
		}

		if name := strings.TrimSpace(body.FirstName); name != "" {
			emp.FirstName = name
		}
		if name := strings.TrimSpace(body.LastName); name != "" {
			emp.LastName = name
		}
		if tc := strings.TrimSpace(body.TCNo); tc != "" {
			if len(tc) != 11 {
				return fiber.NewError(fiber.StatusBadRequest, "TC kimlik numarası 11 haneli olmalı")
			}
			emp.TCNo = tc
		}
		if body.Email != "" {
			emp.Email = strings.ToLower(strings.TrimSpace(body.Email))
		}
		if body.Phone != "" {
			emp.Phone = strings.TrimSpace(body.Phone)
		}
		if body.Department != "" {
			emp.Department = strings.TrimSpace(body.Department)
		}
		if body.Position != "" {
			emp.Position = strings.TrimSpace(body.Position)
		}
		if body.StartDate != "" {
			start, err := time.Parse("2006-01-02", body.StartDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "startDate geçersiz (YYYY-MM-DD bekleniyor)")
			}
			emp.StartDate = start
		}
		if body.IsActive != nil {
			emp.IsActive = *body.IsActive
		}

		if err := database.DB.Save(&emp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Çalışan güncellenemedi")
		}
		return c.JSON(toEmployeeResponse(emp))
	}
}

func DeleteEmployeeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var emp models.Employee
		if err := database.DB.First(&emp, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Çalışan bulunamadı")
		}

		var pending int64
		database.DB.Model(&models.LeaveRequest{}).
			Where("employee_id = ? AND status = ?", emp.ID, models.LeavePending).
			Count(&pending)
		if pending > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Bekleyen izin talebi olan çalışan silinemez")
		}

		if err := database.DB.Delete(&emp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Çalışan silinemedi")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ----------------------------------------
// İZİN TALEPLERİ
// ----------------------------------------

type CreateRequestBody struct {
	EmployeeID  uint   `json:"employeeId"`
	LeaveType   string `json:"leaveType"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

type ReviewRequestBody struct {
	Action string `json:"action"` // approve | reject
	Notes  string `json:"notes"`
}

type RequestResponse struct {
	ID              uint   `json:"id"`
	EmployeeID      uint   `json:"employeeId"`
	EmployeeName    string `json:"employeeName,omitempty"`
	LeaveType       string `json:"leaveType"`
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
	TotalDays       int    `json:"totalDays"`
	Status          string `json:"status"`
	Description     string `json:"description,omitempty"`
	RequestedAt     string `json:"requestedAt"`
	ReviewedByEmail string `json:"reviewedByEmail,omitempty"`
	ReviewNotes     string `json:"reviewNotes,omitempty"`
	ReviewedAt      string `json:"reviewedAt,omitempty"`
}

func toRequestResponse(r models.LeaveRequest) RequestResponse {
	resp := RequestResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		LeaveType:       string(r.LeaveType),
		StartDate:       r.StartDate.Format("2006-01-02"),
		EndDate:         r.EndDate.Format("2006-01-02"),
		TotalDays:       r.TotalDays,
		Status:          string(r.Status),
		Description:     r.Description,
		RequestedAt:     r.RequestedAt.Format(time.RFC3339),
		ReviewedByEmail: r.ReviewedByEmail,
		ReviewNotes:     r.ReviewNotes,
	}
	if r.Employee.ID != 0 {
		resp.EmployeeName = r.Employee.FirstName + " " + r.Employee.LastName
	}
	if r.ReviewedAt != nil {
		resp.ReviewedAt = r.ReviewedAt.Format(time.RFC3339)
	}
	return resp
}

func CreateRequestHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ActorFromContext(c)
		if err != nil {
			return err
		}

		var body CreateRequestBody
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri gönderildi")
		}

		if !ValidLeaveType(body.LeaveType) {
			return fiber.NewError(fiber.StatusBadRequest, "İzin türü geçersiz (annual | sick | excuse | unpaid)")
		}

		var emp models.Employee
		if err := database.DB.First(&emp, body.EmployeeID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Çalışan bulunamadı")
		}
		if !emp.IsActive {
			return fiber.NewError(fiber.StatusBadRequest, "Pasif çalışan için izin talebi oluşturulamaz")
		}

		start, err := time.Parse("2006-01-02", body.StartDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "startDate geçersiz (YYYY-MM-DD bekleniyor)")
		}
		end, err := time.Parse("2006-01-02", body.EndDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "endDate geçersiz (YYYY-MM-DD bekleniyor)")
		}

		days := DayCount(start, end)
		if days == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "endDate, startDate'ten önce olamaz")
		}

		req := models.LeaveRequest{
			EmployeeID:  emp.ID,
			LeaveType:   models.LeaveType(body.LeaveType),
			StartDate:   start,
			EndDate:     end,
			TotalDays:   days,
			Status:      models.LeavePending,
			Description: strings.TrimSpace(body.Description),
			RequestedAt: time.Now(),
		}

		if err := database.DB.Create(&req).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İzin talebi oluşturulamadı")
		}
		req.Employee = emp

		audit.WriteLog(audit.LogOptions{
			UserID:      actor.UserID,
			UserEmail:   actor.Email,
			EntityType:  "leave_request",
			EntityID:    req.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("İzin talebi oluşturuldu: %s %s, %d gün", emp.FirstName, emp.LastName, days),
			After:       toRequestResponse(req),
		})

		return c.Status(fiber.StatusCreated).JSON(toRequestResponse(req))
	}
}

func ListRequestsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.LeaveRequest{}).Preload("Employee")

		if empID := c.QueryInt("employeeId"); empID > 0 {
			dbq = dbq.Where("employee_id = ?", empID)
		}
		if status := c.Query("status"); status != "" {
			dbq = dbq.Where("status = ?", status)
		}
		if year := c.QueryInt("year"); year > 0 {
			dbq = dbq.Where("start_date >= ? AND start_date < ?",
				time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(year+1, 1, 1, 0, 0, 0, 0, time.UTC))
		}

		var requests []models.LeaveRequest
		if err := dbq.Order("requested_at DESC").Find(&requests).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İzin talepleri listelenemedi")
		}

		res := make([]RequestResponse, 0, len(requests))
		for _, r := range requests {
			res = append(res, toRequestResponse(r))
		}
		return c.JSON(fiber.Map{"data": res})
	}
}

func ReviewRequestHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ActorFromContext(c)
		if err != nil {
			return err
		}

		var req models.LeaveRequest
		if err := database.DB.Preload("Employee").First(&req, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "İzin talebi bulunamadı")
		}

		if !CanReview(req.Status) {
			return fiber.NewError(fiber.StatusBadRequest, "Bu durumdaki talep incelenemez")
		}

		var body ReviewRequestBody
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri gönderildi")
		}

		newStatus, err := StatusAfterReview(body.Action)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz aksiyon (approve | reject)")
		}

		before := toRequestResponse(req)
		now := time.Now()
		req.Status = newStatus
		req.ReviewedBy = &actor.UserID
		req.ReviewedByEmail = actor.Email
		req.ReviewNotes = strings.TrimSpace(body.Notes)
		req.ReviewedAt = &now

		// Onay ve hak düşümü tek transaction'da; yıllık izinde bakiye kontrolü
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if newStatus == models.LeaveApproved && ConsumesEntitlement(req.LeaveType) {
				var ent models.LeaveEntitlement
				year := req.StartDate.Year()
				if err := tx.Where("employee_id = ? AND year = ?", req.EmployeeID, year).
					First(&ent).Error; err != nil {
					return fiber.NewError(fiber.StatusBadRequest,
						fmt.Sprintf("%d yılı için izin hakkı tanımlanmamış", year))
				}
				if ent.UsedDays+req.TotalDays > ent.TotalDays {
					return fiber.NewError(fiber.StatusBadRequest, "Kalan izin hakkı yetersiz")
				}
				ent.UsedDays += req.TotalDays
				if err := tx.Save(&ent).Error; err != nil {
					return err
				}
			}
			return tx.Save(&req).Error
		})
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				return fe
			}
			return fiber.NewError(fiber.StatusInternalServerError, "İzin talebi güncellenemedi")
		}

		audit.WriteLog(audit.LogOptions{
			UserID:      actor.UserID,
			UserEmail:   actor.Email,
			EntityType:  "leave_request",
			EntityID:    req.ID,
			Action:      models.AuditActionReview,
			Description: fmt.Sprintf("İzin talebi incelendi: %s -> %s", body.Action, newStatus),
			Before:      before,
			After:       toRequestResponse(req),
		})

		return c.JSON(toRequestResponse(req))
	}
}

func CancelRequestHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ActorFromContext(c)
		if err != nil {
			return err
		}

		var req models.LeaveRequest
		if err := database.DB.Preload("Employee").First(&req, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "İzin talebi bulunamadı")
		}

		if !CanCancel(req.Status) {
			return fiber.NewError(fiber.StatusBadRequest, "Yalnızca bekleyen talepler iptal edilebilir")
		}

		before := toRequestResponse(req)
		req.Status = models.LeaveCancelled
		if err := database.DB.Save(&req).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İzin talebi iptal edilemedi")
		}

		audit.WriteLog(audit.LogOptions{
			UserID:      actor.UserID,
			UserEmail:   actor.Email,
			EntityType:  "leave_request",
			EntityID:    req.ID,
			Action:      models.AuditActionUpdate,
			Description: "İzin talebi iptal edildi",
			Before:      before,
			After:       toRequestResponse(req),
		})

		return c.JSON(toRequestResponse(req))
	}
}

// ----------------------------------------
// İZİN HAKLARI
// ----------------------------------------

type EntitlementResponse struct {
	ID            uint `json:"id"`
	EmployeeID    uint `json:"employeeId"`
	Year          int  `json:"year"`
	TotalDays     int  `json:"totalDays"`
	UsedDays      int  `json:"usedDays"`
	RemainingDays int  `json:"remainingDays"`
}

type UpsertEntitlementBody struct {
	TotalDays int `json:"totalDays"`
}

func toEntitlementResponse(e models.LeaveEntitlement) EntitlementResponse {
	return EntitlementResponse{
		ID:            e.ID,
		EmployeeID:    e.EmployeeID,
		Year:          e.Year,
		TotalDays:     e.TotalDays,
		UsedDays:      e.UsedDays,
		RemainingDays: e.TotalDays - e.UsedDays,
	}
}

func ListEntitlementsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.LeaveEntitlement{})
		if year := c.QueryInt("year"); year > 0 {
			dbq = dbq.Where("year = ?", year)
		}

		var entitlements []models.LeaveEntitlement
		if err := dbq.Order("employee_id ASC, year DESC").Find(&entitlements).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İzin hakları listelenemedi")
		}

		res := make([]EntitlementResponse, 0, len(entitlements))
		for _, e := range entitlements {
			res = append(res, toEntitlementResponse(e))
		}
		return c.JSON(fiber.Map{"data": res})
	}
}

func EmployeeEntitlementsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		empID, err := c.ParamsInt("employeeId")
		if err != nil || empID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz çalışan ID")
		}

		dbq := database.DB.Where("employee_id = ?", empID)
		if year := c.QueryInt("year"); year > 0 {
			dbq = dbq.Where("year = ?", year)
		}

		var entitlements []models.LeaveEntitlement
		if err := dbq.Order("year DESC").Find(&entitlements).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İzin hakları listelenemedi")
		}

		res := make([]EntitlementResponse, 0, len(entitlements))
		for _, e := range entitlements {
			res = append(res, toEntitlementResponse(e))
		}
		return c.JSON(fiber.Map{"data": res})
	}
}

func UpsertEntitlementHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		empID, err := c.ParamsInt("employeeId")
		if err != nil || empID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz çalışan ID")
		}
		year, err := c.ParamsInt("year")
		if err != nil || year < 2000 || year > 2100 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz yıl")
		}

		var body UpsertEntitlementBody
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri gönderildi")
		}
		if body.TotalDays <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Toplam gün sayısı pozitif olmalı")
		}

		var emp models.Employee
		if err := database.DB.First(&emp, empID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Çalışan bulunamadı")
		}

		var ent models.LeaveEntitlement
		err = database.DB.Where("employee_id = ? AND year = ?", empID, year).First(&ent).Error
		if err != nil {
			ent = models.LeaveEntitlement{
				EmployeeID: uint(empID),
				Year:       year,
				TotalDays:  body.TotalDays,
			}
			if err := database.DB.Create(&ent).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "İzin hakkı oluşturulamadı")
			}
			return c.Status(fiber.StatusCreated).JSON(toEntitlementResponse(ent))
		}

		if body.TotalDays < ent.UsedDays {
			return fiber.NewError(fiber.StatusBadRequest, "Toplam gün, kullanılan günün altına indirilemez")
		}
		ent.TotalDays = body.TotalDays
		if err := database.DB.Save(&ent).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İzin hakkı güncellenemedi")
		}
		return c.JSON(toEntitlementResponse(ent))
	}
}
