package main

import (
	"log"
	"strings"

	"gise-backend/internal/admin"
	"gise-backend/internal/audit"
	"gise-backend/internal/auth"
	"gise-backend/internal/config"
	"gise-backend/internal/dashboard"
	"gise-backend/internal/database"
	"gise-backend/internal/hakedis"
	"gise-backend/internal/leave"
	"gise-backend/internal/models"
	"gise-backend/internal/recon"
	"gise-backend/internal/remittance"
	"gise-backend/internal/submission"
	"gise-backend/internal/vehicle"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den normalize et
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Gün sonu teslim & inceleme (iki kayıt türü, aynı akış)
	submission.RegisterRoutes(protected.Group("/desk"), recon.Desk)
	submission.RegisterRoutes(protected.Group("/bayi-dolum"), recon.BayiDolum)

	// Banka gönderim raporu & pusula dışa aktarımı
	protected.Get("/bank-remittance", remittance.ListHandler())
	protected.Get("/bank-remittance/:id/pusula", remittance.PusulaHandler())
	protected.Post("/bank-remittance/pusula", remittance.BulkPusulaHandler())

	// Hakediş
	hakedis.RegisterRoutes(protected.Group("/hakedis"))

	// İzin yönetimi
	leave.RegisterRoutes(protected.Group("/leave"))

	// Dashboard
	protected.Get("/dashboard/sales-chart", dashboard.SalesChartHandler())

	// Audit logs (yalnızca admin)
	protected.Get("/audit-logs", auth.RequireRole(models.RoleAdmin), audit.ListAuditLogsHandler())

	// Admin routes
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	// Kullanıcı yönetimi
	adminRoutes.Post("/users", admin.CreateUserHandler())
	adminRoutes.Get("/users", admin.ListUsersHandler())
	adminRoutes.Get("/users/:id", admin.GetUserHandler())
	adminRoutes.Put("/users/:id", admin.UpdateUserHandler())
	adminRoutes.Delete("/users/:id", admin.DeleteUserHandler())

	// Araç yönetimi
	adminRoutes.Post("/vehicles", vehicle.CreateVehicleHandler())
	adminRoutes.Put("/vehicles/:id", vehicle.UpdateVehicleHandler())
	adminRoutes.Delete("/vehicles/:id", vehicle.DeleteVehicleHandler())

	// Araç listesi tüm oturumlu kullanıcılara açık (hakediş özeti kullanır)
	protected.Get("/vehicles", vehicle.ListVehiclesHandler())
	protected.Get("/vehicles/:id", vehicle.GetVehicleHandler())

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
