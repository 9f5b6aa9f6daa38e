package main

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/gatherly/gatherly-backend/internal/config"
	"github.com/gatherly/gatherly-backend/internal/handler"
	"github.com/gatherly/gatherly-backend/internal/middleware"
	"github.com/gatherly/gatherly-backend/internal/repository"
	"github.com/gatherly/gatherly-backend/internal/service"
	"github.com/gatherly/gatherly-backend/pkg/database"
	"github.com/gatherly/gatherly-backend/pkg/email"
	"github.com/gatherly/gatherly-backend/pkg/logger"
	"github.com/gatherly/gatherly-backend/pkg/payment"
	"github.com/gatherly/gatherly-backend/pkg/utils"
)

func main() {
	// Load .env
	godotenv.Load()

	log := logger.New()
	defer log.Sync()

	cfg := config.LoadConfig()

	// Initialize database (runs migrations and seeds pricing tiers)
	db := database.NewDatabase(cfg.DatabaseURL)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	pricingRepo := repository.NewPricingRepository(db)
	cartRepo := repository.NewCartRepository(db)
	eventRepo := repository.NewEventRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	medalRepo := repository.NewMedalRepository(db)

	// Providers
	stripeService := payment.NewStripeService(cfg.Stripe.SecretKey, cfg.FrontendURL)
	paypalService := payment.NewPayPalService(
		cfg.PayPal.ClientID,
		cfg.PayPal.ClientSecret,
		cfg.PayPal.BaseURL,
		cfg.FrontendURL,
	)
	emailService := email.NewEmailService(cfg.Email.APIKey, cfg.Email.FromAddress, cfg.Email.FromName, log)

	// Services
	medalService := service.NewMedalService(medalRepo, userRepo, emailService, log)
	cartService := service.NewCartService(cartRepo, pricingRepo, userRepo)
	availabilityService := service.NewAvailabilityService(eventRepo, availabilityRepo)
	eventService := service.NewEventService(eventRepo, userRepo)
	paymentService := service.NewPaymentService(
		cartRepo,
		eventRepo,
		stripeService,
		paymentRepo,
		userRepo,
		medalService,
		emailService,
		log,
	)
	attendanceService := service.NewAttendanceService(
		eventRepo,
		attendanceRepo,
		paymentRepo,
		paypalService,
		userRepo,
		medalService,
		log,
	)

	validator := utils.NewValidator()

	// Handlers
	eventHandler := handler.NewEventHandler(cartService, eventService, availabilityService, validator)
	paymentHandler := handler.NewPaymentHandler(paymentService, validator)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService, validator)
	medalHandler := handler.NewMedalHandler(medalService)

	// Router
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE",
		AllowCredentials: true,
	}))
	app.Use(fiberlogger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	api := app.Group("/api")

	// Public routes
	api.Get("/events/all", eventHandler.GetAllEvents)
	api.Get("/users/:userId/past-events", eventHandler.GetUserPastEvents)

	// Protected routes
	api.Use(middleware.AuthMiddleware())
	{
		events := api.Group("/events")
		events.Post("/create", eventHandler.CreateEvent)
		events.Post("/check-availability", eventHandler.CheckAvailability)
		events.Get("/preview", eventHandler.PreviewEvent)
		events.Post("/pay", paymentHandler.ProcessPayment)
		events.Put("/pay", paymentHandler.ConfirmPayment)
		events.Post("/join", attendanceHandler.JoinEvent)
		events.Post("/capture-payment", attendanceHandler.CapturePayment)
		events.Get("/own", eventHandler.GetOwnEvents)
		events.Get("/matched", eventHandler.GetMatchedEvents)
		// Registered last so it cannot shadow the named event routes.
		events.Get("/:id", eventHandler.GetEvent)

		user := api.Group("/user")
		user.Get("/medals", medalHandler.GetMyMedals)
		user.Get("/earnings", paymentHandler.GetUserEarnings)
		user.Post("/availability", eventHandler.DeclareUnavailability)
		user.Get("/availability", eventHandler.GetUnavailability)
	}

	log.Info("starting server", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
