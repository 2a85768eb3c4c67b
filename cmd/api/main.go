package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"homeserve/internal/config"
	"homeserve/internal/database"
	"homeserve/internal/middleware"
	"homeserve/internal/modules/auth"
	"homeserve/internal/modules/booking"
	"homeserve/internal/modules/catalog"
	"homeserve/internal/modules/notification"
	"homeserve/internal/modules/profile"
	"homeserve/internal/modules/review"
	"homeserve/internal/modules/upload"
	"homeserve/internal/modules/users"
	jwtsvc "homeserve/internal/pkg/jwt"
	"homeserve/internal/pkg/mailer"
	"homeserve/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "homeserve.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	var otpMailer mailer.Mailer
	if cfg.SMTPConfigured() {
		otpMailer = mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom, cfg.OTPTTL)
	} else {
		otpMailer = mailer.NewConsole(true)
	}

	notificationService := notification.NewService(notificationRepo)
	notificationHandler := notification.NewHandler(notificationService)

	authService := auth.NewService(userRepo, j, otpMailer, cfg.OTPPepper, cfg.OTPTTL)
	authHandler := auth.NewHandler(authService)

	usersService := users.NewService(userRepo)
	usersHandler := users.NewHandler(usersService)

	catalogService := catalog.NewService(categoryRepo, serviceRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	bookingService := booking.NewService(bookingRepo, serviceRepo, userRepo, notificationService)
	bookingHandler := booking.NewHandler(bookingService)

	reviewService := review.NewService(reviewRepo, bookingRepo, notificationService)
	reviewHandler := review.NewHandler(reviewService)

	profileService := profile.NewService(profileRepo, userRepo)
	profileHandler := profile.NewHandler(profileService)

	uploadHandler := upload.NewHandler()

	if cfg.AppEnv == "prod" || cfg.AppEnv == "production" || cfg.AppEnv == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), middleware.ErrorLogger(), middleware.CORS())

	api := r.Group("/api")
	{
		authHandler.RegisterPublicRoutes(api)
		catalogHandler.RegisterPublicRoutes(api)
		reviewHandler.RegisterPublicRoutes(api)
		profileHandler.RegisterPublicRoutes(api)

		protected := api.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterProtectedRoutes(protected)
			reviewHandler.RegisterProtectedRoutes(protected)
			notificationHandler.RegisterProtectedRoutes(protected)
			profileHandler.RegisterProtectedRoutes(protected)
			uploadHandler.RegisterProtectedRoutes(protected)

			admin := protected.Group("/admin")
			admin.Use(middleware.AdminOnly())
			{
				usersHandler.RegisterAdminRoutes(admin)
				catalogHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	log.Printf("listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
