package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"podstudio/internal/cache"
	"podstudio/internal/config"
	"podstudio/internal/database"
	"podstudio/internal/middleware"
	"podstudio/internal/modules/admin"
	"podstudio/internal/modules/auth"
	"podstudio/internal/modules/booking"
	"podstudio/internal/modules/catalog"
	"podstudio/internal/modules/review"
	"podstudio/internal/notification"
	jwtsvc "podstudio/internal/pkg/jwt"
	"podstudio/internal/repository"
)

func main() {
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database")
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	userRepo := repository.NewUserRepository(db)
	studioRepo := repository.NewStudioRepository(db)
	availRepo := repository.NewAvailabilityRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	slotCache := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.AvailCacheTTL)

	var notifs notification.Sender
	var mailer auth.Mailer
	if cfg.SMTPHost != "" {
		ms, err := notification.NewMailSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
		if err != nil {
			log.Fatal().Err(err).Msg("smtp")
		}
		notifs = ms
		mailer = ms
	} else {
		ls := notification.NewLogSender()
		notifs = ls
		mailer = ls
	}

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	authService := auth.NewService(userRepo, j, mailer, cfg.OTPTTL)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(studioRepo, availRepo, slotCache)
	catalogHandler := catalog.NewHandler(catalogService)

	bookingService := booking.NewService(bookingRepo, studioRepo, availRepo, userRepo, notifs, slotCache)
	bookingHandler := booking.NewHandler(bookingService)

	adminService := admin.NewService(studioRepo, bookingRepo, slotCache)
	adminHandler := admin.NewHandler(adminService)

	reviewService := review.NewService(reviewRepo, studioRepo, bookingRepo)
	reviewHandler := review.NewHandler(reviewService)

	if cfg.AppEnv == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)
		reviewHandler.RegisterPublicRoutes(v1)

		// protected
		protected := v1.Group("")
		protected.Use(middleware.Auth(j))
		{
			catalogHandler.RegisterProtectedRoutes(protected)
			reviewHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			adminHandler.RegisterRoutes(protected)
		}
	}

	log.Info().Str("addr", cfg.Addr).Msg("listening")
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal().Err(err).Msg("server")
	}
}
