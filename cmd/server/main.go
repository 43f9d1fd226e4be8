package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	"github.com/sainikush/DevNexus-Central-Hub-for-Dev-Events/config"
	"github.com/sainikush/DevNexus-Central-Hub-for-Dev-Events/internal/adapters/email"
	"github.com/sainikush/DevNexus-Central-Hub-for-Dev-Events/internal/adapters/media"
	deliveryhttp "github.com/sainikush/DevNexus-Central-Hub-for-Dev-Events/internal/delivery/http"
	"github.com/sainikush/DevNexus-Central-Hub-for-Dev-Events/internal/delivery/http/controllers"
	"github.com/sainikush/DevNexus-Central-Hub-for-Dev-Events/internal/delivery/http/middleware"
	"github.com/sainikush/DevNexus-Central-Hub-for-Dev-Events/internal/repository/postgres"
	"github.com/sainikush/DevNexus-Central-Hub-for-Dev-Events/internal/services"
)

const serviceTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("ping database: %v", err)
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}

	eventRepo := postgres.NewEventRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.SESRegion,
			AccessKeyID:        cfg.SESAccessKeyID,
			SecretAccessKey:    cfg.SESSecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureSkipVerify,
		},
	})
	if err != nil {
		log.Fatalf("create mailer: %v", err)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())

	eventService := services.NewEventService(eventRepo, serviceTimeout)
	bookingService := services.NewBookingService(eventRepo, bookingRepo, emailService, serviceTimeout)

	images := media.NewLocalImageStore(cfg.UploadDir, "/uploads")

	eventController := controllers.NewEventController(logger, eventService, images)
	bookingController := controllers.NewBookingController(logger, bookingService)

	mux := deliveryhttp.NewRouter(eventController, bookingController, cfg.UploadDir)
	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("server: %v", err)
	}
}
