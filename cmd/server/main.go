package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/seatdesk/seat-reservation/internal/cache"
	"github.com/seatdesk/seat-reservation/internal/config"
	"github.com/seatdesk/seat-reservation/internal/database"
	"github.com/seatdesk/seat-reservation/internal/handler"
	"github.com/seatdesk/seat-reservation/internal/queue"
	"github.com/seatdesk/seat-reservation/internal/repository"
	"github.com/seatdesk/seat-reservation/internal/router"
	queue_publisher "github.com/seatdesk/seat-reservation/internal/service"
)

func main() {
	// .env is optional; in containers everything comes from the
	// environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema: %v", err)
	}
	cancel()

	// Redis is optional: without it rate limiting and the stats cache
	// quietly turn off.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis not available, rate limiting and caching disabled")
	}
	cch := cache.New(rdb)

	userRepo := repository.NewUserRepo(db)
	roomRepo := repository.NewRoomRepo(db)
	seatRepo := repository.NewSeatRepo(db)
	slotRepo := repository.NewTimeSlotRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	reservationRepo := repository.NewReservationRepo(db)

	pub := queue_publisher.New(cfg.BrokerURL)
	defer pub.Close()

	h := router.Handlers{
		Auth:         handler.NewAuthHandler(userRepo, cfg),
		Users:        handler.NewUserHandler(userRepo, cfg),
		Rooms:        handler.NewRoomHandler(roomRepo),
		Seats:        handler.NewSeatHandler(seatRepo, roomRepo),
		Slots:        handler.NewTimeSlotHandler(slotRepo),
		Bookings:     handler.NewBookingHandler(bookingRepo, seatRepo),
		Reservations: handler.NewReservationHandler(reservationRepo, seatRepo, slotRepo, cch, pub.PublishReservationEvent),
		Admin:        handler.NewAdminHandler(userRepo, seatRepo, reservationRepo, cch),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	router.RegisterRoutes(e)
	router.RegisterAPI(e, h, cfg.JWTSecret, rdb)

	// The consumer reconnects on its own; it just logs while the broker
	// is down.
	go func() {
		if err := queue.StartReservationConsumer(cfg.BrokerURL); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
