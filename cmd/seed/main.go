package main

import (
	"context"
	"fmt"
	"time"

	"podstudio/internal/database"
	"podstudio/internal/domain"
	"podstudio/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	db, err := database.Connect("podstudio.db")
	if err != nil {
		log.Fatal().Err(err).Msg("db connection failed")
	}

	log.Info().Msg("running migrations")
	if err := repository.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}

	// Cleanup old data (FK-safe order).
	log.Info().Msg("cleaning old data")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM availability_slots")
	db.Exec("DELETE FROM availabilities")
	db.Exec("DELETE FROM studio_addons")
	db.Exec("DELETE FROM studio_packages")
	db.Exec("DELETE FROM studios")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	studios := repository.NewStudioRepository(db)
	avail := repository.NewAvailabilityRepository(db)
	bookings := repository.NewBookingRepository(db)

	log.Info().Msg("creating users")
	admin := seedUser(ctx, users, "admin@podstudio.local", "admin123", domain.RoleAdmin, "Admin")
	owner := seedUser(ctx, users, "owner@podstudio.local", "owner123", domain.RoleOwner, "Olivia Owner")
	customer := seedUser(ctx, users, "customer@podstudio.local", "customer123", domain.RoleCustomer, "Casey Customer")
	_ = admin

	log.Info().Msg("creating studio")
	studio := &domain.Studio{
		OwnerID:     owner.ID,
		Name:        "Waveform Rooms",
		Description: "Three treated rooms for podcast recording, editing desk on site.",
		Equipment:   []string{"Shure SM7B x4", "Rodecaster Pro II", "Sony A7 IV x2"},
		Address:     "12 Mercer St",
		City:        "Austin",
		State:       "TX",
		PostalCode:  "78701",
		OpenHour:    9,
		CloseHour:   21,
		Approved:    true,
		Packages: []domain.Package{
			{Key: "audio", Name: "Audio only", Price: 60, Description: "Multitrack audio, engineer included"},
			{Key: "1cam", Name: "One camera", Price: 100, Description: "Audio plus single locked-off camera"},
			{Key: "3cam", Name: "Three cameras", Price: 180, Description: "Full video setup with switching"},
		},
		Addons: []domain.Addon{
			{Key: "edit", Name: "Editing", Price: 50, MaxQuantity: 2, Description: "Per-episode edit pass"},
			{Key: "livestream", Name: "Livestream", Price: 75, MaxQuantity: 1, Description: "Stream to one platform"},
		},
	}
	if err := studios.Create(ctx, studio); err != nil {
		log.Fatal().Err(err).Msg("studio create failed")
	}

	log.Info().Msg("publishing availability")
	days := make([]domain.Availability, 0, 7)
	for i := 0; i < 7; i++ {
		date := time.Now().AddDate(0, 0, i+1).Format(domain.DateLayout)
		av := domain.Availability{StudioID: studio.ID, Date: date}
		for h := studio.OpenHour; h < studio.CloseHour; h++ {
			av.Slots = append(av.Slots, domain.Slot{Hour: h, IsAvailable: true})
		}
		days = append(days, av)
	}
	if err := avail.ReplaceForStudio(ctx, studio.ID, days); err != nil {
		log.Fatal().Err(err).Msg("availability seed failed")
	}

	log.Info().Msg("creating a sample booking")
	b := &domain.Booking{
		Reference:     uuid.NewString(),
		StudioID:      studio.ID,
		CustomerID:    customer.ID,
		Date:          days[0].Date,
		Hours:         []int{10, 11},
		PackageKey:    "1cam",
		PackagePrice:  100,
		Addons:        []domain.BookingAddon{{Key: "edit", Quantity: 1, Price: 50}},
		TotalPrice:    250,
		PaymentStatus: domain.PaymentPayAtStudio,
	}
	if err := bookings.CreateWithReservation(ctx, b); err != nil {
		log.Fatal().Err(err).Msg("booking seed failed")
	}

	fmt.Println("seeded: 3 users, 1 studio, 7 days of availability, 1 booking")
}

func seedUser(ctx context.Context, users *repository.UserRepository, email, password string, role domain.UserRole, name string) *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	u := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Name:         name,
		Verified:     true,
	}
	if err := users.Create(ctx, u); err != nil {
		log.Fatal().Err(err).Str("email", email).Msg("user seed failed")
	}
	return u
}
