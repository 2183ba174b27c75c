package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"staybook/internal/app/commands"
	availabilityapp "staybook/internal/app/handlers/availability"
	bookingapp "staybook/internal/app/handlers/booking"
	listingapp "staybook/internal/app/handlers/listings"
	pricingapp "staybook/internal/app/handlers/pricing"
	"staybook/internal/app/policies"
	"staybook/internal/app/queries"
	domainavailability "staybook/internal/domain/availability"
	domainbooking "staybook/internal/domain/booking"
	domainlistings "staybook/internal/domain/listings"
	domainpricing "staybook/internal/domain/pricing"
	"staybook/internal/domain/shared/dateonly"
	"staybook/internal/infra/broker/kafka"
	"staybook/internal/infra/config"
	mongodb "staybook/internal/infra/db/mongo"
	ginserver "staybook/internal/infra/http/gin"
	"staybook/internal/infra/obs"
	"staybook/internal/infra/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Warn("using fallback configuration", "error", err)
		cfg = fallbackConfig(env)
	}

	st, ready, cleanup, err := buildStores(ctx, cfg, logger)
	if err != nil {
		logger.Error("storage init failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	publisher, pubClose := buildPublisher(cfg, logger)
	defer pubClose()

	app := buildApplication(st, publisher, cfg)
	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{Ready: ready}, app)

	if cfg.StorageMode == "memory" {
		fixturesPath := getenv("LISTINGS_FIXTURES", filepath.Join("data", "listings.json"))
		if err := loadFixtures(ctx, st, cfg, fixturesPath, logger); err != nil {
			logger.Warn("listing fixtures load failed", "error", err, "path", fixturesPath)
		}
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

func fallbackConfig(env string) config.Config {
	return config.Config{
		Env:               env,
		HTTPAddr:          getenv("HTTP_ADDR", ":8080"),
		StorageMode:       "memory",
		KafkaTopicPrefix:  "staybook",
		DefaultCurrency:   "USD",
		ServiceFeePercent: 12,
		CleaningFeeCents:  2500,
		ShutdownTimeout:   5 * time.Second,
	}
}

type stores struct {
	Listings  domainlistings.Repository
	Rules     domainpricing.RuleRepository
	Calendars domainavailability.Repository
	Bookings  domainbooking.Repository
}

func buildStores(ctx context.Context, cfg config.Config, logger *slog.Logger) (stores, func() error, func(), error) {
	if cfg.StorageMode == "mongo" {
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return stores{}, nil, nil, fmt.Errorf("mongo connect: %w", err)
		}
		if err := client.Ping(ctx); err != nil {
			return stores{}, nil, nil, fmt.Errorf("mongo ping: %w", err)
		}
		logger.Info("mongo connected", "database", cfg.MongoDB)
		cleanup := func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Close(closeCtx); err != nil {
				logger.Error("mongo disconnect failed", "error", err)
			}
		}
		return stores{
			Listings:  mongodb.NewListingRepository(client.DB),
			Rules:     mongodb.NewRuleRepository(client.DB),
			Calendars: mongodb.NewCalendarRepository(client.DB),
			Bookings:  mongodb.NewBookingRepository(client.DB),
		}, func() error { return client.Ping(context.Background()) }, cleanup, nil
	}

	return stores{
		Listings:  memory.NewListingRepository(),
		Rules:     memory.NewRuleRepository(),
		Calendars: memory.NewCalendarRepository(),
		Bookings:  memory.NewBookingRepository(),
	}, func() error { return nil }, func() {}, nil
}

func buildPublisher(cfg config.Config, logger *slog.Logger) (policies.EventPublisher, func()) {
	if len(cfg.KafkaBrokers) == 0 {
		return policies.NoopPublisher{}, func() {}
	}
	producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
	if err != nil {
		logger.Warn("kafka unavailable, events disabled", "error", err)
		return policies.NoopPublisher{}, func() {}
	}
	logger.Info("kafka producer ready", "brokers", cfg.KafkaBrokers)
	publisher := &kafka.EventPublisher{Producer: producer, TopicPrefix: cfg.KafkaTopicPrefix, Logger: logger}
	return publisher, func() {
		if err := producer.Close(); err != nil {
			logger.Error("kafka close failed", "error", err)
		}
	}
}

func buildApplication(st stores, publisher policies.EventPublisher, cfg config.Config) ginserver.Handlers {
	fees := policies.StandardFees{
		ServiceFeePercent: cfg.ServiceFeePercent,
		CleaningFeeCents:  cfg.CleaningFeeCents,
	}

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, pricingapp.GetDisplayPriceQuery{}.Key(), &pricingapp.GetDisplayPriceHandler{
		Listings: st.Listings,
		Rules:    st.Rules,
	})
	queries.RegisterHandler(queryBus, pricingapp.GetStayQuoteQuery{}.Key(), &pricingapp.GetStayQuoteHandler{
		Listings:  st.Listings,
		Rules:     st.Rules,
		Calendars: st.Calendars,
		Fees:      fees,
	})
	queries.RegisterHandler(queryBus, availabilityapp.GetCalendarQuery{}.Key(), &availabilityapp.GetCalendarHandler{
		Calendars: st.Calendars,
	})
	queries.RegisterHandler(queryBus, availabilityapp.CheckRangeQuery{}.Key(), &availabilityapp.CheckRangeHandler{
		Calendars: st.Calendars,
	})
	queries.RegisterHandler(queryBus, listingapp.SearchCatalogQuery{}.Key(), &listingapp.SearchCatalogHandler{
		Listings: st.Listings,
		Rules:    st.Rules,
	})
	queries.RegisterHandler(queryBus, bookingapp.ListGuestBookingsQuery{}.Key(), &bookingapp.ListGuestBookingsHandler{
		Bookings: st.Bookings,
	})

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, bookingapp.RequestBookingCommand{}.Key(), &bookingapp.RequestBookingHandler{
		Listings:  st.Listings,
		Calendars: st.Calendars,
		Rules:     st.Rules,
		Bookings:  st.Bookings,
		Fees:      fees,
		Publisher: publisher,
	})
	commands.RegisterHandler(commandBus, bookingapp.CancelBookingCommand{}.Key(), &bookingapp.CancelBookingHandler{
		Bookings:  st.Bookings,
		Calendars: st.Calendars,
		Publisher: publisher,
	})
	commands.RegisterHandler(commandBus, bookingapp.ConfirmBookingCommand{}.Key(), &bookingapp.ConfirmBookingHandler{
		Bookings:  st.Bookings,
		Publisher: publisher,
	})
	commands.RegisterHandler(commandBus, bookingapp.DeclineBookingCommand{}.Key(), &bookingapp.DeclineBookingHandler{
		Bookings:  st.Bookings,
		Calendars: st.Calendars,
		Publisher: publisher,
	})
	commands.RegisterHandler(commandBus, availabilityapp.UpdateCalendarCommand{}.Key(), &availabilityapp.UpdateCalendarHandler{
		Calendars: st.Calendars,
		Publisher: publisher,
	})
	commands.RegisterHandler(commandBus, pricingapp.UpsertRuleCommand{}.Key(), &pricingapp.UpsertRuleHandler{
		Rules: st.Rules,
	})
	commands.RegisterHandler(commandBus, pricingapp.DeactivateRuleCommand{}.Key(), &pricingapp.DeactivateRuleHandler{
		Rules: st.Rules,
	})

	return ginserver.Handlers{
		Listing:      ginserver.ListingHandler{Queries: queryBus},
		Pricing:      ginserver.PricingHandler{Queries: queryBus},
		Availability: ginserver.AvailabilityHandler{Queries: queryBus},
		Booking:      ginserver.BookingHandler{Commands: commandBus},
		Me:           ginserver.MeHandler{Queries: queryBus},
		Host:         ginserver.HostHandler{Commands: commandBus},
	}
}

type roomFixture struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	NightlyRateCents int64  `json:"nightly_rate_cents"`
	Capacity         int    `json:"capacity"`
}

type listingFixture struct {
	ID               string        `json:"id"`
	Host             string        `json:"host"`
	Kind             string        `json:"kind"`
	Title            string        `json:"title"`
	Description      string        `json:"description"`
	PropertyType     string        `json:"property_type"`
	City             string        `json:"city"`
	Country          string        `json:"country"`
	GuestsLimit      int           `json:"guests_limit"`
	MinNights        int           `json:"min_nights"`
	MaxNights        int           `json:"max_nights"`
	NightlyRateCents int64         `json:"nightly_rate_cents"`
	Currency         string        `json:"currency"`
	Rooms            []roomFixture `json:"rooms"`
	ThumbnailURL     string        `json:"thumbnail_url"`
	OpenDays         int           `json:"open_days"`
}

// loadFixtures seeds the in-memory store so a fresh dev server has something
// to browse. Each fixture listing gets an open calendar window starting today.
func loadFixtures(ctx context.Context, st stores, cfg config.Config, path string, logger *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("listing fixtures file not found, skipping", "path", path)
			return nil
		}
		return fmt.Errorf("read fixtures: %w", err)
	}

	var fixtures []listingFixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return fmt.Errorf("decode fixtures: %w", err)
	}

	now := time.Now()
	today := dateonly.FromTime(now)
	for _, fx := range fixtures {
		rooms := make([]domainlistings.Room, 0, len(fx.Rooms))
		for _, room := range fx.Rooms {
			rooms = append(rooms, domainlistings.Room{
				ID:               room.ID,
				Name:             room.Name,
				NightlyRateCents: room.NightlyRateCents,
				Capacity:         room.Capacity,
				Active:           true,
			})
		}
		currency := fx.Currency
		if currency == "" {
			currency = cfg.DefaultCurrency
		}
		kind := domainlistings.Kind(fx.Kind)
		if kind == "" {
			kind = domainlistings.KindStay
		}
		listing, err := domainlistings.NewListing(domainlistings.CreateListingParams{
			ID:               domainlistings.ListingID(fx.ID),
			Host:             domainlistings.HostID(fx.Host),
			Kind:             kind,
			Title:            fx.Title,
			Description:      fx.Description,
			PropertyType:     fx.PropertyType,
			Address:          domainlistings.Address{City: fx.City, Country: fx.Country},
			GuestsLimit:      fx.GuestsLimit,
			MinNights:        fx.MinNights,
			MaxNights:        fx.MaxNights,
			NightlyRateCents: fx.NightlyRateCents,
			Currency:         currency,
			Rooms:            rooms,
			ThumbnailURL:     fx.ThumbnailURL,
			Now:              now,
		})
		if err != nil {
			logger.Error("fixture invalid", "listing_id", fx.ID, "error", err)
			continue
		}
		if err := listing.Activate(now); err != nil {
			logger.Error("fixture activation failed", "listing_id", fx.ID, "error", err)
			continue
		}
		listing.ClearEvents()
		if err := st.Listings.Save(ctx, listing); err != nil {
			logger.Error("cannot store fixture listing", "listing_id", fx.ID, "error", err)
			continue
		}

		openDays := fx.OpenDays
		if openDays <= 0 {
			openDays = 90
		}
		calendar := domainavailability.NewCalendar(fx.ID, nil)
		calendar.OpenRange(today, today.AddDays(openDays), now)
		calendar.ClearEvents()
		if err := st.Calendars.Save(ctx, calendar); err != nil {
			logger.Error("cannot store fixture calendar", "listing_id", fx.ID, "error", err)
			continue
		}
		logger.Info("listing fixture imported", "listing_id", fx.ID, "open_days", openDays)
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
