package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restaurant-owner-panel/internal/bus"
	"restaurant-owner-panel/internal/config"
	identityclient "restaurant-owner-panel/internal/identity/client"
	"restaurant-owner-panel/internal/observer"
	"restaurant-owner-panel/internal/order"
	orderclient "restaurant-owner-panel/internal/order/client"
	"restaurant-owner-panel/internal/poller"
	"restaurant-owner-panel/internal/session"
	"restaurant-owner-panel/internal/storage/bbolt"
	paneltelemetry "restaurant-owner-panel/internal/telemetry/otel"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	providers, err := paneltelemetry.NewProviders(ctx, cfg.OTLPEndpoint, "restaurant-owner-panel", cfg.OTLPInsecure)
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}
	providers.SetGlobal()
	emitter := paneltelemetry.NewEventEmitter(providers.LoggerProvider)

	kv, err := bbolt.Open(cfg.StatePath)
	if err != nil {
		log.Fatalf("state store: %v", err)
	}

	nb := bus.New()
	sessions := session.NewStore(kv, nb, emitter)

	identity := identityclient.New(cfg.IdentityURL)
	identity.HTTPClient.Timeout = cfg.RequestTimeout()
	orders := orderclient.New(cfg.OrdersURL)
	orders.HTTPClient.Timeout = cfg.RequestTimeout()
	orderSvc := order.NewService(orders, emitter)

	guard := observer.NewRouteGuard(sessions, func() {
		log.Println("session ended, returning to login")
	})
	guard.Mount(nb)

	nav := observer.NewNavBar(sessions)
	nav.Mount(ctx, nb)

	badge := observer.NewBadge(sessions, orderSvc)
	badge.Mount(ctx, nb)

	profile := observer.NewProfile(sessions, identity)
	profile.Mount(ctx, nb)

	refresher := poller.New(cfg.PollEvery(), func(ctx context.Context) (int, error) {
		record, ok := sessions.Load(ctx)
		if !ok {
			return 0, nil
		}
		return orderSvc.PendingCount(ctx, record)
	}, badge.SetCount, emitter)
	refresher.Start(ctx)

	if record, ok := sessions.Load(ctx); ok {
		log.Printf("restored session for %s (%s)", record.Username, record.RestaurantName)
	} else {
		log.Println("no persisted session, owner must log in")
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down panel...")
	refresher.Stop()
	profile.Unmount()
	badge.Unmount()
	nav.Unmount()
	guard.Unmount()

	if err := kv.Close(); err != nil {
		log.Printf("state store: close: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := providers.Shutdown(shutdownCtx); err != nil {
		log.Printf("telemetry: %v", err)
	}
	log.Println("panel stopped")
}
