package main

import (
	"cuecafe/internal/booking"
	"cuecafe/internal/catalog"
	"cuecafe/internal/handler"
	"cuecafe/internal/identity"
	"cuecafe/internal/notify"
	"cuecafe/internal/payment"
	"cuecafe/internal/session"
	"cuecafe/internal/tablestore"
	"cuecafe/pkg/app"
	"cuecafe/pkg/config"
)

func main() {
	cfg := config.Load("cuecafe")

	store := tablestore.New(cfg.TableStoreURL, cfg.TableStoreKey, cfg.ClientTimeout, cfg.Log)
	sessions := session.NewFileStore(cfg.SessionFile, cfg.Log)
	notifier := notify.NewLogNotifier(cfg.Log)

	identitySvc := identity.NewService(store, sessions, cfg.PasswordSalt, cfg.Log)
	catalogSvc := catalog.NewService(store, cfg.VenueName, cfg.OpenHour, cfg.CloseHour, cfg.Log)
	bookingSvc := booking.NewService(store, catalogSvc, notifier, cfg.Log)

	backend := payment.NewBackend(cfg.PaymentBackendURL, cfg.ClientTimeout, cfg.Log)
	paymentSvc := payment.NewService(backend, bookingSvc, notifier, cfg.CheckoutKeyID, cfg.Currency, cfg.VenueName, cfg.Log)

	application := app.NewApplication(cfg,
		handler.NewHealthHandler(cfg.Log),
		handler.NewAuthHandler(identitySvc, sessions, cfg.Log),
		handler.NewCatalogHandler(catalogSvc, cfg.Log),
		handler.NewBookingHandler(bookingSvc, sessions, cfg.Log),
		handler.NewPaymentHandler(paymentSvc, sessions, cfg.Log),
	)
	application.Run()
}
