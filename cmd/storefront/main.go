package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-retry"

	"github.com/magari-ke/storefront/internal/admin"
	"github.com/magari-ke/storefront/internal/cart"
	"github.com/magari-ke/storefront/internal/catalog"
	"github.com/magari-ke/storefront/internal/checkout"
	"github.com/magari-ke/storefront/pkg/config"
	pkgerrors "github.com/magari-ke/storefront/pkg/errors"
	"github.com/magari-ke/storefront/pkg/logger"
	"github.com/magari-ke/storefront/pkg/storeapi"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	client, err := storeapi.NewClient(cfg.API.BaseURL, storeapi.WithTimeout(cfg.API.Timeout))
	if err != nil {
		logg.Error(context.Background(), "failed to build store api client", err)
		os.Exit(1)
	}

	catalogModel := catalog.NewModel(cfg.Store.ShipmentFeeFallback)
	cartModel := cart.NewModel(catalogModel)

	loader, err := catalog.NewLoader(client, catalogModel, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build catalog loader", err)
		os.Exit(1)
	}

	checkoutSvc, err := checkout.NewService(cartModel, client, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build checkout service", err)
		os.Exit(1)
	}

	adminSvc, err := admin.NewService(client, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build admin service", err)
		os.Exit(1)
	}

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"base_url": cfg.API.BaseURL,
	})
	logg.Info(ctx, "starting storefront")

	render := newRenderer(cfg.Store.Locale, cfg.Store.CurrencyLabel)
	sh := newShell(os.Stdin, os.Stdout, render, logg, catalogModel, cartModel, checkoutSvc, adminSvc)

	// The catalog is populated once at startup. Transient transport failures
	// are retried; a rejected payload is not.
	backoff := retry.WithMaxRetries(uint64(cfg.API.FetchRetries), retry.NewFibonacci(500*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := loader.Refresh(ctx); err != nil {
			if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNetwork {
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		dump := pkgerrors.Dump(err)
		failCtx := logg.WithFields(ctx, map[string]any{
			"error_code":  dump.Code,
			"error_chain": dump.Chain,
		})
		logg.Error(failCtx, "catalog load failed after retries", err)
		// The store still opens; the product area shows the error instead.
		sh.catalogErr = fmt.Sprintf("Error loading cars. Please ensure the server is running on %s.", loader.Endpoint())
	}

	sh.run(ctx)
}
