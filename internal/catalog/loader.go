package catalog

import (
	"context"
	"fmt"

	"github.com/magari-ke/storefront/pkg/logger"
	"github.com/magari-ke/storefront/pkg/storeapi"
)

type fetcher interface {
	FetchCatalog(ctx context.Context) (*storeapi.CatalogPayload, error)
	CatalogEndpoint() string
}

// Loader populates a Model from the backend. On any fetch or decode failure
// the model keeps its previous state; no partial catalog is ever installed.
type Loader struct {
	api   fetcher
	model *Model
	log   *logger.Logger
}

// NewLoader builds a catalog loader for the given model and API client.
func NewLoader(api fetcher, model *Model, log *logger.Logger) (*Loader, error) {
	if api == nil {
		return nil, fmt.Errorf("store api client required")
	}
	if model == nil {
		return nil, fmt.Errorf("catalog model required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Loader{api: api, model: model, log: log}, nil
}

// Refresh fetches the catalog and installs it atomically.
func (l *Loader) Refresh(ctx context.Context) error {
	payload, err := l.api.FetchCatalog(ctx)
	if err != nil {
		l.log.Error(ctx, "catalog fetch failed", err)
		return err
	}

	products := make([]Product, 0, len(payload.Cars))
	for _, car := range payload.Cars {
		products = append(products, Product{
			Brand:       car.Brand,
			Model:       car.Model,
			Price:       car.Price,
			Description: car.Description,
			ImageURL:    car.ImageURL,
		})
	}

	if err := l.model.Load(products, payload.ShipmentFee); err != nil {
		l.log.Error(ctx, "catalog payload rejected", err)
		return err
	}

	ctx = l.log.WithFields(ctx, map[string]any{
		"products":     l.model.Len(),
		"shipment_fee": l.model.ShipmentFee(),
	})
	l.log.Info(ctx, "catalog loaded")
	return nil
}

// Endpoint names the catalog URL for user-visible load errors.
func (l *Loader) Endpoint() string {
	return l.api.CatalogEndpoint()
}
