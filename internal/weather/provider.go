package weather

import (
	"context"
	"errors"

	"pluvio/internal/domain"
)

// ErrLocationNotFound indicates the postal code could not be geocoded.
var ErrLocationNotFound = errors.New("location not found")

// Provider returns current conditions and a 7-day forecast for a postal
// code. The geocoded location carries the IANA timezone the plan's local
// times are interpreted in.
type Provider interface {
	Forecast(ctx context.Context, postalCode string) (*domain.Forecast, error)
}
