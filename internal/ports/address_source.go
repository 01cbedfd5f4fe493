package ports

import (
	"context"
	"route-optimizer-service/internal/domain"
)

// Port: a boundary for retrieving delivery destinations from a data
// source. Implementations filter out rows without a usable address, so
// every returned record has non-empty address text.
type AddressSource interface {
	ListAddresses(ctx context.Context) ([]domain.AddressRecord, error)
}
