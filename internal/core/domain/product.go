package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable item owned by the user that created it. The owner
// reference is immutable after creation; CreatedByName is resolved by an
// explicit join at read time, never stored.
type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Stock         int             `json:"stock"`
	CreatedByID   int64           `json:"createdById"`
	CreatedByName string          `json:"createdByName"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	DeletedAt     *time.Time      `json:"-"`
}
