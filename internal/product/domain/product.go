package domain

import (
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Product is a catalog entry owned by the user that created it. ProductID is
// the public identifier used in URLs; the row id stays internal.
type Product struct {
	ID          string
	ProductID   string
	UserID      string
	Title       string
	Description string
	Price       float64
	Image       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProductID returns a fresh public product id, e.g. "product_01h2xcejqtf2nbrexx3vqjhp41".
func NewProductID() string {
	return "product_" + strings.ToLower(ulid.Make().String())
}
