package models

import "time"

const (
	DefaultMinThreshold = 5
	DefaultMaxThreshold = 50
)

// Material is a consumable supply tracked by quantity.
type Material struct {
	ID           string      `db:"id" json:"id"`
	Name         string      `db:"name" json:"name"`
	Category     string      `db:"category" json:"category"`
	Quantity     int         `db:"quantity" json:"quantity"`
	MinThreshold int         `db:"min_threshold" json:"min_threshold"`
	MaxThreshold int         `db:"max_threshold" json:"max_threshold"`
	Notes        string      `db:"notes" json:"notes"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updated_at"`
	StockStatus  StockStatus `db:"-" json:"stock_status"`
}

// Classify fills StockStatus from the current quantity.
func (m *Material) Classify() {
	m.StockStatus = ClassifyStock(m.Quantity, m.MinThreshold)
}

// MaterialFilter narrows material listings.
type MaterialFilter struct {
	Search     string
	Category   string
	LowStock   bool
	OutOfStock bool
}
