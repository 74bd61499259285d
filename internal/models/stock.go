package models

// StockStatus is the derived stock level of an item. It is computed on every
// read and never stored.
type StockStatus string

const (
	StockOut       StockStatus = "out"
	StockLow       StockStatus = "low"
	StockAvailable StockStatus = "available"
)

// ClassifyStock maps a quantity against its low-stock threshold.
func ClassifyStock(quantity, threshold int) StockStatus {
	switch {
	case quantity <= 0:
		return StockOut
	case quantity <= threshold:
		return StockLow
	default:
		return StockAvailable
	}
}

// StockKind distinguishes the two stock item families.
type StockKind string

const (
	StockKindMaterial StockKind = "material"
	StockKindBook     StockKind = "book"
)

// StockStats summarises item counts per stock status.
type StockStats struct {
	Total      int `db:"total" json:"total"`
	OutOfStock int `db:"out_of_stock" json:"out_of_stock"`
	LowStock   int `db:"low_stock" json:"low_stock"`
	Adequate   int `db:"adequate" json:"adequate"`
}
