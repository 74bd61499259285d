package models

import (
	"strings"
	"time"
)

// BookType tags a book as a textbook or a workbook.
type BookType string

const (
	BookTypeTextbook BookType = "textbook"
	BookTypeWorkbook BookType = "workbook"
)

// Valid reports whether t is a known book type.
func (t BookType) Valid() bool {
	return t == BookTypeTextbook || t == BookTypeWorkbook
}

// ParseBookType accepts a case-insensitive book type. The empty string maps
// to the empty type so callers can treat it as "any".
func ParseBookType(raw string) (BookType, bool) {
	t := BookType(strings.ToLower(strings.TrimSpace(raw)))
	if t == "" {
		return "", true
	}
	return t, t.Valid()
}

const (
	// BookLowStockThreshold is the fixed low-stock level for books.
	BookLowStockThreshold = 5
	MinGrade              = 1
	MaxGrade              = 7
)

// Book is a textbook or workbook tracked by quantity.
type Book struct {
	ID          string      `db:"id" json:"id"`
	Type        BookType    `db:"type" json:"type"`
	Subject     string      `db:"subject" json:"subject"`
	Grade       int         `db:"grade" json:"grade"`
	Publisher   *string     `db:"publisher" json:"publisher"`
	Author      string      `db:"author" json:"author"`
	Quantity    int         `db:"quantity" json:"quantity"`
	Notes       string      `db:"notes" json:"notes"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updated_at"`
	StockStatus StockStatus `db:"-" json:"stock_status"`
}

// Classify fills StockStatus from the current quantity.
func (b *Book) Classify() {
	b.StockStatus = ClassifyStock(b.Quantity, BookLowStockThreshold)
}

// BookFilter narrows book listings.
type BookFilter struct {
	Search     string
	Publisher  string
	Grade      *int
	Type       BookType
	LowStock   bool
	OutOfStock bool
}
