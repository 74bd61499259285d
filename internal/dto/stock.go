package dto

import "github.com/noah-isme/school-inventory-api/internal/models"

// MaterialRequest is the create/update payload for a material. Thresholds
// default to 5 and 50 when omitted on create.
type MaterialRequest struct {
	Name         string `json:"name" validate:"required,max=200"`
	Category     string `json:"category" validate:"required,max=100"`
	Quantity     *int   `json:"quantity" validate:"omitempty,gte=0"`
	MinThreshold *int   `json:"min_threshold" validate:"omitempty,gte=0"`
	MaxThreshold *int   `json:"max_threshold" validate:"omitempty,gte=0"`
	Notes        string `json:"notes" validate:"max=2000"`
}

// BookRequest is the create/update payload for a book.
type BookRequest struct {
	Type      models.BookType `json:"type" validate:"required,oneof=textbook workbook"`
	Subject   string          `json:"subject" validate:"required,max=200"`
	Grade     int             `json:"grade" validate:"required,gte=1,lte=7"`
	Publisher string          `json:"publisher" validate:"max=100"`
	Author    string          `json:"author" validate:"max=200"`
	Quantity  *int            `json:"quantity" validate:"omitempty,gte=0"`
	Notes     string          `json:"notes" validate:"max=2000"`
}

// AdjustQuantityRequest applies a signed delta to an item's quantity.
type AdjustQuantityRequest struct {
	Change int `json:"change"`
}

// TaxonomyRequest creates a category or publisher.
type TaxonomyRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// RenameTaxonomyRequest renames a category or publisher.
type RenameTaxonomyRequest struct {
	OldName string `json:"old_name" validate:"required,max=100"`
	Name    string `json:"name" validate:"required,max=100"`
}
