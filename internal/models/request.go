package models

import "time"

// RequestStatus tracks the material request lifecycle. Pending moves to
// approved or rejected and both are terminal.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// Valid reports whether s is a known status.
func (s RequestStatus) Valid() bool {
	return s == RequestPending || s == RequestApproved || s == RequestRejected
}

// IsDecision reports whether s is a valid outcome for processing a request.
func (s RequestStatus) IsDecision() bool {
	return s == RequestApproved || s == RequestRejected
}

// MaterialRequest is a user's request to draw stock. MaterialID is nil for
// free-text requests describing an item outside the catalog.
type MaterialRequest struct {
	ID                string        `db:"id" json:"id"`
	UserID            string        `db:"user_id" json:"user_id"`
	MaterialID        *string       `db:"material_id" json:"material_id"`
	RequestedQuantity int           `db:"requested_quantity" json:"requested_quantity"`
	Notes             string        `db:"notes" json:"notes"`
	Status            RequestStatus `db:"status" json:"status"`
	AdminNotes        *string       `db:"admin_notes" json:"admin_notes"`
	CreatedAt         time.Time     `db:"created_at" json:"created_at"`
	ProcessedAt       *time.Time    `db:"processed_at" json:"processed_at"`
	ProcessedBy       *string       `db:"processed_by" json:"processed_by"`
}

// IsFreeText reports whether the request references no catalog material.
func (r *MaterialRequest) IsFreeText() bool {
	return r.MaterialID == nil
}

// MaterialRequestView joins the requester, material and processor onto a
// request. Joined fields are nil when the referenced row no longer exists.
type MaterialRequestView struct {
	MaterialRequest
	Username         *string `db:"username" json:"username"`
	FullName         *string `db:"full_name" json:"full_name"`
	MaterialName     *string `db:"material_name" json:"material_name"`
	MaterialCategory *string `db:"material_category" json:"material_category"`
	CurrentQuantity  *int    `db:"current_quantity" json:"current_quantity"`
	ProcessedByName  *string `db:"processed_by_name" json:"processed_by_name"`
}

// RequestFilter narrows request listings. Date bounds are inclusive whole days.
type RequestFilter struct {
	UserID     string
	MaterialID string
	Status     RequestStatus
	DateFrom   *time.Time
	DateTo     *time.Time
}

// RequestStats counts requests per status.
type RequestStats struct {
	Pending  int `db:"pending" json:"pending"`
	Approved int `db:"approved" json:"approved"`
	Rejected int `db:"rejected" json:"rejected"`
	Total    int `db:"total" json:"total"`
}

// ProcessRequestParams carries the outcome written when a request leaves pending.
type ProcessRequestParams struct {
	ID          string
	Status      RequestStatus
	AdminNotes  *string
	ProcessedBy string
	ProcessedAt time.Time
}
