package dto

import "github.com/noah-isme/school-inventory-api/internal/models"

// RequestItem is one line of a batch submission.
type RequestItem struct {
	MaterialID        string `json:"material_id"`
	RequestedQuantity int    `json:"requested_quantity"`
}

// SubmitRequestsRequest submits one or more material requests sharing notes.
// The single-item form (material_id, requested_quantity) is folded into Items
// by Normalize.
type SubmitRequestsRequest struct {
	Items             []RequestItem `json:"items"`
	Notes             string        `json:"notes"`
	MaterialID        string        `json:"material_id,omitempty"`
	RequestedQuantity int           `json:"requested_quantity,omitempty"`
}

// Normalize folds the single-item form into Items.
func (r *SubmitRequestsRequest) Normalize() {
	if len(r.Items) == 0 && r.MaterialID != "" {
		r.Items = []RequestItem{{MaterialID: r.MaterialID, RequestedQuantity: r.RequestedQuantity}}
	}
	r.MaterialID = ""
	r.RequestedQuantity = 0
}

// ItemError reports why a submitted line was not accepted.
type ItemError struct {
	Index      int    `json:"index"`
	MaterialID string `json:"material_id"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

// SubmitRequestsResult reports a batch outcome. Lines fail independently.
type SubmitRequestsResult struct {
	Created  int                      `json:"created"`
	Requests []models.MaterialRequest `json:"requests"`
	Errors   []ItemError              `json:"errors"`
}

// ProcessRequestRequest approves or rejects a pending request.
type ProcessRequestRequest struct {
	Status     models.RequestStatus `json:"status" validate:"required,oneof=approved rejected"`
	AdminNotes string               `json:"admin_notes" validate:"max=2000"`
}
