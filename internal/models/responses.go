package models

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool                `json:"success"`
	Error   string              `json:"error"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields,omitempty"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message *string     `json:"message,omitempty"`
}

// DraftResponse bundles a draft with its freshly computed totals.
type DraftResponse struct {
	DraftID string        `json:"draftId"`
	Draft   ShipmentDraft `json:"draft"`
	Totals  Totals        `json:"totals"`
}
