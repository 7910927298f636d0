package models

// CreateShipmentRequest is the exact wire format the shipment-creation
// endpoint expects. Optional fields are omitted (not sent as null) so the
// backend can apply its own defaults.
type CreateShipmentRequest struct {
	OriginPortID         int    `json:"origin_port_id"`
	DestinationPortID    int    `json:"destination_port_id"`
	BranchID             int    `json:"branch_id"`
	CreatedByID          int    `json:"created_by_id"`
	AWBOrContainerNumber string `json:"awb_or_container_number"`
	CreatedOn            string `json:"created_on"`
	CargoIDs             []int  `json:"cargo_ids"`

	ShipmentStatusID *int     `json:"shipment_status_id,omitempty"`
	ShipmentNumber   string   `json:"shipment_number,omitempty"`
	LicenseDetails   string   `json:"license_details,omitempty"`
	ExchangeRate     *float64 `json:"exchange_rate,omitempty"`
	ShippingMethodID *int     `json:"shipping_method_id,omitempty"`
	ClearingAgentID  *int     `json:"clearing_agent_id,omitempty"`
	Remarks          string   `json:"remarks,omitempty"`
}

// ShipmentRecord is a shipment as returned by the backend.
type ShipmentRecord struct {
	ID                   int64   `json:"id"`
	ShipmentNumber       string  `json:"shipment_number"`
	AWBOrContainerNumber string  `json:"awb_or_container_number"`
	OriginPortID         int     `json:"origin_port_id"`
	DestinationPortID    int     `json:"destination_port_id"`
	BranchID             int     `json:"branch_id"`
	CreatedByID          int     `json:"created_by_id"`
	ShipmentStatusID     *int    `json:"shipment_status_id,omitempty"`
	CargoIDs             []int   `json:"cargo_ids,omitempty"`
	ExchangeRate         float64 `json:"exchange_rate,omitempty"`
	CreatedOn            string  `json:"created_on"`
}

// ListShipmentsFilters narrows GET /cargo-shipments queries.
type ListShipmentsFilters struct {
	StatusID int
	BranchID int
	DateFrom string
	DateTo   string
}
