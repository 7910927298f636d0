// Package payload maps a loosely-typed shipment draft into the wire format
// expected by the shipment-creation API. Every field accepts the
// historically-used aliases and picks the first defined, non-null one.
package payload

import (
	"cargo-entry-service/internal/models"
	"cargo-entry-service/internal/numeric"
)

// Alias tables, probed in order. The first defined, non-null value wins.
var (
	originPortAliases      = []string{"origin_port_id", "portOfOrigin", "port_origin_id"}
	destinationPortAliases = []string{"destination_port_id", "portOfDestination", "port_destination_id"}
	awbAliases             = []string{"awb_or_container_number", "awbNo", "awb_no"}
	createdOnAliases       = []string{"created_on", "shipment_date", "date", "createdOn"}
	shipmentNumberAliases  = []string{"shipment_number", "shipmentNumber"}
	licenseAliases         = []string{"license_details", "licenseDetails"}
	exchangeRateAliases    = []string{"exchange_rate", "exchangeRate"}
	shippingMethodAliases  = []string{"shipping_method_id", "shippingMethodId"}
	clearingAgentAliases   = []string{"clearing_agent_id", "clearingAgentId"}
	remarksAliases         = []string{"remarks", "special_remarks", "specialRemarks"}
)

// BuildPayload normalizes a draft submission into a CreateShipmentRequest.
// Required numeric fields that do not coerce to a number fail validation
// here, before any request is sent. cargo_ids tolerates non-array input by
// collapsing to an empty list. Optional fields are left unset when absent.
func BuildPayload(input map[string]interface{}) (models.CreateShipmentRequest, error) {
	fieldErrors := map[string][]string{}

	req := models.CreateShipmentRequest{
		OriginPortID:         requireInt(input, originPortAliases, "origin_port_id", fieldErrors),
		DestinationPortID:    requireInt(input, destinationPortAliases, "destination_port_id", fieldErrors),
		BranchID:             requireInt(input, []string{"branch_id"}, "branch_id", fieldErrors),
		CreatedByID:          requireInt(input, []string{"created_by_id"}, "created_by_id", fieldErrors),
		AWBOrContainerNumber: pickString(input, awbAliases),
		CreatedOn:            pickString(input, createdOnAliases),
		CargoIDs:             coerceCargoIDs(input["cargo_ids"]),
		ShipmentNumber:       pickString(input, shipmentNumberAliases),
		LicenseDetails:       pickString(input, licenseAliases),
		Remarks:              pickString(input, remarksAliases),
	}

	if raw, ok := pick(input, []string{"shipment_status_id"}); ok {
		if n := numeric.ParseNumber(raw); !numeric.IsNaN(n) {
			statusID := int(n)
			req.ShipmentStatusID = &statusID
		}
	}
	if raw, ok := pick(input, exchangeRateAliases); ok {
		if n := numeric.ParseNumber(raw); !numeric.IsNaN(n) {
			req.ExchangeRate = &n
		}
	}
	if raw, ok := pick(input, shippingMethodAliases); ok {
		if n := numeric.ParseNumber(raw); !numeric.IsNaN(n) {
			methodID := int(n)
			req.ShippingMethodID = &methodID
		}
	}
	if raw, ok := pick(input, clearingAgentAliases); ok {
		if n := numeric.ParseNumber(raw); !numeric.IsNaN(n) {
			agentID := int(n)
			req.ClearingAgentID = &agentID
		}
	}

	if len(fieldErrors) > 0 {
		return models.CreateShipmentRequest{}, &models.ValidationError{FieldErrors: fieldErrors}
	}
	return req, nil
}

// pick returns the first defined, non-null alias value.
func pick(input map[string]interface{}, aliases []string) (interface{}, bool) {
	for _, alias := range aliases {
		if v, ok := input[alias]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func pickString(input map[string]interface{}, aliases []string) string {
	raw, ok := pick(input, aliases)
	if !ok {
		return ""
	}
	if s, ok := raw.(string); ok {
		return s
	}
	return ""
}

// requireInt coerces a required numeric field; a value that does not
// coerce records a field error instead of being sent to the backend.
func requireInt(input map[string]interface{}, aliases []string, field string, fieldErrors map[string][]string) int {
	raw, _ := pick(input, aliases)
	n := numeric.ParseNumber(raw)
	if numeric.IsNaN(n) {
		fieldErrors[field] = append(fieldErrors[field], "must be a number")
		return 0
	}
	return int(n)
}

// coerceCargoIDs converts the raw cargo_ids value into a slice of integers.
// Non-array input collapses to an empty slice, never an error; elements
// that do not coerce are dropped.
func coerceCargoIDs(raw interface{}) []int {
	list, ok := raw.([]interface{})
	if !ok {
		return []int{}
	}
	out := make([]int, 0, len(list))
	for _, entry := range list {
		if n := numeric.ParseNumber(entry); !numeric.IsNaN(n) {
			out = append(out, int(n))
		}
	}
	return out
}
