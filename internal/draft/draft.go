// Package draft implements the packing manifest and charge matrix for an
// in-progress shipment entry. Every operation takes the prior draft value
// and returns a new one; totals are a pure projection of the latest draft.
package draft

import (
	"errors"

	"cargo-entry-service/internal/models"
)

var (
	// ErrLastBox is returned when a removal would drop the draft below one box.
	ErrLastBox = errors.New("a shipment must contain at least one box")
	// ErrBoxIndex is returned for an out-of-range box index.
	ErrBoxIndex = errors.New("box index out of range")
	// ErrItemIndex is returned for an out-of-range item index.
	ErrItemIndex = errors.New("item index out of range")
	// ErrUnknownCharge is returned for a charge key outside the fixed matrix.
	ErrUnknownCharge = errors.New("unknown charge key")
)

// New creates an empty draft: one box, all charge lines zeroed.
func New(vatPercentage float64) models.ShipmentDraft {
	charges := make(map[models.ChargeKey]models.ChargeLine, len(models.ChargeKeys))
	for _, key := range models.ChargeKeys {
		charges[key] = models.ChargeLine{Key: key}
	}

	d := models.ShipmentDraft{
		VATPercentage: vatPercentage,
		NextBoxNumber: 2,
		Boxes: []models.Box{
			{BoxNumber: 1, Items: []models.Item{}},
		},
		Charges: charges,
	}
	return syncTotalWeight(d)
}

// clone deep-copies the draft so operations never alias the prior value.
func clone(d models.ShipmentDraft) models.ShipmentDraft {
	out := d

	out.Boxes = make([]models.Box, len(d.Boxes))
	for i, box := range d.Boxes {
		items := make([]models.Item, len(box.Items))
		copy(items, box.Items)
		box.Items = items
		out.Boxes[i] = box
	}

	out.Charges = make(map[models.ChargeKey]models.ChargeLine, len(d.Charges))
	for key, line := range d.Charges {
		out.Charges[key] = line
	}
	return out
}

// TotalWeight sums the current box weights at full precision.
func TotalWeight(d models.ShipmentDraft) float64 {
	total := 0.0
	for _, box := range d.Boxes {
		total += box.BoxWeight
	}
	return total
}

// syncTotalWeight keeps charges[total_weight].qty equal to the aggregate
// box weight. Called after every box mutation.
func syncTotalWeight(d models.ShipmentDraft) models.ShipmentDraft {
	line := d.Charges[models.ChargeTotalWeight]
	line.Key = models.ChargeTotalWeight
	line.Qty = TotalWeight(d)
	d.Charges[models.ChargeTotalWeight] = line
	return d
}
