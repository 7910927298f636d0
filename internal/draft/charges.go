package draft

import (
	"cargo-entry-service/internal/models"
	"cargo-entry-service/internal/numeric"
)

// SetLineQty sets the quantity of a charge line. The total_weight line is
// exclusively engine-controlled, so writes to it are ignored.
func SetLineQty(d models.ShipmentDraft, key models.ChargeKey, raw interface{}) (models.ShipmentDraft, error) {
	if _, ok := d.Charges[key]; !ok {
		return d, ErrUnknownCharge
	}
	if key == models.ChargeTotalWeight {
		return d, nil
	}
	out := clone(d)
	line := out.Charges[key]
	line.Qty = numeric.ParseDecimal(raw)
	out.Charges[key] = line
	return out, nil
}

// SetLineRate sets the rate of any charge line. The total_weight rate is
// user-editable even though its quantity is not: it represents a per-kg
// charge applied to the aggregate weight.
func SetLineRate(d models.ShipmentDraft, key models.ChargeKey, raw interface{}) (models.ShipmentDraft, error) {
	if _, ok := d.Charges[key]; !ok {
		return d, ErrUnknownCharge
	}
	out := clone(d)
	line := out.Charges[key]
	line.Rate = numeric.ParseDecimal(raw)
	out.Charges[key] = line
	return out, nil
}

// SetVATPercentage coerces raw to a non-negative decimal.
func SetVATPercentage(d models.ShipmentDraft, raw interface{}) models.ShipmentDraft {
	out := clone(d)
	out.VATPercentage = numeric.ParseDecimal(raw)
	return out
}

// ComputeTotals derives the billing summary from the current draft. It is a
// pure function of the draft: per-line amount = qty x rate, the subtotal is
// the weight-based freight line, bill charges cover every other line except
// the discount, VAT applies to the subtotal, and the discount is deducted
// after VAT. Amounts are carried at full precision; rounding happens only
// on the returned display values.
func ComputeTotals(d models.ShipmentDraft) models.Totals {
	rows := make(map[models.ChargeKey]float64, len(models.ChargeKeys))
	totalAmount := 0.0
	billCharges := 0.0

	for _, key := range models.ChargeKeys {
		line := d.Charges[key]
		amount := line.Qty * line.Rate
		rows[key] = numeric.Round2(amount)
		totalAmount += amount
		if key != models.ChargeTotalWeight && key != models.ChargeDiscount {
			billCharges += amount
		}
	}

	weightLine := d.Charges[models.ChargeTotalWeight]
	subtotal := weightLine.Qty * weightLine.Rate
	vatCost := subtotal * d.VATPercentage / 100
	discount := d.Charges[models.ChargeDiscount]
	netTotal := subtotal + billCharges + vatCost - discount.Qty*discount.Rate

	return models.Totals{
		Rows:        rows,
		NumBoxes:    len(d.Boxes),
		TotalWeight: numeric.Round3(TotalWeight(d)),
		TotalAmount: numeric.Round2(totalAmount),
		Subtotal:    numeric.Round2(subtotal),
		BillCharges: numeric.Round2(billCharges),
		VATCost:     numeric.Round2(vatCost),
		NetTotal:    numeric.Round2(netTotal),
	}
}
