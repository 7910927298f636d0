package models

// ChargeKey identifies one of the fixed billing lines on a shipment entry.
type ChargeKey string

const (
	ChargeTotalWeight       ChargeKey = "total_weight"
	ChargeDuty              ChargeKey = "duty"
	ChargePacking           ChargeKey = "packing_charge"
	ChargeAdditionalPacking ChargeKey = "additional_packing_charge"
	ChargeInsurance         ChargeKey = "insurance"
	ChargeAWBFee            ChargeKey = "awb_fee"
	ChargeVATAmount         ChargeKey = "vat_amount"
	ChargeVolumeWeight      ChargeKey = "volume_weight"
	ChargeOther             ChargeKey = "other_charges"
	ChargeDiscount          ChargeKey = "discount"
)

// ChargeKeys lists every charge line in display order.
var ChargeKeys = []ChargeKey{
	ChargeTotalWeight,
	ChargeDuty,
	ChargePacking,
	ChargeAdditionalPacking,
	ChargeInsurance,
	ChargeAWBFee,
	ChargeVATAmount,
	ChargeVolumeWeight,
	ChargeOther,
	ChargeDiscount,
}

// ParseChargeKey validates a raw key from a request path or body.
func ParseChargeKey(s string) (ChargeKey, bool) {
	for _, k := range ChargeKeys {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// ChargeLine is a quantity x rate pair for one billing line. The amount is
// always derived, never stored.
type ChargeLine struct {
	Key  ChargeKey `json:"key"`
	Qty  float64   `json:"qty"`
	Rate float64   `json:"rate"`
}

// Item is a packed entry inside a box. Order is display-significant only.
type Item struct {
	Name   string `json:"name"`
	Pieces int    `json:"pieces"`
}

// Box is a physical packing unit. Box numbers are sequential within a draft
// and never reused, even after removals.
type Box struct {
	BoxNumber int     `json:"boxNumber"`
	BoxWeight float64 `json:"boxWeight"`
	Items     []Item  `json:"items"`
}

// ShipmentDraft is the in-progress, unsaved shipment entry. It is treated
// as an immutable value: every mutation produces a new draft.
type ShipmentDraft struct {
	SenderID            string                   `json:"senderId"`
	ReceiverID          string                   `json:"receiverId"`
	ShippingMethodID    string                   `json:"shippingMethodId"`
	PaymentMethodID     string                   `json:"paymentMethodId"`
	DeliveryTypeID      string                   `json:"deliveryTypeId"`
	InvoiceNumber       string                   `json:"invoiceNumber"` // server-assigned, read-only
	BranchName          string                   `json:"branchName"`    // read-only
	SpecialRemarks      string                   `json:"specialRemarks"`
	VATPercentage       float64                  `json:"vatPercentage"`
	CollectedByRole     string                   `json:"collectedByRole"`
	CollectedByRoleID   string                   `json:"collectedByRoleId"`
	CollectedByPersonID string                   `json:"collectedByPersonId"`
	NextBoxNumber       int                      `json:"nextBoxNumber"`
	Boxes               []Box                    `json:"boxes"`
	Charges             map[ChargeKey]ChargeLine `json:"charges"`
}

// Totals is the derived billing summary. It is recomputed from the draft on
// every read and never cached across a mutation.
type Totals struct {
	Rows        map[ChargeKey]float64 `json:"rows"`
	NumBoxes    int                   `json:"numBoxes"`
	TotalWeight float64               `json:"totalWeight"`
	TotalAmount float64               `json:"totalAmount"`
	Subtotal    float64               `json:"subtotal"`
	BillCharges float64               `json:"billCharges"`
	VATCost     float64               `json:"vatCost"`
	NetTotal    float64               `json:"netTotal"`
}
