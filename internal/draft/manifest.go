package draft

import (
	"cargo-entry-service/internal/models"
	"cargo-entry-service/internal/numeric"
)

// AddBox appends a new empty box with the next sequential box number.
func AddBox(d models.ShipmentDraft) models.ShipmentDraft {
	out := clone(d)
	out.Boxes = append(out.Boxes, models.Box{
		BoxNumber: out.NextBoxNumber,
		Items:     []models.Item{},
	})
	out.NextBoxNumber++
	return syncTotalWeight(out)
}

// RemoveBox removes the box at index. A draft must always contain at least
// one box, so removing the last one fails with ErrLastBox.
func RemoveBox(d models.ShipmentDraft, index int) (models.ShipmentDraft, error) {
	if index < 0 || index >= len(d.Boxes) {
		return d, ErrBoxIndex
	}
	if len(d.Boxes) == 1 {
		return d, ErrLastBox
	}
	out := clone(d)
	out.Boxes = append(out.Boxes[:index], out.Boxes[index+1:]...)
	return syncTotalWeight(out), nil
}

// SetBoxWeight coerces raw to a non-negative decimal (invalid or empty
// input becomes 0) and resyncs the aggregate weight line.
func SetBoxWeight(d models.ShipmentDraft, index int, raw interface{}) (models.ShipmentDraft, error) {
	if index < 0 || index >= len(d.Boxes) {
		return d, ErrBoxIndex
	}
	out := clone(d)
	out.Boxes[index].BoxWeight = numeric.ParseDecimal(raw)
	return syncTotalWeight(out), nil
}

// AddItem appends an empty item to the box at boxIndex.
func AddItem(d models.ShipmentDraft, boxIndex int) (models.ShipmentDraft, error) {
	if boxIndex < 0 || boxIndex >= len(d.Boxes) {
		return d, ErrBoxIndex
	}
	out := clone(d)
	out.Boxes[boxIndex].Items = append(out.Boxes[boxIndex].Items, models.Item{})
	return out, nil
}

// RemoveItem removes an item from a box. Boxes may hold zero items, so
// there is no minimum-item constraint.
func RemoveItem(d models.ShipmentDraft, boxIndex, itemIndex int) (models.ShipmentDraft, error) {
	if boxIndex < 0 || boxIndex >= len(d.Boxes) {
		return d, ErrBoxIndex
	}
	if itemIndex < 0 || itemIndex >= len(d.Boxes[boxIndex].Items) {
		return d, ErrItemIndex
	}
	out := clone(d)
	items := out.Boxes[boxIndex].Items
	out.Boxes[boxIndex].Items = append(items[:itemIndex], items[itemIndex+1:]...)
	return out, nil
}

// SetItemName sets the free-text name of an item.
func SetItemName(d models.ShipmentDraft, boxIndex, itemIndex int, name string) (models.ShipmentDraft, error) {
	if boxIndex < 0 || boxIndex >= len(d.Boxes) {
		return d, ErrBoxIndex
	}
	if itemIndex < 0 || itemIndex >= len(d.Boxes[boxIndex].Items) {
		return d, ErrItemIndex
	}
	out := clone(d)
	out.Boxes[boxIndex].Items[itemIndex].Name = name
	return out, nil
}

// SetItemPieces coerces raw to a non-negative integer (invalid input
// becomes 0).
func SetItemPieces(d models.ShipmentDraft, boxIndex, itemIndex int, raw interface{}) (models.ShipmentDraft, error) {
	if boxIndex < 0 || boxIndex >= len(d.Boxes) {
		return d, ErrBoxIndex
	}
	if itemIndex < 0 || itemIndex >= len(d.Boxes[boxIndex].Items) {
		return d, ErrItemIndex
	}
	out := clone(d)
	out.Boxes[boxIndex].Items[itemIndex].Pieces = numeric.ParseUint(raw)
	return out, nil
}
