package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cargo-entry-service/internal/models"
)

func TestNewDraftStartsWithOneBox(t *testing.T) {
	d := New(5)

	require.Len(t, d.Boxes, 1)
	assert.Equal(t, 1, d.Boxes[0].BoxNumber)
	assert.Equal(t, 0.0, d.Boxes[0].BoxWeight)
	assert.Empty(t, d.Boxes[0].Items)
	assert.Equal(t, 5.0, d.VATPercentage)

	for _, key := range models.ChargeKeys {
		line, ok := d.Charges[key]
		require.True(t, ok, "missing charge line %s", key)
		assert.Equal(t, 0.0, line.Qty)
		assert.Equal(t, 0.0, line.Rate)
	}
}

func TestAddBoxAssignsSequentialNumbers(t *testing.T) {
	d := New(0)
	d = AddBox(d)
	d = AddBox(d)

	require.Len(t, d.Boxes, 3)
	assert.Equal(t, []int{1, 2, 3}, boxNumbers(d))
}

func TestBoxNumbersNeverReused(t *testing.T) {
	d := New(0)
	d = AddBox(d) // boxes 1, 2

	d, err := RemoveBox(d, 1)
	require.NoError(t, err)

	d = AddBox(d)
	assert.Equal(t, []int{1, 3}, boxNumbers(d))
}

func TestRemoveLastBoxRejected(t *testing.T) {
	d := New(0)

	_, err := RemoveBox(d, 0)
	assert.ErrorIs(t, err, ErrLastBox)
	assert.Len(t, d.Boxes, 1)
}

func TestRemoveBoxOutOfRange(t *testing.T) {
	d := New(0)
	d = AddBox(d)

	_, err := RemoveBox(d, 5)
	assert.ErrorIs(t, err, ErrBoxIndex)
	_, err = RemoveBox(d, -1)
	assert.ErrorIs(t, err, ErrBoxIndex)
}

func TestSetBoxWeightCoercion(t *testing.T) {
	d := New(0)

	d, err := SetBoxWeight(d, 0, "2.5")
	require.NoError(t, err)
	assert.Equal(t, 2.5, d.Boxes[0].BoxWeight)

	d, err = SetBoxWeight(d, 0, "not-a-number")
	require.NoError(t, err)
	assert.Equal(t, 0.0, d.Boxes[0].BoxWeight)

	d, err = SetBoxWeight(d, 0, -4.0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d.Boxes[0].BoxWeight)

	d, err = SetBoxWeight(d, 0, "")
	require.NoError(t, err)
	assert.Equal(t, 0.0, d.Boxes[0].BoxWeight)
}

// The weight invariant: charges[total_weight].qty tracks the box weight sum
// after every manifest operation.
func TestTotalWeightSyncedAcrossOperations(t *testing.T) {
	d := New(0)

	check := func() {
		assert.Equal(t, TotalWeight(d), d.Charges[models.ChargeTotalWeight].Qty)
	}

	var err error
	d, err = SetBoxWeight(d, 0, 2.5)
	require.NoError(t, err)
	check()

	d = AddBox(d)
	check()

	d, err = SetBoxWeight(d, 1, 3.25)
	require.NoError(t, err)
	check()
	assert.Equal(t, 5.75, d.Charges[models.ChargeTotalWeight].Qty)

	d = AddBox(d)
	d, err = SetBoxWeight(d, 2, 1.1)
	require.NoError(t, err)
	check()

	d, err = RemoveBox(d, 0)
	require.NoError(t, err)
	check()
	assert.InDelta(t, 4.35, d.Charges[models.ChargeTotalWeight].Qty, 1e-9)
}

func TestItemOperations(t *testing.T) {
	d := New(0)

	d, err := AddItem(d, 0)
	require.NoError(t, err)
	require.Len(t, d.Boxes[0].Items, 1)
	assert.Equal(t, "", d.Boxes[0].Items[0].Name)
	assert.Equal(t, 0, d.Boxes[0].Items[0].Pieces)

	d, err = SetItemName(d, 0, 0, "blankets")
	require.NoError(t, err)
	assert.Equal(t, "blankets", d.Boxes[0].Items[0].Name)

	d, err = SetItemPieces(d, 0, 0, "12")
	require.NoError(t, err)
	assert.Equal(t, 12, d.Boxes[0].Items[0].Pieces)

	d, err = SetItemPieces(d, 0, 0, "many")
	require.NoError(t, err)
	assert.Equal(t, 0, d.Boxes[0].Items[0].Pieces)

	// a box may hold zero items
	d, err = RemoveItem(d, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, d.Boxes[0].Items)
}

func TestItemIndexValidation(t *testing.T) {
	d := New(0)

	_, err := RemoveItem(d, 0, 0)
	assert.ErrorIs(t, err, ErrItemIndex)

	_, err = AddItem(d, 3)
	assert.ErrorIs(t, err, ErrBoxIndex)
}

func TestOperationsDoNotMutatePriorDraft(t *testing.T) {
	d := New(0)
	d, err := SetBoxWeight(d, 0, 1.0)
	require.NoError(t, err)

	next := AddBox(d)
	next, err = SetBoxWeight(next, 0, 9.0)
	require.NoError(t, err)

	assert.Len(t, d.Boxes, 1)
	assert.Equal(t, 1.0, d.Boxes[0].BoxWeight)
	assert.Equal(t, 1.0, d.Charges[models.ChargeTotalWeight].Qty)
	assert.Equal(t, 9.0, next.Charges[models.ChargeTotalWeight].Qty)
}

func boxNumbers(d models.ShipmentDraft) []int {
	nums := make([]int, len(d.Boxes))
	for i, box := range d.Boxes {
		nums[i] = box.BoxNumber
	}
	return nums
}
