package party

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyNumericTypes(t *testing.T) {
	assert.Equal(t, RoleSender, Classify(Record{"customer_type_id": float64(1)}))
	assert.Equal(t, RoleReceiver, Classify(Record{"customer_type_id": float64(2)}))
	assert.Equal(t, RoleUnknown, Classify(Record{"customer_type_id": float64(3)}))
	assert.Equal(t, RoleSender, Classify(Record{"type_id": 1}))
}

func TestClassifyStringTypes(t *testing.T) {
	assert.Equal(t, RoleSender, Classify(Record{"type": "Sender"}))
	assert.Equal(t, RoleReceiver, Classify(Record{"type": "Receiver"}))
	assert.Equal(t, RoleReceiver, Classify(Record{"type": "consignee"}))
	assert.Equal(t, RoleSender, Classify(Record{"customer_type": "1"}))
	assert.Equal(t, RoleReceiver, Classify(Record{"customer_type": "2"}))
	assert.Equal(t, RoleUnknown, Classify(Record{"type": "supplier"}))
}

func TestClassifyNestedTypeObject(t *testing.T) {
	assert.Equal(t, RoleSender, Classify(Record{
		"customer_type": map[string]interface{}{"id": float64(1), "name": "Sender"},
	}))
	assert.Equal(t, RoleReceiver, Classify(Record{
		"customer_type": map[string]interface{}{"name": "Receiver"},
	}))
	assert.Equal(t, RoleReceiver, Classify(Record{
		"type": map[string]interface{}{"code": "2"},
	}))
	assert.Equal(t, RoleUnknown, Classify(Record{
		"customer_type": map[string]interface{}{"name": "Wholesale"},
	}))
}

func TestClassifyEmptyRecordIsUnknown(t *testing.T) {
	assert.Equal(t, RoleUnknown, Classify(Record{}))
	assert.Equal(t, RoleUnknown, Classify(Record{"customer_type_id": nil}))
	assert.Equal(t, RoleUnknown, Classify(Record{"type": ""}))
}

func TestClassifyProbesFieldsInOrder(t *testing.T) {
	// a later field only wins when earlier probes are inconclusive
	rec := Record{
		"customer_type_id": float64(7), // unknown encoding
		"type":             "receiver",
	}
	assert.Equal(t, RoleReceiver, Classify(rec))
}

func TestClassifyDoesNotMutateInput(t *testing.T) {
	rec := Record{"customer_type_id": float64(1), "name": "Acme"}
	Classify(rec)
	assert.Equal(t, Record{"customer_type_id": float64(1), "name": "Acme"}, rec)
}

func TestFilterByRoleExcludesUnknown(t *testing.T) {
	parties := []Record{
		{"name": "a", "customer_type_id": float64(1)},
		{"name": "b", "customer_type_id": float64(2)},
		{"name": "c"},
		{"name": "d", "type": "Sender"},
		{"name": "e", "type": "distributor"},
	}

	senders := FilterByRole(parties, RoleSender)
	receivers := FilterByRole(parties, RoleReceiver)

	assert.Len(t, senders, 2)
	assert.Len(t, receivers, 1)
	assert.Equal(t, "a", senders[0]["name"])
	assert.Equal(t, "d", senders[1]["name"])
	assert.Equal(t, "b", receivers[0]["name"])
}

func TestParseRole(t *testing.T) {
	role, ok := ParseRole("sender")
	assert.True(t, ok)
	assert.Equal(t, RoleSender, role)

	role, ok = ParseRole("Consignee")
	assert.True(t, ok)
	assert.Equal(t, RoleReceiver, role)

	_, ok = ParseRole("admin")
	assert.False(t, ok)
}
