package party

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveCollectorOfficeAutoSelects(t *testing.T) {
	candidates := []Record{{"name": "Head Office"}}
	assert.Equal(t, "Head Office", ResolveCollector(OfficeRole, "", candidates))
	// the office record is implied, the person id is not consulted
	assert.Equal(t, "Head Office", ResolveCollector(OfficeRole, "999", candidates))
	assert.Equal(t, "", ResolveCollector(OfficeRole, "", nil))
}

func TestResolveCollectorDriverIDFields(t *testing.T) {
	candidates := []Record{
		{"driver_id": float64(7), "name": "K. Silva"},
		{"id": float64(3), "name": "N. Fernando"},
	}

	assert.Equal(t, "N. Fernando", ResolveCollector("Driver", "3", candidates))
	assert.Equal(t, "K. Silva", ResolveCollector("Driver", "7", candidates))
}

func TestResolveCollectorStaffIDFields(t *testing.T) {
	candidates := []Record{
		{"staff_id": "21", "name": "A. Jayawardena"},
		{"user_id": float64(22), "full_name": "B. Perera"},
		{"id": float64(23), "name": "C. de Soysa"},
	}

	assert.Equal(t, "A. Jayawardena", ResolveCollector("Staff", "21", candidates))
	assert.Equal(t, "B. Perera", ResolveCollector("Staff", "22", candidates))
	assert.Equal(t, "C. de Soysa", ResolveCollector("Staff", "23", candidates))
}

// Backend ids may arrive numeric while the UI holds strings; comparison is
// canonical-string on both sides.
func TestResolveCollectorNumericStringMismatch(t *testing.T) {
	candidates := []Record{{"id": float64(15), "name": "M. Dias"}}
	assert.Equal(t, "M. Dias", ResolveCollector("Staff", "15", candidates))

	candidates = []Record{{"id": "15", "name": "M. Dias"}}
	assert.Equal(t, "M. Dias", ResolveCollector("Staff", "15", candidates))
}

func TestResolveCollectorNoMatchYieldsEmpty(t *testing.T) {
	candidates := []Record{{"id": float64(1), "name": "Someone"}}
	assert.Equal(t, "", ResolveCollector("Staff", "42", candidates))
	assert.Equal(t, "", ResolveCollector("Staff", "", candidates))
}
