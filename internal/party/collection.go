package party

import (
	"strings"

	"cargo-entry-service/internal/numeric"
)

// OfficeRole is the collection role whose assignee is chosen by the
// workflow rather than the user and rendered read-only.
const OfficeRole = "Office"

var driverIDKeys = []string{"id", "driver_id"}

var staffIDKeys = []string{"staff_id", "user_id", "id"}

// ResolveCollector resolves a collected-by role and person selection into a
// canonical display label.
//
// For the Office role the single implied record is auto-selected. For every
// other role, personID is matched against the candidates on role-specific
// id fields, compared as strings to defend against numeric/string id
// mismatches from the backend. No match yields an empty label, never a
// placeholder guess.
func ResolveCollector(roleName, personID string, candidates []Record) string {
	if roleName == OfficeRole {
		if len(candidates) > 0 {
			return LabelOf(candidates[0])
		}
		return ""
	}

	want := strings.TrimSpace(personID)
	if want == "" {
		return ""
	}

	idKeys := staffIDKeys
	if strings.EqualFold(roleName, "Driver") {
		idKeys = driverIDKeys
	}

	for _, rec := range candidates {
		for _, key := range idKeys {
			if raw, ok := rec[key]; ok {
				if numeric.IDString(raw) == want {
					return LabelOf(rec)
				}
			}
		}
	}
	return ""
}
