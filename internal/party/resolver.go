// Package party normalizes heterogeneous backend records: parties arrive
// with varying shapes, so every concept (role, address, phone, label) is
// resolved through an ordered list of candidate field probes.
package party

import "strings"

// Record is an opaque party-like record from the backend. The shape varies
// between deployments and API versions, so nothing here assumes a schema.
type Record map[string]interface{}

var addressKeys = []string{"address", "full_address", "fullAddress", "address1", "address_line1", "street", "location"}

var addressNestedKeys = []string{"line1", "street", "full_address", "address1", "city"}

var phoneKeys = []string{"phone", "phone_number", "phoneNumber", "mobile", "mobile_number", "contact_number", "telephone"}

var phoneNestedKeys = []string{"phone", "mobile", "number"}

var labelKeys = []string{"name", "full_name", "fullName", "title", "label", "display_name"}

// ResolveAddress extracts a display address by probing flat candidate keys
// first, then nested address objects. Absence of data yields an empty
// string, never an error.
func ResolveAddress(rec Record) string {
	if s := firstString(rec, addressKeys); s != "" {
		return s
	}
	for _, key := range []string{"address", "location"} {
		if nested, ok := rec[key].(map[string]interface{}); ok {
			if s := firstString(nested, addressNestedKeys); s != "" {
				return s
			}
		}
	}
	return ""
}

// ResolvePhone extracts a display phone the same way.
func ResolvePhone(rec Record) string {
	if s := firstString(rec, phoneKeys); s != "" {
		return s
	}
	if nested, ok := rec["contact"].(map[string]interface{}); ok {
		if s := firstString(nested, phoneNestedKeys); s != "" {
			return s
		}
	}
	return ""
}

// LabelOf extracts a human display label for any backend record.
func LabelOf(rec Record) string {
	return firstString(rec, labelKeys)
}

// firstString returns the first non-empty string among the candidate keys.
func firstString(rec map[string]interface{}, keys []string) string {
	for _, key := range keys {
		if s, ok := rec[key].(string); ok {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}
