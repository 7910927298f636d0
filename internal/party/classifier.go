package party

import (
	"strconv"
	"strings"
)

// Role is the canonical classification of a party record.
type Role int

const (
	RoleUnknown Role = iota
	RoleSender
	RoleReceiver
)

func (r Role) String() string {
	switch r {
	case RoleSender:
		return "sender"
	case RoleReceiver:
		return "receiver"
	default:
		return "unknown"
	}
}

// ParseRole maps a request value to a Role.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sender":
		return RoleSender, true
	case "receiver", "consignee":
		return RoleReceiver, true
	default:
		return RoleUnknown, false
	}
}

// typeKeys are probed in order for the raw "customer type" value: flat
// numeric/string fields first, then nested type objects.
var typeKeys = []string{"customer_type_id", "customerTypeId", "customer_type", "type_id", "type", "party_type"}

var typeObjectIDKeys = []string{"id", "value", "code"}

var typeObjectNameKeys = []string{"name", "title", "label"}

// Classify maps an opaque party record to Sender, Receiver, or Unknown.
// Numeric type encodings: 1 is sender, 2 is receiver. String encodings are
// parsed as numbers when possible, otherwise pattern-matched. A record that
// cannot be confidently classified stays Unknown; it is never guessed. The
// input record is not mutated.
func Classify(rec Record) Role {
	for _, key := range typeKeys {
		raw, ok := rec[key]
		if !ok || raw == nil {
			continue
		}
		if role := classifyValue(raw); role != RoleUnknown {
			return role
		}
	}
	return RoleUnknown
}

func classifyValue(raw interface{}) Role {
	switch v := raw.(type) {
	case float64:
		return roleFromNumber(v)
	case int:
		return roleFromNumber(float64(v))
	case int64:
		return roleFromNumber(float64(v))
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return RoleUnknown
		}
		if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return roleFromNumber(n)
		}
		return roleFromText(trimmed)
	case map[string]interface{}:
		for _, key := range typeObjectIDKeys {
			if role := classifyScalar(v[key]); role != RoleUnknown {
				return role
			}
		}
		for _, key := range typeObjectNameKeys {
			if s, ok := v[key].(string); ok {
				if role := roleFromText(s); role != RoleUnknown {
					return role
				}
			}
		}
		return RoleUnknown
	default:
		return RoleUnknown
	}
}

// classifyScalar handles nested id/value/code entries, which may themselves
// be numbers or numeric strings but never further nesting.
func classifyScalar(raw interface{}) Role {
	switch raw.(type) {
	case map[string]interface{}, nil:
		return RoleUnknown
	default:
		return classifyValue(raw)
	}
}

func roleFromNumber(n float64) Role {
	switch n {
	case 1:
		return RoleSender
	case 2:
		return RoleReceiver
	default:
		return RoleUnknown
	}
}

func roleFromText(s string) Role {
	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "sender"):
		return RoleSender
	case strings.Contains(lower, "receiver"), strings.Contains(lower, "consignee"):
		return RoleReceiver
	default:
		return RoleUnknown
	}
}

// FilterByRole returns the subset of records classified exactly as role.
// Unknown records are excluded from every bucket.
func FilterByRole(records []Record, role Role) []Record {
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if Classify(rec) == role {
			out = append(out, rec)
		}
	}
	return out
}
