package merge

import "strings"

// Field names a semantic column target in an external dataset.
type Field string

const (
	FieldEnergy    Field = "energy"
	FieldTimestamp Field = "timestamp"
	FieldMeterID   Field = "meter_id"
)

// DefaultRules lists, per semantic field, the name substrings that
// identify a matching column. Detection rules are data so alternative
// schemas can be described without new code.
var DefaultRules = map[Field][]string{
	FieldEnergy:    {"energy", "kwh", "consumption", "usage", "power"},
	FieldTimestamp: {"timestamp", "datetime", "date_time", "time", "date"},
	FieldMeterID:   {"meter_id", "id", "meter", "device_id", "user_id"},
}

// Resolution maps each semantic field to a column index, or -1 when no
// column matched.
type Resolution map[Field]int

// Column returns the resolved index for a field, or the fallback when
// the field was not found.
func (r Resolution) Column(f Field, fallback int) int {
	if idx, ok := r[f]; ok && idx >= 0 {
		return idx
	}
	return fallback
}

// Resolve scans the header and selects, for each field, the first
// column whose name contains any of the field's candidate substrings,
// case-insensitively.
func Resolve(header []string, rules map[Field][]string) Resolution {
	res := make(Resolution, len(rules))
	for field, candidates := range rules {
		res[field] = -1
		for i, col := range header {
			if matchesAny(col, candidates) {
				res[field] = i
				break
			}
		}
	}
	return res
}

func matchesAny(column string, candidates []string) bool {
	lower := strings.ToLower(column)
	for _, c := range candidates {
		if strings.Contains(lower, strings.ToLower(c)) {
			return true
		}
	}
	return false
}
