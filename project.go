package releases

import (
	"encoding/json"
	"fmt"
)

// Project reduces releases to the requested fields and drops duplicates.
//
// With a single field every element is the plain field value, with several
// fields it is a map holding only those fields and with no fields it is the
// full release. Duplicates are compared by their json encoding, the first
// occurrence wins.
func Project(records []Release, fields []string) ([]interface{}, error) {
	if err := ValidateFields(fields); err != nil {
		return nil, err
	}

	projected := make([]interface{}, len(records))
	for i, r := range records {
		switch len(fields) {
		case 0:
			projected[i] = r
		case 1:
			projected[i], _ = r.Value(Field(fields[0]))
		default:
			partial := make(map[string]string, len(fields))
			for _, name := range fields {
				if v, ok := r.Value(Field(name)); ok {
					partial[name] = v
				}
			}
			projected[i] = partial
		}
	}
	return dedup(projected)
}

// ValidateFields fails with InvalidFieldError on the first field not in AllowedFields.
func ValidateFields(fields []string) error {
	for _, name := range fields {
		if !IsAllowedField(name) {
			return &InvalidFieldError{Name: name}
		}
	}
	return nil
}

// Dedup removes identical releases keeping the first occurrence.
func Dedup(records []Release) []Release {
	seen := make(map[Release]bool, len(records))
	unique := make([]Release, 0, len(records))
	for _, r := range records {
		if seen[r] {
			continue
		}
		seen[r] = true
		unique = append(unique, r)
	}
	return unique
}

func dedup(items []interface{}) ([]interface{}, error) {
	seen := make(map[string]bool, len(items))
	unique := make([]interface{}, 0, len(items))
	for _, item := range items {
		key, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("serialize projection: %w", err)
		}
		if seen[string(key)] {
			continue
		}
		seen[string(key)] = true
		unique = append(unique, item)
	}
	return unique, nil
}
