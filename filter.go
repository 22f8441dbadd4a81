package releases

import "strings"

// Criteria maps filter fields to requested values. Empty values are ignored.
type Criteria map[Field]string

// Fields recognized by Filter, in the order they are applied.
var FilterFields = []Field{
	FieldPlatform, FieldArch, FieldFiletype, FieldProduct, FieldFilename, FieldVersion,
}

// Filter returns releases matching all criteria, preserving catalog order.
// Version uses prefix matching (see VersionMatch), every other field is
// compared case-insensitively.
func Filter(catalog []Release, criteria Criteria) []Release {
	matched := make([]Release, 0, len(catalog))
	for _, r := range catalog {
		if matches(r, criteria) {
			matched = append(matched, r)
		}
	}
	return matched
}

func matches(r Release, criteria Criteria) bool {
	for _, field := range FilterFields {
		query := criteria[field]
		if query == "" {
			continue
		}
		value, _ := r.Value(field)
		if field == FieldVersion {
			if !VersionMatch(query, value) {
				return false
			}
		} else if !strings.EqualFold(query, value) {
			return false
		}
	}
	return true
}

// VersionMatch reports whether the dotted query is a segment-wise prefix of release.
// "8.1" matches "8.1.0" and "8.1.3", while "8.1.0.1" never matches "8.1.0".
func VersionMatch(query, release string) bool {
	querySegments := strings.Split(query, ".")
	releaseSegments := strings.Split(release, ".")
	if len(querySegments) > len(releaseSegments) {
		return false
	}
	for i, segment := range querySegments {
		if segment != releaseSegments[i] {
			return false
		}
	}
	return true
}

// Distinct returns distinct values of field in order of first appearance.
func Distinct(catalog []Release, field Field) []string {
	seen := make(map[string]bool)
	values := make([]string, 0)
	for _, r := range catalog {
		v, _ := r.Value(field)
		if seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	return values
}
