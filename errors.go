package releases

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoMatch        = errors.New("no releases match")
	ErrAmbiguousMatch = errors.New("more than one release matches")
)

// Download page could not be fetched.
type UpstreamFetchError struct {
	URL string
	Err error
}

func (e *UpstreamFetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *UpstreamFetchError) Unwrap() error { return e.Err }

// Download page does not have the expected markup anymore.
type ExtractionError struct {
	URL    string
	Reason string
}

func (e *ExtractionError) Error() string {
	if e.URL == "" {
		return "extract releases: " + e.Reason
	}
	return fmt.Sprintf("extract releases from %s: %s", e.URL, e.Reason)
}

type NoMatchError struct {
	Field Field
	Value string
}

func (e *NoMatchError) Error() string {
	if e.Field == "" {
		return "No releases match the filters provided"
	}
	return fmt.Sprintf("No releases match %s = %s", e.Field, e.Value)
}

func (e *NoMatchError) Is(target error) bool { return target == ErrNoMatch }

type AmbiguousMatchError struct {
	Matches []Release
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("%d releases found for the filters supplied. Expected 1.", len(e.Matches))
}

func (e *AmbiguousMatchError) Is(target error) bool { return target == ErrAmbiguousMatch }

type InvalidFieldError struct {
	Name string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("field '%s' is invalid.", e.Name)
}

type InvalidParameterError struct {
	Name   string
	Value  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("expected a %s value for query parameter '%s', received '%s'.", e.Reason, e.Name, e.Value)
}

type ChecksumMismatchError struct {
	Algorithm string
	Expected  string
	Actual    string
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("download %s hash is %s expected %s", e.Algorithm, e.Actual, e.Expected)
}

type UnsupportedChecksumError struct {
	Algorithm string
	Supported []string
}

func (e *UnsupportedChecksumError) Error() string {
	return fmt.Sprintf("provided checksum type %s is unsupported. supported types are %s",
		e.Algorithm, strings.Join(e.Supported, ","))
}

// Single returns the only release or an error when there are none or many.
func Single(matches []Release) (Release, error) {
	switch len(matches) {
	case 0:
		return Release{}, &NoMatchError{}
	case 1:
		return matches[0], nil
	default:
		return Release{}, &AmbiguousMatchError{Matches: matches}
	}
}
