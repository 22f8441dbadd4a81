package checksum

import (
	"context"
	"crypto/md5"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"

	"github.com/splunk-releases/releases"
	"github.com/splunk-releases/releases/scrape"
)

const (
	MD5    = "md5"
	SHA512 = "sha512"
)

var Supported = []string{MD5, SHA512}

// NewHash returns a hash for a checksum algorithm published by Splunk.
func NewHash(algorithm string) (hash.Hash, error) {
	switch strings.ToLower(algorithm) {
	case MD5:
		return md5.New(), nil
	case SHA512:
		return sha512.New(), nil
	default:
		return nil, &releases.UnsupportedChecksumError{Algorithm: algorithm, Supported: Supported}
	}
}

// URL returns the checksum file url of release for algorithm.
func URL(release releases.Release, algorithm string) (string, error) {
	switch strings.ToLower(algorithm) {
	case MD5:
		return release.MD5, nil
	case SHA512:
		return release.SHA512, nil
	default:
		return "", &releases.UnsupportedChecksumError{Algorithm: algorithm, Supported: Supported}
	}
}

// Parse reads the hex digest of a checksum file, formatted like
// "SHA512(splunk-9.0.0-Linux-x86_64.tgz)= 1f2e...".
func Parse(body []byte) (string, error) {
	_, digest, ok := strings.Cut(string(body), "=")
	digest = strings.ToLower(strings.TrimSpace(digest))
	if !ok || digest == "" {
		return "", fmt.Errorf("malformed checksum file %q", strings.TrimSpace(string(body)))
	}
	return digest, nil
}

type Verifier struct {
	Fetch scrape.PageFetcher
}

// Verify compares the digest of h with the one published for release.
func (v Verifier) Verify(ctx context.Context, release releases.Release, algorithm string, h hash.Hash) (string, error) {
	url, err := URL(release, algorithm)
	if err != nil {
		return "", err
	}
	body, err := v.Fetch(ctx, url)
	if err != nil {
		return "", &releases.UpstreamFetchError{URL: url, Err: err}
	}
	expected, err := Parse(body)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", url, err)
	}

	actual := hex.EncodeToString(h.Sum(nil))
	if actual != expected {
		return actual, &releases.ChecksumMismatchError{Algorithm: strings.ToLower(algorithm), Expected: expected, Actual: actual}
	}
	return actual, nil
}
