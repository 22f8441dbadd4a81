package cli

import (
	"context"
	"errors"
	"fmt"
	"hash"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/splunk-releases/releases"
	"github.com/splunk-releases/releases/checksum"
)

const (
	ExitOK = iota
	ExitNoMatch
	ExitUnsupportedChecksum
	ExitChecksumMismatch
	ExitFailure
)

type Downloader interface {
	Download(ctx context.Context, release releases.Release, path string, h hash.Hash) (int64, error)
}

type Verifier interface {
	Verify(ctx context.Context, release releases.Release, algorithm string, h hash.Hash) (string, error)
}

type Commands struct {
	Store      releases.CatalogStore
	Narrower   Narrower
	Downloader Downloader
	Verifier   Verifier
	Out        io.Writer
}

func (c *Commands) selectRelease(ctx context.Context, criteria releases.Criteria) (releases.Release, error) {
	snapshot, err := c.Store.Catalog(ctx, false)
	if err != nil {
		return releases.Release{}, fmt.Errorf("catalog: %w", err)
	}
	matches, err := c.Narrower.Narrow(snapshot.Releases, criteria)
	if err != nil {
		return releases.Release{}, err
	}
	return releases.Single(releases.Dedup(matches))
}

// Details prints the download link of the selected release.
func (c *Commands) Details(ctx context.Context, criteria releases.Criteria) error {
	release, err := c.selectRelease(ctx, criteria)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.Out, "Link: %s\n", release.Link)
	return nil
}

// Download saves the selected release to filename, or to its own file name
// when filename is empty, and verifies it against the published algorithm
// checksum when algorithm is set.
func (c *Commands) Download(ctx context.Context, criteria releases.Criteria, filename string, algorithm string) error {
	var h hash.Hash
	if algorithm != "" {
		var err error
		if h, err = checksum.NewHash(algorithm); err != nil {
			return err
		}
	}

	release, err := c.selectRelease(ctx, criteria)
	if err != nil {
		return err
	}
	path := filename
	if path == "" {
		path = release.Filename
	}
	if _, err := c.Downloader.Download(ctx, release, path, h); err != nil {
		return fmt.Errorf("download %s: %w", release.Filename, err)
	}
	fmt.Fprintf(c.Out, "Downloaded to: %s\n", path)

	if h == nil {
		return nil
	}
	digest, err := c.Verifier.Verify(ctx, release, algorithm, h)
	if err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintf(c.Out, "%s hash %s matches\n", strings.ToLower(algorithm), digest)
	return nil
}

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	var unsupported *releases.UnsupportedChecksumError
	var mismatch *releases.ChecksumMismatchError
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, releases.ErrNoMatch):
		return ExitNoMatch
	case errors.As(err, &unsupported):
		return ExitUnsupportedChecksum
	case errors.As(err, &mismatch):
		return ExitChecksumMismatch
	default:
		return ExitFailure
	}
}
