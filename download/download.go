package download

import (
	"context"
	"fmt"
	"hash"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cheggaaa/pb"
	"github.com/sirupsen/logrus"
	"github.com/splunk-releases/releases"
	"github.com/splunk-releases/releases/scrape"
)

type Downloader struct {
	Client    *http.Client
	UserAgent string
	// Progress bar output, no progress is shown when nil.
	Progress io.Writer
}

func NewDownloader(timeout time.Duration, userAgent string, progress io.Writer) *Downloader {
	return &Downloader{
		Client:    &http.Client{Timeout: timeout},
		UserAgent: userAgent,
		Progress:  progress,
	}
}

// Download writes the release artifact to path. Every downloaded byte is also
// written to h when it is not nil.
func (d *Downloader) Download(ctx context.Context, release releases.Release, path string, h hash.Hash) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, release.Link, nil)
	if err != nil {
		return 0, fmt.Errorf("new request: %w", err)
	}
	userAgent := d.UserAgent
	if userAgent == "" {
		userAgent = scrape.DefaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)

	client := d.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, &releases.UpstreamFetchError{URL: release.Link, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, &releases.UpstreamFetchError{URL: release.Link, Err: fmt.Errorf("invalid status code %d", resp.StatusCode)}
	}

	out, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", path, err)
	}

	var body io.Reader = resp.Body
	if h != nil {
		body = io.TeeReader(body, h)
	}

	var bar *pb.ProgressBar
	if d.Progress != nil {
		total := resp.ContentLength
		if total < 0 {
			total = 0
		}
		bar = pb.New64(total)
		bar.SetUnits(pb.U_BYTES)
		bar.Output = d.Progress
		bar.Prefix(release.Filename + " ")
		bar.Start()
		body = bar.NewProxyReader(body)
	}

	written, err := io.Copy(out, body)
	if bar != nil {
		bar.Finish()
	}
	if closeErr := out.Close(); err == nil && closeErr != nil {
		err = closeErr
	}
	if err != nil {
		// partial downloads are never left behind.
		os.Remove(path)
		return written, fmt.Errorf("write %s: %w", path, err)
	}

	logrus.WithField("path", path).WithField("bytes", written).Debugln("Downloaded release.")
	return written, nil
}
