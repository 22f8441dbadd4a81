package scrape

import (
	"bytes"
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/splunk-releases/releases"
	"golang.org/x/sync/errgroup"
)

const (
	EnterpriseCurrentURL  = "https://www.splunk.com/en_us/download/get-started-with-your-free-trial.html"
	EnterprisePreviousURL = "https://www.splunk.com/en_us/download/previous-releases.html"
	ForwarderCurrentURL   = "https://www.splunk.com/en_us/download/universal-forwarder.html"
	ForwarderPreviousURL  = "https://www.splunk.com/en_us/download/previous-releases/universalforwarder.html"
)

// Download page and the product its releases belong to.
type Source struct {
	URL     string
	Product string
}

// Catalog order follows this order.
var DefaultSources = []Source{
	{URL: EnterpriseCurrentURL, Product: releases.ProductEnterprise},
	{URL: EnterprisePreviousURL, Product: releases.ProductEnterprise},
	{URL: ForwarderCurrentURL, Product: releases.ProductForwarder},
	{URL: ForwarderPreviousURL, Product: releases.ProductForwarder},
}

type Builder struct {
	Sources   []Source
	Fetch     PageFetcher
	Extractor Extractor
}

var _ releases.CatalogSource = (*Builder)(nil)

// Build fetches all sources concurrently and concatenates their releases in
// source order. The first failure aborts the build.
func (b *Builder) Build(ctx context.Context) (releases.Catalog, error) {
	sources := b.Sources
	if sources == nil {
		sources = DefaultSources
	}

	group, groupCtx := errgroup.WithContext(ctx)
	results := make([][]releases.Release, len(sources))
	for i, source := range sources {
		i, source := i, source
		group.Go(func() error {
			extracted, err := b.scrape(groupCtx, source)
			if err != nil {
				return err
			}
			results[i] = extracted
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	catalog := make(releases.Catalog, 0)
	for _, r := range results {
		catalog = append(catalog, r...)
	}
	return catalog, nil
}

func (b *Builder) scrape(ctx context.Context, source Source) ([]releases.Release, error) {
	log := logrus.WithField("source", source.URL).WithField("product", source.Product)

	fetch := b.Fetch
	if fetch == nil {
		fetch = AgentFetcher(DefaultTimeout, DefaultUserAgent)
	}
	page, err := fetch(ctx, source.URL)
	if err != nil {
		log.WithError(err).Warningln("Could not fetch download page.")
		return nil, &releases.UpstreamFetchError{URL: source.URL, Err: err}
	}

	extracted, err := b.Extractor.Extract(bytes.NewReader(page), source.Product)
	if err != nil {
		var extractErr *releases.ExtractionError
		if errors.As(err, &extractErr) {
			extractErr.URL = source.URL
		}
		log.WithError(err).Warningln("Could not extract releases.")
		return nil, err
	}

	log.WithField("releases", len(extracted)).Debugln("Scraped download page.")
	return extracted, nil
}
