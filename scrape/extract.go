package scrape

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/splunk-releases/releases"
)

// MarkupVersion identifies the download page markup the extractor understands.
// Splunk owns this markup and may change it at any time, bump the version when
// the selector or attributes change.
const MarkupVersion = "2021-03"

// DefaultSelector matches every release-bearing element of a download page.
const DefaultSelector = "[data-link]"

// Attributes read from every release element. data-oplatform and
// data-thankyou may also be present and are ignored.
var requiredAttributes = []struct {
	name  string
	field releases.Field
}{
	{"data-link", releases.FieldLink},
	{"data-filename", releases.FieldFilename},
	{"data-arch", releases.FieldArch},
	{"data-platform", releases.FieldPlatform},
	{"data-version", releases.FieldVersion},
	{"data-md5", releases.FieldMD5},
	{"data-sha512", releases.FieldSHA512},
}

type Extractor struct {
	// CSS selector of release elements, DefaultSelector when empty.
	Selector string
}

// Extract parses a download page into releases labelled with product.
func (e Extractor) Extract(page io.Reader, product string) ([]releases.Release, error) {
	if product == "" {
		return nil, &releases.ExtractionError{Reason: "empty product label"}
	}
	doc, err := goquery.NewDocumentFromReader(page)
	if err != nil {
		return nil, &releases.ExtractionError{Reason: fmt.Sprintf("parse html: %s", err)}
	}

	selector := e.Selector
	if selector == "" {
		selector = DefaultSelector
	}
	selection := doc.Find(selector)
	if selection.Length() == 0 {
		return nil, &releases.ExtractionError{
			Reason: fmt.Sprintf("no elements match %q (markup %s)", selector, MarkupVersion)}
	}

	extracted := make([]releases.Release, 0, selection.Length())
	var extractErr error
	selection.EachWithBreak(func(i int, s *goquery.Selection) bool {
		attrs := make(map[releases.Field]string, len(requiredAttributes))
		for _, attr := range requiredAttributes {
			value, ok := s.Attr(attr.name)
			if !ok {
				extractErr = &releases.ExtractionError{
					Reason: fmt.Sprintf("element %d has no %s attribute", i, attr.name)}
				return false
			}
			attrs[attr.field] = strings.TrimSpace(value)
		}
		extracted = append(extracted, releases.Release{
			Platform: attrs[releases.FieldPlatform],
			Arch:     attrs[releases.FieldArch],
			Version:  attrs[releases.FieldVersion],
			Filetype: releases.FiletypeOf(attrs[releases.FieldFilename]),
			Product:  product,
			Filename: attrs[releases.FieldFilename],
			Link:     attrs[releases.FieldLink],
			MD5:      attrs[releases.FieldMD5],
			SHA512:   attrs[releases.FieldSHA512],
		})
		return true
	})
	if extractErr != nil {
		return nil, extractErr
	}
	return extracted, nil
}
