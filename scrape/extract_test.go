package scrape

import (
	"errors"
	"strings"
	"testing"

	"github.com/splunk-releases/releases"
	"github.com/stretchr/testify/assert"
)

const enterprisePage = `<!DOCTYPE html>
<html><body>
<div class="download-options">
<a href="#" class="splunk-btn" data-link="https://download.splunk.com/products/splunk/releases/8.1.0/linux/splunk-8.1.0-f57c09e87251-Linux-x86_64.tgz"
   data-filename="splunk-8.1.0-f57c09e87251-Linux-x86_64.tgz" data-arch="x86_64" data-platform="Linux"
   data-oplatform="linux" data-version="8.1.0"
   data-md5="https://download.splunk.com/products/splunk/releases/8.1.0/linux/splunk-8.1.0-f57c09e87251-Linux-x86_64.tgz.md5"
   data-sha512="https://download.splunk.com/products/splunk/releases/8.1.0/linux/splunk-8.1.0-f57c09e87251-Linux-x86_64.tgz.sha512"
   data-thankyou="/thank-you">Download Now</a>
<a href="#" class="splunk-btn" data-link="https://download.splunk.com/products/splunk/releases/8.1.0/windows/splunk-8.1.0-f57c09e87251-x64-release.msi"
   data-filename="splunk-8.1.0-f57c09e87251-x64-release.msi" data-arch="x86_64" data-platform="Windows"
   data-oplatform="windows" data-version="8.1.0"
   data-md5="https://download.splunk.com/products/splunk/releases/8.1.0/windows/splunk-8.1.0-f57c09e87251-x64-release.msi.md5"
   data-sha512="https://download.splunk.com/products/splunk/releases/8.1.0/windows/splunk-8.1.0-f57c09e87251-x64-release.msi.sha512"
   data-thankyou="/thank-you">Download Now</a>
</div>
</body></html>`

func TestExtract(t *testing.T) {
	assert := assert.New(t)

	extracted, err := Extractor{}.Extract(strings.NewReader(enterprisePage), releases.ProductEnterprise)
	if !assert.NoError(err) {
		return
	}
	if !assert.Len(extracted, 2) {
		return
	}
	assert.Equal(releases.Release{
		Platform: "Linux",
		Arch:     "x86_64",
		Version:  "8.1.0",
		Filetype: "tgz",
		Product:  "enterprise",
		Filename: "splunk-8.1.0-f57c09e87251-Linux-x86_64.tgz",
		Link:     "https://download.splunk.com/products/splunk/releases/8.1.0/linux/splunk-8.1.0-f57c09e87251-Linux-x86_64.tgz",
		MD5:      "https://download.splunk.com/products/splunk/releases/8.1.0/linux/splunk-8.1.0-f57c09e87251-Linux-x86_64.tgz.md5",
		SHA512:   "https://download.splunk.com/products/splunk/releases/8.1.0/linux/splunk-8.1.0-f57c09e87251-Linux-x86_64.tgz.sha512",
	}, extracted[0])
	assert.Equal("Windows", extracted[1].Platform)
	assert.Equal("msi", extracted[1].Filetype)
}

func TestExtractFailures(t *testing.T) {
	assert := assert.New(t)

	cases := []struct {
		page    string
		product string
		reason  string
	}{
		{`<html><body><p>moved</p></body></html>`, "enterprise", "no elements match"},
		{`<a data-link="https://x/y.tgz" data-filename="y.tgz" data-arch="x86_64" data-platform="Linux">x</a>`,
			"enterprise", "element 0 has no data-version attribute"},
		{enterprisePage, "", "empty product label"},
	}

	for _, tc := range cases {
		_, err := Extractor{}.Extract(strings.NewReader(tc.page), tc.product)
		var extractErr *releases.ExtractionError
		if assert.True(errors.As(err, &extractErr), tc.reason) {
			assert.Contains(extractErr.Reason, tc.reason)
		}
	}
}

func TestExtractCustomSelector(t *testing.T) {
	assert := assert.New(t)

	page := `<div><button class="dl" data-link="https://x/a.rpm" data-filename="a.rpm" data-arch="x86_64"
		data-platform="Linux" data-version="9.0.1" data-md5="https://x/a.rpm.md5" data-sha512="https://x/a.rpm.sha512"></button>
		<span data-link="ignored"></span></div>`

	extracted, err := Extractor{Selector: "button.dl"}.Extract(strings.NewReader(page), releases.ProductForwarder)
	if !assert.NoError(err) {
		return
	}
	assert.Len(extracted, 1)
	assert.Equal("forwarder", extracted[0].Product)
	assert.Equal("rpm", extracted[0].Filetype)
}
