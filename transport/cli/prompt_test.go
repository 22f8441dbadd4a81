package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/splunk-releases/releases"
	"github.com/stretchr/testify/assert"
)

func init() {
	color.NoColor = true
}

var testCatalog = releases.Catalog{
	{Platform: "Linux", Arch: "x86_64", Version: "8.1.0", Filetype: "tgz", Product: releases.ProductEnterprise,
		Filename: "splunk-8.1.0-Linux-x86_64.tgz", Link: "https://dl.example/splunk-8.1.0-Linux-x86_64.tgz",
		MD5: "https://dl.example/splunk-8.1.0-Linux-x86_64.tgz.md5"},
	{Platform: "Linux", Arch: "x86_64", Version: "8.1.0", Filetype: "rpm", Product: releases.ProductEnterprise,
		Filename: "splunk-8.1.0-linux-2.6-x86_64.rpm", Link: "https://dl.example/splunk-8.1.0-linux-2.6-x86_64.rpm"},
	{Platform: "Windows", Arch: "x64", Version: "8.1.3", Filetype: "msi", Product: releases.ProductEnterprise,
		Filename: "splunk-8.1.3-x64-release.msi", Link: "https://dl.example/splunk-8.1.3-x64-release.msi"},
	{Platform: "Linux", Arch: "x86_64", Version: "8.2.0", Filetype: "tgz", Product: releases.ProductForwarder,
		Filename: "splunkforwarder-8.2.0-Linux-x86_64.tgz", Link: "https://dl.example/splunkforwarder-8.2.0-Linux-x86_64.tgz"},
}

type question struct {
	text    string
	options []string
}

// scriptedPrompter answers with the queued answers and records what was asked.
type scriptedPrompter struct {
	answers []string
	asked   []question
}

func (p *scriptedPrompter) Select(text string, options []string) (string, error) {
	p.asked = append(p.asked, question{text: text, options: options})
	if len(p.answers) == 0 {
		return "", errors.New("interrupt")
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

func TestNarrowWithFlags(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	prompter := &scriptedPrompter{}
	n := Narrower{Prompter: prompter, Out: out}

	matches, err := n.Narrow(testCatalog, releases.Criteria{
		releases.FieldPlatform: "linux",
		releases.FieldVersion:  "8.2",
	})
	assert.NoError(err)
	assert.Equal([]releases.Release{testCatalog[3]}, matches)
	assert.Empty(prompter.asked)
	assert.Equal("? Choose a platform: linux\n? Choose a version: 8.2\n", out.String())
}

func TestNarrowPromptsForAmbiguousDimensions(t *testing.T) {
	assert := assert.New(t)

	prompter := &scriptedPrompter{answers: []string{"Linux", "8.1.0", "rpm"}}
	n := Narrower{Prompter: prompter, Out: &bytes.Buffer{}}

	matches, err := n.Narrow(testCatalog, releases.Criteria{})
	assert.NoError(err)
	assert.Equal([]releases.Release{testCatalog[1]}, matches)
	assert.Equal([]question{
		{"Choose a platform", []string{"Linux", "Windows"}},
		{"Choose a version", []string{"8.1.0", "8.2.0"}},
		{"Choose a file type", []string{"tgz", "rpm"}},
	}, prompter.asked)
}

func TestNarrowNoMatch(t *testing.T) {
	assert := assert.New(t)

	n := Narrower{Prompter: &scriptedPrompter{}, Out: &bytes.Buffer{}}

	_, err := n.Narrow(testCatalog, releases.Criteria{releases.FieldPlatform: "Windows", releases.FieldArch: "arm64"})
	assert.EqualError(err, "No releases match arch = arm64")
	assert.ErrorIs(err, releases.ErrNoMatch)

	_, err = n.Narrow(nil, releases.Criteria{})
	assert.ErrorIs(err, releases.ErrNoMatch)
}

func TestNarrowPromptFailure(t *testing.T) {
	assert := assert.New(t)

	n := Narrower{Prompter: &scriptedPrompter{}, Out: &bytes.Buffer{}}
	_, err := n.Narrow(testCatalog, releases.Criteria{})
	assert.EqualError(err, "interrupt")
}

func TestNarrowPromptsWithinVersionPrefix(t *testing.T) {
	assert := assert.New(t)

	catalog := []releases.Release{
		{Platform: "Linux", Arch: "x86_64", Version: "8.1.3", Filetype: "tgz", Product: releases.ProductEnterprise,
			Filename: "splunk-8.1.3-Linux-x86_64.tgz", Link: "https://dl.example/8.1.3.tgz"},
		{Platform: "Linux", Arch: "x86_64", Version: "8.1.0", Filetype: "tgz", Product: releases.ProductEnterprise,
			Filename: "splunk-8.1.0-Linux-x86_64.tgz", Link: "https://dl.example/8.1.0.tgz"},
	}
	out := &bytes.Buffer{}
	prompter := &scriptedPrompter{answers: []string{"8.1.0"}}
	n := Narrower{Prompter: prompter, Out: out}

	matches, err := n.Narrow(catalog, releases.Criteria{releases.FieldVersion: "8.1"})
	assert.NoError(err)
	assert.Equal([]releases.Release{catalog[1]}, matches)
	assert.Equal([]question{{"Choose a version", []string{"8.1.3", "8.1.0"}}}, prompter.asked)
	assert.Equal("? Choose a version: 8.1\n", out.String())
}

func TestNarrowPromptsForFileWhenDimensionsAreEqual(t *testing.T) {
	assert := assert.New(t)

	catalog := []releases.Release{
		{Platform: "Linux", Arch: "x86_64", Version: "8.1.0", Filetype: "tgz", Product: releases.ProductEnterprise,
			Filename: "splunk-8.1.0-Linux-x86_64.tgz"},
		{Platform: "Linux", Arch: "x86_64", Version: "8.1.0", Filetype: "tgz", Product: releases.ProductEnterprise,
			Filename: "splunk-8.1.0-Linux-2.6-x86_64.tgz"},
	}
	prompter := &scriptedPrompter{answers: []string{"splunk-8.1.0-Linux-2.6-x86_64.tgz"}}
	n := Narrower{Prompter: prompter, Out: &bytes.Buffer{}}

	matches, err := n.Narrow(catalog, releases.Criteria{})
	assert.NoError(err)
	assert.Equal([]releases.Release{catalog[1]}, matches)
	if assert.Len(prompter.asked, 1) {
		assert.Equal("Choose a file", prompter.asked[0].text)
	}
}
