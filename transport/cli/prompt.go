package cli

import (
	"fmt"
	"io"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/splunk-releases/releases"
)

type Prompter interface {
	// Select asks question and returns one of options.
	Select(question string, options []string) (string, error)
}

// SurveyPrompter asks in the terminal with an arrow-key selectable list.
type SurveyPrompter struct{}

func (SurveyPrompter) Select(question string, options []string) (string, error) {
	var answer string
	err := survey.AskOne(&survey.Select{Message: question + ":", Options: options}, &answer)
	if err != nil {
		return "", fmt.Errorf("prompt %q: %w", question, err)
	}
	return answer, nil
}

type dimension struct {
	field    releases.Field
	question string
}

var dimensions = []dimension{
	{releases.FieldPlatform, "Choose a platform"},
	{releases.FieldArch, "Choose a architecture"},
	{releases.FieldVersion, "Choose a version"},
	{releases.FieldFiletype, "Choose a file type"},
	{releases.FieldProduct, "Choose a product"},
	{releases.FieldFilename, "Choose a file"},
}

var (
	questionMark = color.New(color.FgGreen, color.Bold)
	answerColor  = color.New(color.FgCyan)
)

type Narrower struct {
	Prompter Prompter
	Out      io.Writer
}

// Narrow walks platform, arch, version, file type and product in order.
// Values present in criteria are echoed and applied with the release filter.
// Whenever a dimension still has more than one value afterwards, a version
// prefix for example, the remaining values are asked for. A final file
// choice splits releases equal in every dimension.
func (n Narrower) Narrow(catalog []releases.Release, criteria releases.Criteria) ([]releases.Release, error) {
	remaining := catalog
	if len(remaining) == 0 {
		return nil, &releases.NoMatchError{}
	}
	for _, d := range dimensions {
		if value := criteria[d.field]; value != "" {
			n.echo(d.question, value)
			remaining = releases.Filter(remaining, releases.Criteria{d.field: value})
			if len(remaining) == 0 {
				return nil, &releases.NoMatchError{Field: d.field, Value: value}
			}
		}

		options := releases.Distinct(remaining, d.field)
		if len(options) < 2 {
			continue
		}
		answer, err := n.Prompter.Select(d.question, options)
		if err != nil {
			return nil, err
		}
		remaining = withValue(remaining, d.field, answer)
		if len(remaining) == 0 {
			return nil, &releases.NoMatchError{Field: d.field, Value: answer}
		}
	}
	return remaining, nil
}

func (n Narrower) echo(question string, value string) {
	if n.Out == nil {
		return
	}
	questionMark.Fprint(n.Out, "? ")
	fmt.Fprintf(n.Out, "%s: ", question)
	answerColor.Fprintln(n.Out, value)
}

func withValue(catalog []releases.Release, field releases.Field, value string) []releases.Release {
	var matches []releases.Release
	for _, r := range catalog {
		if v, _ := r.Value(field); v == value {
			matches = append(matches, r)
		}
	}
	return matches
}
