// Package report renders run summaries as a text table, CSV or YAML.
package report

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/okian/rankdrift/internal/app"
)

// Formats understood by Render.
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatYAML  = "yaml"
)

// Errors returned by Render.
var (
	ErrUnknownFormat = errors.New("unknown report format")
	ErrNothingToShow = errors.New("nothing to render")
)

// Render renders a *app.Summary or *app.Comparison in the given format.
func Render(format string, v any) (string, error) {
	switch r := v.(type) {
	case *app.Summary:
		if r == nil {
			return "", ErrNothingToShow
		}
		switch format {
		case FormatTable:
			return RenderTable(r), nil
		case FormatCSV:
			return RenderCSV(r), nil
		case FormatYAML:
			return RenderYAML(r)
		}
	case *app.Comparison:
		if r == nil || r.Standard == nil || r.Harsher == nil {
			return "", ErrNothingToShow
		}
		switch format {
		case FormatTable:
			return RenderComparisonTable(r), nil
		case FormatCSV:
			return RenderComparisonCSV(r), nil
		case FormatYAML:
			return RenderYAML(r)
		}
	default:
		return "", fmt.Errorf("%w: %T", ErrNothingToShow, v)
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// RenderYAML marshals v with its yaml tags.
func RenderYAML(v any) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	return string(data), nil
}
