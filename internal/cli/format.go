package cli

import "fmt"

// Format selects an output rendering.
type Format string

const (
	FormatText Format = "txt"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatList Format = "list"
)

func parseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON, FormatYAML, FormatList:
		return Format(s), nil
	}
	return "", fmt.Errorf("unsupported format: %s", s)
}
