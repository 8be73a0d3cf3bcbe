package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"packagexpress/internal/version"
)

// outputVersion writes build information in the requested format
func outputVersion(w io.Writer, format string) error {
	if err := validateOutputFormat(format); err != nil {
		return err
	}

	switch format {
	case "json":
		return outputVersionJSON(w)
	default:
		_, err := fmt.Fprint(w, version.GetFullVersionString())
		return err
	}
}

// outputVersionJSON formats build information as JSON
func outputVersionJSON(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(version.GetInfo()); err != nil {
		return fmt.Errorf("failed to encode version info: %w", err)
	}
	return nil
}
