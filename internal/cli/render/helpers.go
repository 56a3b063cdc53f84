package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/trebuchet-org/fundops/internal/domain"
)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return color.New(color.FgYellow).Sprintf("⚠️  %s", message)
}

// FormatError formats an error with the error icon. Precondition and revert
// errors keep their full message; other chains show the innermost cause.
func FormatError(err error) string {
	var precondition *domain.PreconditionError
	var revert *domain.RevertError
	var notFound domain.DeploymentNotFoundErr

	var msg string
	switch {
	case errors.As(err, &precondition), errors.As(err, &revert), errors.As(err, &notFound):
		msg = err.Error()
	default:
		// Extract just the error message part (after the last colon if it's an error chain)
		parts := strings.Split(err.Error(), ": ")
		msg = parts[len(parts)-1]
	}

	// Capitalize first letter
	if len(msg) > 0 {
		msg = strings.ToUpper(msg[:1]) + msg[1:]
	}

	return color.New(color.FgRed).Sprintf("❌ %s", msg)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}

// RenderJSON writes v as indented JSON
func RenderJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	return nil
}
