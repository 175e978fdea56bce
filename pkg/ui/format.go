package ui

import (
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/drupalctl/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format selects how reports, warnings and errors are printed
type Format int

const (
	// FormatAuto picks FormatTerminal or FormatText for the output at hand
	FormatAuto Format = iota
	// FormatTerminal uses colours and symbols
	FormatTerminal
	// FormatText is the terminal layout without styling
	FormatText
	// FormatJSON prints one JSON document per report, warning or error
	FormatJSON
)

// FormatEnv chooses the format when --format is not given, e.g. in CI.
const FormatEnv = "DRUPALCTL_FORMAT"

var formatNames = [...]string{"auto", "term", "text", "json"}

var formatAliases = map[string]Format{
	"":         FormatAuto,
	"auto":     FormatAuto,
	"term":     FormatTerminal,
	"terminal": FormatTerminal,
	"text":     FormatText,
	"plain":    FormatText,
	"json":     FormatJSON,
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return "unknown"
	}
	return formatNames[f]
}

// ParseFormat accepts the canonical names and a few aliases, case-insensitively.
func ParseFormat(s string) (Format, error) {
	if f, ok := formatAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format %q, expected one of %s",
		s, strings.Join(formatNames[:], ", ")).
		WithDetail("format", s)
}

// Resolve returns the concrete format for output. An explicit --format value
// wins over DRUPALCTL_FORMAT; auto is then settled by DetectFormat. The result
// is never FormatAuto.
func Resolve(flag string, explicit bool, output io.Writer) (Format, error) {
	value := flag
	if !explicit {
		if env, ok := os.LookupEnv(FormatEnv); ok {
			value = env
		}
	}
	f, err := ParseFormat(value)
	if err != nil {
		return FormatAuto, err
	}
	if f == FormatAuto {
		return DetectFormat(output), nil
	}
	return f, nil
}

// DetectFormat returns FormatTerminal only for a colour-capable terminal.
// Buffers, pipes, NO_COLOR and TERM=dumb all get FormatText. JSON is never
// guessed.
func DetectFormat(output io.Writer) Format {
	file, ok := output.(interface{ Fd() uintptr })
	if !ok {
		return FormatText
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return FormatText
	}
	if !isatty.IsTerminal(file.Fd()) && !isatty.IsCygwinTerminal(file.Fd()) {
		return FormatText
	}
	if termenv.NewOutput(output).ColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}
