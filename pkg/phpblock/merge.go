package phpblock

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/drupalctl/pkg/errors"
)

// OpenTag is the header written before a block in write and prepend modes.
const OpenTag = "<?php\n"

// Mode is the placement strategy for a block.
type Mode int

const (
	// ModeWrite replaces the whole file with the header and the block.
	ModeWrite Mode = iota
	// ModePrepend puts the block right after the header, before existing content.
	ModePrepend
	// ModeAppend puts the block after existing content.
	ModeAppend
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeWrite:
		return "write"
	case ModePrepend:
		return "prepend"
	case ModeAppend:
		return "append"
	default:
		return "unknown"
	}
}

// TaskName returns the hook task name for the mode, e.g. "append.php".
func (m Mode) TaskName() string {
	return m.String() + ".php"
}

// ParseMode parses "write", "prepend", "append" or their ".php" task names.
func ParseMode(s string) (Mode, error) {
	switch strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), ".php") {
	case "write":
		return ModeWrite, nil
	case "prepend":
		return ModePrepend, nil
	case "append":
		return ModeAppend, nil
	default:
		return ModeWrite, errors.Newf(errors.ErrInvalidInput, "unknown placement mode: %q", s).
			WithDetail("mode", s)
	}
}

var openTagPattern = regexp.MustCompile(`^<\?(?:php)?[ \t]*(?:\r?\n)?`)

// Merge combines original file content with a rendered block.
// Any block previously written with the same labels is removed first, so
// merging the same block again yields the same content.
func Merge(original string, block *Block, mode Mode, labels Labels) (string, error) {
	if block == nil {
		return "", errors.New(errors.ErrInvalidInput, "no block to merge")
	}

	switch mode {
	case ModeWrite:
		return OpenTag + block.String(), nil
	case ModePrepend:
		rest := openTagPattern.ReplaceAllString(Sanitize(original, labels), "")
		return OpenTag + block.String() + rest, nil
	case ModeAppend:
		return Sanitize(original, labels) + block.String(), nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unknown placement mode: %d", int(mode))
	}
}

// Sanitize removes the first well-formed block delimited by labels from
// content. A block is a start marker line preceded by a line break, any
// content, and an end marker line ended by a line break or end of input.
// Markers may carry any "(<hex>)" checksum suffix.
func Sanitize(content string, labels Labels) string {
	loc := blockPattern(labels.withDefaults()).FindStringIndex(content)
	if loc == nil {
		return content
	}
	return content[:loc[0]] + content[loc[1]:]
}

func blockPattern(labels Labels) *regexp.Regexp {
	const suffix = `(?:\([0-9a-fA-F]*\))?`
	return regexp.MustCompile(
		`\n` + regexp.QuoteMeta(labels.Start) + suffix + `\n` +
			`(?s:.*?)` +
			`\n` + regexp.QuoteMeta(labels.End) + suffix + `(?:\n|\z)`,
	)
}
