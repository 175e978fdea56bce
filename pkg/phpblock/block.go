package phpblock

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/drupalctl/pkg/errors"
	"github.com/arthur-debert/drupalctl/pkg/internal/hashutil"
	"github.com/arthur-debert/drupalctl/pkg/logging"
	"github.com/arthur-debert/drupalctl/pkg/ordered"
)

// Default block labels.
const (
	DefaultBlockStart = "// Start settings processor block."
	DefaultBlockEnd   = "// End settings processor block."
)

// Labels are the marker lines delimiting a generated block.
type Labels struct {
	Start string
	End   string
}

// DefaultLabels returns the labels used when none are configured.
func DefaultLabels() Labels {
	return Labels{Start: DefaultBlockStart, End: DefaultBlockEnd}
}

// withDefaults fills empty labels with the defaults.
func (l Labels) withDefaults() Labels {
	if l.Start == "" {
		l.Start = DefaultBlockStart
	}
	if l.End == "" {
		l.End = DefaultBlockEnd
	}
	return l
}

// Block is a rendered, checksummed settings block.
type Block struct {
	lines    []string
	checksum string
}

// Lines returns the block lines, markers included with their checksum suffix.
func (b *Block) Lines() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Checksum returns the hex SHA1 carried by both markers.
func (b *Block) Checksum() string {
	return b.checksum
}

// String returns the block as it is written into a file: a blank line,
// the lines joined by newlines, and a final newline.
func (b *Block) String() string {
	return "\n" + strings.Join(b.lines, "\n") + "\n"
}

// Render builds the settings block for the groups found under key in src.
//
// The value at key maps variable names to mappings of setting names to
// values; each setting becomes `$variable['setting'] = <literal>;`.
// Groups are separated by blank lines and the checksum is computed over the
// line sequence before the markers receive their "(<checksum>)" suffix.
func Render(src *ordered.Map, key string, labels Labels) (*Block, error) {
	logger := logging.GetLogger("phpblock")
	labels = labels.withDefaults()

	raw, ok := src.Lookup(key)
	if !ok {
		return nil, errors.Newf(errors.ErrConfigMissing, "configuration key %s not found on current configuration", key).
			WithDetail("key", key)
	}
	groups, ok := raw.(*ordered.Map)
	if !ok {
		if raw != nil {
			return nil, errors.Newf(errors.ErrMalformedValue, "configuration key %s must be a mapping, got %T", key, raw).
				WithDetail("key", key)
		}
		// An explicitly empty key renders an empty block.
		groups = ordered.New()
	}

	lines := []string{labels.Start, ""}
	for _, group := range groups.Entries() {
		settings, err := groupSettings(key, group)
		if err != nil {
			return nil, err
		}
		for _, setting := range settings {
			stmt, err := Statement(group.Key, setting.Key, setting.Value)
			if err != nil {
				if e, ok := err.(*errors.Error); ok {
					e.WithDetail("key", key).WithDetail("variable", group.Key).WithDetail("setting", setting.Key)
				}
				return nil, err
			}
			lines = append(lines, stmt)
		}
		lines = append(lines, "")
	}
	lines = append(lines, labels.End)

	checksum, err := hashutil.LinesChecksum(lines)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to compute block checksum")
	}

	suffix := "(" + checksum + ")"
	lines[0] += suffix
	lines[len(lines)-1] += suffix

	logger.Debug().
		Str("key", key).
		Int("groups", groups.Len()).
		Int("lines", len(lines)).
		Str("checksum", checksum).
		Msg("Rendered settings block")

	return &Block{lines: lines, checksum: checksum}, nil
}

func groupSettings(key string, group ordered.Entry) ([]ordered.Entry, error) {
	switch v := group.Value.(type) {
	case *ordered.Map:
		return v.Entries(), nil
	case nil:
		return nil, nil
	default:
		return nil, errors.Newf(errors.ErrMalformedValue,
			"configuration group %s.%s must be a mapping of settings, got %T", key, group.Key, group.Value).
			WithDetail("key", key).
			WithDetail("variable", group.Key)
	}
}

// Statement renders a single `$variable['name'] = value;` line.
func Statement(variable, name string, value any) (string, error) {
	literal, err := Export(value)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("$%s[%s] = %s;", variable, quote(name), literal), nil
}
