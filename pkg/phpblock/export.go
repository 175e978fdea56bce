package phpblock

import (
	"math"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/arthur-debert/drupalctl/pkg/errors"
	"github.com/arthur-debert/drupalctl/pkg/ordered"
)

// phpIntKey matches strings PHP turns into integer array keys.
var phpIntKey = regexp.MustCompile(`^(0|-?[1-9][0-9]*)$`)

// Export encodes v as a single-line PHP literal, following var_export but
// compacted: arrays are written as array(k => v, k => v) without newlines.
func Export(v any) (string, error) {
	var b strings.Builder
	if err := export(&b, v); err != nil {
		return "", err
	}
	return b.String(), nil
}

func export(b *strings.Builder, v any) error {
	switch t := v.(type) {
	case nil:
		b.WriteString("NULL")
	case bool:
		if t {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case string:
		b.WriteString(quote(t))
	case int:
		b.WriteString(strconv.FormatInt(int64(t), 10))
	case int8:
		b.WriteString(strconv.FormatInt(int64(t), 10))
	case int16:
		b.WriteString(strconv.FormatInt(int64(t), 10))
	case int32:
		b.WriteString(strconv.FormatInt(int64(t), 10))
	case int64:
		b.WriteString(strconv.FormatInt(t, 10))
	case uint:
		b.WriteString(strconv.FormatUint(uint64(t), 10))
	case uint8:
		b.WriteString(strconv.FormatUint(uint64(t), 10))
	case uint16:
		b.WriteString(strconv.FormatUint(uint64(t), 10))
	case uint32:
		b.WriteString(strconv.FormatUint(uint64(t), 10))
	case uint64:
		if t > math.MaxInt64 {
			// PHP integers are signed 64 bit; larger values become floats.
			b.WriteString(formatFloat(float64(t)))
		} else {
			b.WriteString(strconv.FormatUint(t, 10))
		}
	case float32:
		b.WriteString(formatFloat(float64(t)))
	case float64:
		b.WriteString(formatFloat(t))
	case *ordered.Map:
		if t == nil {
			b.WriteString("NULL")
			return nil
		}
		entries := t.Entries()
		b.WriteString("array(")
		for i, e := range entries {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(exportKey(e.Key))
			b.WriteString(" => ")
			if err := export(b, e.Value); err != nil {
				return err
			}
		}
		b.WriteString(")")
	case []any:
		return exportList(b, len(t), func(i int) any { return t[i] })
	case []string:
		return exportList(b, len(t), func(i int) any { return t[i] })
	case map[string]any:
		// Go maps carry no order; sort keys so the output stays deterministic.
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := ordered.New()
		for _, k := range keys {
			m.Set(k, t[k])
		}
		return export(b, m)
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			return exportList(b, rv.Len(), func(i int) any { return rv.Index(i).Interface() })
		}
		return errors.Newf(errors.ErrMalformedValue, "cannot export value of type %T as PHP", v).
			WithDetail("type", reflect.TypeOf(v).String())
	}
	return nil
}

func exportList(b *strings.Builder, n int, at func(int) any) error {
	b.WriteString("array(")
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(i))
		b.WriteString(" => ")
		if err := export(b, at(i)); err != nil {
			return err
		}
	}
	b.WriteString(")")
	return nil
}

func exportKey(k string) string {
	if phpIntKey.MatchString(k) {
		if _, err := strconv.ParseInt(k, 10, 64); err == nil {
			return k
		}
	}
	return quote(k)
}

// quote returns s as a single-quoted PHP string literal. Line breaks are
// concatenated as double-quoted escapes so a rendered value never spans
// lines and cannot fake a block marker.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	s = strings.ReplaceAll(s, "\x00", `' . "\0" . '`)
	s = strings.ReplaceAll(s, "\r", `' . "\r" . '`)
	s = strings.ReplaceAll(s, "\n", `' . "\n" . '`)
	return "'" + s + "'"
}

// formatFloat mirrors var_export with serialize_precision -1: the shortest
// round-tripping digits, exponent notation outside 1e-4..1e17, and always
// a decimal point or exponent so the literal stays a float in PHP.
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	case math.IsNaN(f):
		return "NAN"
	}

	sign := ""
	if math.Signbit(f) {
		sign = "-"
		f = -f
	}

	// d.ddddde±XX
	sci := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, expPart, _ := strings.Cut(sci, "e")
	exp, _ := strconv.Atoi(expPart)
	digits := strings.Replace(mantissa, ".", "", 1)
	decpt := exp + 1

	if decpt < -3 || decpt > 17 {
		frac := digits[1:]
		if frac == "" {
			frac = "0"
		}
		expSign := "+"
		if exp < 0 {
			expSign = "-"
			exp = -exp
		}
		return sign + digits[:1] + "." + frac + "E" + expSign + strconv.Itoa(exp)
	}

	var out string
	switch {
	case decpt <= 0:
		out = "0." + strings.Repeat("0", -decpt) + digits
	case decpt >= len(digits):
		out = digits + strings.Repeat("0", decpt-len(digits)) + ".0"
	default:
		out = digits[:decpt] + "." + digits[decpt:]
	}
	return sign + out
}
