package hashutil

import (
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
)

// LinesChecksum returns the hex SHA1 of the canonical JSON encoding of lines.
// The encoding is a JSON array of strings with HTML escaping disabled, so the
// result depends only on the line contents and their order.
func LinesChecksum(lines []string) (string, error) {
	if lines == nil {
		lines = []string{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(lines); err != nil {
		return "", err
	}

	sum := sha1.Sum(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
	return fmt.Sprintf("%x", sum), nil
}
