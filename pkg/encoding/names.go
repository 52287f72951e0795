// Package encoding converts legacy code-page strings found in 3DS files to UTF-8.
package encoding

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// NameEncoding selects how object, material and map names are decoded.
type NameEncoding string

const (
	// Raw keeps the bytes as they are.
	Raw NameEncoding = "raw"
	// Windows1252 is the Western European ANSI code page most 3DS exporters wrote.
	Windows1252 NameEncoding = "windows-1252"
	// CP437 is the original IBM PC code page used by DOS-era 3D Studio.
	CP437 NameEncoding = "cp437"
	// Latin1 is ISO 8859-1.
	Latin1 NameEncoding = "latin1"
)

var charmaps = map[NameEncoding]encoding.Encoding{
	Windows1252: charmap.Windows1252,
	CP437:       charmap.CodePage437,
	Latin1:      charmap.ISO8859_1,
}

// ParseNameEncoding parses a configuration value. An empty string means Raw.
func ParseNameEncoding(s string) (NameEncoding, error) {
	switch e := NameEncoding(strings.ToLower(strings.TrimSpace(s))); e {
	case "", Raw:
		return Raw, nil
	case Windows1252, CP437, Latin1:
		return e, nil
	case "cp1252":
		return Windows1252, nil
	case "iso-8859-1":
		return Latin1, nil
	default:
		return Raw, fmt.Errorf("unknown name encoding %q", s)
	}
}

// Decode converts data to a UTF-8 string.
// Pure ASCII input is returned unchanged; if conversion fails the raw bytes are
// returned as a string.
func (e NameEncoding) Decode(data []byte) string {
	cm, ok := charmaps[e]
	if !ok || isASCII(data) {
		return string(data)
	}
	result, _, err := transform.Bytes(cm.NewDecoder(), data)
	if err != nil {
		return string(data)
	}
	return string(result)
}

func isASCII(data []byte) bool {
	for _, b := range data {
		if b >= 0x80 {
			return false
		}
	}
	return true
}
