package format

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

type Format int

const (
	BinaryFormat Format = iota
	XMLFormat
	YAMLFormat
)

var ErrBadFormat = errors.New("bad format")

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"b":      BinaryFormat,
		"bin":    BinaryFormat,
		"binary": BinaryFormat,
		"prc":    BinaryFormat,
		"x":      XMLFormat,
		"xml":    XMLFormat,
		"y":      YAMLFormat,
		"yaml":   YAMLFormat,
	}[v]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case BinaryFormat:
		return []byte("binary"), nil
	case XMLFormat:
		return []byte("xml"), nil
	case YAMLFormat:
		return []byte("yaml"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsBinary() bool { return f == BinaryFormat }
func (f Format) IsXML() bool    { return f == XMLFormat }
func (f Format) IsYAML() bool   { return f == YAMLFormat }

// Suffix returns the file extension for this format (including the dot).
func (f Format) Suffix() string {
	switch f {
	case BinaryFormat:
		return ".prc"
	case XMLFormat:
		return ".xml"
	case YAMLFormat:
		return ".yaml"
	default:
		return ""
	}
}

// AllFormats returns all supported formats in preference order.
func AllFormats() []Format {
	return []Format{BinaryFormat, XMLFormat, YAMLFormat}
}

// binaryMagic starts every binary param file.
const binaryMagic = "paracobn"

// FromSuffix returns the format named by the extension of name.
func FromSuffix(name string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".prc", ".stprm", ".stdat", ".bin":
		return BinaryFormat, true
	case ".xml":
		return XMLFormat, true
	case ".yaml", ".yml":
		return YAMLFormat, true
	}
	return 0, false
}

// Detect guesses the format of data: the binary magic wins, then a leading
// '<', then the suffix of name.
func Detect(name string, data []byte) (Format, error) {
	if bytes.HasPrefix(data, []byte(binaryMagic)) {
		return BinaryFormat, nil
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	if bytes.HasPrefix(trimmed, []byte("<")) {
		return XMLFormat, nil
	}
	if f, ok := FromSuffix(name); ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: cannot detect format of %q", ErrBadFormat, name)
}
