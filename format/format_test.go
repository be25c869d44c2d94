package format

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	for _, f := range AllFormats() {
		got, err := ParseFormat(f.String())
		if err != nil || got != f {
			t.Errorf("ParseFormat(%q) = %v, %v", f, got, err)
		}
	}
	if _, err := ParseFormat("json"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("ParseFormat(json) error = %v", err)
	}
	var f Format
	if err := f.UnmarshalText([]byte("x")); err != nil || f != XMLFormat {
		t.Errorf("UnmarshalText(x) = %v, %v", f, err)
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Format
	}{
		{"fighter_param.prc", "paracobn\x00\x00", BinaryFormat},
		{"renamed.xml", "paracobn", BinaryFormat},
		{"noext", "\n  <?xml version=\"1.0\"?><struct/>", XMLFormat},
		{"data.XML", "", XMLFormat},
		{"out.yml", "a: 1", YAMLFormat},
		{"stage.stprm", "", BinaryFormat},
	}
	for _, test := range tests {
		got, err := Detect(test.name, []byte(test.data))
		if err != nil {
			t.Errorf("Detect(%q): %v", test.name, err)
			continue
		}
		if got != test.want {
			t.Errorf("Detect(%q) = %s, want %s", test.name, got, test.want)
		}
	}
	if _, err := Detect("readme", []byte("hello")); !errors.Is(err, ErrBadFormat) {
		t.Errorf("Detect(readme) error = %v", err)
	}
}
