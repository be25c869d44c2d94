package hash40

import (
	"errors"
	"strings"
	"testing"
)

func TestLabelOf(t *testing.T) {
	labels := NewLabels()
	h := labels.AddString("walk_speed_max")

	got, ok := LabelOf(h, labels)
	if !ok || got != "walk_speed_max" {
		t.Errorf("LabelOf = %q, %v", got, ok)
	}
	if _, ok := LabelOf(Of("unknown"), labels); ok {
		t.Errorf("LabelOf found a label for an unknown hash")
	}
	if _, ok := LabelOf(h, nil); ok {
		t.Errorf("LabelOf found a label in a nil dictionary")
	}
}

func TestLabelsPrecedence(t *testing.T) {
	labels := NewLabels()
	labels.Add("first", 0x10)
	labels.Add("second", 0x10)

	got, _ := labels.Label(0x10)
	if got != "first" {
		t.Errorf("Label = %q, want first", got)
	}
	if h, ok := labels.Hash("second"); !ok || h != 0x10 {
		t.Errorf("Hash(second) = %s, %v", h, ok)
	}
	if labels.Len() != 2 {
		t.Errorf("Len = %d", labels.Len())
	}
}

func TestResolve(t *testing.T) {
	labels := NewLabels()
	labels.Add("custom", 0x1234)

	tests := []struct {
		name string
		want Hash40
	}{
		{"0x0000001234", 0x1234},
		{"custom", 0x1234},
		{"head", Of("head")},
	}
	for _, tt := range tests {
		got, err := Resolve(tt.name, labels)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("Resolve(%q) = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestReadLabels(t *testing.T) {
	in := `# smash labels
head
0x0000001234,custom
0x1a2b, short

  hip
`
	labels, err := ReadLabels(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if labels.Len() != 4 {
		t.Fatalf("Len = %d, want 4", labels.Len())
	}
	if s, _ := labels.Label(Of("head")); s != "head" {
		t.Errorf("head -> %q", s)
	}
	if s, _ := labels.Label(0x1234); s != "custom" {
		t.Errorf("0x1234 -> %q", s)
	}
	if s, _ := labels.Label(0x1a2b); s != "short" {
		t.Errorf("0x1a2b -> %q", s)
	}
	if s, _ := labels.Label(Of("hip")); s != "hip" {
		t.Errorf("hip -> %q", s)
	}
}

func TestReadLabelsErrors(t *testing.T) {
	for _, in := range []string{
		"0x0000001234,",
		"0x,empty",
		"1234,noprefix",
		"0xzz,nothex",
		"0x10000000000,toowide",
	} {
		_, err := ReadLabels(strings.NewReader(in))
		if !errors.Is(err, ErrLabels) {
			t.Errorf("ReadLabels(%q) error = %v, want ErrLabels", in, err)
		}
	}
}
