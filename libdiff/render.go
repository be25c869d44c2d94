package libdiff

import (
	"io"

	"github.com/goccy/go-yaml"
)

// Render writes changes to w as a YAML sequence.
func Render(changes []Change, w io.Writer) error {
	if changes == nil {
		changes = []Change{}
	}
	d, err := yaml.Marshal(changes)
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}
