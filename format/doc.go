// Package format names the file formats a param tree can be read from or
// written to: the binary param format, its XML text form, and YAML, which is
// only written.
package format
