package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Decode bool
	Encode bool
	XML    bool
}

var d *debug

func init() {
	d = &debug{}
	d.Decode = boolEnv("PRC_DEBUG_DECODE")
	d.Encode = boolEnv("PRC_DEBUG_ENCODE")
	d.XML = boolEnv("PRC_DEBUG_XML")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Decode() bool {
	return d.Decode
}
func Encode() bool {
	return d.Encode
}
func XML() bool {
	return d.XML
}

// Logf writes a formatted line to stderr.
func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
