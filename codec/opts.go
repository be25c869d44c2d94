package codec

type decodeOpts struct {
	maxDepth int
	lenient  bool
}

type DecodeOption func(*decodeOpts)

// WithMaxDepth limits how deeply containers may nest. Values below 1 restore
// the default.
func WithMaxDepth(n int) DecodeOption {
	return func(o *decodeOpts) {
		if n < 1 {
			n = DefaultMaxDepth
		}
		o.maxDepth = n
	}
}

// Lenient accepts hash pools in any order and with duplicates, and struct
// tables in any order.
func Lenient(v bool) DecodeOption {
	return func(o *decodeOpts) { o.lenient = v }
}

func applyDecodeOpts(opts []DecodeOption) *decodeOpts {
	res := &decodeOpts{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(res)
	}
	return res
}
