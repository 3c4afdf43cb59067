package codec

// Option configures a codec at construction time.
type Option func(*config)

type config struct {
	order    ByteOrder
	align    int
	padByte  byte
	hasOrder bool
}

func newConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithOrder sets the byte order of scalar codecs. Codecs default to NativeEndian.
func WithOrder(o ByteOrder) Option {
	return func(c *config) {
		c.order = o
		c.hasOrder = true
	}
}

// WithAlign overrides the natural alignment of a codec.
func WithAlign(n int) Option {
	return func(c *config) {
		c.align = n
	}
}

// WithPadByte sets the byte a Padding codec emits and expects.
func WithPadByte(b byte) Option {
	return func(c *config) {
		c.padByte = b
	}
}

// IOOption configures a single buffer or stream operation.
type IOOption func(*ioConfig)

type ioConfig struct {
	origin int64
	policy AlignPolicy
}

func newIOConfig(opts []IOOption) ioConfig {
	var c ioConfig
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithOrigin sets the offset treated as 0 for AlignLocal padding.
func WithOrigin(origin int64) IOOption {
	return func(c *ioConfig) {
		c.origin = origin
	}
}

// WithPolicy selects how leading padding is computed. It governs the padding
// before the outermost codec only; members of a Struct, Array or
// length-prefixed codec are always aligned relative to where that codec starts.
func WithPolicy(p AlignPolicy) IOOption {
	return func(c *ioConfig) {
		c.policy = p
	}
}
