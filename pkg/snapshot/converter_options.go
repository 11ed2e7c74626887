package snapshot

type Format int

const (
	// FormatRaw is the binary little-endian word array.
	FormatRaw Format = iota
	// FormatHex is the text the "snap" console command prints.
	FormatHex
)

func (f Format) String() string {
	if f == FormatHex {
		return "hex"
	}
	return "raw"
}

type Option func(c *Converter)

func WithGeometry(geo Geometry) Option {
	return func(c *Converter) {
		c.geo = geo
	}
}

func WithFormat(f Format) Option {
	return func(c *Converter) {
		c.format = f
	}
}
