package cdr

// NewSizeCalculator returns a Codec bound to a discard buffer: driving the
// same Write*/SerializeMember calls against it measures the byte length
// they would produce without allocating for or writing that data (spec
// §6.2 "SizeCalculator", §8.1's length/size invariant). The returned
// Codec shares endianness, version and FastCDR mode with opts so that
// alignment decisions match the real encode exactly.
func NewSizeCalculator(endianness Endianness, version CdrVersion, opts ...Option) *Codec {
	return NewCodec(NewDiscardBuffer(), endianness, version, opts...)
}

// sizeCalculatorOpts mirrors the options a size calculator needs to
// reproduce this codec's alignment behavior.
func (c *Codec) sizeCalculatorOpts() []Option {
	if c.fastCDR {
		return []Option{WithFastCDR()}
	}
	return nil
}

// measure drives write against a fresh size calculator matching c's
// configuration and returns the byte length it produced.
func (c *Codec) measure(write func(*Codec) error) (int, error) {
	calc := NewSizeCalculator(c.endianness, c.version, c.sizeCalculatorOpts()...)
	if err := write(calc); err != nil {
		return 0, err
	}
	return calc.GetSerializedDataLength(), nil
}
