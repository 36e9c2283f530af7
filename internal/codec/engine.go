package codec

import (
	"fmt"
)

// CustomEngineName is the name of engines which were not resolved from a preset
const CustomEngineName = "custom"

// Engine binds an alphabet and a config into a ready-to-use codec. It holds no mutable state and
// can be used from any number of goroutines at the same time.
type Engine struct {
	name     string
	alphabet *Alphabet
	config   Config
}

// NewEngine will create a new engine. The alphabet is shared, the config is copied.
func NewEngine(alphabet *Alphabet, config Config) *Engine {
	return &Engine{
		name:     CustomEngineName,
		alphabet: alphabet,
		config:   config,
	}
}

// Named returns a copy of the engine with a different display name
func (e *Engine) Named(name string) *Engine {
	c := *e
	c.name = name
	return &c
}

// Name is the user-friendly name of this engine
func (e *Engine) Name() string {
	return e.name
}

func (e *Engine) String() string {
	return fmt.Sprintf("%v(%v, %v)", e.name, e.alphabet, e.config)
}

func (e *Engine) Alphabet() *Alphabet {
	return e.alphabet
}

func (e *Engine) Config() Config {
	return e.config
}

// BlocksizeRaw returns the number of bytes encoded at one time
func (e *Engine) BlocksizeRaw() int {
	return 3
}

// BlocksizeEncoded returns the number of symbols written for every raw block
func (e *Engine) BlocksizeEncoded() int {
	return 4
}

func (e *Engine) padsOutput() bool {
	return e.config.EncodePadding && e.alphabet.hasPad
}

// EncodedLen returns the exact length of the encoding of n bytes
func (e *Engine) EncodedLen(n int) int {
	if e.padsOutput() {
		return (n + 2) / 3 * 4
	}
	l := n / 3 * 4
	if rem := n % 3; rem > 0 {
		l += rem + 1
	}
	return l
}

// DecodedLen returns the maximum number of bytes decoded from n symbols
func (e *Engine) DecodedLen(n int) int {
	return (n + 3) / 4 * 3
}

// Encode will take an array of bytes and encode it using this engine
func (e *Engine) Encode(src []byte) string {
	return string(e.AppendEncode(make([]byte, 0, e.EncodedLen(len(src))), src))
}

// AppendEncode appends the encoding of src to dst and returns the extended buffer
func (e *Engine) AppendEncode(dst, src []byte) []byte {
	return e.appendEncode(dst, src, e.padsOutput())
}

// appendEncode encodes full 3-byte groups and then the 1 or 2 leftover bytes, if any.
func (e *Engine) appendEncode(dst, src []byte, pad bool) []byte {
	sym := &e.alphabet.symbols

	n := len(src) / 3 * 3
	for i := 0; i < n; i += 3 {
		v := uint(src[i])<<16 | uint(src[i+1])<<8 | uint(src[i+2])
		dst = append(dst, sym[v>>18&0x3F], sym[v>>12&0x3F], sym[v>>6&0x3F], sym[v&0x3F])
	}

	switch len(src) - n {
	case 1:
		v := uint(src[n]) << 16
		dst = append(dst, sym[v>>18&0x3F], sym[v>>12&0x3F])
		if pad {
			dst = append(dst, e.alphabet.pad, e.alphabet.pad)
		}
	case 2:
		v := uint(src[n])<<16 | uint(src[n+1])<<8
		dst = append(dst, sym[v>>18&0x3F], sym[v>>12&0x3F], sym[v>>6&0x3F])
		if pad {
			dst = append(dst, e.alphabet.pad)
		}
	}

	return dst
}

// Decode is the reverse of Encode
func (e *Engine) Decode(src string) ([]byte, error) {
	return e.DecodeBytes([]byte(src))
}

// DecodeBytes decodes ASCII input given as bytes
func (e *Engine) DecodeBytes(src []byte) ([]byte, error) {
	d := e.newDecoder()
	dst, err := d.write(make([]byte, 0, e.DecodedLen(len(src))), src)
	if err != nil {
		return nil, err
	}
	if dst, err = d.close(dst); err != nil {
		return nil, err
	}
	return dst, nil
}
