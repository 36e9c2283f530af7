package codec

// Encoder is the common interface of the block encoders
type Encoder interface {
	// Name is the user-friendly name of this encoder
	Name() string

	// Encode will take an array of bytes and encode it using this encoder
	Encode([]byte) string

	// Decode is the reverse process of encoding
	Decode(string) ([]byte, error)

	// BlocksizeRaw returns the block size (number of bytes) this encoder takes at one time
	BlocksizeRaw() int

	// BlocksizeEncoded returns the block size (number of bytes) output by this encoder for every input block
	BlocksizeEncoded() int
}

var _ Encoder = (*Engine)(nil)
