package server

import (
	"net/http"
	"strconv"

	"github.com/bokysan/b64/internal/args"
	"github.com/bokysan/b64/internal/codec"
	"github.com/bokysan/b64/internal/wrap"
	"github.com/go-chi/chi"
	"github.com/pkg/errors"
)

var errInvalidParameter = errors.New("invalid parameter")

// requestEngine resolves the engine named in the path. The query may turn it into a custom engine
// with the same parameters as the command line: alphabet, pad_char, encode_padding,
// allow_trailing_bits and padding_mode.
func requestEngine(r *http.Request) (*codec.Engine, error) {
	q := r.URL.Query()
	opts := args.EngineOptions{
		Engine:      chi.URLParam(r, "engine"),
		Alphabet:    q.Get("alphabet"),
		PadChar:     q.Get("pad_char"),
		PaddingMode: q.Get("padding_mode"),
	}

	switch v := q.Get("encode_padding"); v {
	case "", "yes", "no":
		opts.EncodePadding = v
	default:
		return nil, errors.Wrapf(errInvalidParameter, "encode_padding must be 'yes' or 'no', got %q", v)
	}

	if v := q.Get("allow_trailing_bits"); v != "" {
		allow, err := strconv.ParseBool(v)
		if err != nil {
			return nil, errors.Wrapf(errInvalidParameter, "allow_trailing_bits must be a boolean, got %q", v)
		}
		opts.AllowTrailingBits = allow
	}

	return opts.Resolve()
}

// requestWrap returns the line width and separator of the output. A width of 0 disables wrapping.
func requestWrap(r *http.Request) (int, string, error) {
	q := r.URL.Query()
	v := q.Get("width")
	if v == "" {
		return 0, "", nil
	}
	width, err := strconv.Atoi(v)
	if err != nil {
		return 0, "", errors.Wrapf(errInvalidParameter, "width must be a number, got %q", v)
	}
	if err := wrap.ValidateWidth(width); err != nil {
		return 0, "", err
	}
	sep := "\r\n"
	if _, ok := q["sep"]; ok {
		sep = q.Get("sep")
	}
	return width, sep, nil
}

// statusFor maps an error to the HTTP status code of the response
func statusFor(err error) int {
	switch {
	case errors.Is(err, codec.ErrUnknownPreset):
		return http.StatusNotFound
	case errors.Is(err, codec.ErrIO):
		return http.StatusInternalServerError
	case errors.Is(err, errInvalidParameter),
		errors.Is(err, wrap.ErrInvalidWidth),
		errors.Is(err, codec.ErrInvalidAlphabet),
		errors.Is(err, codec.ErrUnknownPaddingMode),
		errors.Is(err, codec.ErrInvalidCharacter),
		errors.Is(err, codec.ErrInvalidPadding),
		errors.Is(err, codec.ErrInvalidLength),
		errors.Is(err, codec.ErrInvalidTrailingBits):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
