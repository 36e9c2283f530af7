package codec

// decoder turns symbols back into bytes one group of four at a time. Input can be fed in pieces of
// any size: an incomplete group is carried over to the next write. Errors which depend on where
// the input ends (length, missing padding, trailing bits of a short group) are reported by close.
type decoder struct {
	table        *[256]byte
	pad          byte
	hasPad       bool
	mode         PaddingMode
	allowTrailer bool

	offset int64 // absolute offset of the next input byte
	group  [4]byte
	n      int // data symbols in the current group
	pads   int // pad characters in the current group
	done   bool

	lastOffset int64
	lastByte   byte
	padOffset  int64
}

func (e *Engine) newDecoder() *decoder {
	return &decoder{
		table:        &e.alphabet.decode,
		pad:          e.alphabet.pad,
		hasPad:       e.alphabet.hasPad,
		mode:         e.config.DecodePaddingMode,
		allowTrailer: e.config.DecodeAllowTrailingBits,
	}
}

// write decodes src and appends the result to dst. On error, dst holds whatever was decoded before
// the failing symbol and the decoder must not be used any more.
func (d *decoder) write(dst, src []byte) ([]byte, error) {
	t := d.table

	for i := 0; i < len(src); {
		if d.n == 0 && d.pads == 0 && !d.done {
			for len(src)-i >= 4 {
				a, b, c, e := t[src[i]], t[src[i+1]], t[src[i+2]], t[src[i+3]]
				if (a|b|c|e)&0xC0 != 0 {
					break
				}
				v := uint(a)<<18 | uint(b)<<12 | uint(c)<<6 | uint(e)
				dst = append(dst, byte(v>>16), byte(v>>8), byte(v))
				d.lastOffset, d.lastByte = d.offset+3, src[i+3]
				d.offset += 4
				i += 4
			}
			if i >= len(src) {
				break
			}
		}

		ch := src[i]
		pos := d.offset
		i++
		d.offset++

		if v := t[ch]; v != invalidIndex {
			if d.done || d.pads > 0 {
				return dst, newDecodeError(ErrInvalidPadding, pos, ch)
			}
			d.group[d.n] = v
			d.n++
			d.lastOffset, d.lastByte = pos, ch
			if d.n == 4 {
				v := uint(d.group[0])<<18 | uint(d.group[1])<<12 | uint(d.group[2])<<6 | uint(d.group[3])
				dst = append(dst, byte(v>>16), byte(v>>8), byte(v))
				d.n = 0
			}
			continue
		}

		if !d.hasPad || ch != d.pad {
			return dst, newDecodeError(ErrInvalidCharacter, pos, ch)
		}

		switch {
		case d.mode == PaddingNone:
			return dst, newDecodeError(ErrInvalidPadding, pos, ch)
		case d.done || d.n == 0:
			return dst, newDecodeError(ErrInvalidPadding, pos, ch)
		case d.n == 1:
			return dst, newDecodeError(ErrInvalidLength, d.lastOffset, d.lastByte)
		}

		if d.pads == 0 {
			d.padOffset = pos
		}
		d.pads++
		if d.n+d.pads == 4 {
			var err error
			if dst, err = d.flushPartial(dst); err != nil {
				return dst, err
			}
			d.done = true
		}
	}

	return dst, nil
}

// close checks the end of the input and appends the bytes of a final short group.
func (d *decoder) close(dst []byte) ([]byte, error) {
	if d.done || (d.n == 0 && d.pads == 0) {
		return dst, nil
	}

	if d.n == 1 {
		return dst, newDecodeError(ErrInvalidLength, d.lastOffset, d.lastByte)
	}

	if d.hasPad && d.mode == PaddingCanonical {
		// The group is short and, if padded at all, not padded to a full group.
		if d.pads > 0 {
			return dst, newDecodeError(ErrInvalidPadding, d.padOffset, d.pad)
		}
		err := newDecodeError(ErrInvalidPadding, d.offset, 0)
		err.AtEOF = true
		return dst, err
	}

	return d.flushPartial(dst)
}

// flushPartial emits the 1 or 2 bytes of a group with 2 or 3 data symbols.
func (d *decoder) flushPartial(dst []byte) ([]byte, error) {
	g := d.group
	if !d.allowTrailer {
		if (d.n == 2 && g[1]&0x0F != 0) || (d.n == 3 && g[2]&0x03 != 0) {
			return dst, newDecodeError(ErrInvalidTrailingBits, d.lastOffset, d.lastByte)
		}
	}

	v := uint(g[0])<<18 | uint(g[1])<<12 | uint(g[2])<<6
	if d.n == 2 {
		dst = append(dst, byte(v>>16))
	} else {
		dst = append(dst, byte(v>>16), byte(v>>8))
	}
	d.n = 0
	d.pads = 0
	return dst, nil
}
