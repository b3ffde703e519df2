package jsonguard

// reader is the byte cursor the lexer pulls from. Besides the single-byte
// primitives it exposes the domain scans (whitespace, number shape, string
// body) so that concrete readers can implement them as tight loops over
// contiguous memory. Position semantics are identical across implementations.
//
// peek and next report end-of-input via ok=false, never as an error; only
// genuine I/O failures surface as errors.
type reader interface {
	position() Position
	peek() (b byte, ok bool, err error)
	next() (b byte, ok bool, err error)

	// next3 and next4 consume the fixed-size tails of the literal tokens
	// ("rue", "ull", "alse"). End of input is an error here.
	next3() ([3]byte, error)
	next4() ([4]byte, error)

	skipWhitespace() error

	// nextNumber verifies the shape of a JSON number whose first byte
	// (a minus sign or a digit) has already been consumed. It produces no
	// value and accepts numbers of arbitrary precision.
	nextNumber(first byte) error

	// nextLikelyString reads a string body up to and including the closing
	// quote, appending the decoded content to buf. The opening quote has
	// already been consumed.
	nextLikelyString(buf *buffer) error
}

// The scan* functions below are the generic implementations of the domain
// scans, built purely on peek/next. The stream reader uses them; the slice
// reader overrides them with concrete loops.

func scanWhitespace(r reader) error {
	for {
		b, ok, err := r.peek()
		if err != nil {
			return err
		}
		if !ok || !isWhitespace[b] {
			return nil
		}
		if _, _, err := r.next(); err != nil {
			return err
		}
	}
}

func scanNext3(r reader) ([3]byte, error) {
	var buf [3]byte
	for i := range buf {
		b, ok, err := r.next()
		if err != nil {
			return buf, err
		}
		if !ok {
			return buf, newError(ErrUnexpectedEndOfInput, r.position())
		}
		buf[i] = b
	}
	return buf, nil
}

func scanNext4(r reader) ([4]byte, error) {
	var buf [4]byte
	for i := range buf {
		b, ok, err := r.next()
		if err != nil {
			return buf, err
		}
		if !ok {
			return buf, newError(ErrUnexpectedEndOfInput, r.position())
		}
		buf[i] = b
	}
	return buf, nil
}

// scanNumber verifies a JSON number after its first byte has been consumed.
//
// Grammar: -? (0 | [1-9][0-9]*) (. [0-9]+)? ([eE] [+-]? [0-9]+)?
func scanNumber(r reader, first byte) error {
	firstDigit := first
	if first == '-' {
		b, ok, err := r.peek()
		if err != nil {
			return err
		}
		if !ok || b < '0' || b > '9' {
			return newError(ErrNoNumberCharactersAfterMinusSign, r.position())
		}
		if _, _, err := r.next(); err != nil {
			return err
		}
		firstDigit = b
	}

	b, ok, err := r.peek()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if firstDigit == '0' && b >= '0' && b <= '9' {
		return newError(ErrLeadingZerosInNumber, r.position())
	}

	for {
		b, ok, err := r.peek()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		switch {
		case b >= '0' && b <= '9':
			if _, _, err := r.next(); err != nil {
				return err
			}
		case b == '.':
			return scanFraction(r)
		case b == 'e' || b == 'E':
			return scanExponent(r)
		default:
			return nil
		}
	}
}

func scanFraction(r reader) error {
	if _, _, err := r.next(); err != nil { // consume '.'
		return err
	}

	b, ok, err := r.peek()
	if err != nil {
		return err
	}
	if !ok {
		return newError(ErrUnexpectedEndOfInput, r.position())
	}
	if b < '0' || b > '9' {
		return newError(ErrNoNumberCharactersAfterFraction, r.position())
	}
	if _, _, err := r.next(); err != nil {
		return err
	}

	for {
		b, ok, err := r.peek()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		switch {
		case b >= '0' && b <= '9':
			if _, _, err := r.next(); err != nil {
				return err
			}
		case b == 'e' || b == 'E':
			return scanExponent(r)
		default:
			return nil
		}
	}
}

func scanExponent(r reader) error {
	if _, _, err := r.next(); err != nil { // consume 'e' or 'E'
		return err
	}

	b, ok, err := r.peek()
	if err != nil {
		return err
	}
	if !ok {
		return newError(ErrUnexpectedEndOfInput, r.position())
	}
	if b == '+' || b == '-' {
		if _, _, err := r.next(); err != nil {
			return err
		}
		b, ok, err = r.peek()
		if err != nil {
			return err
		}
		if !ok {
			return newError(ErrUnexpectedEndOfInput, r.position())
		}
	}
	if b < '0' || b > '9' {
		return newError(ErrNoNumberCharactersAfterExponent, r.position())
	}
	if _, _, err := r.next(); err != nil {
		return err
	}

	for {
		b, ok, err := r.peek()
		if err != nil {
			return err
		}
		if !ok || b < '0' || b > '9' {
			return nil
		}
		if _, _, err := r.next(); err != nil {
			return err
		}
	}
}

// scanString reads a string body after the opening quote has been consumed,
// appending the decoded content to buf.
func scanString(r reader, buf *buffer) error {
	for {
		b, ok, err := r.next()
		if err != nil {
			return err
		}
		if !ok {
			return newError(ErrUnclosedString, r.position())
		}

		if !needEscape[b] {
			buf.writeByte(b)
			continue
		}

		switch b {
		case '"':
			return nil
		case '\\':
			if err := scanEscape(r, buf); err != nil {
				return err
			}
		default:
			return newError(ErrControlCharacterInString, r.position())
		}
	}
}

// scanEscape decodes one escape sequence after the backslash has been
// consumed.
func scanEscape(r reader, buf *buffer) error {
	b, ok, err := r.next()
	if err != nil {
		return err
	}
	if !ok {
		return newError(ErrUnexpectedEndOfInput, r.position())
	}

	switch b {
	case '"':
		buf.writeByte('"')
		return nil
	case '\\':
		buf.writeByte('\\')
		return nil
	case '/':
		buf.writeByte('/')
		return nil
	case 'b':
		buf.writeByte(0x08)
		return nil
	case 'f':
		buf.writeByte(0x0C)
		return nil
	case 'n':
		buf.writeByte(0x0A)
		return nil
	case 'r':
		buf.writeByte(0x0D)
		return nil
	case 't':
		buf.writeByte(0x09)
		return nil
	case 'u':
		return scanUnicodeEscape(r, buf)
	default:
		return newError(ErrInvalidEscapeSequence, r.position())
	}
}

// scanUnicodeEscape decodes a \uXXXX sequence after the 'u' has been
// consumed, combining surrogate pairs into their supplementary-plane
// codepoint.
func scanUnicodeEscape(r reader, buf *buffer) error {
	hex, err := scanNext4Hex(r)
	if err != nil {
		return err
	}

	v := decodeHexSequence(hex)
	switch {
	case isLowSurrogate(v):
		return newError(ErrInvalidEscapeSequence, r.position())
	case isHighSurrogate(v):
		b, ok, err := r.next()
		if err != nil {
			return err
		}
		if !ok || b != '\\' {
			return newError(ErrInvalidEscapeSequence, r.position())
		}
		b, ok, err = r.next()
		if err != nil {
			return err
		}
		if !ok || b != 'u' {
			return newError(ErrInvalidEscapeSequence, r.position())
		}
		lowHex, err := scanNext4Hex(r)
		if err != nil {
			return err
		}
		low := decodeHexSequence(lowHex)
		if !isLowSurrogate(low) {
			return newError(ErrInvalidEscapeSequence, r.position())
		}
		appendRune(buf, combineSurrogates(v, low))
		return nil
	default:
		appendRune(buf, rune(v))
		return nil
	}
}

func scanNext4Hex(r reader) ([4]byte, error) {
	var buf [4]byte
	for i := range buf {
		b, ok, err := r.next()
		if err != nil {
			return buf, err
		}
		if !ok {
			return buf, newError(ErrUnexpectedEndOfInput, r.position())
		}
		if !isHex[b] {
			return buf, newError(ErrNonHexCharacterInUnicodeEscape, r.position())
		}
		buf[i] = b
	}
	return buf, nil
}
