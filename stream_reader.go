package jsonguard

import "io"

// streamReader reads from an io.Reader through an internal fill buffer. The
// domain scans fall back to the generic byte-at-a-time implementations, which
// transparently span numbers, hex runs, surrogate pairs and long strings
// across buffer refills.
type streamReader struct {
	reader io.Reader
	buf    []byte
	pos    int
	size   int
	eof    bool

	line   int
	column int
	offset int
}

func newStreamReader(r io.Reader, bufferSize int) *streamReader {
	return &streamReader{
		reader: r,
		buf:    make([]byte, bufferSize),
		line:   1,
	}
}

func (r *streamReader) position() Position {
	return Position{Line: r.line, Column: r.column, Offset: r.offset}
}

// fillBuffer reads more data from the underlying reader
func (r *streamReader) fillBuffer() error {
	if r.eof {
		return nil
	}

	// Only called once the buffer is exhausted, so refill from the start.
	r.pos = 0
	r.size = 0

	n, err := r.reader.Read(r.buf)
	r.size = n

	switch {
	case err == io.EOF:
		r.eof = true
		return nil
	case err != nil:
		return newIOError(err, r.position())
	case n == 0:
		// A conforming Reader may return 0 bytes with a nil error; try again
		// on the next call rather than treating it as end of input.
		return nil
	}
	return nil
}

func (r *streamReader) peek() (byte, bool, error) {
	for r.pos >= r.size {
		if r.eof {
			return 0, false, nil
		}
		if err := r.fillBuffer(); err != nil {
			return 0, false, err
		}
	}
	return r.buf[r.pos], true, nil
}

func (r *streamReader) next() (byte, bool, error) {
	b, ok, err := r.peek()
	if err != nil || !ok {
		return 0, false, err
	}

	r.pos++
	r.offset++
	if b == '\n' {
		r.line++
		r.column = 0
	} else {
		r.column++
	}
	return b, true, nil
}

func (r *streamReader) next3() ([3]byte, error) {
	return scanNext3(r)
}

func (r *streamReader) next4() ([4]byte, error) {
	return scanNext4(r)
}

func (r *streamReader) skipWhitespace() error {
	return scanWhitespace(r)
}

func (r *streamReader) nextNumber(first byte) error {
	return scanNumber(r, first)
}

func (r *streamReader) nextLikelyString(buf *buffer) error {
	return scanString(r, buf)
}
