package jsonguard

// tokenType identifies the kind of a scanned token
type tokenType int

const (
	tokenLBrace tokenType = iota
	tokenRBrace
	tokenLBracket
	tokenRBracket
	tokenComma
	tokenColon
	tokenString
	tokenNumber
	tokenTrue
	tokenFalse
	tokenNull
)

// String returns the string representation of tokenType
func (t tokenType) String() string {
	switch t {
	case tokenLBrace:
		return "{"
	case tokenRBrace:
		return "}"
	case tokenLBracket:
		return "["
	case tokenRBracket:
		return "]"
	case tokenComma:
		return ","
	case tokenColon:
		return ":"
	case tokenString:
		return "string"
	case tokenNumber:
		return "number"
	case tokenTrue:
		return "true"
	case tokenFalse:
		return "false"
	case tokenNull:
		return "null"
	default:
		return "unknown"
	}
}

// token is one structural or value token. For string tokens, str aliases the
// lexer's reusable buffer: it holds the decoded body (escapes resolved,
// surrogate pairs combined, quotes stripped) and is only valid until the next
// scan.
type token struct {
	typ tokenType
	str []byte
}

// lexer converts bytes into tokens with one-token lookahead
type lexer struct {
	reader reader

	// strBuf holds the decoded body of the most recent string token
	strBuf *buffer

	peeked    token
	hasPeeked bool
	peekedOK  bool
}

func newLexer(r reader) *lexer {
	return &lexer{
		reader: r,
		strBuf: getBuffer(),
	}
}

// position returns the reader's current position
func (l *lexer) position() Position {
	return l.reader.position()
}

// release returns the string buffer to the pool. The lexer must not be used
// afterwards.
func (l *lexer) release() {
	if l.strBuf != nil {
		putBuffer(l.strBuf)
		l.strBuf = nil
	}
}

// peek returns the next token without consuming it. A second peek without an
// intervening next yields the same token and does not move the reader.
func (l *lexer) peek() (token, bool, error) {
	if !l.hasPeeked {
		tok, ok, err := l.scan()
		if err != nil {
			return token{}, false, err
		}
		l.peeked = tok
		l.peekedOK = ok
		l.hasPeeked = true
	}
	return l.peeked, l.peekedOK, nil
}

// next consumes and returns the next token. ok is false at end of input.
func (l *lexer) next() (token, bool, error) {
	if l.hasPeeked {
		l.hasPeeked = false
		return l.peeked, l.peekedOK, nil
	}
	return l.scan()
}

func (l *lexer) scan() (token, bool, error) {
	if err := l.reader.skipWhitespace(); err != nil {
		return token{}, false, err
	}

	b, ok, err := l.reader.peek()
	if err != nil {
		return token{}, false, err
	}
	if !ok {
		return token{}, false, nil
	}

	switch b {
	case '{':
		l.discard()
		return token{typ: tokenLBrace}, true, nil
	case '}':
		l.discard()
		return token{typ: tokenRBrace}, true, nil
	case '[':
		l.discard()
		return token{typ: tokenLBracket}, true, nil
	case ']':
		l.discard()
		return token{typ: tokenRBracket}, true, nil
	case ',':
		l.discard()
		return token{typ: tokenComma}, true, nil
	case ':':
		l.discard()
		return token{typ: tokenColon}, true, nil
	case '"':
		l.discard()
		l.strBuf.reset()
		if err := l.reader.nextLikelyString(l.strBuf); err != nil {
			return token{}, false, err
		}
		return token{typ: tokenString, str: l.strBuf.bytes()}, true, nil
	case 't':
		l.discard()
		tail, err := l.reader.next3()
		if err != nil {
			return token{}, false, err
		}
		if tail != [3]byte{'r', 'u', 'e'} {
			return token{}, false, newError(ErrUnexpectedByte, l.reader.position())
		}
		return token{typ: tokenTrue}, true, nil
	case 'f':
		l.discard()
		tail, err := l.reader.next4()
		if err != nil {
			return token{}, false, err
		}
		if tail != [4]byte{'a', 'l', 's', 'e'} {
			return token{}, false, newError(ErrUnexpectedByte, l.reader.position())
		}
		return token{typ: tokenFalse}, true, nil
	case 'n':
		l.discard()
		tail, err := l.reader.next3()
		if err != nil {
			return token{}, false, err
		}
		if tail != [3]byte{'u', 'l', 'l'} {
			return token{}, false, newError(ErrUnexpectedByte, l.reader.position())
		}
		return token{typ: tokenNull}, true, nil
	default:
		if b == '-' || (b >= '0' && b <= '9') {
			l.discard()
			if err := l.reader.nextNumber(b); err != nil {
				return token{}, false, err
			}
			return token{typ: tokenNumber}, true, nil
		}
		return token{}, false, newError(ErrUnexpectedByte, l.reader.position())
	}
}

// discard consumes the byte the scan dispatch just peeked; a peeked byte is
// buffered, so this cannot fail
func (l *lexer) discard() {
	_, _, _ = l.reader.next()
}
