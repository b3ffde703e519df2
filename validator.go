package jsonguard

import "math"

// state is one frame of the validator's explicit state stack
type state uint8

const (
	// stateRequireElement expects a JSON value
	stateRequireElement state = iota

	// stateOptionalElement expects a JSON value or the closing bracket
	stateOptionalElement

	// stateRequireObjectKey expects a string key
	stateRequireObjectKey

	// stateOptionalObjectKey expects a string key or the closing brace
	stateOptionalObjectKey

	// stateRequireColon expects a colon
	stateRequireColon

	// stateOptionalComma expects a comma or the matching closer
	stateOptionalComma

	// stateProcessingObject is the container frame of an open object
	stateProcessingObject

	// stateProcessingArray is the container frame of an open array
	stateProcessingArray
)

// Validator decides whether a byte stream is valid JSON whose shape obeys the
// configured structural limits. It is a pushdown automaton over an explicit
// state stack; nesting never recurses, so adversarial depth cannot exhaust
// the call stack.
//
// A Validator is single-use: once Validate or ValidateWithSteps reports
// completion or an error, the instance is spent.
type Validator struct {
	lexer *lexer

	// states is the state stack; the number of container frames on it always
	// equals depth
	states []state

	// entries holds, per open container, the number of values committed so
	// far
	entries []int

	// keys holds, per open object, the set of committed key names. Only
	// maintained when duplicate names are disallowed.
	keys []map[string]struct{}

	depth int

	opts options

	finished bool
	failure  *Error
}

func newValidator(r reader, opts options) *Validator {
	states := make([]state, 1, 32)
	states[0] = stateRequireElement

	return &Validator{
		lexer:   newLexer(r),
		states:  states,
		entries: make([]int, 0, 32),
		opts:    opts,
	}
}

// Validate runs the validator to completion and returns nil on acceptance or
// the first error encountered.
func (v *Validator) Validate() error {
	for {
		finished, err := v.ValidateWithSteps(math.MaxInt)
		if err != nil {
			return err
		}
		if finished {
			return nil
		}
	}
}

// ValidateWithSteps consumes up to steps tokens and reports whether the input
// was fully validated. When the budget runs out with input remaining it
// returns (false, nil); calling again resumes exactly where it suspended.
// Iterating to completion yields the same verdict and the same error as
// Validate, whatever the step bound.
//
// A steps value below 1 consumes nothing.
func (v *Validator) ValidateWithSteps(steps int) (bool, error) {
	if v.failure != nil {
		return false, v.failure
	}
	if v.finished {
		return true, nil
	}
	if steps < 1 {
		return false, nil
	}

	finished, err := v.run(steps)
	if err != nil {
		if e, ok := err.(*Error); ok {
			v.failure = e
		} else {
			v.failure = newBugError(v.lexer.position(), "Validator.run: non-positional error: "+err.Error())
		}
		v.lexer.release()
		return false, v.failure
	}
	if finished {
		v.finished = true
		v.lexer.release()
	}
	return finished, nil
}

func (v *Validator) run(steps int) (bool, error) {
	remaining := steps

	for len(v.states) > 0 {
		st := v.states[len(v.states)-1]
		v.states = v.states[:len(v.states)-1]

		tok, ok, err := v.lexer.next()
		if err != nil {
			return false, err
		}
		if !ok {
			return false, newError(ErrInvalidJSON, v.lexer.position())
		}

		if err := v.dispatch(st, tok); err != nil {
			return false, err
		}

		remaining--
		if remaining == 0 {
			break
		}
	}

	// Four cases remain: the stack drained and the input is exhausted
	// (accept); the stack drained with input left (trailing data); the input
	// ran out with frames still open (invalid); or the step budget ran out
	// mid-document (suspend).
	_, hasMore, err := v.lexer.peek()
	if err != nil {
		return false, err
	}

	if len(v.states) > 0 || v.depth != 0 {
		if hasMore {
			if remaining != 0 {
				return false, newBugError(v.lexer.position(), "Validator.run: remaining steps should be 0")
			}
			return false, nil
		}
		return false, newError(ErrInvalidJSON, v.lexer.position())
	}

	if hasMore {
		return false, newError(ErrTrailingData, v.lexer.position())
	}
	return true, nil
}

// dispatch applies one token to the automaton. st has already been popped off
// the state stack.
func (v *Validator) dispatch(st state, tok token) error {
	switch tok.typ {
	case tokenLBrace:
		if st != stateRequireElement && st != stateOptionalElement {
			return newError(ErrInvalidJSON, v.lexer.position())
		}
		v.states = append(v.states, stateProcessingObject, stateOptionalObjectKey)
		return v.openObject()

	case tokenRBrace:
		switch st {
		case stateOptionalComma, stateOptionalObjectKey:
			if !v.popContainer(stateProcessingObject) {
				return newError(ErrInvalidJSON, v.lexer.position())
			}
			entries, err := v.closeObject()
			if err != nil {
				return err
			}
			if st == stateOptionalObjectKey && entries != 0 {
				return newError(ErrInvalidJSON, v.lexer.position())
			}
		case stateProcessingObject:
			// Empty-object shortcut: the frame itself is on top.
			entries, err := v.closeObject()
			if err != nil {
				return err
			}
			if entries != 0 {
				return newError(ErrInvalidJSON, v.lexer.position())
			}
		default:
			return newError(ErrInvalidJSON, v.lexer.position())
		}
		v.resumeContainer()
		return nil

	case tokenLBracket:
		if st != stateRequireElement && st != stateOptionalElement {
			return newError(ErrInvalidJSON, v.lexer.position())
		}
		v.states = append(v.states, stateProcessingArray, stateOptionalElement)
		return v.openArray()

	case tokenRBracket:
		switch st {
		case stateOptionalComma, stateOptionalElement:
			if !v.popContainer(stateProcessingArray) {
				return newError(ErrInvalidJSON, v.lexer.position())
			}
			entries, err := v.closeArray()
			if err != nil {
				return err
			}
			if st == stateOptionalElement && entries != 0 {
				return newError(ErrInvalidJSON, v.lexer.position())
			}
		case stateProcessingArray:
			// Empty-array shortcut, symmetric to the object case.
			entries, err := v.closeArray()
			if err != nil {
				return err
			}
			if entries != 0 {
				return newError(ErrInvalidJSON, v.lexer.position())
			}
		default:
			return newError(ErrInvalidJSON, v.lexer.position())
		}
		v.resumeContainer()
		return nil

	case tokenColon:
		if st != stateRequireColon {
			return newError(ErrInvalidJSON, v.lexer.position())
		}
		v.states = append(v.states, stateRequireElement)
		return nil

	case tokenComma:
		if st != stateOptionalComma {
			return newError(ErrInvalidJSON, v.lexer.position())
		}
		switch v.top() {
		case stateProcessingObject:
			v.states = append(v.states, stateRequireObjectKey)
		case stateProcessingArray:
			v.states = append(v.states, stateRequireElement)
		default:
			return newError(ErrInvalidJSON, v.lexer.position())
		}
		return nil

	case tokenString:
		switch st {
		case stateRequireObjectKey, stateOptionalObjectKey:
			if err := v.commitKey(tok.str); err != nil {
				return err
			}
			v.states = append(v.states, stateRequireColon)
			return nil
		case stateRequireElement, stateOptionalElement:
			if len(tok.str) > v.opts.maxStringLength {
				return newStringLimitError(ErrMaxStringLengthExceeded, v.lexer.position(), v.opts.maxStringLength, string(tok.str))
			}
			return v.commitValue()
		default:
			return newError(ErrInvalidJSON, v.lexer.position())
		}

	case tokenNumber, tokenTrue, tokenFalse, tokenNull:
		if st != stateRequireElement && st != stateOptionalElement {
			return newError(ErrInvalidJSON, v.lexer.position())
		}
		return v.commitValue()

	default:
		return newBugError(v.lexer.position(), "Validator.dispatch: unknown token type")
	}
}

// top returns the top of the state stack without popping, or ^state(0) when
// the stack is empty
func (v *Validator) top() state {
	if len(v.states) == 0 {
		return ^state(0)
	}
	return v.states[len(v.states)-1]
}

// popContainer pops the state stack and reports whether the popped frame is
// the wanted container kind
func (v *Validator) popContainer(want state) bool {
	if len(v.states) == 0 {
		return false
	}
	got := v.states[len(v.states)-1]
	v.states = v.states[:len(v.states)-1]
	return got == want
}

// resumeContainer pushes OptionalComma when a container frame remains on top
// after a close, so the enclosing container awaits a separator or its own
// closer.
func (v *Validator) resumeContainer() {
	switch v.top() {
	case stateProcessingObject, stateProcessingArray:
		v.states = append(v.states, stateOptionalComma)
	}
}

// openObject opens an object frame: key set (when duplicate rejection is on),
// entry counter, depth.
func (v *Validator) openObject() error {
	if !v.opts.allowDuplicateObjectEntryNames {
		v.keys = append(v.keys, make(map[string]struct{}, 8))
	}
	v.entries = append(v.entries, 0)
	return v.incDepth()
}

// openArray opens an array frame
func (v *Validator) openArray() error {
	v.entries = append(v.entries, 0)
	return v.incDepth()
}

// closeObject pops the object frame and returns its entry count
func (v *Validator) closeObject() (int, error) {
	if !v.opts.allowDuplicateObjectEntryNames {
		if len(v.keys) == 0 {
			return 0, newError(ErrInvalidJSON, v.lexer.position())
		}
		v.keys = v.keys[:len(v.keys)-1]
	}
	return v.closeFrame()
}

// closeArray pops the array frame and returns its entry count
func (v *Validator) closeArray() (int, error) {
	return v.closeFrame()
}

func (v *Validator) closeFrame() (int, error) {
	if len(v.entries) == 0 {
		return 0, newError(ErrInvalidJSON, v.lexer.position())
	}
	entries := v.entries[len(v.entries)-1]
	v.entries = v.entries[:len(v.entries)-1]

	if v.depth == 0 {
		return 0, newError(ErrInvalidJSON, v.lexer.position())
	}
	v.depth--
	return entries, nil
}

func (v *Validator) incDepth() error {
	v.depth++
	if v.depth > v.opts.maxDepth {
		return newLimitError(ErrMaxDepthExceeded, v.lexer.position(), v.opts.maxDepth)
	}
	return nil
}

// commitKey commits an object key: name-length check, then duplicate check
func (v *Validator) commitKey(key []byte) error {
	if len(key) > v.opts.maxObjectEntryNameLength {
		return newStringLimitError(ErrMaxObjectEntryNameLengthExceeded, v.lexer.position(), v.opts.maxObjectEntryNameLength, string(key))
	}

	if !v.opts.allowDuplicateObjectEntryNames {
		if len(v.keys) == 0 {
			return newError(ErrInvalidJSON, v.lexer.position())
		}
		set := v.keys[len(v.keys)-1]
		name := string(key)
		if _, exists := set[name]; exists {
			return &Error{Type: ErrDuplicateObjectEntryName, Position: v.lexer.position(), Token: name}
		}
		set[name] = struct{}{}
	}
	return nil
}

// commitValue commits a value to the container frame below the popped state,
// if any, and pushes OptionalComma. A top-level value has no container to
// commit to.
func (v *Validator) commitValue() error {
	switch v.top() {
	case stateProcessingObject:
		if err := v.addEntry(v.opts.maxObjectEntries, ErrMaxObjectEntriesExceeded); err != nil {
			return err
		}
		v.states = append(v.states, stateOptionalComma)
	case stateProcessingArray:
		if err := v.addEntry(v.opts.maxArrayEntries, ErrMaxArrayEntriesExceeded); err != nil {
			return err
		}
		v.states = append(v.states, stateOptionalComma)
	}
	return nil
}

func (v *Validator) addEntry(limit int, errType ErrorType) error {
	if len(v.entries) == 0 {
		return newError(ErrInvalidJSON, v.lexer.position())
	}
	v.entries[len(v.entries)-1]++
	if v.entries[len(v.entries)-1] > limit {
		return newLimitError(errType, v.lexer.position(), limit)
	}
	return nil
}
