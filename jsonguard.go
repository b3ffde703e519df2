// Package jsonguard validates untrusted JSON payloads without materialising
// them. It decides whether a byte stream is syntactically valid JSON
// (RFC 8259, with numbers of arbitrary precision accepted) and whether its
// shape obeys configured structural limits: nesting depth, string and key
// lengths, per-container entry counts, and duplicate object keys.
//
// The validator never recurses and never builds a document tree, so it can
// safely sit in front of a full deserializer and absorb adversarial input:
// pathological depth, pathological fan-out, oversized fields.
//
// Validation runs to completion with Validate, or cooperatively with
// ValidateWithSteps, which suspends after a bounded number of tokens and
// resumes on the next call:
//
//	v := jsonguard.FromBytes(payload,
//		jsonguard.WithMaxDepth(64),
//		jsonguard.WithDuplicateObjectEntryNames(false),
//	)
//	if err := v.Validate(); err != nil {
//		var jerr *jsonguard.Error
//		if errors.As(err, &jerr) {
//			log.Printf("rejected: %v", jerr)
//		}
//	}
//
// Errors carry the kind of failure, the position (line, column, byte offset)
// where it occurred, and for limit violations the violated threshold and the
// offending string.
package jsonguard

import "io"

// FromBytes creates a Validator over a borrowed byte slice. The slice is not
// copied and must not be modified during validation.
func FromBytes(data []byte, opts ...Option) *Validator {
	return newValidator(newSliceReader(data), applyOptions(opts...))
}

// FromString creates a Validator over the bytes of a string without copying
// them.
func FromString(s string, opts ...Option) *Validator {
	return newValidator(newStringReader(s), applyOptions(opts...))
}

// FromReader creates a Validator that pulls from r through an internal fill
// buffer (see WithBufferSize). Reads block on the underlying source; wrap r
// in a buffered reader for throughput if it is unbuffered.
func FromReader(r io.Reader, opts ...Option) *Validator {
	o := applyOptions(opts...)
	return newValidator(newStreamReader(r, o.bufferSize), o)
}
