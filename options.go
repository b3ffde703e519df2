package jsonguard

import "math"

// NoLimit disables a structural limit. All limits default to NoLimit.
const NoLimit = math.MaxInt

// defaultBufferSize is the fill-buffer size used by FromReader
const defaultBufferSize = 1024

// options holds internal configuration (unexported)
type options struct {
	maxDepth                 int
	maxStringLength          int
	maxArrayEntries          int
	maxObjectEntries         int
	maxObjectEntryNameLength int

	allowDuplicateObjectEntryNames bool

	bufferSize int
}

// defaultOptions returns the default configuration: no structural limits,
// duplicate keys allowed
func defaultOptions() options {
	return options{
		maxDepth:                 NoLimit,
		maxStringLength:          NoLimit,
		maxArrayEntries:          NoLimit,
		maxObjectEntries:         NoLimit,
		maxObjectEntryNameLength: NoLimit,

		allowDuplicateObjectEntryNames: true,

		bufferSize: defaultBufferSize,
	}
}

// Option is a function that modifies options
type Option func(*options)

// WithMaxDepth sets the maximum nesting of containers
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth >= 0 {
			o.maxDepth = depth
		}
	}
}

// WithMaxStringLength sets the maximum decoded byte length of any JSON string
// value
func WithMaxStringLength(length int) Option {
	return func(o *options) {
		if length >= 0 {
			o.maxStringLength = length
		}
	}
}

// WithMaxArrayEntries sets the maximum element count per array
func WithMaxArrayEntries(entries int) Option {
	return func(o *options) {
		if entries >= 0 {
			o.maxArrayEntries = entries
		}
	}
}

// WithMaxObjectEntries sets the maximum key-value pair count per object
func WithMaxObjectEntries(entries int) Option {
	return func(o *options) {
		if entries >= 0 {
			o.maxObjectEntries = entries
		}
	}
}

// WithMaxObjectEntryNameLength sets the maximum decoded byte length of any
// object key
func WithMaxObjectEntryNameLength(length int) Option {
	return func(o *options) {
		if length >= 0 {
			o.maxObjectEntryNameLength = length
		}
	}
}

// WithDuplicateObjectEntryNames controls whether an object may repeat a key.
// Duplicates are allowed by default.
//
// Rejecting duplicates keeps a set of seen key names per open object. With no
// object-entry or name-length limit configured, adversarial input can grow
// these sets without bound.
func WithDuplicateObjectEntryNames(allow bool) Option {
	return func(o *options) {
		o.allowDuplicateObjectEntryNames = allow
	}
}

// WithBufferSize sets the fill-buffer size of the reader created by
// FromReader. It has no effect on FromBytes and FromString.
func WithBufferSize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.bufferSize = size
		}
	}
}

// applyOptions applies the given options to the default configuration
func applyOptions(opts ...Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
