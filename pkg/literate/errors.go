package literate

import "errors"

var (
	// ErrDuplicateRoot is returned by [Session.DefineRoot] when two
	// definitions target the same output artifact. Root targets must be
	// unique across the whole document.
	ErrDuplicateRoot = errors.New("duplicate root chunk")

	// ErrUnknownTitle is returned by [ResolveTitle] when an abbreviated
	// title matches no known chunk title.
	ErrUnknownTitle = errors.New("unknown chunk title")

	// ErrAmbiguousTitle is returned by [ResolveTitle] when an abbreviated
	// title matches more than one known chunk title. Abbreviations must
	// be unique prefixes.
	ErrAmbiguousTitle = errors.New("ambiguous chunk title")

	// ErrUndefinedReference is returned during tangle when a reference
	// names a chunk that was never defined. Detection is lazy: only
	// references reachable from a tangled root are checked.
	ErrUndefinedReference = errors.New("reference to undefined chunk")

	// ErrRecursiveReference is returned during tangle when a chunk title
	// appears twice on the active expansion path. Reaching the same chunk
	// via two non-overlapping branches is legal and not reported.
	ErrRecursiveReference = errors.New("recursive chunk reference")

	// ErrMalformedElement is returned during tangle when a chunk element
	// of unrecognized kind is encountered. This indicates registry
	// corruption and should never occur in practice.
	ErrMalformedElement = errors.New("malformed chunk element")
)
