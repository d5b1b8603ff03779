package format

import "errors"

// Common errors returned by adapters and the registry.
//
// These can be checked with errors.Is() for proper handling:
//
//	if errors.Is(err, format.ErrMalformed) {
//	    // skip this file, record a warning, continue with other pairs
//	}
var (
	// ErrMalformed is returned when a source file lacks required
	// structural markers (e.g. a frontmatter block) or fails to parse.
	// Affects only the file in question; other pairs continue.
	ErrMalformed = errors.New("malformed content")

	// ErrUnknownFormat is returned by Resolve when no adapter is
	// registered under the requested name.
	ErrUnknownFormat = errors.New("unknown format")

	// ErrAmbiguousFormat is returned by Detect when more than one
	// registered adapter claims the path.
	ErrAmbiguousFormat = errors.New("ambiguous format")

	// ErrNoFormatDetected is returned by Detect when no registered
	// adapter claims the path.
	ErrNoFormatDetected = errors.New("no format detected")

	// ErrUnsupportedKind is returned when an adapter does not implement
	// the requested record kind.
	ErrUnsupportedKind = errors.New("record kind not supported by format")
)

// IsSkippable returns true if the error affects a single file and the
// sync run should record a warning and continue with other pairs.
func IsSkippable(err error) bool {
	return errors.Is(err, ErrMalformed)
}

// IsPairFatal returns true if the error makes the whole directory pair
// unsyncable (registry-level resolution failures, unsupported kinds).
func IsPairFatal(err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, ErrUnknownFormat),
		errors.Is(err, ErrAmbiguousFormat),
		errors.Is(err, ErrNoFormatDetected),
		errors.Is(err, ErrUnsupportedKind):
		return true
	}
	return false
}
