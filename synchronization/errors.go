package synchronization

import "github.com/cockroachdb/errors"

// ErrAlreadySubmitted is wrapped by the error returned from any Wrapper method called after
// QueueSubmit. A Wrapper covers exactly one submission.
var ErrAlreadySubmitted = errors.New("synchronization wrapper has already been submitted")

// ErrNotSupported is wrapped by the error returned from Capabilities.CheckSupport when the device
// cannot run a test in the requested mode
var ErrNotSupported = errors.New("synchronization feature not supported")

// IsMisuse reports whether err was produced because the calling test used a Wrapper incorrectly:
// use after submit, a missing handle, or a flag that the selected synchronization Type cannot express.
// These errors indicate a bug in the test rather than a condition of the device.
func IsMisuse(err error) bool {
	return errors.IsAssertionFailure(err)
}

func alreadySubmitted() error {
	return errors.WithAssertionFailure(ErrAlreadySubmitted)
}
