package ui

// CobraOutWriter routes cobra's standard output through the configured
// writer and drops it in quiet mode. The writer is looked up on every
// write so it follows later Configure calls.
type CobraOutWriter struct{}

func (CobraOutWriter) Write(p []byte) (n int, err error) {
	if IsQuiet() {
		return len(p), nil
	}
	return Writer().Write(p)
}

// CobraErrWriter routes cobra's error output through the configured error
// writer. Errors are never suppressed.
type CobraErrWriter struct{}

func (CobraErrWriter) Write(p []byte) (n int, err error) {
	return ErrWriter().Write(p)
}
