package mining

// Stable, case-sensitive error strings delivered through ResultSink.
// These exact strings are part of the library's external contract.
const (
	errAlreadyMining = "Already mining"
	errAborted       = "Aborted"
)
