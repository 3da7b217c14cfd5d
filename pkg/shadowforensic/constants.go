package shadowforensic

import "time"

// Exit codes. Every failure of the error taxonomy surfaces as ExitGeneralError.
const (
	ExitSuccess      = 0 // Command completed successfully
	ExitGeneralError = 1 // Snapshot, mount or recovery failure, or anything unclassified
	ExitUsageError   = 2 // CLI usage error (missing args, invalid flags)
	ExitPanic        = 3 // Internal panic (unexpected crash)
)

const (
	// DefaultFilter matches every file name.
	DefaultFilter = "*"

	// DefaultOutputDir is where recover writes files when no output is given.
	DefaultOutputDir = "./recovered"

	// MountMarkerSuffix is appended to a mount path by the fake mounter.
	MountMarkerSuffix = ".mock"

	// PartialFileSuffix marks a copy that has not been renamed into place yet.
	PartialFileSuffix = ".sfpartial"

	// DefaultDeleteCountdown is how long a forced delete waits before proceeding.
	DefaultDeleteCountdown = 3 * time.Second

	// DefaultRetryInitialDelay is the first backoff delay for transient copy errors.
	DefaultRetryInitialDelay = 50 * time.Millisecond

	// DefaultRetryMaxDelay caps the backoff delay for transient copy errors.
	DefaultRetryMaxDelay = 2 * time.Second

	// DefaultRetryMaxAttempts is the number of retries after the first attempt.
	DefaultRetryMaxAttempts = 3
)
