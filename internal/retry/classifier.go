package retry

import (
	"errors"
	"os"
	"syscall"
)

// transientErrnos are OS errors that clear up on their own: a file held open
// by another process, a busy device, an interrupted call or a slow share.
var transientErrnos = []syscall.Errno{
	syscall.EAGAIN,
	syscall.EBUSY,
	syscall.EINTR,
	syscall.ETIMEDOUT,
}

// IOErrorClassifier implements ErrorClassifier for filesystem operations.
// Missing files, permission problems and full disks are fatal.
type IOErrorClassifier struct{}

// NewIOErrorClassifier creates a new filesystem error classifier.
func NewIOErrorClassifier() *IOErrorClassifier {
	return &IOErrorClassifier{}
}

// IsTransient determines if an error is temporary and retryable.
func (c *IOErrorClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}

	for _, errno := range transientErrnos {
		if errors.Is(err, errno) {
			return true
		}
	}

	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}

	return isPlatformTransient(err)
}
