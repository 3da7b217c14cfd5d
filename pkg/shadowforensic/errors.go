package shadowforensic

import (
	"errors"
	"io/fs"
	"strings"
	"syscall"
)

// Kind tags an error with the subsystem that produced it.
type Kind int

const (
	// KindSnapshotService covers enumeration, creation and deletion failures
	// against the platform snapshot service.
	KindSnapshotService Kind = iota + 1

	// KindMount covers mount and unmount failures.
	KindMount

	// KindRecovery covers whole-run recovery failures (unreadable source root,
	// overlapping roots, invalid filters). Per-file failures never use it.
	KindRecovery
)

func (k Kind) String() string {
	switch k {
	case KindSnapshotService:
		return "snapshot service error"
	case KindMount:
		return "mount error"
	case KindRecovery:
		return "recovery error"
	default:
		return "error"
	}
}

// Reason classifies the underlying OS failure so callers can tell
// permission problems from a full disk or a missing file.
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonPermissionDenied Reason = "permission denied"
	ReasonDiskFull         Reason = "disk full"
	ReasonNotFound         Reason = "not found"
	ReasonPathTooLong      Reason = "path too long"
	ReasonExists           Reason = "already exists"
	ReasonOther            Reason = "other"
)

// Sentinel errors. Kind sentinels match any *Error of that kind:
//
//	if errors.Is(err, shadowforensic.ErrMount) {
//	    // any mount or unmount failure
//	}
//
// Detail sentinels are wrapped inside an *Error and matched through Unwrap.
var (
	// ErrSnapshotService matches every error of KindSnapshotService.
	ErrSnapshotService = errors.New("snapshot service error")

	// ErrMount matches every error of KindMount.
	ErrMount = errors.New("mount error")

	// ErrRecovery matches every error of KindRecovery.
	ErrRecovery = errors.New("recovery error")

	// ErrSnapshotNotFound indicates the requested snapshot ID is not in the catalog.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrMountOccupied indicates the mount path already exists.
	ErrMountOccupied = errors.New("mount path is occupied")

	// ErrInsufficientPrivilege indicates the host refused a privileged operation.
	ErrInsufficientPrivilege = errors.New("insufficient privilege")

	// ErrUnsupportedPlatform indicates the native backend is unavailable on this host.
	ErrUnsupportedPlatform = errors.New("native snapshot service is not available on this platform")

	// ErrSourceUnreadable indicates the recovery source root is missing or unreadable.
	ErrSourceUnreadable = errors.New("source root is not readable")

	// ErrRootsOverlap indicates source and destination roots contain one another.
	ErrRootsOverlap = errors.New("source and destination roots overlap")

	// ErrInvalidPattern indicates a malformed glob in the recovery filters.
	ErrInvalidPattern = errors.New("invalid filter pattern")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrApprovalDenied indicates the user declined a destructive operation.
	ErrApprovalDenied = errors.New("approval denied")
)

// Error is the structured error returned by every subsystem.
type Error struct {
	Kind   Kind
	Op     string // operation, e.g. "list", "mount", "unmount", "run"
	Path   string // path or identifier involved, may be empty
	Reason Reason // classified OS cause, may be empty
	Err    error  // underlying error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Op != "" {
		b.WriteString(": ")
		b.WriteString(e.Op)
	}
	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the kind sentinel of this error.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrSnapshotService:
		return e.Kind == KindSnapshotService
	case ErrMount:
		return e.Kind == KindMount
	case ErrRecovery:
		return e.Kind == KindRecovery
	}
	return false
}

// SnapshotServiceError wraps err as a KindSnapshotService error.
func SnapshotServiceError(op, id string, err error) *Error {
	return &Error{Kind: KindSnapshotService, Op: op, Path: id, Reason: ClassifyReason(err), Err: err}
}

// MountError wraps err as a KindMount error.
func MountError(op, path string, err error) *Error {
	return &Error{Kind: KindMount, Op: op, Path: path, Reason: ClassifyReason(err), Err: err}
}

// RecoveryError wraps err as a KindRecovery error.
func RecoveryError(op, path string, err error) *Error {
	return &Error{Kind: KindRecovery, Op: op, Path: path, Reason: ClassifyReason(err), Err: err}
}

// ClassifyReason maps an OS error onto a Reason. Returns ReasonNone for nil.
func ClassifyReason(err error) Reason {
	switch {
	case err == nil:
		return ReasonNone
	case errors.Is(err, fs.ErrPermission), errors.Is(err, ErrInsufficientPrivilege):
		return ReasonPermissionDenied
	case errors.Is(err, syscall.ENOSPC):
		return ReasonDiskFull
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, ErrSnapshotNotFound):
		return ReasonNotFound
	case errors.Is(err, syscall.ENAMETOOLONG):
		return ReasonPathTooLong
	case errors.Is(err, fs.ErrExist), errors.Is(err, ErrMountOccupied):
		return ReasonExists
	default:
		return ReasonOther
	}
}

// ExitCodeForError returns the process exit code for an error.
// Every error of the taxonomy maps to ExitGeneralError; cobra argument and
// flag errors map to ExitUsageError.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var sfErr *Error
	if errors.As(err, &sfErr) {
		return ExitGeneralError
	}

	if isUsageError(err) {
		return ExitUsageError
	}

	return ExitGeneralError
}

func isUsageError(err error) bool {
	msg := err.Error()
	for _, prefix := range []string{
		"unknown flag",
		"unknown shorthand flag",
		"unknown command",
		"accepts ",
		"requires at least",
		"required flag",
		"invalid argument",
		"flag needs an argument",
		"missing required argument",
	} {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}
	return false
}
