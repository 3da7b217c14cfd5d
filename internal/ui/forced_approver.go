package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vvka-141/shadowforensic/pkg/shadowforensic"
)

// ForcedApprover implements the Approver interface for delete --force.
// It prints a warning, counts down and then approves unless the context
// is cancelled first.
type ForcedApprover struct {
	verbose   bool
	countdown time.Duration
	output    io.Writer
	sleepFn   func(time.Duration)
}

// NewForcedApprover creates a new ForcedApprover writing to stderr.
func NewForcedApprover(verbose bool) shadowforensic.Approver {
	return &ForcedApprover{
		verbose:   verbose,
		countdown: shadowforensic.DefaultDeleteCountdown,
		output:    os.Stderr,
		sleepFn:   time.Sleep,
	}
}

// RequestApproval displays a countdown and approves once it reaches zero.
func (a *ForcedApprover) RequestApproval(ctx context.Context, snapshotID string) (bool, error) {
	countdown := a.countdown
	if countdown <= 0 {
		countdown = shadowforensic.DefaultDeleteCountdown
	}

	fmt.Fprintln(a.output)
	fmt.Fprintf(a.output, "DANGER: shadow copy %s will be deleted permanently.\n", snapshotID)
	fmt.Fprintln(a.output, "Files that exist only in this snapshot cannot be recovered afterwards.")
	fmt.Fprintln(a.output)

	for i := int(countdown.Seconds()); i > 0; i-- {
		if err := ctx.Err(); err != nil {
			fmt.Fprintln(a.output)
			return false, err
		}
		fmt.Fprintf(a.output, "\rDeleting in: %d seconds... (Press Ctrl+C to cancel)", i)
		a.sleepFn(time.Second)
	}
	if err := ctx.Err(); err != nil {
		fmt.Fprintln(a.output)
		return false, err
	}

	fmt.Fprintf(a.output, "\r✓ Proceeding with snapshot deletion...                              \n")
	return true, nil
}

var _ shadowforensic.Approver = (*ForcedApprover)(nil)
