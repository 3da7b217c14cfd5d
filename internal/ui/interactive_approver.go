package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vvka-141/shadowforensic/pkg/shadowforensic"
)

// InteractiveApprover implements the Approver interface for console-based
// confirmation. The user must type the snapshot ID to approve a delete.
type InteractiveApprover struct {
	verbose bool
	input   io.Reader
	output  io.Writer
}

// NewInteractiveApprover creates an InteractiveApprover reading stdin.
func NewInteractiveApprover(verbose bool) shadowforensic.Approver {
	return &InteractiveApprover{verbose: verbose, input: os.Stdin, output: os.Stderr}
}

// RequestApproval prompts for the snapshot ID. Comparison ignores case and
// surrounding whitespace.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, snapshotID string) (bool, error) {
	fmt.Fprintf(a.output, "\n⚠️  WARNING: You are about to delete shadow copy %s\n", snapshotID)
	fmt.Fprintln(a.output, "This will permanently delete the snapshot and every file version it holds!")
	fmt.Fprintf(a.output, "\nTo confirm, type the snapshot ID %s and press Enter: ", snapshotID)

	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		reader := bufio.NewReader(a.input)
		input, err := reader.ReadString('\n')
		if err != nil && !(err == io.EOF && input != "") {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(input)
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errChan:
		return false, fmt.Errorf("failed to read input: %w", err)
	case input := <-inputChan:
		if input != "" && strings.EqualFold(input, snapshotID) {
			fmt.Fprintln(a.output, "✓ Confirmed. Deleting shadow copy...")
			return true, nil
		}
		fmt.Fprintf(a.output, "✗ Input '%s' does not match snapshot ID '%s'. Operation cancelled.\n", input, snapshotID)
		return false, nil
	}
}

var _ shadowforensic.Approver = (*InteractiveApprover)(nil)
