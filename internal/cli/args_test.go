package cli

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/vvka-141/shadowforensic/pkg/shadowforensic"
)

func TestRequireSnapshotID(t *testing.T) {
	cmd := &cobra.Command{
		Use: "recover <snapshot_id>",
	}

	t.Run("returns error when no args", func(t *testing.T) {
		err := RequireSnapshotID(cmd, []string{})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "missing required argument: <snapshot_id>") {
			t.Errorf("expected error to contain 'missing required argument: <snapshot_id>', got: %s", err.Error())
		}
		if !strings.Contains(err.Error(), "Example:") {
			t.Errorf("expected error to contain 'Example:', got: %s", err.Error())
		}
		if code := shadowforensic.ExitCodeForError(err); code != shadowforensic.ExitUsageError {
			t.Errorf("expected usage exit code, got %d", code)
		}
	})

	t.Run("returns nil when arg provided", func(t *testing.T) {
		if err := RequireSnapshotID(cmd, []string{"{1111-2222-3333}"}); err != nil {
			t.Errorf("expected nil, got: %v", err)
		}
	})

	t.Run("returns error when too many args", func(t *testing.T) {
		err := RequireSnapshotID(cmd, []string{"a", "b"})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "accepts 1 arg") {
			t.Errorf("expected error to contain 'accepts 1 arg', got: %s", err.Error())
		}
	})
}

func TestRequireMountArgs(t *testing.T) {
	cmd := &cobra.Command{
		Use: "mount <snapshot_id> <path>",
	}

	t.Run("names the second missing argument", func(t *testing.T) {
		err := RequireMountArgs(cmd, []string{"{1111-2222-3333}"})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "missing required argument: <path>") {
			t.Errorf("expected error to name <path>, got: %s", err.Error())
		}
	})

	t.Run("accepts two args", func(t *testing.T) {
		if err := RequireMountArgs(cmd, []string{"id", "path"}); err != nil {
			t.Errorf("expected nil, got: %v", err)
		}
	})

	t.Run("rejects three args", func(t *testing.T) {
		err := RequireMountArgs(cmd, []string{"a", "b", "c"})
		if err == nil || !strings.Contains(err.Error(), "accepts 2 arg") {
			t.Errorf("expected 'accepts 2 arg' error, got: %v", err)
		}
	})
}
