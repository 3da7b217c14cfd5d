package recovery

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/vvka-141/shadowforensic/internal/files/filesystem"
	"github.com/vvka-141/shadowforensic/internal/retry"
	"github.com/vvka-141/shadowforensic/pkg/shadowforensic"
)

const (
	dirPerm         os.FileMode = 0o755
	defaultFilePerm os.FileMode = 0o644
)

// copier copies single files from a snapshot view onto the local disk.
type copier struct {
	source   filesystem.FileSystemProvider
	executor *retry.Executor
	preserve bool
	logger   shadowforensic.Logger
}

// copy copies candidate to dst and reports the outcome. Transient errors are
// retried; the returned outcome is never a Skipped one.
func (c *copier) copy(candidate shadowforensic.CandidateFile, dst string) shadowforensic.Outcome {
	start := time.Now()

	var written int64
	err := c.executor.Execute(context.Background(), func(context.Context) error {
		n, err := c.copyOnce(candidate.SourcePath, dst)
		written = n
		return err
	})
	if err != nil {
		return shadowforensic.Outcome{
			Status:  shadowforensic.StatusFailed,
			Path:    candidate.RelativePath,
			Reason:  shadowforensic.ClassifyReason(err),
			Err:     err,
			Elapsed: time.Since(start),
		}
	}

	if c.preserve {
		if err := c.applyMetadata(candidate.SourcePath, dst); err != nil {
			c.logger.Verbose("Could not preserve metadata of %s: %v", candidate.RelativePath, err)
		}
	}

	return shadowforensic.Outcome{
		Status:  shadowforensic.StatusRecovered,
		Path:    candidate.RelativePath,
		Bytes:   written,
		Elapsed: time.Since(start),
	}
}

// copyOnce streams src into a temporary sibling of dst and renames it into
// place. The temporary file is removed on every error path.
func (c *copier) copyOnce(src, dst string) (int64, error) {
	in, err := c.source.OpenFile(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return 0, err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dst)+".*"+shadowforensic.PartialFileSuffix)
	if err != nil {
		return 0, err
	}
	tmpPath := tmp.Name()

	n, err := io.Copy(tmp, in)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil && !c.preserve {
		err = os.Chmod(tmpPath, defaultFilePerm)
	}
	if err == nil {
		err = os.Rename(tmpPath, dst)
	}
	if err != nil {
		os.Remove(tmpPath)
		return 0, err
	}

	return n, nil
}

// applyMetadata copies permission bits and modification time from src.
func (c *copier) applyMetadata(src, dst string) error {
	info, err := c.source.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
