package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/vvka-141/shadowforensic/internal/files/filesystem"
	"github.com/vvka-141/shadowforensic/pkg/shadowforensic"
)

// Scanner enumerates recovery candidates below a scan root.
// Scanner is safe for concurrent use by multiple goroutines as long as
// the provided fsProvider is also thread-safe.
type Scanner struct {
	fsProvider filesystem.FileSystemProvider
}

// NewScanner creates a scanner over the OS filesystem.
func NewScanner() *Scanner {
	return &Scanner{fsProvider: filesystem.NewOSFileSystem()}
}

// NewScannerWithFS creates a scanner with a custom filesystem provider.
// This is primarily useful for testing with in-memory filesystems.
// Panics if fsProvider is nil.
func NewScannerWithFS(fsProvider filesystem.FileSystemProvider) *Scanner {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{fsProvider: fsProvider}
}

// Filesystem returns the provider the scanner reads from.
func (s *Scanner) Filesystem() filesystem.FileSystemProvider {
	return s.fsProvider
}

// Summary describes everything a walk saw apart from the emitted candidates.
type Summary struct {
	// Root is the scan root with symlinks resolved.
	Root string

	// Found is the number of candidates passed to the callback.
	Found int

	// Excluded counts regular files rejected by the name or size filter.
	Excluded int

	// Skipped lists files that could not be inspected.
	Skipped []shadowforensic.Skip
}

// Result is a fully materialised scan.
type Result struct {
	Summary
	Candidates []shadowforensic.CandidateFile
}

// ResolveRoot checks that root is a readable directory and returns its
// absolute, symlink-resolved path.
func (s *Scanner) ResolveRoot(root string) (string, error) {
	dir, err := s.fsProvider.Open(root)
	if err != nil {
		return "", fmt.Errorf("%w: %w", shadowforensic.ErrSourceUnreadable, err)
	}
	return dir.Path(), nil
}

// Scan enumerates root and returns every candidate that passes opts.
func (s *Scanner) Scan(root string, opts shadowforensic.RecoveryOptions) (Result, error) {
	matcher, err := NewMatcher(opts.Patterns())
	if err != nil {
		return Result{}, err
	}

	var candidates []shadowforensic.CandidateFile
	summary, err := s.Walk(root, matcher, SizeRange{Min: opts.MinSize, Max: opts.MaxSize},
		func(c shadowforensic.CandidateFile) {
			candidates = append(candidates, c)
		})
	if err != nil {
		return Result{}, err
	}

	return Result{Summary: summary, Candidates: candidates}, nil
}

// Walk enumerates root and calls emit once for every regular file whose
// name matches matcher and whose current size lies in sizes. emit is called
// synchronously from the walking goroutine, in walk order.
//
// Walk fails only when root cannot be opened or listed. Files that vanish or
// cannot be inspected are recorded in Summary.Skipped; unreadable
// subdirectories likewise.
func (s *Scanner) Walk(root string, matcher *Matcher, sizes SizeRange, emit func(shadowforensic.CandidateFile)) (Summary, error) {
	dir, err := s.fsProvider.Open(root)
	if err != nil {
		return Summary{}, fmt.Errorf("%w: %w", shadowforensic.ErrSourceUnreadable, err)
	}

	summary := Summary{Root: dir.Path()}
	seen := make(map[string]struct{})

	err = dir.Walk(func(file filesystem.File, walkErr error) error {
		if walkErr != nil {
			var pathErr *fs.PathError
			if errors.As(walkErr, &pathErr) && pathErr.Path != dir.Path() {
				summary.Skipped = append(summary.Skipped, shadowforensic.Skip{
					Path:   relativeTo(dir.Path(), pathErr.Path),
					Reason: string(shadowforensic.ClassifyReason(walkErr)),
				})
				return nil
			}
			return fmt.Errorf("%w: %w", shadowforensic.ErrSourceUnreadable, walkErr)
		}

		// Lstat semantics: links are seen as links and never followed.
		if !file.Info().Mode().IsRegular() {
			return nil
		}

		if _, dup := seen[file.Path()]; dup {
			return nil
		}
		seen[file.Path()] = struct{}{}

		rel := filepath.ToSlash(file.RelativePath())

		if !matcher.Match(file.Info().Name()) {
			summary.Excluded++
			return nil
		}

		info, err := s.fsProvider.Stat(file.Path())
		if err != nil {
			summary.Skipped = append(summary.Skipped, shadowforensic.Skip{
				Path:   rel,
				Reason: string(shadowforensic.ClassifyReason(err)),
			})
			return nil
		}
		if !info.Mode().IsRegular() {
			summary.Skipped = append(summary.Skipped, shadowforensic.Skip{
				Path:   rel,
				Reason: "no longer a regular file",
			})
			return nil
		}

		if !sizes.Contains(info.Size()) {
			summary.Excluded++
			return nil
		}

		summary.Found++
		emit(shadowforensic.CandidateFile{
			SourcePath:   file.Path(),
			RelativePath: rel,
			Size:         info.Size(),
		})
		return nil
	})
	if err != nil {
		return summary, err
	}

	return summary, nil
}

func relativeTo(root, p string) string {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(rel)
}
