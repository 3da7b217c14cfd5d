package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/shadowforensic/internal/files/filesystem"
	"github.com/vvka-141/shadowforensic/pkg/shadowforensic"
)

func newTestScanner() (*Scanner, *filesystem.MemoryFileSystem) {
	mfs := filesystem.NewMemoryFileSystem("/snap")
	return NewScannerWithFS(mfs), mfs
}

func relPaths(candidates []shadowforensic.CandidateFile) []string {
	paths := make([]string, 0, len(candidates))
	for _, c := range candidates {
		paths = append(paths, c.RelativePath)
	}
	sort.Strings(paths)
	return paths
}

func TestNewScannerWithFS_NilProvider(t *testing.T) {
	assert.Panics(t, func() { NewScannerWithFS(nil) })
}

func TestScan_Scenario(t *testing.T) {
	s, mfs := newTestScanner()
	mfs.AddFile("a.txt", "hello")
	mfs.AddFile("b.log", "log line")
	mfs.AddFile("sub/c.txt", "nested")

	opts := shadowforensic.DefaultRecoveryOptions()
	opts.Filters = []string{"*.txt"}

	result, err := s.Scan("/snap", opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.txt", "sub/c.txt"}, relPaths(result.Candidates))
	assert.Equal(t, 1, result.Excluded)
	assert.Equal(t, 2, result.Found)
	assert.Empty(t, result.Skipped)
	assert.Equal(t, "/snap", result.Root)
}

func TestScan_CandidateFields(t *testing.T) {
	s, mfs := newTestScanner()
	mfs.AddFile("docs/report.docx", "0123456789")

	result, err := s.Scan("/snap", shadowforensic.DefaultRecoveryOptions())
	require.NoError(t, err)
	require.Len(t, result.Candidates, 1)

	c := result.Candidates[0]
	assert.Equal(t, "/snap/docs/report.docx", c.SourcePath)
	assert.Equal(t, "docs/report.docx", c.RelativePath)
	assert.Equal(t, int64(10), c.Size)
}

func TestScan_EmptyTree(t *testing.T) {
	s, _ := newTestScanner()

	result, err := s.Scan("/snap", shadowforensic.DefaultRecoveryOptions())
	require.NoError(t, err)
	assert.Empty(t, result.Candidates)
	assert.Zero(t, result.Excluded)
}

func TestScan_EmptyFilterMatchesEverything(t *testing.T) {
	s, mfs := newTestScanner()
	mfs.AddFile("a.txt", "a")
	mfs.AddFile("b.log", "b")
	mfs.AddFile("noext", "c")

	withStar, err := s.Scan("/snap", shadowforensic.RecoveryOptions{Filters: []string{"*"}})
	require.NoError(t, err)
	empty, err := s.Scan("/snap", shadowforensic.RecoveryOptions{Filters: nil})
	require.NoError(t, err)

	assert.Equal(t, relPaths(withStar.Candidates), relPaths(empty.Candidates))
	assert.Len(t, empty.Candidates, 3)
}

func TestScan_SizeBoundsInclusive(t *testing.T) {
	s, mfs := newTestScanner()
	mfs.AddFile("small.bin", "1234")
	mfs.AddFile("exact_lo.bin", "12345")
	mfs.AddFile("exact_hi.bin", "1234567890")
	mfs.AddFile("large.bin", "12345678901")
	mfs.AddFile("empty.bin", "")

	tests := []struct {
		name string
		min  int64
		max  int64
		want []string
	}{
		{"unbounded", 0, 0, []string{"empty.bin", "exact_hi.bin", "exact_lo.bin", "large.bin", "small.bin"}},
		{"closed range", 5, 10, []string{"exact_hi.bin", "exact_lo.bin"}},
		{"min only", 10, 0, []string{"exact_hi.bin", "large.bin"}},
		{"max only", 0, 4, []string{"empty.bin", "small.bin"}},
		{"single size", 5, 5, []string{"exact_lo.bin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.Scan("/snap", shadowforensic.RecoveryOptions{MinSize: tt.min, MaxSize: tt.max})
			require.NoError(t, err)
			assert.Equal(t, tt.want, relPaths(result.Candidates))
			assert.Equal(t, 5-len(tt.want), result.Excluded)
		})
	}
}

func TestScan_GlobMatchesWholeName(t *testing.T) {
	s, mfs := newTestScanner()
	mfs.AddFile("report.docx", "x")
	mfs.AddFile("report.docx.bak", "x")

	result, err := s.Scan("/snap", shadowforensic.RecoveryOptions{Filters: []string{"*.docx"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"report.docx"}, relPaths(result.Candidates))
	assert.Equal(t, 1, result.Excluded)
}

func TestScan_MultipleFiltersMatchAny(t *testing.T) {
	s, mfs := newTestScanner()
	mfs.AddFile("a.txt", "x")
	mfs.AddFile("b.pdf", "x")
	mfs.AddFile("c.jpg", "x")

	result, err := s.Scan("/snap", shadowforensic.RecoveryOptions{Filters: []string{"*.txt", "*.pdf"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.pdf"}, relPaths(result.Candidates))
}

func TestScan_DirectoriesNeverMatch(t *testing.T) {
	s, mfs := newTestScanner()
	mfs.AddFile("photos.jpg/readme", "x")

	result, err := s.Scan("/snap", shadowforensic.RecoveryOptions{Filters: []string{"*.jpg"}})
	require.NoError(t, err)
	assert.Empty(t, result.Candidates)
	assert.Equal(t, 1, result.Excluded)
}

func TestScan_InvalidPattern(t *testing.T) {
	s, mfs := newTestScanner()
	mfs.AddFile("a.txt", "x")

	_, err := s.Scan("/snap", shadowforensic.RecoveryOptions{Filters: []string{"[a-"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, shadowforensic.ErrInvalidPattern)
}

func TestScan_StatFailureIsSkipped(t *testing.T) {
	s, mfs := newTestScanner()
	mfs.AddFile("a.txt", "x")
	mfs.AddFile("gone.txt", "x")
	mfs.AddFile("locked.txt", "x")
	mfs.FailStat("gone.txt", fs.ErrNotExist)
	mfs.FailStat("locked.txt", fs.ErrPermission)

	result, err := s.Scan("/snap", shadowforensic.DefaultRecoveryOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"a.txt"}, relPaths(result.Candidates))
	assert.Equal(t, []shadowforensic.Skip{
		{Path: "gone.txt", Reason: string(shadowforensic.ReasonNotFound)},
		{Path: "locked.txt", Reason: string(shadowforensic.ReasonPermissionDenied)},
	}, result.Skipped)
}

func TestScan_FilteredOutFileIsNotStatted(t *testing.T) {
	s, mfs := newTestScanner()
	mfs.AddFile("b.log", "x")
	mfs.FailStat("b.log", fs.ErrNotExist)

	result, err := s.Scan("/snap", shadowforensic.RecoveryOptions{Filters: []string{"*.txt"}})
	require.NoError(t, err)
	assert.Empty(t, result.Skipped)
	assert.Equal(t, 1, result.Excluded)
}

func TestScan_MissingRoot(t *testing.T) {
	s, _ := newTestScanner()

	_, err := s.Scan("/nowhere", shadowforensic.DefaultRecoveryOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, shadowforensic.ErrSourceUnreadable)
	assert.Equal(t, shadowforensic.ReasonNotFound, shadowforensic.ClassifyReason(err))
}

func TestWalk_EmitsInWalkOrder(t *testing.T) {
	s, mfs := newTestScanner()
	mfs.AddFile("b.txt", "x")
	mfs.AddFile("a.txt", "x")
	mfs.AddFile("c/d.txt", "x")

	matcher, err := NewMatcher(nil)
	require.NoError(t, err)

	var seen []string
	summary, err := s.Walk("/snap", matcher, SizeRange{}, func(c shadowforensic.CandidateFile) {
		seen = append(seen, c.RelativePath)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt", "c/d.txt"}, seen)
	assert.Equal(t, 3, summary.Found)
}

func TestResolveRoot(t *testing.T) {
	s, mfs := newTestScanner()
	mfs.AddFile("a.txt", "x")

	root, err := s.ResolveRoot("/snap")
	require.NoError(t, err)
	assert.Equal(t, "/snap", root)

	_, err = s.ResolveRoot("/snap/a.txt")
	assert.ErrorIs(t, err, shadowforensic.ErrSourceUnreadable)
}

func TestScan_OSFilesystemSkipsSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require elevated privileges on Windows")
	}

	dir := t.TempDir()
	outside := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "real.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(outside, "secret.txt"), []byte("x"), 0644))
	require.NoError(t, os.Symlink(filepath.Join(outside, "secret.txt"), filepath.Join(dir, "link.txt")))
	require.NoError(t, os.Symlink(outside, filepath.Join(dir, "linkdir")))

	result, err := NewScanner().Scan(dir, shadowforensic.DefaultRecoveryOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"real.txt"}, relPaths(result.Candidates))
}

func TestScan_OSUnreadableSubdirectoryIsSkipped(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}

	dir := t.TempDir()
	locked := filepath.Join(dir, "locked")
	require.NoError(t, os.Mkdir(locked, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(locked, "hidden.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "open.txt"), []byte("x"), 0644))
	require.NoError(t, os.Chmod(locked, 0))
	t.Cleanup(func() { os.Chmod(locked, 0755) })

	result, err := NewScanner().Scan(dir, shadowforensic.DefaultRecoveryOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"open.txt"}, relPaths(result.Candidates))
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "locked", result.Skipped[0].Path)
	assert.Equal(t, string(shadowforensic.ReasonPermissionDenied), result.Skipped[0].Reason)
}

