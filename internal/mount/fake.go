package mount

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vvka-141/shadowforensic/pkg/shadowforensic"
)

// FakeMounter simulates mounting with a marker file next to mountPath.
type FakeMounter struct{}

// NewFakeMounter creates a new FakeMounter.
func NewFakeMounter() *FakeMounter {
	return &FakeMounter{}
}

// Mount writes "Mounted: <device>" to the marker file and creates an empty
// directory at mountPath.
func (m *FakeMounter) Mount(deviceObject, mountPath string) error {
	if err := ensureFree(mountPath); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(mountPath), 0o755); err != nil {
		return mountError("mount", mountPath, err)
	}
	marker := MarkerPath(mountPath)
	if err := os.WriteFile(marker, []byte("Mounted: "+deviceObject), 0o644); err != nil {
		return mountError("mount", mountPath, err)
	}
	if err := os.Mkdir(mountPath, 0o755); err != nil {
		os.Remove(marker)
		return mountError("mount", mountPath, err)
	}
	return nil
}

// Unmount removes the marker and the directory created by Mount. It reports
// false when no marker exists.
func (m *FakeMounter) Unmount(mountPath string) (bool, error) {
	err := os.Remove(MarkerPath(mountPath))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, mountError("unmount", mountPath, err)
	}
	if err := os.Remove(mountPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return true, mountError("unmount", mountPath, err)
	}
	return true, nil
}

var _ shadowforensic.Mounter = (*FakeMounter)(nil)
