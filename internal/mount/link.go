package mount

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vvka-141/shadowforensic/pkg/shadowforensic"
)

// LinkMounter exposes a device object through a directory symbolic link.
type LinkMounter struct {
	link func(target, linkPath string) error
}

// NewLinkMounter returns a mounter using the platform's directory links.
func NewLinkMounter() *LinkMounter {
	return &LinkMounter{link: createDirLink}
}

// Mount links mountPath to deviceObject. Missing parent directories are
// created. Nothing is created when mountPath is occupied.
func (m *LinkMounter) Mount(deviceObject, mountPath string) error {
	if err := ensureFree(mountPath); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(mountPath), 0o755); err != nil {
		return mountError("mount", mountPath, err)
	}
	if err := m.link(linkTarget(deviceObject), mountPath); err != nil {
		return mountError("mount", mountPath, err)
	}
	return nil
}

// Unmount removes the link at mountPath. It refuses to remove anything that
// is not a symbolic link.
func (m *LinkMounter) Unmount(mountPath string) (bool, error) {
	info, err := os.Lstat(mountPath)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, mountError("unmount", mountPath, err)
	}
	if info.Mode()&fs.ModeSymlink == 0 {
		return false, shadowforensic.MountError("unmount", mountPath,
			fmt.Errorf("not a mount point: %s is not a link", mountPath))
	}
	if err := os.Remove(mountPath); err != nil {
		return false, mountError("unmount", mountPath, err)
	}
	return true, nil
}

var _ shadowforensic.Mounter = (*LinkMounter)(nil)
