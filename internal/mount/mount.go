package mount

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/vvka-141/shadowforensic/pkg/shadowforensic"
)

// MarkerPath returns the marker file written by FakeMounter for mountPath.
func MarkerPath(mountPath string) string {
	return mountPath + shadowforensic.MountMarkerSuffix
}

// ensureFree fails with ErrMountOccupied when anything exists at mountPath
// or at its marker path.
func ensureFree(mountPath string) error {
	for _, p := range []string{mountPath, MarkerPath(mountPath)} {
		_, err := os.Lstat(p)
		if err == nil {
			return shadowforensic.MountError("mount", mountPath,
				fmt.Errorf("%w: %s exists", shadowforensic.ErrMountOccupied, p))
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return shadowforensic.MountError("mount", mountPath, err)
		}
	}
	return nil
}

func mountError(op, mountPath string, err error) error {
	if errors.Is(err, fs.ErrPermission) && !errors.Is(err, shadowforensic.ErrInsufficientPrivilege) {
		err = fmt.Errorf("%w: %w", shadowforensic.ErrInsufficientPrivilege, err)
	}
	return shadowforensic.MountError(op, mountPath, err)
}
