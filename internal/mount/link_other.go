//go:build !windows

package mount

import "os"

func linkTarget(deviceObject string) string { return deviceObject }

func createDirLink(target, linkPath string) error {
	return os.Symlink(target, linkPath)
}
