//go:build windows

package mount

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/vvka-141/shadowforensic/pkg/shadowforensic"
)

// linkTarget appends the trailing separator mklink needs for GLOBALROOT
// device paths to resolve as directories.
func linkTarget(deviceObject string) string {
	if !strings.HasSuffix(deviceObject, `\`) {
		deviceObject += `\`
	}
	return deviceObject
}

// createDirLink runs mklink /D, which understands \\?\GLOBALROOT device paths.
func createDirLink(target, linkPath string) error {
	out, err := exec.Command("cmd", "/C", "mklink", "/D", linkPath, target).CombinedOutput()
	if err == nil {
		return nil
	}
	msg := strings.TrimSpace(string(out))
	if strings.Contains(strings.ToLower(msg), "privilege") {
		return fmt.Errorf("%w: %s", shadowforensic.ErrInsufficientPrivilege, msg)
	}
	if msg != "" {
		return fmt.Errorf("mklink: %w: %s", err, msg)
	}
	return fmt.Errorf("mklink: %w", err)
}
