//go:build windows

package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/yusufpapurcu/wmi"
)

// NewVSSService returns the adapter for the local Volume Shadow Copy Service.
func NewVSSService() (*VSSService, error) {
	return newVSSService(queryShadowCopies, runPowerShell), nil
}

func queryShadowCopies(ctx context.Context) ([]shadowCopy, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var dst []shadowCopy
	if err := wmi.Query(shadowCopyQuery, &dst); err != nil {
		return nil, fmt.Errorf("query Win32_ShadowCopy: %w", err)
	}
	return dst, nil
}

func runPowerShell(ctx context.Context, script string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "powershell.exe", "-NoProfile", "-NonInteractive", "-Command", script)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}
