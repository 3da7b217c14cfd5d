//go:build !windows

package snapshot

import "github.com/vvka-141/shadowforensic/pkg/shadowforensic"

// NewVSSService fails on hosts without a Volume Shadow Copy Service.
func NewVSSService() (*VSSService, error) {
	return nil, shadowforensic.SnapshotServiceError("connect", "", shadowforensic.ErrUnsupportedPlatform)
}
