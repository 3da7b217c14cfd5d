// Package platform detects host capabilities and selects the snapshot
// service and mounter implementations once, at startup.
package platform

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/vvka-141/shadowforensic/internal/mount"
	"github.com/vvka-141/shadowforensic/internal/snapshot"
	"github.com/vvka-141/shadowforensic/pkg/shadowforensic"
)

// Backend names accepted by --backend.
const (
	BackendAuto   = "auto"
	BackendNative = "native"
	BackendFake   = "fake"
)

// Backends lists the accepted backend names, for validation and completion.
var Backends = []string{BackendAuto, BackendNative, BackendFake}

// Capabilities describes what the host supports.
type Capabilities struct {
	OS              string
	NativeSnapshots bool
}

// Detect reports the capabilities of the running host.
func Detect() Capabilities {
	return detectFor(runtime.GOOS)
}

func detectFor(goos string) Capabilities {
	return Capabilities{
		OS:              goos,
		NativeSnapshots: goos == "windows",
	}
}

// Resolve maps backend onto either BackendNative or BackendFake.
func (c Capabilities) Resolve(backend string) (string, error) {
	switch strings.ToLower(backend) {
	case "", BackendAuto:
		if c.NativeSnapshots {
			return BackendNative, nil
		}
		return BackendFake, nil
	case BackendNative:
		if !c.NativeSnapshots {
			return "", fmt.Errorf("backend %q on %s: %w: %w",
				backend, c.OS, shadowforensic.ErrInvalidConfig, shadowforensic.ErrUnsupportedPlatform)
		}
		return BackendNative, nil
	case BackendFake:
		return BackendFake, nil
	default:
		return "", fmt.Errorf("unknown backend %q (want one of %s): %w",
			backend, strings.Join(Backends, ", "), shadowforensic.ErrInvalidConfig)
	}
}

// Backend is the pair of implementations used by every command.
type Backend struct {
	Name     string
	Snapshot shadowforensic.SnapshotService
	Mounter  shadowforensic.Mounter
}

// New returns the snapshot service and mounter for backend on this host.
func New(backend string) (Backend, error) {
	return Detect().New(backend)
}

// New returns the snapshot service and mounter for backend.
func (c Capabilities) New(backend string) (Backend, error) {
	name, err := c.Resolve(backend)
	if err != nil {
		return Backend{}, err
	}

	if name == BackendFake {
		return Backend{
			Name:     BackendFake,
			Snapshot: snapshot.NewFakeService(),
			Mounter:  mount.NewFakeMounter(),
		}, nil
	}

	svc, err := snapshot.NewVSSService()
	if err != nil {
		return Backend{}, err
	}
	return Backend{
		Name:     BackendNative,
		Snapshot: svc,
		Mounter:  mount.NewLinkMounter(),
	}, nil
}
