package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/vvka-141/shadowforensic/pkg/shadowforensic"
)

// shadowCopy holds the Win32_ShadowCopy properties read by List.
type shadowCopy struct {
	ID           string
	DeviceObject string
	VolumeName   string
	InstallDate  time.Time
}

const shadowCopyQuery = "SELECT ID, DeviceObject, VolumeName, InstallDate FROM Win32_ShadowCopy"

type queryFunc func(ctx context.Context) ([]shadowCopy, error)

// scriptRunner runs a PowerShell script and returns its standard output.
type scriptRunner func(ctx context.Context, script string) ([]byte, error)

// VSSService is the Volume Shadow Copy Service adapter.
type VSSService struct {
	query queryFunc
	run   scriptRunner
}

func newVSSService(query queryFunc, run scriptRunner) *VSSService {
	return &VSSService{query: query, run: run}
}

func (s *VSSService) List(ctx context.Context) ([]shadowforensic.SnapshotRecord, error) {
	copies, err := s.query(ctx)
	if err != nil {
		return nil, shadowforensic.SnapshotServiceError("list", "", err)
	}

	records := make([]shadowforensic.SnapshotRecord, 0, len(copies))
	for _, c := range copies {
		records = append(records, shadowforensic.SnapshotRecord{
			ID:           c.ID,
			Volume:       c.VolumeName,
			CreatedAt:    c.InstallDate,
			DeviceObject: c.DeviceObject,
		})
	}
	return records, nil
}

func (s *VSSService) Create(ctx context.Context, volume string) (string, error) {
	out, err := s.run(ctx, createScript(volume))
	if err != nil {
		return "", shadowforensic.SnapshotServiceError("create", volume, err)
	}

	id, err := parseCreateResult(out)
	if err != nil {
		return "", shadowforensic.SnapshotServiceError("create", volume, err)
	}
	return id, nil
}

func (s *VSSService) Delete(ctx context.Context, id string) (bool, error) {
	// IDs outside the GUID alphabet cannot name a shadow copy and must not
	// reach the WQL filter.
	if !shadowIDPattern.MatchString(id) {
		return false, nil
	}

	out, err := s.run(ctx, deleteScript(id))
	if err != nil {
		return false, shadowforensic.SnapshotServiceError("delete", id, err)
	}

	deleted, err := parseDeleteResult(out)
	if err != nil {
		return false, shadowforensic.SnapshotServiceError("delete", id, err)
	}
	return deleted, nil
}

var shadowIDPattern = regexp.MustCompile(`^\{?[0-9A-Fa-f-]+\}?$`)

// psQuote quotes s as a single-quoted PowerShell string.
func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func createScript(volume string) string {
	return "$ErrorActionPreference = 'Stop'; " +
		"Invoke-CimMethod -ClassName Win32_ShadowCopy -MethodName Create " +
		"-Arguments @{Volume = " + psQuote(volume) + "; Context = 'ClientAccessible'} | " +
		"Select-Object ReturnValue, ShadowID | ConvertTo-Json -Compress"
}

func deleteScript(id string) string {
	return "$ErrorActionPreference = 'Stop'; " +
		"$s = @(Get-CimInstance -ClassName Win32_ShadowCopy -Filter " + psQuote("ID='"+id+"'") + "); " +
		"$s | Remove-CimInstance; " +
		"@{Deleted = ($s.Count -gt 0)} | ConvertTo-Json -Compress"
}

type createResult struct {
	ReturnValue int    `json:"ReturnValue"`
	ShadowID    string `json:"ShadowID"`
}

// createReturnCodes describes the Win32_ShadowCopy.Create return values.
var createReturnCodes = map[int]string{
	1:  "access denied",
	2:  "invalid argument",
	3:  "specified volume not found",
	4:  "specified volume not supported",
	5:  "unsupported shadow copy context",
	6:  "insufficient storage",
	7:  "volume is in use",
	8:  "maximum number of shadow copies reached",
	9:  "another shadow copy operation is already in progress",
	10: "shadow copy provider vetoed the operation",
	11: "shadow copy provider not registered",
	12: "shadow copy provider failure",
	13: "unknown error",
}

func parseCreateResult(out []byte) (string, error) {
	var res createResult
	if err := json.Unmarshal(out, &res); err != nil {
		return "", fmt.Errorf("parse Create output %q: %w", strings.TrimSpace(string(out)), err)
	}

	if res.ReturnValue != 0 {
		desc, ok := createReturnCodes[res.ReturnValue]
		if !ok {
			desc = "unrecognised return code"
		}
		err := fmt.Errorf("WMI error code %d: %s", res.ReturnValue, desc)
		if res.ReturnValue == 1 {
			err = fmt.Errorf("%w: %w", shadowforensic.ErrInsufficientPrivilege, err)
		}
		return "", err
	}

	if res.ShadowID == "" {
		return "", errors.New("no shadow copy ID in Create output")
	}
	return res.ShadowID, nil
}

func parseDeleteResult(out []byte) (bool, error) {
	var res struct {
		Deleted bool `json:"Deleted"`
	}
	if err := json.Unmarshal(out, &res); err != nil {
		return false, fmt.Errorf("parse Delete output %q: %w", strings.TrimSpace(string(out)), err)
	}
	return res.Deleted, nil
}

var _ shadowforensic.SnapshotService = (*VSSService)(nil)
