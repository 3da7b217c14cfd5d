package snapshot

import (
	"context"
	"strings"

	"github.com/vvka-141/shadowforensic/pkg/shadowforensic"
)

// Find returns the snapshot with the given ID. IDs are compared
// case-insensitively, as the service treats GUIDs. An unknown ID yields a
// snapshot service error wrapping ErrSnapshotNotFound.
func Find(ctx context.Context, svc shadowforensic.SnapshotService, id string) (shadowforensic.SnapshotRecord, error) {
	records, err := svc.List(ctx)
	if err != nil {
		return shadowforensic.SnapshotRecord{}, err
	}
	for _, r := range records {
		if strings.EqualFold(r.ID, id) {
			return r, nil
		}
	}
	return shadowforensic.SnapshotRecord{}, shadowforensic.SnapshotServiceError("find", id, shadowforensic.ErrSnapshotNotFound)
}

// IDs returns the IDs of every snapshot, for shell completion.
func IDs(ctx context.Context, svc shadowforensic.SnapshotService) ([]string, error) {
	records, err := svc.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	return ids, nil
}
