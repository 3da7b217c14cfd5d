package snapshot

import (
	"context"
	"time"

	"github.com/vvka-141/shadowforensic/pkg/shadowforensic"
)

// FakeCreatedID is the ID returned by FakeService.Create.
const FakeCreatedID = "MOCK-ID-123"

// FakeService is a deterministic snapshot service with a fixed catalog.
// Create and Delete never change the catalog.
type FakeService struct {
	records []shadowforensic.SnapshotRecord
}

// NewFakeService returns a FakeService with the default two-entry catalog.
func NewFakeService() *FakeService {
	return NewFakeServiceWith(DefaultFakeCatalog())
}

// NewFakeServiceWith returns a FakeService listing records.
func NewFakeServiceWith(records []shadowforensic.SnapshotRecord) *FakeService {
	return &FakeService{records: append([]shadowforensic.SnapshotRecord(nil), records...)}
}

// DefaultFakeCatalog returns the records listed by NewFakeService.
func DefaultFakeCatalog() []shadowforensic.SnapshotRecord {
	return []shadowforensic.SnapshotRecord{
		{
			ID:           "{1111-2222-3333}",
			Volume:       `C:\`,
			CreatedAt:    time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC),
			DeviceObject: `\\?\GLOBALROOT\Device\HarddiskVolumeShadowCopy1`,
		},
		{
			ID:           "{4444-5555-6666}",
			Volume:       `D:\`,
			CreatedAt:    time.Date(2023, 11, 15, 0, 0, 0, 0, time.UTC),
			DeviceObject: `\\?\GLOBALROOT\Device\HarddiskVolumeShadowCopy2`,
		},
	}
}

func (s *FakeService) List(ctx context.Context) ([]shadowforensic.SnapshotRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, shadowforensic.SnapshotServiceError("list", "", err)
	}
	return append([]shadowforensic.SnapshotRecord(nil), s.records...), nil
}

func (s *FakeService) Create(ctx context.Context, volume string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", shadowforensic.SnapshotServiceError("create", volume, err)
	}
	return FakeCreatedID, nil
}

func (s *FakeService) Delete(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, shadowforensic.SnapshotServiceError("delete", id, err)
	}
	for _, r := range s.records {
		if r.ID == id {
			return true, nil
		}
	}
	return false, nil
}

var _ shadowforensic.SnapshotService = (*FakeService)(nil)
