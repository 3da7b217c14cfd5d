// Package snapshot adapts the host snapshot service.
//
// VSSService talks to the Windows Volume Shadow Copy Service: snapshots are
// listed through WMI and created or deleted through the CIM cmdlets run by
// PowerShell. FakeService is a fixed in-memory catalog used on every other
// host and in tests.
//
// Every failure is wrapped exactly once into a snapshot service error
// (shadowforensic.ErrSnapshotService). Calls are never retried.
package snapshot
