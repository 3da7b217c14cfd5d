package recovery

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/shadowforensic/pkg/shadowforensic"
)

func TestMetrics_RecordRun(t *testing.T) {
	mfs := newSnapshot(map[string]string{
		"a.txt":        "12345",
		"b.txt":        "123",
		"locked.txt":   "x",
		"vanished.txt": "x",
	})
	mfs.FailOpen("locked.txt", fs.ErrPermission)
	mfs.FailStat("vanished.txt", fs.ErrNotExist)

	global := NewGlobalMetrics()
	_, err := NewEngine(mfs, WithMetrics(global.Scope("{1111-2222-3333}")), WithExecutor(fastExecutor())).
		Run(snapRoot, t.TempDir(), shadowforensic.DefaultRecoveryOptions())
	require.NoError(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(global.filesRecoveredTotal))
	assert.Equal(t, 8.0, testutil.ToFloat64(global.bytesRecoveredTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(global.filesSkippedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(global.filesFailedTotal.WithLabelValues("{1111-2222-3333}", "permission denied")))
	assert.Equal(t, 1, testutil.CollectAndCount(global.copyDuration))
}

func TestGlobalMetrics_WriteTextfile(t *testing.T) {
	global := NewGlobalMetrics()
	global.Scope("{4444-5555-6666}").recovered(42, 0)

	path := filepath.Join(t.TempDir(), "recovery.prom")
	require.NoError(t, global.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `shadowforensic_files_recovered_total{snapshot="{4444-5555-6666}"} 1`)
	assert.Contains(t, string(data), `shadowforensic_bytes_recovered_total{snapshot="{4444-5555-6666}"} 42`)
}
