package tui

import (
	"errors"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/shadowforensic/pkg/shadowforensic"
)

func update(t *testing.T, m ProgressModel, msg tea.Msg) (ProgressModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	pm, ok := next.(ProgressModel)
	require.True(t, ok)
	return pm, cmd
}

func TestProgressModel_CountsOutcomes(t *testing.T) {
	m := NewProgressModel("Recovering")

	m, _ = update(t, m, OutcomeMsg{Status: shadowforensic.StatusRecovered, Path: "a.txt", Bytes: 2048})
	m, _ = update(t, m, OutcomeMsg{Status: shadowforensic.StatusRecovered, Path: "b.txt", Bytes: 1024})
	m, _ = update(t, m, OutcomeMsg{Status: shadowforensic.StatusFailed, Path: "c.txt"})
	m, _ = update(t, m, OutcomeMsg{Status: shadowforensic.StatusSkipped, Path: "d.txt"})

	assert.Equal(t, 2, m.recovered)
	assert.Equal(t, 1, m.failed)
	assert.Equal(t, 1, m.skipped)
	assert.Equal(t, int64(3072), m.bytes)

	view := m.View()
	assert.Contains(t, view, "Recovering")
	assert.Contains(t, view, "2 recovered (3.0 KiB)")
	assert.Contains(t, view, "1 failed")
	assert.Contains(t, view, "d.txt")
}

func TestProgressModel_Finished(t *testing.T) {
	m := NewProgressModel("Recovering")

	m, cmd := update(t, m, FinishedMsg{})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Contains(t, m.View(), SymbolCheck+" Recovering")
	assert.NotContains(t, m.View(), "hide progress")

	failed, _ := update(t, NewProgressModel("Recovering"), FinishedMsg{Err: errors.New("boom")})
	assert.Contains(t, failed.View(), SymbolCross+" Recovering")
}

func TestProgressModel_QuitHidesView(t *testing.T) {
	m := NewProgressModel("Recovering")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.True(t, m.hidden)
	assert.Contains(t, m.View(), "recovery continues")
}

func TestProgressSink_ForwardsOutcomes(t *testing.T) {
	var got []tea.Msg
	sink := &ProgressSink{send: func(msg tea.Msg) { got = append(got, msg) }}

	sink.Record(shadowforensic.Outcome{Status: shadowforensic.StatusRecovered, Path: "x"})
	require.NoError(t, sink.Flush())

	require.Len(t, got, 1)
	assert.Equal(t, "x", got[0].(OutcomeMsg).Path)
}

func TestRunWithProgress_NonInteractive(t *testing.T) {
	clearModeEnv(t)
	t.Setenv(NonInteractiveEnv, "1")

	var sink shadowforensic.Sink
	wantErr := errors.New("run failed")
	err := RunWithProgress("Recovering", io.Discard, func(s shadowforensic.Sink) error {
		sink = s
		return wantErr
	})

	assert.ErrorIs(t, err, wantErr)
	assert.IsType(t, shadowforensic.NopSink{}, sink)
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
		{3 << 30, "3.0 GiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBytes(tt.in))
	}
}
