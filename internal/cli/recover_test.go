package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/shadowforensic/internal/logging"
	"github.com/vvka-141/shadowforensic/pkg/shadowforensic"
)

type recordingSink struct {
	outcomes []shadowforensic.Outcome
	flushed  bool
}

func (s *recordingSink) Record(o shadowforensic.Outcome) { s.outcomes = append(s.outcomes, o) }
func (s *recordingSink) Flush() error {
	s.flushed = true
	return nil
}

func TestOutcomeLogger_LogsAndForwards(t *testing.T) {
	var logs bytes.Buffer
	next := &recordingSink{}
	sink := &outcomeLogger{logger: logging.NewConsoleLoggerTo(&logs, true), next: next}

	sink.Record(shadowforensic.Outcome{Status: shadowforensic.StatusRecovered, Path: "a.txt", Bytes: 12})
	sink.Record(shadowforensic.Outcome{Status: shadowforensic.StatusSkipped, Path: "b.log", Reason: "filtered"})
	sink.Record(shadowforensic.Outcome{Status: shadowforensic.StatusFailed, Path: "c.db", Reason: "copy", Err: errors.New("locked")})
	require.NoError(t, sink.Flush())

	assert.Len(t, next.outcomes, 3)
	assert.True(t, next.flushed)
	assert.Contains(t, logs.String(), "Recovered a.txt (12 bytes)")
	assert.Contains(t, logs.String(), "Skipped b.log: filtered")
	assert.Contains(t, logs.String(), "Failed c.db: copy: locked")
}

func TestOutcomeLogger_QuietWithoutVerbose(t *testing.T) {
	var logs bytes.Buffer
	next := &recordingSink{}
	sink := &outcomeLogger{logger: logging.NewConsoleLoggerTo(&logs, false), next: next}

	sink.Record(shadowforensic.Outcome{Status: shadowforensic.StatusRecovered, Path: "a.txt"})

	assert.Empty(t, logs.String())
	assert.Len(t, next.outcomes, 1)
}
