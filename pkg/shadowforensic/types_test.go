package shadowforensic_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vvka-141/shadowforensic/pkg/shadowforensic"
)

func TestRecoveryOptions_Patterns(t *testing.T) {
	assert.Equal(t, []string{"*"}, shadowforensic.RecoveryOptions{}.Patterns())
	assert.Equal(t, []string{"*"}, shadowforensic.RecoveryOptions{Filters: []string{}}.Patterns())
	assert.Equal(t, []string{"*.txt"}, shadowforensic.RecoveryOptions{Filters: []string{"*.txt"}}.Patterns())
}

func TestRecoveryOptions_WorkerCount(t *testing.T) {
	assert.Equal(t, 7, shadowforensic.RecoveryOptions{Workers: 7}.WorkerCount())
	assert.GreaterOrEqual(t, shadowforensic.RecoveryOptions{}.WorkerCount(), 1)
	assert.GreaterOrEqual(t, shadowforensic.RecoveryOptions{Workers: -3}.WorkerCount(), 1)
}

func TestRecoveryOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    shadowforensic.RecoveryOptions
		wantErr error
	}{
		{"defaults", shadowforensic.DefaultRecoveryOptions(), nil},
		{"bounded", shadowforensic.RecoveryOptions{MinSize: 1, MaxSize: 10}, nil},
		{"equal bounds", shadowforensic.RecoveryOptions{MinSize: 10, MaxSize: 10}, nil},
		{"negative min", shadowforensic.RecoveryOptions{MinSize: -1}, shadowforensic.ErrInvalidConfig},
		{"max below min", shadowforensic.RecoveryOptions{MinSize: 10, MaxSize: 9}, shadowforensic.ErrInvalidConfig},
		{"bad glob", shadowforensic.RecoveryOptions{Filters: []string{"[a-"}}, shadowforensic.ErrInvalidPattern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "expected %v, got %v", tt.wantErr, err)
		})
	}
}

func TestReport_Sort(t *testing.T) {
	r := shadowforensic.Report{
		Recovered: []string{"b", "a"},
		Failures:  []shadowforensic.Failure{{Path: "z"}, {Path: "y"}},
		Skipped:   []shadowforensic.Skip{{Path: "2"}, {Path: "1"}},
	}
	r.Sort()

	assert.Equal(t, []string{"a", "b"}, r.Recovered)
	assert.Equal(t, "y", r.Failures[0].Path)
	assert.Equal(t, "1", r.Skipped[0].Path)
	assert.Equal(t, 2, r.RecoveredCount())
	assert.Equal(t, 2, r.FailedCount())
}
