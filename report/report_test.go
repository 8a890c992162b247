package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepResult_Failed(t *testing.T) {
	tests := []struct {
		name   string
		result StepResult
		want   bool
	}{
		{"success", Success, false},
		{"failure", Failure, true},
		{"ignored", Ignored, false},
		{"skipped", Skipped("not installed"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.result.Failed())
		})
	}
}

func TestStepResult_String(t *testing.T) {
	assert.Equal(t, "OK", Success.String())
	assert.Equal(t, "SKIPPED: flatpak is not installed", Skipped("flatpak is not installed").String())
	assert.Equal(t, "UNKNOWN_STATUS_9", Status(9).String())
}

func TestReport_PushNilIsNoop(t *testing.T) {
	r := New()
	r.Push(nil)
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Data())
}

func TestReport_PreservesInsertionOrder(t *testing.T) {
	r := New(WithAssertions(true))
	r.Push(NewEntry("a", Success))
	r.Push(NewEntry("b", Failure))
	r.Push(NewEntry("c", Skipped("why")))

	data := r.Data()
	require.Len(t, data, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{data[0].Key, data[1].Key, data[2].Key})
	assert.Equal(t, Failure, data[1].Result)
	assert.Equal(t, "why", data[2].Result.Reason)
}

func TestReport_DataIsACopy(t *testing.T) {
	r := New()
	r.Push(NewEntry("a", Success))
	data := r.Data()
	data[0].Result = Failure
	assert.Equal(t, Success, r.Data()[0].Result)
}

func TestReport_DuplicateKeyPanicsWithAssertions(t *testing.T) {
	r := New(WithAssertions(true))
	r.Push(NewEntry("k", Success))
	assert.PanicsWithValue(t, "k already reported", func() {
		r.Push(NewEntry("k", Failure))
	})
	assert.Equal(t, 1, r.Len())
}

func TestReport_DuplicateKeyAllowedWithoutAssertions(t *testing.T) {
	r := New()
	r.Push(NewEntry("k", Success))
	assert.NotPanics(t, func() {
		r.Push(NewEntry("k", Failure))
	})
	assert.Equal(t, 2, r.Len())
}

func TestReport_FailedAndSummary(t *testing.T) {
	r := New()
	r.Push(NewEntry("ok", Success))
	r.Push(NewEntry("ignored", Ignored))
	r.Push(NewEntry("skipped", Skipped("nope")))
	assert.False(t, r.Failed())

	r.Push(NewEntry("fail", Failure))
	assert.True(t, r.Failed())

	assert.Equal(t, Summary{Succeeded: 1, Failed: 1, Ignored: 1, Skipped: 1}, r.Summary())
}
