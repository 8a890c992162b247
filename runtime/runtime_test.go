package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mensylisir/xmupgrade/config"
	"github.com/mensylisir/xmupgrade/executor"
	"github.com/mensylisir/xmupgrade/interrupt"
)

type nopPresenter struct{}

func (nopPresenter) PrintStep(string)                       {}
func (nopPresenter) PrintError(string, string)              {}
func (nopPresenter) ShouldRetry(bool, string) (bool, error) { return false, nil }

var _ Policy = (*config.Config)(nil)

func TestNewRuntime_RequiresCollaborators(t *testing.T) {
	ex := executor.NewLocalExecutor(executor.Options{})
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"no policy", Config{Presenter: nopPresenter{}, Executor: ex}, "policy cannot be nil"},
		{"no presenter", Config{Policy: config.Default(), Executor: ex}, "presenter cannot be nil"},
		{"no executor", Config{Policy: config.Default(), Presenter: nopPresenter{}}, "executor cannot be nil"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRuntime(tt.cfg)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestNewRuntime_Defaults(t *testing.T) {
	rt, err := NewRuntime(Config{
		RunID:     "abc",
		Policy:    config.Default(),
		Presenter: nopPresenter{},
		Executor:  executor.NewLocalExecutor(executor.Options{DryRun: true}),
	})
	require.NoError(t, err)

	assert.Equal(t, "abc", rt.RunID())
	require.NotNil(t, rt.Interrupt())
	assert.False(t, rt.Interrupt().Interrupted())
	require.NotNil(t, rt.Logger())
	assert.True(t, rt.DryRun())
	assert.False(t, rt.AssertInvariants())
}

func TestNewRuntime_KeepsGivenFlag(t *testing.T) {
	flag := interrupt.New()
	rt, err := NewRuntime(Config{
		Policy:           config.Default(),
		Presenter:        nopPresenter{},
		Executor:         executor.NewLocalExecutor(executor.Options{}),
		Interrupt:        flag,
		AssertInvariants: true,
	})
	require.NoError(t, err)
	assert.Same(t, flag, rt.Interrupt())
	assert.True(t, rt.AssertInvariants())
}
