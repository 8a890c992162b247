package step

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Step
		wantErr bool
	}{
		{name: "exact", input: "brew", want: Brew},
		{name: "mixed case and spaces", input: "  Custom_Commands ", want: CustomCommands},
		{name: "unknown", input: "windows_update", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAll_StopsOnUnknown(t *testing.T) {
	steps, err := ParseAll([]string{"npm", "cargo"})
	require.NoError(t, err)
	assert.Equal(t, []Step{Npm, Cargo}, steps)

	_, err = ParseAll([]string{"npm", "nope"})
	assert.ErrorContains(t, err, `"nope"`)
}

func TestAll_ReturnsCopy(t *testing.T) {
	steps := All()
	steps[0] = "mutated"
	assert.Equal(t, System, All()[0])
}

func TestOutcomeConstructors(t *testing.T) {
	assert.Equal(t, Completed, Done().Kind)
	assert.Equal(t, Simulated, Simulate().Kind)

	o := Declinef("%s is not installed", "flatpak")
	assert.Equal(t, Declined, o.Kind)
	assert.Equal(t, "flatpak is not installed", o.Reason)
	assert.Equal(t, "declined", o.Kind.String())
}
