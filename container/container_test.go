package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tandemgo/tws/action"
	"github.com/tandemgo/tws/diag"
	"github.com/tandemgo/tws/direction"
	"github.com/tandemgo/tws/format"
	"github.com/tandemgo/tws/wire"
)

func TestContainer_RoundTrip(t *testing.T) {
	actions := action.NewList(2)
	actions.Append(action.Action{When: 0, Dir: direction.N})
	actions.Append(action.Action{When: 4, Dir: direction.W})

	c := &Container{
		Ruleset: format.RulesetMS,
		Flags:   0,
		SetName: "CCLP1",
		Levels: []LevelRecord{
			{
				Number:   1,
				Password: [4]byte{'A', 'B', 'C', 'D'},
				RSDir:    direction.N,
				Stepping: 0,
				Seed:     12345,
				BestTime: 500,
				Actions:  actions,
			},
			{
				Number:       2,
				Password:     [4]byte{'W', 'X', 'Y', 'Z'},
				PasswordOnly: true,
			},
		},
	}

	data, err := Write(c)
	require.NoError(t, err)

	collector := diag.NewCollector()
	got, err := Read(data, collector)
	require.NoError(t, err)
	assert.Empty(t, collector.Entries())

	assert.Equal(t, c.Ruleset, got.Ruleset)
	assert.Equal(t, c.SetName, got.SetName)
	require.Len(t, got.Levels, 2)
	assert.Equal(t, c.Levels[0].Number, got.Levels[0].Number)
	assert.Equal(t, c.Levels[0].Seed, got.Levels[0].Seed)
	assert.Equal(t, actions.All(), got.Levels[0].Actions.All())
	assert.True(t, got.Levels[1].PasswordOnly)
	assert.Equal(t, c.Levels[1].Password, got.Levels[1].Password)
}

func TestContainer_SkipsMalformedLevelAndContinues(t *testing.T) {
	actions := action.NewList(1)
	actions.Append(action.Action{When: 0, Dir: direction.N})
	good := &Container{
		Ruleset: format.RulesetLynx,
		Levels: []LevelRecord{
			{Number: 1, Seed: 1, RSDir: direction.N, Actions: actions},
		},
	}
	data, err := Write(good)
	require.NoError(t, err)

	// The level's single action encodes to one short-1 opcode byte just
	// before the trailing EOF marker. Rewrite it as a short-2 opcode
	// (which needs a second byte) to force a truncation error.
	badByte := len(data) - 4 - 1
	data[badByte] = 0x02

	collector := diag.NewCollector()
	got, err := Read(data, collector)
	require.NoError(t, err)
	assert.True(t, collector.HasFatal())
	assert.Empty(t, got.Levels)
}

func TestContainer_StrictModeAbortsOnMalformedLevel(t *testing.T) {
	actions := action.NewList(1)
	actions.Append(action.Action{When: 0, Dir: direction.N})
	good := &Container{
		Ruleset: format.RulesetLynx,
		Levels: []LevelRecord{
			{Number: 1, Seed: 1, RSDir: direction.N, Actions: actions},
		},
	}
	data, err := Write(good)
	require.NoError(t, err)

	badByte := len(data) - 4 - 1
	data[badByte] = 0x02

	collector := diag.NewCollector()
	_, err = Read(data, collector, WithStrictMode())
	assert.Error(t, err)
	assert.True(t, collector.HasFatal())
}

func TestRead_RejectsBadHeader(t *testing.T) {
	_, err := Read([]byte{0, 0, 0, 0}, diag.Discard)
	assert.Error(t, err)
}

func TestContainer_PaddingRecordSkipped(t *testing.T) {
	good := &Container{Ruleset: format.RulesetLynx}
	data, err := Write(good)
	require.NoError(t, err)

	// Insert a zero-length padding record before the EOF marker.
	eofOffset := len(data) - 4
	padded := append([]byte{}, data[:eofOffset]...)
	padded = append(padded, 0, 0, 0, 0)
	padded = append(padded, data[eofOffset:]...)

	_ = wire.PaddingMarker // documents the marker this test exercises
	got, err := Read(padded, diag.Discard)
	require.NoError(t, err)
	assert.Empty(t, got.Levels)
}
