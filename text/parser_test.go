package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tandemgo/tws/action"
	"github.com/tandemgo/tws/direction"
	"github.com/tandemgo/tws/errs"
)

func TestParse_RepeatedSlowMove(t *testing.T) {
	res, err := Parse("4U")
	require.NoError(t, err)
	assert.Equal(t, []action.Action{
		{When: 0, Dir: direction.N},
		{When: 4, Dir: direction.N},
		{When: 8, Dir: direction.N},
		{When: 12, Dir: direction.N},
	}, res.Actions.All())
	assert.EqualValues(t, 15, res.TotalTicks)
}

func TestParse_FastMoveAndWait(t *testing.T) {
	res, err := Parse("u.r")
	require.NoError(t, err)
	assert.Equal(t, []action.Action{
		{When: 0, Dir: direction.N},
		{When: 5, Dir: direction.E},
	}, res.Actions.All())
	assert.EqualValues(t, 5, res.TotalTicks)
}

func TestParse_MouseTwoLeg(t *testing.T) {
	res, err := Parse("*3U;2R")
	require.NoError(t, err)
	require.Equal(t, 1, res.Actions.Len())
	got := res.Actions.At(0)
	assert.EqualValues(t, 0, got.When)
	assert.True(t, direction.IsMouse(got.Dir))
	x, y, ok := direction.DecodeMouse(got.Dir)
	require.True(t, ok)
	assert.Equal(t, 2, x)
	assert.Equal(t, -3, y)
	assert.EqualValues(t, 0, res.TotalTicks)
}

func TestParse_MouseSingleLeg(t *testing.T) {
	res, err := Parse("*2D")
	require.NoError(t, err)
	require.Equal(t, 1, res.Actions.Len())
	x, y, ok := direction.DecodeMouse(res.Actions.At(0).Dir)
	require.True(t, ok)
	assert.Equal(t, 0, x)
	assert.Equal(t, 2, y)
}

func TestParse_MouseNoOp(t *testing.T) {
	res, err := Parse("*.")
	require.NoError(t, err)
	require.Equal(t, 1, res.Actions.Len())
	x, y, ok := direction.DecodeMouse(res.Actions.At(0).Dir)
	require.True(t, ok)
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)
}

func TestParse_Diagonal(t *testing.T) {
	res, err := Parse("u+l")
	require.NoError(t, err)
	require.Equal(t, 1, res.Actions.Len())
	assert.Equal(t, direction.NW, res.Actions.At(0).Dir)
}

func TestParse_RejectsSameAxisDiagonal(t *testing.T) {
	for _, s := range []string{"U+D", "D+U", "L+R", "R+L"} {
		_, err := Parse(s)
		assert.ErrorIs(t, err, errs.ErrOppositeAxis, "input %q", s)
	}
}

func TestParse_RejectsSameAxisMouseLegs(t *testing.T) {
	for _, s := range []string{"*1U;1U", "*L;R"} {
		_, err := Parse(s)
		assert.ErrorIs(t, err, errs.ErrOppositeAxis, "input %q", s)
	}
}

func TestParse_WaitOnly(t *testing.T) {
	res, err := Parse("3.")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Actions.Len())
	assert.EqualValues(t, 11, res.TotalTicks)
}

func TestParse_UnrecognizedCharacter(t *testing.T) {
	_, err := Parse("U?")
	assert.ErrorIs(t, err, errs.ErrParse)
}

func TestParse_AbandonedMouseChunkAtEOF(t *testing.T) {
	// "*3" never reaches a direction letter; the chunk is silently dropped.
	res, err := Parse("*3")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Actions.Len())
}

func TestParse_Empty(t *testing.T) {
	res, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Actions.Len())
	assert.EqualValues(t, -1, res.TotalTicks)
}

func TestCompress_RoundTrip(t *testing.T) {
	cases := []struct {
		actions      []action.Action
		solutionTime int32
	}{
		{
			actions: []action.Action{
				{When: 0, Dir: direction.N},
				{When: 4, Dir: direction.N},
				{When: 8, Dir: direction.N},
				{When: 12, Dir: direction.N},
			},
			solutionTime: 15,
		},
		{
			actions: []action.Action{
				{When: 0, Dir: direction.N},
				{When: 5, Dir: direction.E},
			},
			solutionTime: 5,
		},
		{
			actions: []action.Action{
				{When: 0, Dir: direction.NW},
				{When: 10, Dir: direction.SE},
			},
			solutionTime: 10,
		},
	}

	for _, tc := range cases {
		s, err := Compress(tc.actions, tc.solutionTime)
		require.NoError(t, err)

		res, err := Parse(s)
		require.NoError(t, err, "notation %q", s)
		assert.Equal(t, tc.actions, res.Actions.All(), "notation %q", s)
		assert.Equal(t, tc.solutionTime, res.TotalTicks, "notation %q", s)
	}
}

func TestCompress_MouseRoundTrip(t *testing.T) {
	dir, err := direction.EncodeMouse(2, -3)
	require.NoError(t, err)
	actions := []action.Action{{When: 0, Dir: dir}}

	s, err := Compress(actions, 0)
	require.NoError(t, err)

	res, err := Parse(s)
	require.NoError(t, err)
	assert.Equal(t, actions, res.Actions.All())
}
