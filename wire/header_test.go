package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tandemgo/tws/errs"
	"github.com/tandemgo/tws/format"
)

func TestHeader_RoundTrip(t *testing.T) {
	h := Header{Ruleset: format.RulesetMS, Flags: 0x1234, Extras: []byte{0xAA, 0xBB}}
	data := h.Bytes()

	var got Header
	n, err := got.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
	assert.Equal(t, h, got)
}

func TestHeader_RejectsBadSignature(t *testing.T) {
	data := []byte{0, 0, 0, 0, byte(format.RulesetLynx), 0, 0, 0}
	var h Header
	_, err := h.Parse(data)
	assert.ErrorIs(t, err, errs.ErrInvalidSignature)
}

func TestHeader_RejectsBadRuleset(t *testing.T) {
	h := Header{Ruleset: format.RulesetLynx}
	data := h.Bytes()
	data[4] = 0x9

	var got Header
	_, err := got.Parse(data)
	assert.ErrorIs(t, err, errs.ErrBadRuleset)
}

func TestHeader_RejectsTruncated(t *testing.T) {
	var h Header
	_, err := h.Parse([]byte{1, 2, 3})
	assert.ErrorIs(t, err, errs.ErrTruncated)
}

func TestHeader_RejectsTruncatedExtras(t *testing.T) {
	h := Header{Ruleset: format.RulesetLynx, Extras: []byte{1, 2, 3}}
	data := h.Bytes()
	data = data[:len(data)-1]

	var got Header
	_, err := got.Parse(data)
	assert.ErrorIs(t, err, errs.ErrTruncated)
}
