package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTabValidate(t *testing.T) {
	ok := Tab{TableID: "4", Lines: []OrderLine{{ID: "l1", Quantity: 2, LineTotal: decimal.NewFromInt(10)}}}
	require.NoError(t, ok.Validate("4"))

	// the service may omit the table id on the tab body
	require.NoError(t, Tab{Lines: ok.Lines}.Validate("4"))

	zero := Tab{TableID: "4", Lines: []OrderLine{{ID: "l1", Quantity: 0}}}
	assert.ErrorIs(t, zero.Validate("4"), ErrProtocolViolation)

	negative := Tab{TableID: "4", Lines: []OrderLine{{ID: "l1", Quantity: -1}}}
	assert.ErrorIs(t, negative.Validate("4"), ErrProtocolViolation)

	assert.ErrorIs(t, ok.Validate("5"), ErrProtocolViolation)
}

func TestTabCloneDoesNotShareLines(t *testing.T) {
	orig := Tab{TableID: "1", Lines: []OrderLine{{ID: "a", Quantity: 1}}}
	c := orig.Clone()
	c.Lines[0].Quantity = 9

	assert.Equal(t, 1, orig.Lines[0].Quantity)

	line, ok := orig.Line("a")
	assert.True(t, ok)
	assert.Equal(t, "a", line.ID)

	_, ok = orig.Line("missing")
	assert.False(t, ok)
}
