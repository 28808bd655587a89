package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdealMargin_Bands(t *testing.T) {
	table := DefaultMarginTable()

	assert.Equal(t, 0.50, table.IdealMargin(25))
	assert.Equal(t, 0.38, table.IdealMargin(50))
	assert.Equal(t, 0.30, table.IdealMargin(100))
	assert.Equal(t, 0.22, table.IdealMargin(400))
	// Por encima de la última banda aplica el fallback.
	assert.Equal(t, 0.18, table.IdealMargin(401))
}

func TestIdealMargin_NeutralForUnknownCost(t *testing.T) {
	table := NewMarginTable([]MarginBand{{MaxCost: 25, Margin: 0.50}}, 0.18, 0.27)

	assert.Equal(t, 0.27, table.IdealMargin(0))
	assert.Equal(t, 0.27, table.IdealMargin(-5))
	assert.Equal(t, 0.50, table.IdealMargin(10))
}
