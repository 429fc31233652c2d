package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/hiermatch/types"
)

func TestAccumulator(t *testing.T) {
	acc := NewAccumulator()
	assert.Zero(t, acc.Len())
	assert.Empty(t, acc.Calls())

	in := []types.MatchTriple{types.NewMatchTriple(1, 0, 1)}
	assert.Equal(t, 0, acc.Append(in))
	assert.Equal(t, 1, acc.Append(nil))
	in[0].Matched = 7

	call, ok := acc.Call(0)
	require.True(t, ok)
	assert.Equal(t, []types.MatchTriple{types.NewMatchTriple(1, 0, 1)}, call, "Append copies its input")

	call, ok = acc.Call(1)
	require.True(t, ok)
	assert.Empty(t, call)

	_, ok = acc.Call(2)
	assert.False(t, ok)
	_, ok = acc.Call(-1)
	assert.False(t, ok)
}

func TestAccumulator_MergeKeepsOrder(t *testing.T) {
	first := NewAccumulator()
	first.Append([]types.MatchTriple{types.NewMatchTriple(1, 0, 0)})
	second := NewAccumulator()
	second.Append([]types.MatchTriple{types.NewMatchTriple(0, 1, 0)})
	second.Append([]types.MatchTriple{types.NewMatchTriple(0, 0, 1), types.NewMatchTriple(2, 0, 0)})

	first.Merge(second)
	first.Merge(nil)

	assert.Equal(t, [][]types.MatchTriple{
		{types.NewMatchTriple(1, 0, 0)},
		{types.NewMatchTriple(0, 1, 0)},
		{types.NewMatchTriple(0, 0, 1), types.NewMatchTriple(2, 0, 0)},
	}, first.Calls())
	assert.Equal(t, types.NewMatchTriple(3, 1, 1), first.Total())
	assert.Equal(t, 2, second.Len())
}
