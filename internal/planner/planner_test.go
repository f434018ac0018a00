package planner

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyline93/seekmap/internal/cluster"
	"github.com/skyline93/seekmap/internal/layout"
)

func newTrace(t *testing.T, addresses ...uint64) *layout.Trace {
	t.Helper()

	tr := layout.New(layout.Options{})
	for _, a := range addresses {
		require.NoError(t, tr.Append(a))
	}
	return tr
}

// hotTrace bounces between two far apart hot blocks with cold blocks in
// between.
func hotTrace(t *testing.T) *layout.Trace {
	return newTrace(t, 2, 40, 2, 40, 10, 2, 40, 20, 2, 40)
}

func TestApplyFrequency(t *testing.T) {
	tr := hotTrace(t)
	before := tr.TotalSeekDistance()

	res, err := Apply(tr, Frequency{Top: 2}, Options{Start: 0, Verify: true})
	require.NoError(t, err)

	assert.Equal(t, "frequency", res.Strategy)
	assert.Equal(t, 2, res.Relocated)
	assert.Equal(t, before, res.Before)
	assert.Less(t, res.After, res.Before)
	assert.Equal(t, tr.TotalSeekDistance(), res.After)

	// equal counts: 2 before 40
	loc, _, err := tr.LocationOf(2)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), loc)
	loc, _, err = tr.LocationOf(40)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), loc)
}

func TestApplyHotListRejectsUnmapped(t *testing.T) {
	tr := hotTrace(t)

	_, err := Apply(tr, HotList{Addresses: []uint64{2, 3}}, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, layout.ErrPrecondition))
	assert.Contains(t, err.Error(), "hot-list")
}

func TestClusterOrderPlan(t *testing.T) {
	tree, err := cluster.ReadTree(strings.NewReader("3\n4\n3\n4\n-1\n"))
	require.NoError(t, err)

	s := ClusterOrder{Tree: tree, Mapping: []uint64{40, 2, 10}}
	got, err := s.Plan(nil)
	require.NoError(t, err)
	assert.Equal(t, []uint64{2, 40, 10}, got)

	_, err = ClusterOrder{}.Plan(nil)
	assert.Error(t, err)
}

func TestEvaluateLeavesSourceUntouched(t *testing.T) {
	tr := hotTrace(t)
	before := tr.TotalSeekDistance()

	strategies := []Strategy{
		Frequency{Top: 2},
		OrganPipe{Top: 3},
		HotList{Label: "manual", Addresses: []uint64{40, 2}},
	}

	results, err := Evaluate(context.Background(), tr, Options{Start: 1, Workers: 2, Verify: true}, strategies...)
	require.NoError(t, err)
	require.Len(t, results, len(strategies))

	for i, s := range strategies {
		assert.Equal(t, s.Name(), results[i].Strategy)
		assert.Equal(t, before, results[i].Before)
		assert.Equal(t, uint64(1), results[i].Start)
	}
	assert.Equal(t, 3, results[1].Relocated)

	assert.Equal(t, before, tr.TotalSeekDistance())
	loc, _, err := tr.LocationOf(40)
	require.NoError(t, err)
	assert.Equal(t, uint64(40), loc)
	require.NoError(t, tr.Check())
}

func TestEvaluateReportsFailure(t *testing.T) {
	tr := hotTrace(t)

	_, err := Evaluate(context.Background(), tr, Options{Workers: 1},
		Frequency{Top: 2},
		HotList{Addresses: []uint64{2, 2}},
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, layout.ErrPrecondition))
}

func TestEvaluateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Evaluate(ctx, hotTrace(t), Options{Workers: 1}, Frequency{Top: 1})
	assert.ErrorIs(t, err, context.Canceled)
}
