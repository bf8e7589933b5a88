package domain

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffScenario(t *testing.T) {
	p := Diff(NewIDSet("A", "B", "C"), NewIDSet("B", "C", "D"))

	assert.Equal(t, []string{"D"}, p.Insert.Sorted())
	assert.Equal(t, []string{"B", "C"}, p.Update.Sorted())
	assert.Equal(t, []string{"A"}, p.Delete.Sorted())
}

func TestDiffEmptySides(t *testing.T) {
	p := Diff(NewIDSet(), NewIDSet("x", "y"))
	assert.Len(t, p.Insert, 2)
	assert.Empty(t, p.Update)
	assert.Empty(t, p.Delete)

	p = Diff(NewIDSet("x", "y"), NewIDSet())
	assert.Empty(t, p.Insert)
	assert.Empty(t, p.Update)
	assert.Len(t, p.Delete, 2)
}

// TestDiffPartitionsUnion checks on random sets that the three parts are
// disjoint, cover local ∪ remote exactly and match the set formulas.
func TestDiffPartitionsUnion(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 200; round++ {
		local, remote := NewIDSet(), NewIDSet()
		for i := 0; i < rng.Intn(60); i++ {
			local.Add(fmt.Sprintf("id-%d", rng.Intn(80)))
		}
		for i := 0; i < rng.Intn(60); i++ {
			remote.Add(fmt.Sprintf("id-%d", rng.Intn(80)))
		}

		p := Diff(local, remote)

		seen := NewIDSet()
		for _, part := range []IDSet{p.Insert, p.Update, p.Delete} {
			for id := range part {
				require.False(t, seen.Has(id), "id %s in two partitions", id)
				seen.Add(id)
			}
		}
		require.Equal(t, local.Union(remote), seen)

		for id := range p.Insert {
			require.True(t, remote.Has(id) && !local.Has(id))
		}
		for id := range p.Update {
			require.True(t, remote.Has(id) && local.Has(id))
		}
		for id := range p.Delete {
			require.True(t, local.Has(id) && !remote.Has(id))
		}
	}
}
