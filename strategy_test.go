package fibtime

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStrategies(t *testing.T) {
	var names, labels []string
	for _, s := range Strategies() {
		names = append(names, s.Name)
		labels = append(labels, s.Label)
	}
	require.Equal(t, []string{"memoized", "iterative", "naive", "naive-switch"}, names)
	require.Equal(t, []string{"memoized recursion", "iter", "naive recursion if/else", "naive recursion match"}, labels)
}

func TestStrategies_agree(t *testing.T) {
	for _, s := range Strategies() {
		s := s
		t.Run(s.Name, func(t *testing.T) {
			n := Input
			if s.Slow {
				n = 25
			}
			require.Equal(t, Memoized(n), s.Func(n))
		})
	}
}

func TestMemoized_freshCachePerCall(t *testing.T) {
	require.Equal(t, uint64(89), Memoized(10))
	require.Equal(t, uint64(89), Memoized(10))
	require.Equal(t, uint64(1), Memoized(0))
}
