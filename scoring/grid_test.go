package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DavidWhitehead8808/Purley-Padel-App/models"
)

func TestValidateGrid(t *testing.T) {
	rules := DefaultRules()

	t.Run("straight sets win", func(t *testing.T) {
		outcome, err := rules.ValidateGrid([][]int{{6, 0}, {6, 4}})
		require.NoError(t, err)
		assert.Equal(t, 2, outcome.SetsA)
		assert.Equal(t, 0, outcome.SetsB)
		assert.Equal(t, []models.SetScore{{6, 0}, {6, 4}}, outcome.Sets)
	})

	t.Run("three set match", func(t *testing.T) {
		outcome, err := rules.ValidateGrid([][]int{{6, 2}, {3, 6}, {7, 5}})
		require.NoError(t, err)
		assert.Equal(t, 2, outcome.SetsA)
		assert.Equal(t, 1, outcome.SetsB)
	})

	t.Run("side b wins", func(t *testing.T) {
		outcome, err := rules.ValidateGrid([][]int{{2, 6}, {2, 6}})
		require.NoError(t, err)
		assert.Equal(t, 0, outcome.SetsA)
		assert.Equal(t, 2, outcome.SetsB)
	})

	t.Run("tiebreak sets", func(t *testing.T) {
		for _, grid := range [][][]int{{{7, 6}}, {{7, 5}}, {{6, 7}}, {{5, 7}}} {
			outcome, err := rules.ValidateGrid(grid)
			require.NoError(t, err, "grid %v", grid)
			assert.Equal(t, 1, outcome.SetsA+outcome.SetsB)
		}
	})

	t.Run("empty grid", func(t *testing.T) {
		_, err := rules.ValidateGrid([][]int{})
		assert.ErrorIs(t, err, ErrInvalidGrid)
	})

	t.Run("nil grid", func(t *testing.T) {
		_, err := rules.ValidateGrid(nil)
		assert.ErrorIs(t, err, ErrInvalidGrid)
	})

	t.Run("too many sets", func(t *testing.T) {
		_, err := rules.ValidateGrid([][]int{{6, 0}, {0, 6}, {6, 0}, {0, 6}})
		assert.ErrorIs(t, err, ErrTooManySets)
	})

	t.Run("malformed entries", func(t *testing.T) {
		_, err := rules.ValidateGrid([][]int{{6}})
		assert.ErrorIs(t, err, ErrMalformedSet)

		_, err = rules.ValidateGrid([][]int{{6, 4, 2}})
		assert.ErrorIs(t, err, ErrMalformedSet)

		_, err = rules.ValidateGrid([][]int{{6, -1}})
		assert.ErrorIs(t, err, ErrMalformedSet)
	})

	t.Run("tied set rejected before plausibility", func(t *testing.T) {
		_, err := rules.ValidateGrid([][]int{{6, 6}})
		assert.ErrorIs(t, err, ErrTiedSet)
	})

	t.Run("implausible scores name the offending pair", func(t *testing.T) {
		for _, grid := range [][][]int{{{8, 6}}, {{7, 0}}, {{6, 5}}, {{7, 4}}, {{9, 7}}} {
			_, err := rules.ValidateGrid(grid)
			require.ErrorIs(t, err, ErrImplausibleSetScore, "grid %v", grid)
			assert.Contains(t, err.Error(), "set 1", "grid %v", grid)
		}

		_, err := rules.ValidateGrid([][]int{{6, 0}, {8, 6}})
		require.ErrorIs(t, err, ErrImplausibleSetScore)
		assert.Contains(t, err.Error(), "8-6")
	})

	t.Run("draw not allowed", func(t *testing.T) {
		_, err := rules.ValidateGrid([][]int{{6, 4}, {4, 6}})
		assert.ErrorIs(t, err, ErrDrawNotAllowed)
	})

	t.Run("set tally always sums to grid length", func(t *testing.T) {
		grids := [][][]int{
			{{6, 0}, {6, 4}},
			{{6, 2}, {3, 6}, {7, 5}},
			{{2, 6}, {2, 6}},
			{{7, 6}, {6, 7}, {7, 5}},
			{{6, 4}},
		}
		for _, grid := range grids {
			outcome, err := rules.ValidateGrid(grid)
			require.NoError(t, err, "grid %v", grid)
			assert.Equal(t, len(grid), outcome.SetsA+outcome.SetsB, "grid %v", grid)
			assert.NotEqual(t, outcome.SetsA, outcome.SetsB, "grid %v", grid)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		grid := [][]int{{6, 2}, {3, 6}, {7, 5}}
		first, err := rules.ValidateGrid(grid)
		require.NoError(t, err)
		second, err := rules.ValidateGrid(grid)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestValidateGridCustomRules(t *testing.T) {
	// Extended best-of-5 with the same set heuristics.
	rules := Rules{MaxSets: 5, SetGames: 6, TiebreakGames: 7}

	outcome, err := rules.ValidateGrid([][]int{{6, 0}, {0, 6}, {6, 0}, {0, 6}, {7, 6}})
	require.NoError(t, err)
	assert.Equal(t, 3, outcome.SetsA)
	assert.Equal(t, 2, outcome.SetsB)
}
