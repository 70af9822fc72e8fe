package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWallets(t *testing.T) {
	t.Run("wallets key", func(t *testing.T) {
		got, err := loadWallets([]byte("wallets:\n  - A\n  - B\n  - A\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, got)
	})

	t.Run("bare list", func(t *testing.T) {
		got, err := loadWallets([]byte("- A\n- ' B '\n- ''\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, got)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := loadWallets([]byte("wallets: []\n"))
		assert.Error(t, err)
	})

	t.Run("not a list", func(t *testing.T) {
		_, err := loadWallets([]byte("foo: bar\n"))
		assert.Error(t, err)
	})
}

func TestCheckRejectsZeroConcurrency(t *testing.T) {
	prev := checkConcurrency
	defer func() { checkConcurrency = prev }()

	for _, n := range []int{0, -3} {
		checkConcurrency = n
		err := checkCmd.RunE(checkCmd, []string{"does-not-exist.yaml"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--concurrency")
	}
}
