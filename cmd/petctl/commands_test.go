package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestLevelCommand(t *testing.T) {
	out, err := run(t, "level", "3300")
	require.NoError(t, err)
	assert.Contains(t, out, "level:      2\n")
	assert.Contains(t, out, "progress:   0.0%\n")
	assert.Contains(t, out, "xp:         0 / 150\n")
	assert.Contains(t, out, "rebirths:   1\n")
}

func TestLevelCommand_Rejects(t *testing.T) {
	_, err := run(t, "level", "abc")
	assert.Error(t, err)

	_, err = run(t, "level", "-5")
	assert.Error(t, err)
}

func TestRewardsCommand(t *testing.T) {
	out, err := run(t, "rewards", "--order", "Epic,Hard,Medium,Easy,Trivial")
	require.NoError(t, err)
	assert.Contains(t, out, "1. Epic")
	assert.Contains(t, out, "4. Easy")
	assert.Contains(t, out, "other (1): Trivial\n")
}

func TestReconcileCommand(t *testing.T) {
	out, err := run(t, "reconcile", "--previous", "Hard,Gone,Easy", "--current", "Easy,New,Hard")
	require.NoError(t, err)
	assert.Equal(t, "1. Hard\n2. Easy\n3. New\n", out)
}
