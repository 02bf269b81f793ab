package filter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompile_EmptyNeverMatches(t *testing.T) {
	f, err := Compile(nil)
	require.NoError(t, err)
	require.False(t, f("anything"))
}

func TestCompile_MatchesAnyPattern(t *testing.T) {
	f, err := Compile([]string{`\.tmp$`, `^node_modules/`})
	require.NoError(t, err)

	require.True(t, f("build/output.tmp"))
	require.True(t, f("node_modules/left-pad/index.js"))
	require.False(t, f("src/main.go"))
}

func TestCompile_InvalidPatternErrors(t *testing.T) {
	_, err := Compile([]string{"("})
	require.Error(t, err)
}
