package boost

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/markusressel/boost2go/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createFile(t *testing.T, name string, content string) string {
	path := filepath.Join(t.TempDir(), name)
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)
	return path
}

func readInt(t *testing.T, path string) int {
	value, err := util.ReadIntFromFile(path)
	require.NoError(t, err)
	return value
}

func TestSysfsActuator_ReadsInitialState(t *testing.T) {
	// GIVEN
	boostPath := createFile(t, "boost", "1\n")

	// WHEN
	a := NewSysfsActuator(boostPath, false, "", "")

	// THEN
	assert.True(t, a.CanBoost())
}

func TestSysfsActuator_EnableBoost(t *testing.T) {
	// GIVEN
	boostPath := createFile(t, "boost", "1")
	a := NewSysfsActuator(boostPath, false, "", "")

	// WHEN
	err := a.EnableBoost(false)

	// THEN
	assert.NoError(t, err)
	assert.False(t, a.CanBoost())
	assert.Equal(t, 0, readInt(t, boostPath))

	// WHEN
	err = a.EnableBoost(true)

	// THEN
	assert.NoError(t, err)
	assert.True(t, a.CanBoost())
	assert.Equal(t, 1, readInt(t, boostPath))
}

func TestSysfsActuator_EnableBoost_Inverted(t *testing.T) {
	// GIVEN
	noTurboPath := createFile(t, "no_turbo", "0")
	a := NewSysfsActuator(noTurboPath, true, "", "")
	assert.True(t, a.CanBoost())

	// WHEN
	err := a.EnableBoost(false)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 1, readInt(t, noTurboPath))
}

func TestSysfsActuator_EnableBoost_OnlyWritesOnChange(t *testing.T) {
	// GIVEN
	boostPath := createFile(t, "boost", "1")
	a := NewSysfsActuator(boostPath, false, "", "")
	err := os.WriteFile(boostPath, []byte("7"), 0644)
	require.NoError(t, err)

	// WHEN
	err = a.EnableBoost(true)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 7, readInt(t, boostPath))
}

func TestSysfsActuator_EnableBoost_NoPath(t *testing.T) {
	// GIVEN
	a := NewSysfsActuator("", false, "", "")

	// WHEN
	err := a.EnableBoost(true)

	// THEN
	assert.Error(t, err)
	assert.False(t, a.CanBoost())
}

func TestSysfsActuator_SetPerformanceLevel(t *testing.T) {
	// GIVEN
	minPath := createFile(t, "min_perf_pct", "10")
	maxPath := createFile(t, "max_perf_pct", "100")
	a := NewSysfsActuator("", false, minPath, maxPath)

	// WHEN
	err := a.SetPerformanceLevel(5, 95)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 5, readInt(t, minPath))
	assert.Equal(t, 95, readInt(t, maxPath))
}

func TestNoopActuator(t *testing.T) {
	// GIVEN
	a := NewNoopActuator()

	// WHEN
	_ = a.EnableBoost(false)
	_ = a.SetPerformanceLevel(5, 80)

	// THEN
	assert.False(t, a.CanBoost())
	min, max := a.PerformanceLevel()
	assert.Equal(t, 5, min)
	assert.Equal(t, 80, max)
}
