package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadIntFromFile(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "value")
	err := os.WriteFile(path, []byte(" 42\n"), 0644)
	require.NoError(t, err)

	// WHEN
	result, err := ReadIntFromFile(path)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 42, result)
}

func TestReadIntFromFile_Empty(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "value")
	err := os.WriteFile(path, []byte("\n"), 0644)
	require.NoError(t, err)

	// WHEN
	_, err = ReadIntFromFile(path)

	// THEN
	assert.Error(t, err)
}

func TestReadFloatFromFile(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "value")
	err := os.WriteFile(path, []byte("1.325"), 0644)
	require.NoError(t, err)

	// WHEN
	result, err := ReadFloatFromFile(path)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 1.325, result)
}

func TestWriteIntToFile(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "pwm")
	err := os.WriteFile(path, []byte("0"), 0644)
	require.NoError(t, err)

	// WHEN
	err = WriteIntToFile(128, path)

	// THEN
	assert.NoError(t, err)
	result, err := ReadIntFromFile(path)
	assert.NoError(t, err)
	assert.Equal(t, 128, result)
}

func TestWriteIntToFileAtomic(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "pwm")
	err := os.WriteFile(path, []byte("0"), 0644)
	require.NoError(t, err)

	// WHEN
	err = WriteIntToFileAtomic(255, path)

	// THEN
	assert.NoError(t, err)
	result, err := ReadIntFromFile(path)
	assert.NoError(t, err)
	assert.Equal(t, 255, result)
}

func TestCheckFilePermissionsForExecution_OthersCanWrite(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "script")
	err := os.WriteFile(path, []byte("#!/bin/sh"), 0777)
	require.NoError(t, err)
	err = os.Chmod(path, 0777)
	require.NoError(t, err)

	// WHEN
	result, err := CheckFilePermissionsForExecution(path)

	// THEN
	assert.False(t, result)
	assert.Error(t, err)
}
