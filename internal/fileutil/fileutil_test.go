package fileutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/lepinkainen/hondana/internal/testutil"
)

type testReport struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

func TestFileExists(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.WriteFileString("file.txt", "x")
	env.WriteFileString("dir/inner.txt", "x")

	testCases := []struct {
		name     string
		path     string
		expected bool
	}{
		{name: "existing file", path: env.Path("file.txt"), expected: true},
		{name: "non-existing file", path: env.Path("missing.txt"), expected: false},
		{name: "directory", path: env.Path("dir"), expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FileExists(tc.path))
		})
	}
}

func TestWriteFileWithOverwrite(t *testing.T) {
	env := testutil.NewTestEnv(t)

	testCases := []struct {
		name           string
		file           string
		overwrite      bool
		existingData   []byte
		expectedResult bool
		expectedData   []byte
	}{
		{
			name:           "new file in new directory",
			file:           "nested/new.txt",
			expectedResult: true,
			expectedData:   []byte("new content"),
		},
		{
			name:           "existing file with overwrite",
			file:           "existing-overwrite.txt",
			overwrite:      true,
			existingData:   []byte("old content"),
			expectedResult: true,
			expectedData:   []byte("new content"),
		},
		{
			name:           "existing file without overwrite",
			file:           "existing-no-overwrite.txt",
			existingData:   []byte("old content"),
			expectedResult: false,
			expectedData:   []byte("old content"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.existingData != nil {
				env.WriteFile(tc.file, tc.existingData)
			}

			result, err := WriteFileWithOverwrite(env.Path(tc.file), []byte("new content"), 0644, tc.overwrite)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedResult, result)
			assert.Equal(t, tc.expectedData, env.ReadFile(tc.file))
		})
	}
}

func TestWriteJSONFile(t *testing.T) {
	env := testutil.NewTestEnv(t)
	filePath := env.Path("out", "books.json")

	written, err := WriteJSONFile([]testReport{{ID: 1, Name: "はじめてのGo"}}, filePath, false)
	require.NoError(t, err)
	assert.True(t, written)

	var result []testReport
	require.NoError(t, json.Unmarshal(env.ReadFile("out/books.json"), &result))
	assert.Equal(t, []testReport{{ID: 1, Name: "はじめてのGo"}}, result)

	written, err = WriteJSONFile([]testReport{}, filePath, false)
	require.NoError(t, err)
	assert.False(t, written)
}

func TestWriteJSONFile_InvalidData(t *testing.T) {
	env := testutil.NewTestEnv(t)

	_, err := WriteJSONFile(map[string]any{"ch": make(chan int)}, env.Path("bad.json"), true)
	require.Error(t, err)
	assert.False(t, env.FileExists("bad.json"))
}

func TestWriteYAMLFile(t *testing.T) {
	env := testutil.NewTestEnv(t)
	filePath := env.Path("report.yaml")

	written, err := WriteYAMLFile(testReport{ID: 2, Name: "report"}, filePath, true)
	require.NoError(t, err)
	assert.True(t, written)

	data, err := os.ReadFile(filepath.Clean(filePath))
	require.NoError(t, err)

	var result testReport
	require.NoError(t, yaml.Unmarshal(data, &result))
	assert.Equal(t, testReport{ID: 2, Name: "report"}, result)
	assert.Equal(t, "id: 2\nname: report\n", string(data))
}
