package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetermineFileFullPath(t *testing.T) {
	type testCase struct {
		name         string
		inputPath    string
		nameTemplate string
		expectFile   string
		expectFolder string
		setup        func(t *testing.T) (inputPath, expectFile, expectFolder string)
	}

	tmpDir := t.TempDir()

	tests := []testCase{
		{
			name:         "Directory path with name template",
			inputPath:    tmpDir,
			nameTemplate: "cachelens-report.json",
			expectFile:   filepath.Join(tmpDir, "cachelens-report.json"),
			expectFolder: tmpDir,
		},
		{
			name:         "Existing report file",
			inputPath:    filepath.Join(tmpDir, "result.sarif"),
			nameTemplate: "ignored.txt",
			setup: func(t *testing.T) (string, string, string) {
				f := filepath.Join(tmpDir, "result.sarif")
				require.NoError(t, os.WriteFile(f, []byte("{}"), 0o644))
				return f, f, tmpDir
			},
		},
		{
			name:         "Path with no extension, treat as folder",
			inputPath:    filepath.Join(tmpDir, "reports"),
			nameTemplate: "cachelens-report.html",
			expectFile:   filepath.Join(tmpDir, "reports", "cachelens-report.html"),
			expectFolder: filepath.Join(tmpDir, "reports"),
		},
		{
			name:         "Non-existent file with extension",
			inputPath:    filepath.Join(tmpDir, "nested", "score.json"),
			nameTemplate: "ignored.txt",
			expectFile:   filepath.Join(tmpDir, "nested", "score.json"),
			expectFolder: filepath.Join(tmpDir, "nested"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actualPath := tt.inputPath
			expectFile := tt.expectFile
			expectFolder := tt.expectFolder

			if tt.setup != nil {
				actualPath, expectFile, expectFolder = tt.setup(t)
			}

			filePath, folderPath, err := DetermineFileFullPath(actualPath, tt.nameTemplate)
			require.NoError(t, err)
			assert.Equal(t, expectFile, filePath)
			assert.Equal(t, expectFolder, folderPath)
		})
	}
}

func TestValidatePath(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "preset.json")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0o644))

	assert.NoError(t, ValidatePath(file))
	assert.ErrorContains(t, ValidatePath(tmpDir), "is a directory, not a file")
	assert.ErrorContains(t, ValidatePath(filepath.Join(tmpDir, "absent.json")), "path stat error")
}

func TestWriteFileCreatesParents(t *testing.T) {
	target := filepath.Join(t.TempDir(), "a", "b", "report.json")
	require.NoError(t, WriteFile(target, []byte(`{"score":100}`)))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, `{"score":100}`, string(data))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/presets/main.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "presets", "main.json"), got)

	got, err = ExpandPath("/abs/preset.json")
	require.NoError(t, err)
	assert.Equal(t, "/abs/preset.json", got)
}

func TestCreateFolderIfNotExistsRejectsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0o644))

	assert.Error(t, CreateFolderIfNotExists(file))
	assert.NoError(t, CreateFolderIfNotExists(filepath.Dir(file)))
}
