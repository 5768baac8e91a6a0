package source

import (
	"context"
	"fmt"

	"github.com/scan-io-git/cachelens/internal/preset"
	"github.com/scan-io-git/cachelens/pkg/shared/files"
)

// FileSource reads a preset from a JSON or YAML file on every Load.
type FileSource struct {
	Path string
}

// NewFileSource returns a source reading path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Load(ctx context.Context) (*preset.Preset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := files.ExpandPath(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand preset path %q: %w", s.Path, err)
	}
	if err := files.ValidatePath(path); err != nil {
		return nil, fmt.Errorf("invalid preset file: %w", err)
	}
	return nilAsNoPreset(preset.LoadFile(path))
}

func (s *FileSource) String() string {
	return s.Path
}
