// Package file provides the workspace-confined read_file and
// write_to_file tools.
package file

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Cyclone1070/reagent/internal/tool"
	"github.com/Cyclone1070/reagent/internal/workspace"
)

// -- Sentinels --

var (
	ErrIsDirectory = errors.New("path is a directory")
	ErrTooLarge    = errors.New("file exceeds the size limit")
)

// DefaultMaxReadSize caps read_file payloads at 20 MiB.
const DefaultMaxReadSize int64 = 20 << 20

type readRequest struct {
	FilePath string `mapstructure:"file_path"`
}

// NewRead builds the read_file tool. Paths resolve against the
// workspace root and must stay inside it.
func NewRead(ws *workspace.Workspace, fs FileSystem, maxSize int64) tool.Tool {
	if maxSize <= 0 {
		maxSize = DefaultMaxReadSize
	}
	return tool.NewFunc(tool.Descriptor{
		Name:        "read_file",
		Description: "Read and return the contents of a file.",
		Params:      []tool.ParamSpec{tool.Required("file_path")},
	}, func(_ context.Context, req readRequest) (string, error) {
		abs, err := ws.Abs(req.FilePath)
		if err != nil {
			return "", err
		}
		info, err := fs.Stat(abs)
		if err != nil {
			return "", err
		}
		if info.IsDir() {
			return "", fmt.Errorf("%w: %s", ErrIsDirectory, abs)
		}
		if info.Size() > maxSize {
			return "", fmt.Errorf("%w: %s (size %d, limit %d)", ErrTooLarge, abs, info.Size(), maxSize)
		}
		content, err := fs.ReadFile(abs)
		if err != nil {
			return "", err
		}
		return string(content), nil
	})
}

type writeRequest struct {
	FilePath string `mapstructure:"file_path"`
	Content  string `mapstructure:"content"`
}

// NewWrite builds the write_to_file tool. Literal \n sequences in the
// content are decoded to real newlines, since the single-line action
// format cannot carry them directly. The write goes through a temp
// file and rename.
func NewWrite(ws *workspace.Workspace, fs FileSystem) tool.Tool {
	return tool.NewFunc(tool.Descriptor{
		Name:        "write_to_file",
		Description: "Write content to a file inside the project directory, creating parent directories as needed.",
		Params:      []tool.ParamSpec{tool.Required("file_path"), tool.Required("content")},
	}, func(_ context.Context, req writeRequest) (string, error) {
		abs, err := ws.Abs(req.FilePath)
		if err != nil {
			return "", err
		}
		if err := fs.EnsureDirs(filepath.Dir(abs)); err != nil {
			return "", fmt.Errorf("create parent directories: %w", err)
		}
		content := strings.ReplaceAll(req.Content, `\n`, "\n")
		if err := fs.WriteFileAtomic(abs, []byte(content), 0o644); err != nil {
			return "", err
		}
		return "Write successful: " + abs, nil
	})
}
