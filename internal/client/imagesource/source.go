// Package imagesource produces the local image file a story is built from:
// picked from disk, captured by an external command, or downloaded from an
// S3-compatible bucket. Every source leaves a fresh copy in the work
// directory so the original is never modified.
package imagesource

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/storyshare/internal/filex"
)

var (
	ErrNoCaptureCommand = errors.New("no capture command configured")
	ErrEmptyImage       = errors.New("image source produced no data")
)

// OutPlaceholder in a capture command is replaced with the target path.
const OutPlaceholder = "{out}"

type Gallery struct {
	WorkDir string
}

// Select copies path into the work directory and returns the copy's path.
func (g Gallery) Select(path string) (string, error) {
	dst := filex.TempImagePath(g.WorkDir, filepath.Ext(path))
	if err := filex.CopyFile(path, dst); err != nil {
		return "", fmt.Errorf("select image: %w", err)
	}
	return dst, nil
}

// Camera runs an external capture command that writes a JPEG to the path
// substituted for OutPlaceholder, e.g. "fswebcam --no-banner {out}".
type Camera struct {
	Command string
	WorkDir string

	run func(ctx context.Context, name string, args ...string) error
}

func NewCamera(command, workDir string) *Camera {
	return &Camera{Command: command, WorkDir: workDir, run: runCommand}
}

func (c *Camera) Capture(ctx context.Context) (string, error) {
	fields := strings.Fields(c.Command)
	if len(fields) == 0 {
		return "", ErrNoCaptureCommand
	}

	out := filex.TempImagePath(c.WorkDir, ".jpg")
	substituted := false
	for i, f := range fields {
		if strings.Contains(f, OutPlaceholder) {
			fields[i] = strings.ReplaceAll(f, OutPlaceholder, out)
			substituted = true
		}
	}
	if !substituted {
		fields = append(fields, out)
	}

	if err := c.run(ctx, fields[0], fields[1:]...); err != nil {
		_ = os.Remove(out)
		return "", fmt.Errorf("capture: %w", err)
	}

	info, err := os.Stat(out)
	if err != nil || info.Size() == 0 {
		_ = os.Remove(out)
		return "", ErrEmptyImage
	}
	return out, nil
}

func runCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		if msg := strings.TrimSpace(string(output)); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}
