package plot

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/anantsinghal-found/natgas-pricevis/internal/domain"
)

// FileSink writes each render to Path. The extension picks the format.
type FileSink struct {
	Path     string
	renderer *Renderer
	logger   *slog.Logger
}

// NewFileSink creates a FileSink using the default renderer.
func NewFileSink(path string, logger *slog.Logger) *FileSink {
	return &FileSink{Path: path, renderer: NewRenderer(), logger: logger}
}

// Name implements pipeline.RenderSink.
func (s *FileSink) Name() string { return "plot" }

// Deliver renders r and replaces the file at Path.
func (s *FileSink) Deliver(_ context.Context, r domain.Render) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(s.Path)), ".")
	if format != FormatPNG && format != FormatSVG {
		return eris.Errorf("plot: %s: unsupported format %q", s.Path, format)
	}

	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrapf(err, "plot: create %s", dir)
		}
	}
	f, err := os.Create(s.Path)
	if err != nil {
		return eris.Wrapf(err, "plot: create %s", s.Path)
	}
	if err := s.renderer.WriteTo(f, r, format); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return eris.Wrapf(err, "plot: close %s", s.Path)
	}
	s.logger.Info("map written", "path", s.Path, "format", format)
	return nil
}
