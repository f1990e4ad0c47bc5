package script

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mcmodkit/texel"
)

// ErrInvalidScript is returned for scripts that parse but cannot be run.
var ErrInvalidScript = errors.New("script: invalid")

// Script is a parsed edit script.
type Script struct {
	Size   int     `yaml:"size,omitempty"`
	Color  string  `yaml:"color,omitempty"`
	Zoom   float64 `yaml:"zoom,omitempty"`
	Load   string  `yaml:"load,omitempty"`
	Steps  []Step  `yaml:"steps"`
	Export *Export `yaml:"export,omitempty"`
}

// Step is one editing action.
type Step struct {
	Tool   string  `yaml:"tool,omitempty"`
	Color  string  `yaml:"color,omitempty"`
	At     []int   `yaml:"at,omitempty"`
	Stroke [][]int `yaml:"stroke,omitempty"`
	Undo   int     `yaml:"undo,omitempty"`
	Clear  bool    `yaml:"clear,omitempty"`
	Resize int     `yaml:"resize,omitempty"`
	Zoom   float64 `yaml:"zoom,omitempty"`
}

// Export names where the finished texture goes. Dir is relative to the
// script's directory unless absolute.
type Export struct {
	Format string `yaml:"format,omitempty"`
	Dir    string `yaml:"dir,omitempty"`
}

// Result is what a run produced.
type Result struct {
	Editor *texel.Editor
	// Path is the exported file, empty when the script has no export.
	Path string
}

// Parse decodes and validates a script. Unknown keys are rejected.
func Parse(data []byte) (*Script, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("script: parse: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("script: read: %w", err)
	}
	return Parse(data)
}

// Validate checks everything that can be checked without running.
func (s *Script) Validate() error {
	if s.Size != 0 && !texel.IsSupportedSize(s.Size) {
		return fmt.Errorf("%w: size %d", ErrInvalidScript, s.Size)
	}
	if s.Color != "" {
		if _, err := texel.ParseColor(s.Color); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidScript, err)
		}
	}
	if s.Export != nil && s.Export.Format != "" {
		if _, err := texel.ParseFormat(s.Export.Format); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidScript, err)
		}
	}
	for i := range s.Steps {
		if err := s.Steps[i].validate(); err != nil {
			return fmt.Errorf("%w: step %d: %w", ErrInvalidScript, i+1, err)
		}
	}
	return nil
}

func (st *Step) validate() error {
	if st.Tool != "" {
		if _, err := texel.ParseTool(st.Tool); err != nil {
			return err
		}
	}
	if st.Color != "" {
		if _, err := texel.ParseColor(st.Color); err != nil {
			return err
		}
	}

	actions := 0
	if st.At != nil {
		actions++
		if len(st.At) != 2 {
			return fmt.Errorf("at needs [x, y], got %d values", len(st.At))
		}
	}
	if st.Stroke != nil {
		actions++
		if len(st.Stroke) == 0 {
			return errors.New("empty stroke")
		}
		for j, p := range st.Stroke {
			if len(p) != 2 {
				return fmt.Errorf("stroke point %d needs [x, y], got %d values", j+1, len(p))
			}
		}
	}
	if st.Undo != 0 {
		actions++
		if st.Undo < 0 {
			return fmt.Errorf("negative undo %d", st.Undo)
		}
	}
	if st.Clear {
		actions++
	}
	if st.Resize != 0 {
		actions++
		if !texel.IsSupportedSize(st.Resize) {
			return fmt.Errorf("%w: %d", texel.ErrUnsupportedSize, st.Resize)
		}
	}
	if st.Zoom != 0 {
		actions++
	}
	if actions > 1 {
		return fmt.Errorf("%d actions in one step", actions)
	}
	return nil
}

// NewEditor creates the editor described by the script header.
func (s *Script) NewEditor(opts ...texel.Option) (*texel.Editor, error) {
	if s.Size != 0 {
		opts = append(opts, texel.WithSize(s.Size))
	}
	if s.Color != "" {
		c, err := texel.ParseColor(s.Color)
		if err != nil {
			return nil, err
		}
		opts = append(opts, texel.WithColor(c))
	}
	ed, err := texel.NewEditor(opts...)
	if err != nil {
		return nil, err
	}
	if s.Zoom != 0 {
		ed.SetZoom(s.Zoom)
	}
	return ed, nil
}

// Apply replays the steps on ed. It stops at the first failing step or when
// ctx is cancelled.
func (s *Script) Apply(ctx context.Context, ed *texel.Editor) error {
	for i := range s.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Steps[i].apply(ed); err != nil {
			return fmt.Errorf("script: step %d: %w", i+1, err)
		}
	}
	return nil
}

func (st *Step) apply(ed *texel.Editor) error {
	if st.Color != "" {
		if err := ed.SetColorHex(st.Color); err != nil {
			return err
		}
	}
	if st.Tool != "" {
		t, err := texel.ParseTool(st.Tool)
		if err != nil {
			return err
		}
		ed.SelectTool(t)
	}

	switch {
	case st.At != nil:
		ed.GestureStart(st.At[0], st.At[1])
		ed.GestureEnd()
	case st.Stroke != nil:
		ed.GestureStart(st.Stroke[0][0], st.Stroke[0][1])
		for _, p := range st.Stroke[1:] {
			ed.GestureMove(p[0], p[1])
		}
		ed.GestureEnd()
	case st.Undo > 0:
		for i := 0; i < st.Undo; i++ {
			if !ed.Undo() {
				break
			}
		}
	case st.Clear:
		ed.Clear()
	case st.Resize != 0:
		return ed.Resize(st.Resize)
	case st.Zoom != 0:
		ed.SetZoom(st.Zoom)
	}
	return nil
}

// Run executes s from scratch. Relative paths in the script resolve against
// baseDir. When the script has an export section the texture is written and
// its path returned in the result.
func Run(ctx context.Context, s *Script, baseDir string, opts ...texel.Option) (*Result, error) {
	ed, err := s.NewEditor(opts...)
	if err != nil {
		return nil, err
	}

	if s.Load != "" {
		g, err := texel.LoadFile(resolve(baseDir, s.Load))
		if err != nil {
			return nil, err
		}
		if err := ed.Load(g); err != nil {
			return nil, err
		}
	}

	if err := s.Apply(ctx, ed); err != nil {
		return nil, err
	}

	res := &Result{Editor: ed}
	if s.Export == nil {
		return res, nil
	}

	format := texel.PNG
	if s.Export.Format != "" {
		if format, err = texel.ParseFormat(s.Export.Format); err != nil {
			return nil, err
		}
	}
	dir := resolve(baseDir, s.Export.Dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("script: create export dir: %w", err)
	}
	if res.Path, err = ed.ExportFile(dir, format); err != nil {
		return nil, err
	}

	texel.Logger().Info("script exported", "editor", ed.ID(), "path", res.Path)
	return res, nil
}

// RunFile loads the script at path and runs it relative to its directory.
func RunFile(ctx context.Context, path string, opts ...texel.Option) (*Result, error) {
	s, err := Load(path)
	if err != nil {
		return nil, err
	}
	return Run(ctx, s, filepath.Dir(path), opts...)
}

func resolve(base, p string) string {
	if p == "" {
		return base
	}
	if filepath.IsAbs(p) || base == "" {
		return p
	}
	return filepath.Join(base, p)
}
