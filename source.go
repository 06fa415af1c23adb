package shader

import (
	"fmt"
	"io/fs"
	"unicode/utf8"
)

// LoadSources reads stage sources from fsys. geometry may be empty to
// build a program without a geometry stage.
//
// fsys is usually os.DirFS or an embed.FS:
//
//	//go:embed shaders
//	var shaders embed.FS
//
//	src, err := shader.LoadSources(shaders, "shaders/tri.vert", "shaders/tri.frag", "")
func LoadSources(fsys fs.FS, vertex, fragment, geometry string) (Sources, error) {
	var src Sources
	var err error
	if src.Vertex, err = readSource(fsys, vertex); err != nil {
		return Sources{}, err
	}
	if src.Fragment, err = readSource(fsys, fragment); err != nil {
		return Sources{}, err
	}
	if geometry != "" {
		if src.Geometry, err = readSource(fsys, geometry); err != nil {
			return Sources{}, err
		}
	}
	return src, nil
}

func readSource(fsys fs.FS, name string) (string, error) {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return "", fmt.Errorf("load shader %q: %w", name, err)
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("load shader %q: source is not valid UTF-8", name)
	}
	return string(b), nil
}

// NewFromFS loads stage sources with LoadSources and builds a program.
func NewFromFS(ctx Context, fsys fs.FS, vertex, fragment, geometry string, opts ...Option) (*Program, error) {
	src, err := LoadSources(fsys, vertex, fragment, geometry)
	if err != nil {
		return nil, err
	}
	return New(ctx, src, opts...)
}
