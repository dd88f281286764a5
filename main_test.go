package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-spectral-raytracer/pkg/log"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	log.SetSink(io.Discard)
	app := newApp()
	var out bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"spectral"}, args...))
	return out.String(), err
}

func TestScenesCommand(t *testing.T) {
	out, err := run(t, "scenes")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"spheres", "prism", "telescope", "Optics", "Rooms"} {
		if !strings.Contains(out, name) {
			t.Errorf("scene list is missing %q:\n%s", name, out)
		}
	}
}

func TestCommands_WriteImages(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		files []string
	}{
		{
			name:  "preview",
			args:  []string{"preview", "--scene", "boxhole", "--width", "16", "--height", "12"},
			files: []string{"boxhole_picture.png"},
		},
		{
			name:  "eye",
			args:  []string{"eye", "--scene", "spheres", "--width", "8", "--height", "8", "--samples", "4", "--workers", "2"},
			files: []string{"spheres_eye.png"},
		},
		{
			name:  "emit",
			args:  []string{"emit", "--scene", "lens", "--rays", "200", "--width", "32", "--height", "32", "--csv"},
			files: []string{"lens_screen.png", "lens_screen.csv", "lens_picture.png"},
		},
		{
			name:  "emit without picture",
			args:  []string{"emit", "--scene", "prism", "--rays", "100", "--no-picture"},
			files: []string{"prism_screen.png"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if _, err := run(t, append(tt.args, "--out", dir)...); err != nil {
				t.Fatal(err)
			}
			for _, f := range tt.files {
				info, err := os.Stat(filepath.Join(dir, f))
				if err != nil {
					t.Errorf("expected output %s: %v", f, err)
					continue
				}
				if info.Size() == 0 {
					t.Errorf("%s is empty", f)
				}
			}
		})
	}
}

func TestEmitCommand_PrintsCounts(t *testing.T) {
	out, err := run(t, "emit", "--scene", "lens", "--rays", "50", "--no-picture", "--out", t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "generate") {
		t.Errorf("emit should print the event table:\n%s", out)
	}
}

func TestCommands_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown scene", []string{"preview", "--scene", "cornell"}},
		{"unknown quality", []string{"preview", "--scene", "spheres", "--quality", "ultra"}},
		{"emit without sources", []string{"emit", "--scene", "spheres"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, append(tt.args, "--out", t.TempDir())...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
