package presets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rmitchellscott/monodither/internal/dither"
	"github.com/rmitchellscott/monodither/internal/imageprocessing"
)

func TestDefaultPresets(t *testing.T) {
	store, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}

	list := store.List()
	if len(list) == 0 {
		t.Fatal("no built-in presets")
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].Name >= list[i].Name {
			t.Errorf("List not sorted at %q", list[i].Name)
		}
	}

	p, err := store.Get("line-art")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	opts := p.Options()
	if opts.Method != dither.MethodThreshold || opts.Threshold != 140 {
		t.Errorf("line-art options = %+v", opts)
	}

	p, err = store.Get("photo")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got := p.Options().Threshold; got != dither.DefaultThreshold {
		t.Errorf("default threshold = %d, want %d", got, dither.DefaultThreshold)
	}

	p, err = store.Get("eink-800x480")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.FitMode != imageprocessing.FitModeFill || p.FitWidth != 800 || p.FitHeight != 480 {
		t.Errorf("eink preset = %+v", p)
	}
}

func TestGetUnknown(t *testing.T) {
	store, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get("watercolor"); !errors.Is(err, ErrPresetNotFound) {
		t.Errorf("err = %v, want ErrPresetNotFound", err)
	}
}

func TestParseLibraryMethod(t *testing.T) {
	store, err := Parse([]byte("presets:\n  - name: fine\n    method: stucki\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p, _ := store.Get("fine"); p.Method != imageprocessing.MethodStucki {
		t.Errorf("method = %q", p.Method)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "malformed yaml",
			yaml:    "presets: [",
			wantErr: "failed to parse",
		},
		{
			name:    "unknown method",
			yaml:    "presets:\n  - name: a\n    method: crosshatch\n",
			wantErr: "dithermethod",
		},
		{
			name:    "missing name",
			yaml:    "presets:\n  - method: bayer\n",
			wantErr: "required",
		},
		{
			name:    "slash in name",
			yaml:    "presets:\n  - name: a/b\n    method: bayer\n",
			wantErr: "excludesall",
		},
		{
			name:    "half a fit",
			yaml:    "presets:\n  - name: a\n    method: bayer\n    fit_width: 10\n",
			wantErr: "fitpair",
		},
		{
			name:    "bad fit mode",
			yaml:    "presets:\n  - name: a\n    method: bayer\n    fit_width: 10\n    fit_height: 10\n    fit_mode: stretch\n",
			wantErr: "oneof",
		},
		{
			name:    "duplicate",
			yaml:    "presets:\n  - name: a\n    method: bayer\n  - name: a\n    method: atkinson\n",
			wantErr: "duplicate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	if err := os.WriteFile(path, []byte("presets:\n  - name: only\n    method: atkinson\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	store, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := len(store.List()); got != 1 {
		t.Errorf("got %d presets, want 1", got)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
