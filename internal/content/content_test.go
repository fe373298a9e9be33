package content

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/folio/internal/model"
)

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	p := Default()
	if err := Validate(p); err != nil {
		t.Fatalf("default content invalid: %v", err)
	}
	if len(p.Skills) != 15 {
		t.Fatalf("expected 15 skills, got %d", len(p.Skills))
	}
	if len(p.Projects) != 3 {
		t.Fatalf("expected 3 projects, got %d", len(p.Projects))
	}
	counts := map[model.Category]int{}
	for _, s := range p.Skills {
		counts[s.Category]++
	}
	if counts[model.CategoryLanguage] != 7 || counts[model.CategoryFramework] != 5 || counts[model.CategoryOther] != 3 {
		t.Fatalf("unexpected category split: %v", counts)
	}
	if got := p.SkillsByCategory(model.CategoryFramework)[0].Name; got != "React" {
		t.Fatalf("expected table order preserved, got %q first", got)
	}
}

func TestDefaultReturnsFreshSlices(t *testing.T) {
	a := Default()
	a.Skills[0].Name = "changed"
	if Default().Skills[0].Name != "HTML" {
		t.Fatalf("Default must not share slices between calls")
	}
}

func TestLoadTOMLMergesOverDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "content.toml", `
version = "2.0.0"

[profile]
role = "Go Developer"

[[skills]]
name = "Go"
level = 60
category = "languages"
tag = "cyan"
`)
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p.Version != "2.0.0" || p.Profile.Role != "Go Developer" {
		t.Fatalf("expected overrides applied, got version %q role %q", p.Version, p.Profile.Role)
	}
	if p.Profile.Name != Default().Profile.Name {
		t.Fatalf("expected default name kept, got %q", p.Profile.Name)
	}
	if len(p.Skills) != 1 || p.Skills[0].Category != model.CategoryLanguage {
		t.Fatalf("expected skills replaced, got %+v", p.Skills)
	}
	if len(p.Projects) != 3 {
		t.Fatalf("expected default projects kept, got %d", len(p.Projects))
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "content.yml", `
profile:
  name: Ada Lovelace
projects:
  - title: Analytical Engine notes
    description: The first published program.
    technologies: [math]
`)
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p.Profile.Name != "Ada Lovelace" {
		t.Fatalf("unexpected name %q", p.Profile.Name)
	}
	if len(p.Projects) != 1 || p.Projects[0].Technologies[0] != "math" {
		t.Fatalf("unexpected projects %+v", p.Projects)
	}
}

func TestLoadRejectsInvalidContent(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		file string
		data string
	}{
		{"level out of range", "level.toml", "[[skills]]\nname = \"Go\"\nlevel = 101\ncategory = \"other\"\n"},
		{"unknown category", "category.toml", "[[skills]]\nname = \"Go\"\nlevel = 50\ncategory = \"tools\"\n"},
		{"project without title", "project.yaml", "projects:\n  - description: nameless\n"},
		{"malformed", "broken.toml", "[[skills\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeFile(t, dir, tt.file, tt.data)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := writeFile(t, t.TempDir(), "content.json", "{}")
	if _, err := Load(path); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestValidateRequiresName(t *testing.T) {
	p := Default()
	p.Profile.Name = "  "
	if err := Validate(p); err == nil {
		t.Fatalf("expected error for blank name")
	}
}

func TestWatchReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "content.toml", "[profile]\nrole = \"first\"\n")

	ctx, cancel := context.WithCancel(context.Background())
	reloaded := make(chan model.Portfolio, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(p model.Portfolio, err error) {
			if err == nil {
				reloaded <- p
			}
		})
	}()

	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	var got model.Portfolio
wait:
	for {
		select {
		case got = <-reloaded:
			if got.Profile.Role == "second" {
				break wait
			}
		case <-tick.C:
			writeFile(t, dir, "content.toml", "[profile]\nrole = \"second\"\n")
		case <-deadline:
			t.Fatalf("no reload observed")
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Watch returned error: %v", err)
	}
}
