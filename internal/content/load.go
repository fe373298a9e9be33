package content

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/folio/internal/model"
)

// ErrUnsupportedFormat is returned for content files that are neither TOML
// nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported content format")

type fileProfile struct {
	Name     string      `toml:"name" yaml:"name"`
	Nickname string      `toml:"nickname" yaml:"nickname"`
	Role     string      `toml:"role" yaml:"role"`
	Greeting string      `toml:"greeting" yaml:"greeting"`
	Tagline  string      `toml:"tagline" yaml:"tagline"`
	Email    string      `toml:"email" yaml:"email"`
	Phone    string      `toml:"phone" yaml:"phone"`
	Pitch    string      `toml:"pitch" yaml:"pitch"`
	About    []fileAbout `toml:"about" yaml:"about"`
	Links    []fileLink  `toml:"links" yaml:"links"`
}

type fileAbout struct {
	Title string `toml:"title" yaml:"title"`
	Text  string `toml:"text" yaml:"text"`
}

type fileLink struct {
	Label string `toml:"label" yaml:"label"`
	URL   string `toml:"url" yaml:"url"`
}

type fileSkill struct {
	Name     string `toml:"name" yaml:"name"`
	Level    int    `toml:"level" yaml:"level"`
	Category string `toml:"category" yaml:"category"`
	Tag      string `toml:"tag" yaml:"tag"`
}

type fileProject struct {
	Title        string   `toml:"title" yaml:"title"`
	Description  string   `toml:"description" yaml:"description"`
	Technologies []string `toml:"technologies" yaml:"technologies"`
	Tag          string   `toml:"tag" yaml:"tag"`
}

type fileEducation struct {
	Degree      string `toml:"degree" yaml:"degree"`
	Institution string `toml:"institution" yaml:"institution"`
	Period      string `toml:"period" yaml:"period"`
	Summary     string `toml:"summary" yaml:"summary"`
}

type file struct {
	Version   string          `toml:"version" yaml:"version"`
	Profile   fileProfile     `toml:"profile" yaml:"profile"`
	Skills    []fileSkill     `toml:"skills" yaml:"skills"`
	Projects  []fileProject   `toml:"projects" yaml:"projects"`
	Education []fileEducation `toml:"education" yaml:"education"`
}

// Load reads a content file and merges it over the defaults. Fields and
// tables left empty in the file keep their default values.
func Load(path string) (model.Portfolio, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to read content: %w", err)
	}
	var f file
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &f); err != nil {
			return model.Portfolio{}, fmt.Errorf("failed to decode content: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return model.Portfolio{}, fmt.Errorf("failed to decode content: %w", err)
		}
	default:
		return model.Portfolio{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	p, err := merge(Default(), f)
	if err != nil {
		return model.Portfolio{}, err
	}
	if err := Validate(p); err != nil {
		return model.Portfolio{}, err
	}
	return p, nil
}

func merge(base model.Portfolio, f file) (model.Portfolio, error) {
	if f.Version != "" {
		base.Version = f.Version
	}
	pr := &base.Profile
	setString(&pr.Name, f.Profile.Name)
	setString(&pr.Nickname, f.Profile.Nickname)
	setString(&pr.Role, f.Profile.Role)
	setString(&pr.Greeting, f.Profile.Greeting)
	setString(&pr.Tagline, f.Profile.Tagline)
	setString(&pr.Email, f.Profile.Email)
	setString(&pr.Phone, f.Profile.Phone)
	setString(&pr.Pitch, f.Profile.Pitch)
	if len(f.Profile.About) > 0 {
		pr.About = make([]model.AboutBlock, len(f.Profile.About))
		for i, a := range f.Profile.About {
			pr.About[i] = model.AboutBlock{Title: a.Title, Text: a.Text}
		}
	}
	if len(f.Profile.Links) > 0 {
		pr.Links = make([]model.Link, len(f.Profile.Links))
		for i, l := range f.Profile.Links {
			pr.Links[i] = model.Link{Label: l.Label, URL: l.URL}
		}
	}

	if len(f.Skills) > 0 {
		base.Skills = make([]model.SkillEntry, len(f.Skills))
		for i, s := range f.Skills {
			cat, err := model.ParseCategory(s.Category)
			if err != nil {
				return model.Portfolio{}, fmt.Errorf("skill %q: %w", s.Name, err)
			}
			base.Skills[i] = model.SkillEntry{Name: s.Name, Level: s.Level, Category: cat, Tag: s.Tag}
		}
	}
	if len(f.Projects) > 0 {
		base.Projects = make([]model.ProjectEntry, len(f.Projects))
		for i, p := range f.Projects {
			base.Projects[i] = model.ProjectEntry{
				Title:        p.Title,
				Description:  p.Description,
				Technologies: p.Technologies,
				Tag:          p.Tag,
			}
		}
	}
	if len(f.Education) > 0 {
		base.Education = make([]model.EducationEntry, len(f.Education))
		for i, e := range f.Education {
			base.Education[i] = model.EducationEntry(e)
		}
	}
	return base, nil
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

// Validate checks the invariants the page relies on.
func Validate(p model.Portfolio) error {
	if strings.TrimSpace(p.Profile.Name) == "" {
		return fmt.Errorf("profile name is required")
	}
	for _, s := range p.Skills {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("skill name is required")
		}
		if s.Level < 0 || s.Level > 100 {
			return fmt.Errorf("skill %q: level %d out of range 0..100", s.Name, s.Level)
		}
		if s.Category < model.CategoryLanguage || s.Category > model.CategoryOther {
			return fmt.Errorf("skill %q: unknown category %d", s.Name, int(s.Category))
		}
	}
	for i, pr := range p.Projects {
		if strings.TrimSpace(pr.Title) == "" {
			return fmt.Errorf("project %d: title is required", i+1)
		}
	}
	return nil
}
