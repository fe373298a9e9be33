// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Category groups skills on the skills section.
type Category int

const (
	CategoryLanguage Category = iota
	CategoryFramework
	CategoryOther
)

// Categories lists skill categories in display order.
var Categories = []Category{CategoryLanguage, CategoryFramework, CategoryOther}

func (c Category) String() string {
	switch c {
	case CategoryLanguage:
		return "Languages"
	case CategoryFramework:
		return "Frameworks"
	case CategoryOther:
		return "Other"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// ParseCategory maps a content-file category name to a Category.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "language", "languages":
		return CategoryLanguage, nil
	case "framework", "frameworks":
		return CategoryFramework, nil
	case "other", "others":
		return CategoryOther, nil
	default:
		return 0, fmt.Errorf("unknown skill category %q", s)
	}
}

// SkillEntry is one row of the skills table.
type SkillEntry struct {
	Name     string
	Level    int
	Category Category
	Tag      string
}

// ProjectEntry is one project card.
type ProjectEntry struct {
	Title        string
	Description  string
	Technologies []string
	Tag          string
}

// EducationEntry is one education card.
type EducationEntry struct {
	Degree      string
	Institution string
	Period      string
	Summary     string
}

// AboutBlock is one titled paragraph of the about section. Text is markdown.
type AboutBlock struct {
	Title string
	Text  string
}

// Link is an external contact or profile link.
type Link struct {
	Label string
	URL   string
}

// Profile holds the identity shown on the hero, about and contact sections.
type Profile struct {
	Name     string
	Nickname string
	Role     string
	Greeting string
	Tagline  string
	About    []AboutBlock
	Email    string
	Phone    string
	Links    []Link
	Pitch    string
}

// Portfolio is the complete static content of the page.
type Portfolio struct {
	Profile   Profile
	Skills    []SkillEntry
	Projects  []ProjectEntry
	Education []EducationEntry
	Version   string
}

// SkillsByCategory returns skills of one category in table order.
func (p Portfolio) SkillsByCategory(c Category) []SkillEntry {
	var out []SkillEntry
	for _, s := range p.Skills {
		if s.Category == c {
			out = append(out, s)
		}
	}
	return out
}

// MessageStatus is the outcome of a contact submission.
type MessageStatus string

const (
	StatusSent    MessageStatus = "sent"
	StatusFailed  MessageStatus = "failed"
	StatusTimeout MessageStatus = "timeout"
)

// MessageRecord is one journaled contact submission.
type MessageRecord struct {
	ID        string
	CreatedAt time.Time
	Name      string
	Email     string
	Body      string
	Status    MessageStatus
	Error     string
}

// MessageFilter narrows journal queries.
type MessageFilter struct {
	Status MessageStatus
	Last   int
}
