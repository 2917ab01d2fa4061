package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "learnify/internal/platform/errors"
)

const SchemaVersion = 1

type SectionKind string

const (
	KindEducation  SectionKind = "education"
	KindExperience SectionKind = "experience"
	KindSkill      SectionKind = "skill"
)

func (k SectionKind) Validate() error {
	switch k {
	case KindEducation, KindExperience, KindSkill:
		return nil
	default:
		return fmt.Errorf("section kind %q: %w", string(k), apperrors.ErrInvalidInput)
	}
}

type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

type Experience struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

type Skill struct {
	Category string   `json:"category"`
	Skills   []string `json:"skills"`
}

// Section is a tagged variant: exactly the payload named by Kind is set.
type Section struct {
	ID         string      `json:"id"`
	Kind       SectionKind `json:"kind"`
	Education  *Education  `json:"education,omitempty"`
	Experience *Experience `json:"experience,omitempty"`
	Skill      *Skill      `json:"skill,omitempty"`
}

func NewSection(id string, kind SectionKind) (Section, error) {
	if err := kind.Validate(); err != nil {
		return Section{}, err
	}
	s := Section{ID: id, Kind: kind}
	switch kind {
	case KindEducation:
		s.Education = &Education{}
	case KindExperience:
		s.Experience = &Experience{}
	case KindSkill:
		s.Skill = &Skill{Skills: []string{}}
	}
	return s, nil
}

func (s Section) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("section id is required: %w", apperrors.ErrInvalidInput)
	}
	set := 0
	for _, present := range []bool{s.Education != nil, s.Experience != nil, s.Skill != nil} {
		if present {
			set++
		}
	}
	ok := set == 1 &&
		((s.Kind == KindEducation && s.Education != nil) ||
			(s.Kind == KindExperience && s.Experience != nil) ||
			(s.Kind == KindSkill && s.Skill != nil))
	if !ok {
		return fmt.Errorf("section %s: payload does not match kind %q: %w", s.ID, s.Kind, apperrors.ErrInvalidInput)
	}
	return nil
}

// Apply sets named fields on the section's payload. Skills take a comma
// separated list.
func (s *Section) Apply(fields map[string]string) error {
	for name, value := range fields {
		if err := s.set(name, value); err != nil {
			return err
		}
	}
	return nil
}

func (s *Section) set(name, value string) error {
	switch s.Kind {
	case KindEducation:
		e := s.Education
		switch name {
		case "institution":
			e.Institution = value
		case "degree":
			e.Degree = value
		case "field":
			e.Field = value
		case "startDate":
			e.StartDate = value
		case "endDate":
			e.EndDate = value
		case "description":
			e.Description = value
		default:
			return unknownField(s.Kind, name)
		}
	case KindExperience:
		e := s.Experience
		switch name {
		case "company":
			e.Company = value
		case "position":
			e.Position = value
		case "startDate":
			e.StartDate = value
		case "endDate":
			e.EndDate = value
		case "description":
			e.Description = value
		default:
			return unknownField(s.Kind, name)
		}
	case KindSkill:
		switch name {
		case "category":
			s.Skill.Category = value
		case "skills":
			s.Skill.Skills = splitList(value)
		default:
			return unknownField(s.Kind, name)
		}
	}
	return nil
}

func unknownField(kind SectionKind, name string) error {
	return fmt.Errorf("%s has no field %q: %w", kind, name, apperrors.ErrInvalidInput)
}

func splitList(value string) []string {
	out := []string{}
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

type PersonalInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Summary  string `json:"summary"`
}

type Resume struct {
	Personal  PersonalInfo `json:"personal"`
	Sections  []Section    `json:"sections"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

func (r Resume) SectionIndex(id string) int {
	for i, s := range r.Sections {
		if s.ID == id {
			return i
		}
	}
	return -1
}
