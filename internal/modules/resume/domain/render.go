package domain

import (
	"fmt"
	"strings"
)

// Markdown renders the résumé body without frontmatter. Sections are grouped
// by kind and keep their relative order.
func (r Resume) Markdown() string {
	b := strings.Builder{}
	name := r.Personal.FullName
	if name == "" {
		name = "Résumé"
	}
	fmt.Fprintf(&b, "# %s\n\n", name)
	contact := []string{}
	for _, v := range []string{r.Personal.Email, r.Personal.Phone, r.Personal.Location} {
		if v != "" {
			contact = append(contact, v)
		}
	}
	if len(contact) > 0 {
		b.WriteString(strings.Join(contact, " · ") + "\n\n")
	}
	if r.Personal.Summary != "" {
		b.WriteString(r.Personal.Summary + "\n\n")
	}

	groups := []struct {
		kind  SectionKind
		title string
	}{
		{KindExperience, "Experience"},
		{KindEducation, "Education"},
		{KindSkill, "Skills"},
	}
	for _, g := range groups {
		written := false
		for _, s := range r.Sections {
			if s.Kind != g.kind {
				continue
			}
			if !written {
				fmt.Fprintf(&b, "## %s\n\n", g.title)
				written = true
			}
			b.WriteString(renderSection(s))
		}
	}
	return b.String()
}

func renderSection(s Section) string {
	switch s.Kind {
	case KindEducation:
		e := s.Education
		out := fmt.Sprintf("### %s\n\n%s", e.Degree, e.Institution)
		if e.Field != "" {
			out += " · " + e.Field
		}
		return out + period(e.StartDate, e.EndDate) + description(e.Description)
	case KindExperience:
		e := s.Experience
		out := fmt.Sprintf("### %s\n\n%s", e.Position, e.Company)
		return out + period(e.StartDate, e.EndDate) + description(e.Description)
	case KindSkill:
		return fmt.Sprintf("- **%s**: %s\n\n", s.Skill.Category, strings.Join(s.Skill.Skills, ", "))
	}
	return ""
}

func period(start, end string) string {
	if start == "" && end == "" {
		return "\n\n"
	}
	return fmt.Sprintf(" (%s – %s)\n\n", start, end)
}

func description(text string) string {
	if text == "" {
		return ""
	}
	return text + "\n\n"
}
