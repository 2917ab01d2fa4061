package dto

import "time"

type PersonalInput struct {
	FullName string
	Email    string
	Phone    string
	Location string
	Summary  string
}

type UpdateSectionInput struct {
	SectionID string
	Fields    map[string]string
}

// SectionOutput flattens the section payload into ordered label/value pairs.
type SectionOutput struct {
	ID     string
	Kind   string
	Title  string
	Fields []FieldOutput
}

type FieldOutput struct {
	Name  string
	Value string
}

type ResumeOutput struct {
	Personal  PersonalInput
	Sections  []SectionOutput
	UpdatedAt time.Time
}
