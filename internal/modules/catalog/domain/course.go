package domain

import "fmt"

type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

func (l Level) Validate() error {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return nil
	default:
		return fmt.Errorf("unsupported level %q", string(l))
	}
}

type Instructor struct {
	Name        string   `yaml:"name"`
	Avatar      string   `yaml:"avatar"`
	Bio         string   `yaml:"bio"`
	Rating      *float64 `yaml:"rating,omitempty"`
	Courses     *int     `yaml:"courses,omitempty"`
	Experience  string   `yaml:"experience,omitempty"`
	Specialties []string `yaml:"specialties,omitempty"`
}

type CourseModule struct {
	Title    string   `yaml:"title"`
	Lessons  []string `yaml:"lessons"`
	Duration *float64 `yaml:"duration,omitempty"`
}

type Course struct {
	ID               string         `yaml:"id"`
	Title            string         `yaml:"title"`
	Description      string         `yaml:"description"`
	Instructor       Instructor     `yaml:"instructor"`
	Thumbnail        string         `yaml:"thumbnail"`
	Duration         float64        `yaml:"duration"`
	Level            Level          `yaml:"level"`
	Price            float64        `yaml:"price"`
	OriginalPrice    *float64       `yaml:"original_price,omitempty"`
	Discount         *float64       `yaml:"discount,omitempty"`
	Rating           float64        `yaml:"rating"`
	StudentsCount    int            `yaml:"students_count"`
	Category         string         `yaml:"category"`
	Tags             []string       `yaml:"tags,omitempty"`
	Modules          []CourseModule `yaml:"modules"`
	Features         []string       `yaml:"features,omitempty"`
	Requirements     []string       `yaml:"requirements,omitempty"`
	LearningOutcomes []string       `yaml:"learning_outcomes,omitempty"`
	LastUpdated      string         `yaml:"last_updated,omitempty"`
}

func (c Course) IsFree() bool {
	return c.Price == 0
}

func (c Course) LessonCount() int {
	total := 0
	for _, m := range c.Modules {
		total += len(m.Lessons)
	}
	return total
}

func (c Course) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("course id is required")
	}
	if c.Title == "" {
		return fmt.Errorf("course %s: title is required", c.ID)
	}
	if c.Price < 0 {
		return fmt.Errorf("course %s: price must be non-negative", c.ID)
	}
	if err := c.Level.Validate(); err != nil {
		return fmt.Errorf("course %s: %w", c.ID, err)
	}
	return nil
}
