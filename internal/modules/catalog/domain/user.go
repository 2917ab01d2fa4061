package domain

import "slices"

type User struct {
	ID                 string   `yaml:"id"`
	Name               string   `yaml:"name"`
	Email              string   `yaml:"email"`
	Avatar             string   `yaml:"avatar"`
	EnrolledCourses    []string `yaml:"enrolled_courses"`
	CompletedCourses   []string `yaml:"completed_courses"`
	Certificates       int      `yaml:"certificates"`
	StudyHours         float64  `yaml:"study_hours"`
	JoinDate           string   `yaml:"join_date,omitempty"`
	Level              string   `yaml:"level,omitempty"`
	FavoriteCategories []string `yaml:"favorite_categories,omitempty"`
}

// ProfilePatch carries the fields a profile update may change. Nil fields are
// left untouched.
type ProfilePatch struct {
	Name   *string
	Email  *string
	Avatar *string
}

func (p ProfilePatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Avatar == nil
}

// ProfileOverlay is the locally persisted delta applied on top of the
// fixture user.
type ProfileOverlay struct {
	Name     *string  `json:"name,omitempty"`
	Email    *string  `json:"email,omitempty"`
	Avatar   *string  `json:"avatar,omitempty"`
	Enrolled []string `json:"enrolled,omitempty"`
}

func (o ProfileOverlay) Merge(p ProfilePatch) ProfileOverlay {
	if p.Name != nil {
		o.Name = p.Name
	}
	if p.Email != nil {
		o.Email = p.Email
	}
	if p.Avatar != nil {
		o.Avatar = p.Avatar
	}
	return o
}

// AddEnrolled reports false when the course was already recorded.
func (o *ProfileOverlay) AddEnrolled(courseID string) bool {
	if slices.Contains(o.Enrolled, courseID) {
		return false
	}
	o.Enrolled = append(o.Enrolled, courseID)
	return true
}

func (o ProfileOverlay) Apply(u User) User {
	out := u
	if o.Name != nil {
		out.Name = *o.Name
	}
	if o.Email != nil {
		out.Email = *o.Email
	}
	if o.Avatar != nil {
		out.Avatar = *o.Avatar
	}
	out.EnrolledCourses = slices.Clone(u.EnrolledCourses)
	for _, id := range o.Enrolled {
		if !slices.Contains(out.EnrolledCourses, id) {
			out.EnrolledCourses = append(out.EnrolledCourses, id)
		}
	}
	return out
}
