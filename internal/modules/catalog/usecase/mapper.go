package usecase

import (
	"learnify/internal/modules/catalog/domain"
	"learnify/internal/modules/catalog/dto"
)

func toCourseOutput(c domain.Course) dto.CourseOutput {
	modules := make([]dto.ModuleOutput, 0, len(c.Modules))
	for _, m := range c.Modules {
		modules = append(modules, dto.ModuleOutput{Title: m.Title, Lessons: m.Lessons, Duration: m.Duration})
	}
	return dto.CourseOutput{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Instructor: dto.InstructorOutput{
			Name:        c.Instructor.Name,
			Avatar:      c.Instructor.Avatar,
			Bio:         c.Instructor.Bio,
			Rating:      c.Instructor.Rating,
			Courses:     c.Instructor.Courses,
			Experience:  c.Instructor.Experience,
			Specialties: c.Instructor.Specialties,
		},
		Thumbnail:        c.Thumbnail,
		Duration:         c.Duration,
		Level:            string(c.Level),
		Price:            c.Price,
		OriginalPrice:    c.OriginalPrice,
		Discount:         c.Discount,
		Rating:           c.Rating,
		StudentsCount:    c.StudentsCount,
		Category:         c.Category,
		Tags:             c.Tags,
		Modules:          modules,
		Features:         c.Features,
		Requirements:     c.Requirements,
		LearningOutcomes: c.LearningOutcomes,
		LastUpdated:      c.LastUpdated,
		LessonCount:      c.LessonCount(),
	}
}

func toCourseOutputs(courses []domain.Course) []dto.CourseOutput {
	out := make([]dto.CourseOutput, 0, len(courses))
	for _, c := range courses {
		out = append(out, toCourseOutput(c))
	}
	return out
}

func toUserOutput(u domain.User) dto.UserOutput {
	return dto.UserOutput{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		Avatar:             u.Avatar,
		EnrolledCourses:    u.EnrolledCourses,
		CompletedCourses:   u.CompletedCourses,
		Certificates:       u.Certificates,
		StudyHours:         u.StudyHours,
		JoinDate:           u.JoinDate,
		Level:              u.Level,
		FavoriteCategories: u.FavoriteCategories,
	}
}

func toActivityOutput(a domain.Activity) dto.ActivityOutput {
	return dto.ActivityOutput{
		ID:           a.ID,
		Type:         string(a.Type),
		CourseID:     a.CourseID,
		CourseTitle:  a.CourseTitle,
		UserID:       a.UserID,
		Date:         a.Date,
		Progress:     a.Progress,
		TimeSpent:    a.TimeSpent,
		CredentialID: a.CredentialID,
	}
}

func toActivityOutputs(activities []domain.Activity) []dto.ActivityOutput {
	out := make([]dto.ActivityOutput, 0, len(activities))
	for _, a := range activities {
		out = append(out, toActivityOutput(a))
	}
	return out
}

func toCriteria(input dto.FilterInput) domain.FilterCriteria {
	return domain.FilterCriteria{
		Category: input.Category,
		Level:    input.Level,
		Price:    domain.PriceBucket(input.Price),
		Duration: domain.DurationBucket(input.Duration),
	}
}
