package dto

import "time"

type InstructorOutput struct {
	Name        string
	Avatar      string
	Bio         string
	Rating      *float64
	Courses     *int
	Experience  string
	Specialties []string
}

type ModuleOutput struct {
	Title    string
	Lessons  []string
	Duration *float64
}

type CourseOutput struct {
	ID               string
	Title            string
	Description      string
	Instructor       InstructorOutput
	Thumbnail        string
	Duration         float64
	Level            string
	Price            float64
	OriginalPrice    *float64
	Discount         *float64
	Rating           float64
	StudentsCount    int
	Category         string
	Tags             []string
	Modules          []ModuleOutput
	Features         []string
	Requirements     []string
	LearningOutcomes []string
	LastUpdated      string
	LessonCount      int
}

type UserOutput struct {
	ID                 string
	Name               string
	Email              string
	Avatar             string
	EnrolledCourses    []string
	CompletedCourses   []string
	Certificates       int
	StudyHours         float64
	JoinDate           string
	Level              string
	FavoriteCategories []string
}

type StatsOutput struct {
	CoursesCompleted   int
	CertificatesEarned int
	StudyHours         float64
	CurrentStreak      int
}

type ActivityOutput struct {
	ID           string
	Type         string
	CourseID     string
	CourseTitle  string
	UserID       string
	Date         time.Time
	Progress     *int
	TimeSpent    string
	CredentialID string
}

type FilterInput struct {
	Category string
	Level    string
	Price    string
	Duration string
}

type UpdateProfileInput struct {
	UserID string
	Name   *string
	Email  *string
	Avatar *string
}

type LogActivityInput struct {
	Type         string
	CourseID     string
	CourseTitle  string
	UserID       string
	Progress     *int
	TimeSpent    string
	CredentialID string
}

type PersonalInfo struct {
	FullName       string
	Email          string
	Phone          string
	DateOfBirth    string
	DocumentNumber string
}

type Address struct {
	ZipCode      string
	Street       string
	Number       string
	Complement   string
	Neighborhood string
	City         string
	State        string
}

type AdditionalInfo struct {
	EducationLevel   string
	Occupation       string
	ReferralSource   string
	Goals            string
	MarketingConsent bool
}

// EnrollmentData is held in memory only and never persisted.
type EnrollmentData struct {
	Personal   PersonalInfo
	Address    Address
	Additional AdditionalInfo
}

type EnrollInput struct {
	CourseID string
	Data     EnrollmentData
}

type EnrollOutput struct {
	CourseID    string
	CourseTitle string
	UserID      string
	ActivityID  string
}
