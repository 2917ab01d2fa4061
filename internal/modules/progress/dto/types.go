package dto

type UpdateProgressInput struct {
	CourseID string
	Percent  int
}

type ProgressOutput struct {
	CourseID string
	Percent  int
}
