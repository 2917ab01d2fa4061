package dto

type FieldOutput struct {
	Name     string
	Label    string
	Value    string
	Required bool
}

type FieldErrorOutput struct {
	Field   string
	Message string
}

type WorkflowOutput struct {
	ID          string
	CourseID    string
	CourseTitle string
	Step        int
	StepName    string
	Progress    int
	Submitting  bool
	Done        bool
	Exited      bool
	LastError   string
	Fields      []FieldOutput
	Problems    []FieldErrorOutput
}

type SetFieldInput struct {
	WorkflowID string
	Field      string
	Value      string
}

// CompleteInput drives a whole workflow in one call. Values are keyed by
// form field name.
type CompleteInput struct {
	CourseID string
	Values   map[string]string
}
