package dto

type LoginInput struct {
	Email    string
	Password string
}

type StateOutput struct {
	Authenticated    bool
	UserID           string
	UserName         string
	Theme            string
	Language         string
	SidebarCollapsed bool
	FavoriteCourses  []string
	TotalStudyTime   int
	StudyStreak      int
	Progress         map[string]int
}

type FavoriteOutput struct {
	CourseID string
	Favorite bool
	State    StateOutput
}
