package domain

import (
	"sort"
	"time"
)

type ActivityType string

const (
	ActivityEnrolled       ActivityType = "enrolled"
	ActivityCompleted      ActivityType = "completed"
	ActivityCertificate    ActivityType = "certificate"
	ActivityStarted        ActivityType = "started"
	ActivityProgressUpdate ActivityType = "progress_update"
)

type Activity struct {
	ID           string       `yaml:"id" json:"id"`
	Type         ActivityType `yaml:"type" json:"type"`
	CourseID     string       `yaml:"course_id" json:"course_id"`
	CourseTitle  string       `yaml:"course_title" json:"course_title"`
	UserID       string       `yaml:"user_id" json:"user_id"`
	Date         time.Time    `yaml:"date" json:"date"`
	Progress     *int         `yaml:"progress,omitempty" json:"progress,omitempty"`
	TimeSpent    string       `yaml:"time_spent,omitempty" json:"time_spent,omitempty"`
	CredentialID string       `yaml:"credential_id,omitempty" json:"credential_id,omitempty"`
}

// SortRecent orders activities newest first; equal dates keep id order.
func SortRecent(activities []Activity) {
	sort.SliceStable(activities, func(i, j int) bool {
		if activities[i].Date.Equal(activities[j].Date) {
			return activities[i].ID < activities[j].ID
		}
		return activities[i].Date.After(activities[j].Date)
	})
}

type UserStats struct {
	CoursesCompleted   int
	CertificatesEarned int
	StudyHours         float64
	CurrentStreak      int
}

// Streak counts consecutive calendar days, ending today or yesterday, on
// which at least one activity happened.
func Streak(activities []Activity, now time.Time) int {
	days := map[string]bool{}
	for _, a := range activities {
		days[a.Date.UTC().Format(time.DateOnly)] = true
	}
	day := now.UTC()
	if !days[day.Format(time.DateOnly)] {
		day = day.AddDate(0, 0, -1)
	}
	streak := 0
	for days[day.Format(time.DateOnly)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
