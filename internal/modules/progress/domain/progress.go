package domain

import (
	"fmt"
	"strings"
)

const KeyPrefix = "progress_"

// Clamp bounds a completion percentage to 0..100.
func Clamp(percent int) int {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

func Key(courseID string) string {
	return KeyPrefix + courseID
}

func CourseIDFromKey(key string) (string, bool) {
	if !strings.HasPrefix(key, KeyPrefix) {
		return "", false
	}
	id := strings.TrimPrefix(key, KeyPrefix)
	return id, id != ""
}

func ValidateCourseID(courseID string) error {
	if strings.TrimSpace(courseID) == "" {
		return fmt.Errorf("course id is required")
	}
	return nil
}
