package out

import "context"

type ProgressStore interface {
	Set(ctx context.Context, courseID string, percent int) error
	Get(ctx context.Context, courseID string) (int, bool, error)
	All(ctx context.Context) (map[string]int, error)
}
