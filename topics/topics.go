// Package topics maintains the working set of topic names used as generation
// prompts, merging user-entered topics with fetched trending ones.
package topics

import (
	"context"
	"errors"

	"post-pilot/models"
)

var (
	// ErrDuplicateTopic is returned when a manually added name collides
	// case-insensitively with an existing topic.
	ErrDuplicateTopic = errors.New("topic already exists")

	ErrEmptyName = errors.New("topic name is required")

	ErrNotFound = errors.New("topic not found")
)

// Repository is the persistence contract for topics.
type Repository interface {
	Insert(ctx context.Context, topic *models.Topic) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]models.Topic, error)
	// FindByName matches case-insensitively.
	FindByName(ctx context.Context, name string) (*models.Topic, error)
}
