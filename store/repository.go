package store

import (
	"context"
	"time"

	"post-pilot/models"
)

// Repository is the persistence contract behind the post store. The gorm
// implementation backs the running service; the memory implementation backs
// tests and DB-less development.
type Repository interface {
	Insert(ctx context.Context, post *models.Post) error
	Get(ctx context.Context, id uint) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]models.Post, error)
	ListByStatus(ctx context.Context, status string) ([]models.Post, error)
	// ListDue returns scheduled posts whose publication time is at or before now.
	ListDue(ctx context.Context, now time.Time) ([]models.Post, error)
}
