package store

import (
	"context"
	"errors"
	"time"

	"post-pilot/models"

	"gorm.io/gorm"
)

// GormRepository persists posts through gorm (postgres in production).
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Insert(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *GormRepository) Get(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *GormRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *GormRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepository) List(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).Order("id desc").Find(&posts).Error
	return posts, err
}

func (r *GormRepository) ListByStatus(ctx context.Context, status string) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).Where("status = ?", status).Order("id asc").Find(&posts).Error
	return posts, err
}

func (r *GormRepository) ListDue(ctx context.Context, now time.Time) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Where("status = ? AND scheduled_for <= ?", models.StatusScheduled, now).
		Order("scheduled_for asc").
		Find(&posts).Error
	return posts, err
}
