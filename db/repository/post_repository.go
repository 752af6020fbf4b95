package repository

import (
	"time"

	"github.com/camreview/threads-affiliate/db/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post storage operations
type PostRepository interface {
	Create(post *models.Post) error
	FindByID(id uint) (*models.Post, error)
	ExistsByHash(hash string) (bool, error)
	FindUnpublished(limit int) ([]models.Post, error)
	MarkPublished(id uint, at time.Time) error
	UpdateAffiliateLink(postID uint, originalLink, affiliateLink string) error
	Delete(id uint) error
	Stats() (models.Stats, error)
}

// GormPostRepository implements PostRepository using GORM
type GormPostRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &GormPostRepository{db: db}
}

// Create inserts a post together with its image, video and shopee link rows
// in a single transaction. If any child insert fails the post row is rolled
// back too, so a post is never stored without its attachments.
func (r *GormPostRepository) Create(post *models.Post) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(post).Error
	})
}

// FindByID returns a post with its attachments preloaded in insertion order
func (r *GormPostRepository) FindByID(id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.
		Preload("Images", ordered).
		Preload("Videos", ordered).
		Preload("ShopeeLinks", ordered).
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func ordered(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

// ExistsByHash checks whether a post with the given content hash is stored
func (r *GormPostRepository) ExistsByHash(hash string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Where("content_hash = ?", hash).Count(&count).Error
	return count > 0, err
}

// FindUnpublished returns up to limit unpublished posts, newest first, with
// attachments preloaded.
func (r *GormPostRepository) FindUnpublished(limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.
		Preload("Images", ordered).
		Preload("Videos", ordered).
		Preload("ShopeeLinks", ordered).
		Where("published = ?", false).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// MarkPublished flags a post as published and stamps published_at. Only
// rows still unpublished are touched, so a repeat call leaves the original
// timestamp in place.
func (r *GormPostRepository) MarkPublished(id uint, at time.Time) error {
	return r.db.Model(&models.Post{}).
		Where("id = ? AND published = ?", id, false).
		Updates(map[string]interface{}{"published": true, "published_at": at}).Error
}

// UpdateAffiliateLink sets the affiliate link on the row matching the
// (post, original link) pair. No matching row is not an error.
func (r *GormPostRepository) UpdateAffiliateLink(postID uint, originalLink, affiliateLink string) error {
	return r.db.Model(&models.ShopeeLink{}).
		Where("post_id = ? AND original_link = ?", postID, originalLink).
		Update("affiliate_link", affiliateLink).Error
}

// Delete removes a post and all of its attachment rows. Children are
// deleted explicitly inside the transaction rather than relying on the
// engine's cascade alone.
func (r *GormPostRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.PostImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.PostVideo{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.ShopeeLink{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
}

// Stats returns aggregate counts over posts and shopee links
func (r *GormPostRepository) Stats() (models.Stats, error) {
	var stats models.Stats

	if err := r.db.Model(&models.Post{}).Count(&stats.TotalPosts).Error; err != nil {
		return stats, err
	}
	if err := r.db.Model(&models.Post{}).Where("published = ?", true).Count(&stats.Published).Error; err != nil {
		return stats, err
	}
	stats.Unpublished = stats.TotalPosts - stats.Published

	if err := r.db.Model(&models.ShopeeLink{}).Count(&stats.TotalShopeeLinks).Error; err != nil {
		return stats, err
	}
	if err := r.db.Model(&models.ShopeeLink{}).Where("affiliate_link <> ''").Count(&stats.ConvertedLinks).Error; err != nil {
		return stats, err
	}

	return stats, nil
}
