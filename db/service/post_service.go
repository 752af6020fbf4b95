package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/camreview/threads-affiliate/db/models"
	"github.com/camreview/threads-affiliate/db/repository"
	"github.com/camreview/threads-affiliate/logger"
	"github.com/camreview/threads-affiliate/utils"
	"gorm.io/gorm"
)

var (
	// ErrDuplicatePost reports that a post with the same normalized content
	// is already stored. Callers treat this as "skip", not as a failure.
	ErrDuplicatePost = errors.New("post with identical content already exists")

	// ErrPostNotFound reports a lookup for a post id that is not stored.
	ErrPostNotFound = errors.New("post not found")

	// ErrEmptyContent reports a save attempt with no content.
	ErrEmptyContent = errors.New("post content must not be empty")
)

// LinkPair is one stored shopee link: the URL as scraped and, once a
// conversion succeeded, its affiliate replacement (empty until then).
type LinkPair struct {
	Original  string
	Affiliate string
}

// PostRecord is the fully hydrated view of a stored post.
type PostRecord struct {
	ID          uint
	Content     string
	OriginURL   string
	Images      []string
	Videos      []string
	Links       []LinkPair
	Published   bool
	CreatedAt   time.Time
	PublishedAt *time.Time
}

// PostService handles post persistence and lifecycle
type PostService struct {
	repo repository.PostRepository
}

// NewPostService creates a new post service
func NewPostService(repo repository.PostRepository) *PostService {
	return &PostService{repo: repo}
}

// SavePost stores a crawled post with its media URLs and shopee links in one
// transaction and returns the new post id. When a post with the same content
// fingerprint already exists it returns ErrDuplicatePost without writing
// anything.
func (s *PostService) SavePost(content string, images, videos, shopeeLinks []string, originURL string) (uint, error) {
	if strings.TrimSpace(content) == "" {
		return 0, ErrEmptyContent
	}

	hash := utils.ContentFingerprint(content)

	exists, err := s.repo.ExistsByHash(hash)
	if err != nil {
		return 0, fmt.Errorf("failed to check for duplicate post: %w", err)
	}
	if exists {
		return 0, ErrDuplicatePost
	}

	post := &models.Post{
		ContentHash: hash,
		Content:     content,
		OriginURL:   originURL,
	}
	for _, url := range images {
		post.Images = append(post.Images, models.PostImage{ImageURL: url})
	}
	for _, url := range videos {
		post.Videos = append(post.Videos, models.PostVideo{VideoURL: url})
	}
	for _, link := range shopeeLinks {
		post.ShopeeLinks = append(post.ShopeeLinks, models.ShopeeLink{OriginalLink: link})
	}

	if err := s.repo.Create(post); err != nil {
		// A concurrent insert of the same content trips the unique index;
		// report it as the duplicate outcome rather than a storage failure.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, ErrDuplicatePost
		}
		return 0, fmt.Errorf("failed to save post: %w", err)
	}

	return post.ID, nil
}

// GetPost returns the hydrated record for one post.
func (s *PostService) GetPost(id uint) (*PostRecord, error) {
	post, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to load post %d: %w", id, err)
	}
	return toRecord(post), nil
}

// ListUnpublished returns up to limit posts that have not been published
// yet, most recently collected first.
func (s *PostService) ListUnpublished(limit int) ([]PostRecord, error) {
	posts, err := s.repo.FindUnpublished(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list unpublished posts: %w", err)
	}

	records := make([]PostRecord, 0, len(posts))
	for i := range posts {
		records = append(records, *toRecord(&posts[i]))
	}
	return records, nil
}

// MarkPublished flags a post as published with the current time. Calling it
// again for the same post changes nothing. The store trusts the caller that
// a publish attempt actually succeeded.
func (s *PostService) MarkPublished(id uint) error {
	if err := s.repo.MarkPublished(id, time.Now()); err != nil {
		return fmt.Errorf("failed to mark post %d as published: %w", id, err)
	}
	return nil
}

// UpdateAffiliateLink records a successful conversion for one shopee link.
// An unknown (post, original link) pair is ignored, and an empty affiliate
// value is never written over whatever is stored.
func (s *PostService) UpdateAffiliateLink(postID uint, originalLink, affiliateLink string) error {
	if strings.TrimSpace(affiliateLink) == "" {
		logger.Logger.Printf("Ignoring empty affiliate link for post %d (%s)", postID, originalLink)
		return nil
	}
	if err := s.repo.UpdateAffiliateLink(postID, originalLink, affiliateLink); err != nil {
		return fmt.Errorf("failed to update affiliate link for post %d: %w", postID, err)
	}
	return nil
}

// DeletePost removes a post together with all of its media and link rows.
func (s *PostService) DeletePost(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete post %d: %w", id, err)
	}
	return nil
}

// Stats returns aggregate counts over the store.
func (s *PostService) Stats() (models.Stats, error) {
	stats, err := s.repo.Stats()
	if err != nil {
		return stats, fmt.Errorf("failed to collect stats: %w", err)
	}
	return stats, nil
}

func toRecord(post *models.Post) *PostRecord {
	rec := &PostRecord{
		ID:          post.ID,
		Content:     post.Content,
		OriginURL:   post.OriginURL,
		Published:   post.Published,
		CreatedAt:   post.CreatedAt,
		PublishedAt: post.PublishedAt,
	}
	for _, img := range post.Images {
		rec.Images = append(rec.Images, img.ImageURL)
	}
	for _, vid := range post.Videos {
		rec.Videos = append(rec.Videos, vid.VideoURL)
	}
	for _, link := range post.ShopeeLinks {
		rec.Links = append(rec.Links, LinkPair{Original: link.OriginalLink, Affiliate: link.AffiliateLink})
	}
	return rec
}
