package models

// PostImage is an image URL attached to a post. Rows are removed together
// with their owning post.
type PostImage struct {
	ID        uint   `gorm:"primaryKey"`
	PostID    uint   `gorm:"index;not null"`
	ImageURL  string `gorm:"not null"`
	LocalPath string
}

// TableName overrides the table name
func (PostImage) TableName() string {
	return "post_images"
}

// PostVideo is a video URL attached to a post.
type PostVideo struct {
	ID        uint   `gorm:"primaryKey"`
	PostID    uint   `gorm:"index;not null"`
	VideoURL  string `gorm:"not null"`
	LocalPath string
}

// TableName overrides the table name
func (PostVideo) TableName() string {
	return "post_videos"
}
