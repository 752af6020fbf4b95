package models

// ShopeeLink is a Shopee URL found inside a post's text. AffiliateLink
// stays empty until a conversion succeeds for this link; failed conversions
// never touch it.
type ShopeeLink struct {
	ID            uint   `gorm:"primaryKey"`
	PostID        uint   `gorm:"index;not null"`
	OriginalLink  string `gorm:"not null"`
	AffiliateLink string
}

// TableName overrides the table name
func (ShopeeLink) TableName() string {
	return "shopee_links"
}
