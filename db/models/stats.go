package models

// Stats holds aggregate counts for observability.
type Stats struct {
	TotalPosts       int64
	Published        int64
	Unpublished      int64
	TotalShopeeLinks int64
	ConvertedLinks   int64
}
