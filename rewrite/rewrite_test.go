package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplaceShopeeLinks(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		oldLinks []string
		newLinks []string
		want     string
	}{
		{
			name:     "ellipsis after link is consumed",
			content:  "Buy now s.shopee.vn/abc123… great deal",
			oldLinks: []string{"s.shopee.vn/abc123"},
			newLinks: []string{"https://full.link/xyz"},
			want:     "Buy now https://full.link/xyz great deal",
		},
		{
			name:     "literal periods after link are consumed",
			content:  "Check s.shopee.vn/9AbC12... now",
			oldLinks: []string{"s.shopee.vn/9AbC12"},
			newLinks: []string{"https://s.shopee.vn/9XyZ"},
			want:     "Check https://s.shopee.vn/9XyZ now",
		},
		{
			name:     "bare link without marker",
			content:  "deal s.shopee.vn/abc here",
			oldLinks: []string{"s.shopee.vn/abc"},
			newLinks: []string{"https://aff.example/1"},
			want:     "deal https://aff.example/1 here",
		},
		{
			name:     "no links in pairing returns content untouched",
			content:  "no links here",
			oldLinks: nil,
			newLinks: nil,
			want:     "no links here",
		},
		{
			name:     "empty new links returns content untouched",
			content:  "text  with   spacing",
			oldLinks: []string{"s.shopee.vn/abc"},
			newLinks: nil,
			want:     "text  with   spacing",
		},
		{
			name:     "two occurrences of the same link both replaced",
			content:  "first s.shopee.vn/abc123 then again s.shopee.vn/abc123 done",
			oldLinks: []string{"s.shopee.vn/abc123"},
			newLinks: []string{"https://aff.example/1"},
			want:     "first https://aff.example/1 then again https://aff.example/1 done",
		},
		{
			name:     "unresolved pairing leaves match in place",
			content:  "deal s.shopee.vn/abc123 here",
			oldLinks: []string{"s.shopee.vn/abc123"},
			newLinks: []string{""},
			want:     "deal s.shopee.vn/abc123 here",
		},
		{
			name:     "no match normalizes whitespace only",
			content:  "  plain   text\n\nwith gaps  ",
			oldLinks: []string{"s.shopee.vn/abc"},
			newLinks: []string{"https://aff.example/1"},
			want:     "plain text with gaps",
		},
		{
			name:     "stored original contains the shortened rendering",
			content:  "sale s.shopee.vn/7kQw… today",
			oldLinks: []string{"https://s.shopee.vn/7kQwLongerPath"},
			newLinks: []string{"https://aff.example/full"},
			want:     "sale https://aff.example/full today",
		},
		{
			name:     "skips unresolved pairing in favor of a resolved one",
			content:  "combo s.shopee.vn/abc here",
			oldLinks: []string{"s.shopee.vn/abc", "s.shopee.vn/abc"},
			newLinks: []string{"", "https://aff.example/2"},
			want:     "combo https://aff.example/2 here",
		},
		{
			name:     "distinct links each use their own pairing",
			content:  "a s.shopee.vn/first b s.shopee.vn/second c",
			oldLinks: []string{"s.shopee.vn/first", "s.shopee.vn/second"},
			newLinks: []string{"https://aff.example/1", "https://aff.example/2"},
			want:     "a https://aff.example/1 b https://aff.example/2 c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReplaceShopeeLinks(tt.content, tt.oldLinks, tt.newLinks)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReplaceShopeeLinksConsumedMarkerLeavesSingleSpace(t *testing.T) {
	got := ReplaceShopeeLinks(
		"Buy now s.shopee.vn/abc123…   great deal",
		[]string{"s.shopee.vn/abc123"},
		[]string{"https://full.link/xyz"},
	)
	assert.Equal(t, "Buy now https://full.link/xyz great deal", got)
}
