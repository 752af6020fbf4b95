package utils

import (
	"net/url"
	"path"
	"strings"
)

func GetFileNameFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return path.Base(u.Path)
}

// GetURLExtension returns the lowercased extension of the URL's path
// component, query string excluded. Empty when the path has none.
func GetURLExtension(urlStr string) string {
	return strings.ToLower(path.Ext(GetFileNameFromURL(urlStr)))
}
