package validation

import "regexp"

// Per-platform channel URL patterns. A URL must match its declared platform,
// not merely be a well-formed URL.
var (
	instagramURLPattern = regexp.MustCompile(`^https://(www\.)?instagram\.com/[a-zA-Z0-9._]+/?$`)
	youtubeURLPattern   = regexp.MustCompile(`^https://(www\.)?youtube\.com/((@|c/)[a-zA-Z0-9._-]+)/?$`)
	naverBlogURLPattern = regexp.MustCompile(`^https://(blog|m\.blog)\.naver\.com/[a-zA-Z0-9_-]+/?.*$`)
	threadsURLPattern   = regexp.MustCompile(`^https://(www\.)?threads\.net/@[a-zA-Z0-9._]+/?$`)
)

func IsChannelURLValid(platform, url string) bool {
	switch platform {
	case "instagram":
		return instagramURLPattern.MatchString(url)
	case "youtube":
		return youtubeURLPattern.MatchString(url)
	case "naver":
		return naverBlogURLPattern.MatchString(url)
	case "threads":
		return threadsURLPattern.MatchString(url)
	default:
		return false
	}
}
