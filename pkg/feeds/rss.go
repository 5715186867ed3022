package feeds

import (
	"github.com/all-man/site-feeds/internal/domain"
)

// DefaultLimit is the item cap used when callers have no preference.
const DefaultLimit = 5

// ParseRSS extracts up to limit items from an RSS 2.0 document. A document
// without a <channel> yields an empty list rather than an error; malformed
// XML is an error.
func ParseRSS(data []byte, limit int) ([]domain.FeedItem, error) {
	root, err := parseTree(data)
	if err != nil {
		return nil, err
	}

	items := []domain.FeedItem{}
	channel := root.child("", "channel")
	if channel == nil {
		return items, nil
	}

	for _, it := range channel.childrenNamed("", "item") {
		if len(items) >= limit {
			break
		}
		items = append(items, domain.FeedItem{
			Title: it.childText("", "title"),
			Link:  it.childText("", "link"),
			Date:  it.childText("", "pubDate"),
		})
	}
	return items, nil
}
