package feeds

import (
	"strings"

	"github.com/all-man/site-feeds/internal/domain"
)

// AtomNamespace is the namespace every Atom element lookup is qualified with.
const AtomNamespace = "http://www.w3.org/2005/Atom"

// ParseAtom extracts up to limit entries from an Atom document such as the
// YouTube videos feed.
func ParseAtom(data []byte, limit int) ([]domain.FeedEntry, error) {
	root, err := parseTree(data)
	if err != nil {
		return nil, err
	}

	entries := []domain.FeedEntry{}
	for _, e := range root.childrenNamed(AtomNamespace, "entry") {
		if len(entries) >= limit {
			break
		}

		link := ""
		if l := e.child(AtomNamespace, "link"); l != nil {
			href, _ := l.attr("href")
			link = strings.TrimSpace(href)
		}

		entries = append(entries, domain.FeedEntry{
			Title: e.childText(AtomNamespace, "title"),
			Link:  link,
			Date:  e.childText(AtomNamespace, "published"),
			Thumb: findThumbnail(e),
		})
	}
	return entries, nil
}

// findThumbnail returns the url attribute of the first element under entry
// (entry included) whose local name ends in "thumbnail", in any namespace.
func findThumbnail(entry *element) string {
	thumb := ""
	entry.walk(func(el *element) bool {
		if !strings.HasSuffix(el.name.Local, "thumbnail") {
			return true
		}
		if u, ok := el.attr("url"); ok {
			thumb = u
			return false
		}
		return true
	})
	return thumb
}
