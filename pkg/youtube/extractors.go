package youtube

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Extractor pulls a channel ID out of a handle page. Extractors are tried in
// order by the Resolver and the first hit wins.
type Extractor interface {
	Name() string
	Extract(page string) (string, bool)
}

// channelIDPattern is the shape of a channel ID embedded in page markup.
const channelIDPattern = `(UC[a-zA-Z0-9_-]{20,})`

// regexExtractor matches a single capture group against the raw page text.
type regexExtractor struct {
	name string
	re   *regexp.Regexp
}

func newRegexExtractor(name, pattern string) Extractor {
	return &regexExtractor{name: name, re: regexp.MustCompile(pattern)}
}

func (r *regexExtractor) Name() string { return r.name }

func (r *regexExtractor) Extract(page string) (string, bool) {
	m := r.re.FindStringSubmatch(page)
	if len(m) < 2 {
		return "", false
	}
	return m[1], true
}

// DefaultExtractors returns the page patterns in the order they are tried:
// the embedded "channelId" JSON field, a channel_id= query parameter, then a
// /channel/ path segment.
func DefaultExtractors() []Extractor {
	return []Extractor{
		newRegexExtractor("json_channel_id", `"channelId":"`+channelIDPattern+`"`),
		newRegexExtractor("channel_id_param", `channel_id=`+channelIDPattern),
		newRegexExtractor("channel_path", `/channel/`+channelIDPattern),
	}
}

var channelIDRe = regexp.MustCompile(`^` + channelIDPattern + `$`)

// MetaExtractor reads the channel ID from the page's microdata meta tags.
type MetaExtractor struct{}

func (MetaExtractor) Name() string { return "meta_itemprop" }

func (MetaExtractor) Extract(page string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", false
	}

	for _, sel := range []string{`meta[itemprop="channelId"]`, `meta[itemprop="identifier"]`} {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		if val, ok := node.Attr("content"); ok {
			if id := strings.TrimSpace(val); channelIDRe.MatchString(id) {
				return id, true
			}
		}
	}
	return "", false
}
