// Package query manages the persistence and retrieval of previously used
// recording URLs, so repeat downloads can be completed from a partial input.
package query

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"

	"github.com/zoomgrab-cli/zoomgrab/filesystem"
	"github.com/zoomgrab-cli/zoomgrab/key"
	"github.com/zoomgrab-cli/zoomgrab/where"
)

type urlRecord struct {
	Rank  int    `json:"rank"`
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

var cacher = gache.New[map[string]*urlRecord](
	&gache.Options{
		Path:       where.Queries(),
		FileSystem: &filesystem.GacheFs{},
	},
)

var suggestionCache = make(map[string][]*urlRecord)

// Remember records a recording URL in the persistent history or increments
// its popularity rank. The title, when known, is kept alongside for display.
// Share-link tokens are case-sensitive, so the URL is stored as given.
func Remember(url, title string, weight int) error {
	url = strings.TrimSpace(url)
	cached, expired, err := cacher.Get()
	if expired || err != nil || cached == nil {
		cached = make(map[string]*urlRecord)
	}

	if record, ok := cached[url]; ok {
		record.Rank += weight
		if title != "" {
			record.Title = title
		}
	} else {
		cached[url] = &urlRecord{Rank: weight, URL: url, Title: title}
	}

	return cacher.Set(cached)
}

// Suggest returns the most relevant historical URL for a partial input.
func Suggest(q string) mo.Option[string] {
	suggestions := SuggestMany(q)
	if len(suggestions) == 0 {
		return mo.None[string]()
	}
	return mo.Some(suggestions[0])
}

// SuggestMany returns historical URLs matching the partial input, sorted by
// popularity rank. Matching is fuzzy, so a meeting id fragment or a piece of
// the share path is enough.
func SuggestMany(q string) []string {
	if !viper.GetBool(key.SearchShowURLSuggestions) {
		return []string{}
	}

	q = sanitize(q)
	var records []*urlRecord

	if prev, ok := suggestionCache[q]; ok {
		records = prev
	} else {
		cached, expired, err := cacher.Get()
		if err != nil || expired || cached == nil {
			return []string{}
		}

		// Matching is case-insensitive, but the URL itself stays verbatim.
		for _, record := range cached {
			if fuzzy.Match(q, strings.ToLower(record.URL)) || fuzzy.Match(q, strings.ToLower(record.Title)) {
				records = append(records, record)
			}
		}

		slices.SortFunc(records, func(a, b *urlRecord) int {
			return b.Rank - a.Rank // Descending rank
		})

		suggestionCache[q] = records
	}

	return lo.Map(records, func(r *urlRecord, _ int) string {
		return r.URL
	})
}

func sanitize(q string) string {
	return strings.TrimSpace(strings.ToLower(q))
}
