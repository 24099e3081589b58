package memory

import (
	"sort"
	"strings"

	"github.com/linkshelfapp/linkshelf-server/internal/domain"
	"github.com/linkshelfapp/linkshelf-server/internal/search"
	"github.com/linkshelfapp/linkshelf-server/internal/store"
)

// listFilter evaluates a store.ListQuery against bookmarks in memory,
// mirroring the OR channels the sqlite query compiler produces: a
// prefix match over title/description/notes, collection-name substring,
// tag-name substring, and date fragments ANDed as one channel. When no
// search token survives the tokenizer the search block is skipped and
// only the structural filters apply.
type listFilter struct {
	q      store.ListQuery
	tokens []string
	like   string
	dates  []search.DatePart
}

func newListFilter(q store.ListQuery) *listFilter {
	f := &listFilter{q: q}
	for _, tok := range search.Tokens(q.Search) {
		f.tokens = append(f.tokens, strings.ToLower(tok))
	}
	if len(f.tokens) > 0 {
		f.like = strings.ToLower(strings.TrimSpace(q.Search))
		f.dates = search.ParseDateParts(q.Search)
	}
	return f
}

func (f *listFilter) matches(s *Store, b *domain.Bookmark) bool {
	if f.q.CollectionID != "" && b.CollectionID != f.q.CollectionID {
		return false
	}
	if len(f.q.Tags) > 0 && !hasAnyTag(b.Tags, f.q.Tags) {
		return false
	}
	if len(f.tokens) == 0 {
		return true
	}
	return f.textMatch(b) || f.collectionMatch(s, b) || f.tagMatch(b) || f.dateMatch(b)
}

// textMatch requires every token to prefix-match some word of the
// bookmark's title, description, or notes.
func (f *listFilter) textMatch(b *domain.Bookmark) bool {
	words := splitWords(b.Title + " " + b.Description + " " + b.Notes)
	for _, tok := range f.tokens {
		if !anyHasPrefix(words, tok) {
			return false
		}
	}
	return true
}

func (f *listFilter) collectionMatch(s *Store, b *domain.Bookmark) bool {
	if b.CollectionID == "" {
		return false
	}
	coll, ok := s.collections[b.CollectionID]
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(coll.Name), f.like)
}

func (f *listFilter) tagMatch(b *domain.Bookmark) bool {
	for _, tag := range b.Tags {
		if strings.Contains(strings.ToLower(tag), f.like) {
			return true
		}
	}
	return false
}

func (f *listFilter) dateMatch(b *domain.Bookmark) bool {
	if len(f.dates) == 0 {
		return false
	}
	created := b.CreatedAt.UTC()
	for _, p := range f.dates {
		var got int
		switch p.Field {
		case search.FieldMonth:
			got = int(created.Month())
		case search.FieldDay:
			got = created.Day()
		case search.FieldYear:
			got = created.Year()
		}
		if got != p.Value {
			return false
		}
	}
	return true
}

// sort orders matched bookmarks in place. With a default sort and an
// active search, full-text matches come first, recency as tiebreak.
func (f *listFilter) sort(bookmarks []*domain.Bookmark) {
	var less func(a, b *domain.Bookmark) bool
	switch f.q.Sort {
	case store.SortDateAsc:
		less = func(a, b *domain.Bookmark) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case store.SortAlphaAsc:
		less = func(a, b *domain.Bookmark) bool { return a.Title < b.Title }
	case store.SortAlphaDesc:
		less = func(a, b *domain.Bookmark) bool { return a.Title > b.Title }
	case store.SortVisited:
		less = func(a, b *domain.Bookmark) bool {
			if a.VisitCount != b.VisitCount {
				return a.VisitCount > b.VisitCount
			}
			return a.CreatedAt.After(b.CreatedAt)
		}
	default:
		if len(f.tokens) > 0 {
			less = func(a, b *domain.Bookmark) bool {
				am, bm := f.textMatch(a), f.textMatch(b)
				if am != bm {
					return am
				}
				return a.CreatedAt.After(b.CreatedAt)
			}
		} else {
			less = func(a, b *domain.Bookmark) bool { return a.CreatedAt.After(b.CreatedAt) }
		}
	}
	sort.SliceStable(bookmarks, func(i, j int) bool { return less(bookmarks[i], bookmarks[j]) })
}

func hasAnyTag(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

func splitWords(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})
}

func anyHasPrefix(words []string, prefix string) bool {
	for _, w := range words {
		if strings.HasPrefix(w, prefix) {
			return true
		}
	}
	return false
}
