package sqlite

import (
	"fmt"
	"strings"

	"github.com/linkshelfapp/linkshelf-server/internal/search"
	"github.com/linkshelfapp/linkshelf-server/internal/store"
)

// compiledList is the SQL form of a store.ListQuery. Everything
// user-supplied travels in args; the text itself only ever contains
// fragments chosen from fixed enums. Join and WHERE placeholders bind
// positionally, so their args are kept apart until sql() concatenates
// them in the order the text emits them.
type compiledList struct {
	joins     []string
	where     []string
	joinArgs  []any
	whereArgs []any
	orderBy   string
}

// dateColumn maps a parsed date field to its strftime extraction.
var dateColumn = map[search.DateField]string{
	search.FieldMonth: "%m",
	search.FieldDay:   "%d",
	search.FieldYear:  "%Y",
}

// compileListQuery turns a normalized ListQuery into SQL fragments.
//
// Search text feeds four OR channels: the full-text index (prefix
// terms), collection-name substring, tag-name substring, and any date
// fragments the text contains (those AND together inside the channel).
// When no token survives the full-text tokenizer the whole search block
// is skipped and the listing is unfiltered, matching how the feature
// has always behaved.
func compileListQuery(userID string, q store.ListQuery) compiledList {
	c := compiledList{
		joins:     []string{"LEFT JOIN collections c ON b.collection_id = c.id"},
		where:     []string{"b.user_id = ?"},
		whereArgs: []any{userID},
	}

	match := search.PrefixQuery(q.Search)
	if match != "" {
		c.joins = append(c.joins, `LEFT JOIN (
			SELECT rowid AS fts_rowid, bm25(bookmarks_fts) AS rank
			FROM bookmarks_fts WHERE bookmarks_fts MATCH ?
		) f ON f.fts_rowid = b.rowid`)
		c.joinArgs = append(c.joinArgs, match)

		like := "%" + search.LikeTerm(q.Search) + "%"
		ors := []string{
			"f.fts_rowid IS NOT NULL",
			`LOWER(c.name) LIKE ? ESCAPE '\'`,
			`b.id IN (
				SELECT bt.bookmark_id FROM bookmark_tags bt
				JOIN tags t ON bt.tag_id = t.id
				WHERE LOWER(t.name) LIKE ? ESCAPE '\'
			)`,
		}
		orArgs := []any{like, like}

		if parts := search.ParseDateParts(q.Search); len(parts) > 0 {
			conds := make([]string, 0, len(parts))
			for _, p := range parts {
				conds = append(conds, fmt.Sprintf(
					"CAST(strftime('%s', b.created_at) AS INTEGER) = ?", dateColumn[p.Field]))
				orArgs = append(orArgs, p.Value)
			}
			ors = append(ors, "("+strings.Join(conds, " AND ")+")")
		}

		c.where = append(c.where, "("+strings.Join(ors, " OR ")+")")
		c.whereArgs = append(c.whereArgs, orArgs...)
	}

	if q.CollectionID != "" {
		c.where = append(c.where, "b.collection_id = ?")
		c.whereArgs = append(c.whereArgs, q.CollectionID)
	}

	if len(q.Tags) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(q.Tags)), ", ")
		c.where = append(c.where, `b.id IN (
			SELECT bt2.bookmark_id FROM bookmark_tags bt2
			JOIN tags t2 ON bt2.tag_id = t2.id
			WHERE t2.name IN (`+placeholders+`)
		)`)
		for _, tag := range q.Tags {
			c.whereArgs = append(c.whereArgs, tag)
		}
	}

	switch q.Sort {
	case store.SortDateAsc:
		c.orderBy = "b.created_at ASC"
	case store.SortAlphaAsc:
		c.orderBy = "b.title ASC"
	case store.SortAlphaDesc:
		c.orderBy = "b.title DESC"
	case store.SortVisited:
		c.orderBy = "b.visit_count DESC, b.created_at DESC"
	default:
		if match != "" {
			// Matches first by bm25 (lower is better), everything that
			// arrived via the other OR channels after, newest first.
			c.orderBy = "(f.rank IS NULL) ASC, f.rank ASC, b.created_at DESC"
		} else {
			c.orderBy = "b.created_at DESC"
		}
	}

	return c
}

// sql assembles the final SELECT with pagination bound as parameters.
// Args follow the placeholder order in the emitted text: joins first,
// then the WHERE clause, then LIMIT/OFFSET.
func (c compiledList) sql(limit, offset int) (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(bookmarkColumns)
	sb.WriteString(" FROM bookmarks b\n")
	sb.WriteString(strings.Join(c.joins, "\n"))
	sb.WriteString("\nWHERE ")
	sb.WriteString(strings.Join(c.where, " AND "))
	sb.WriteString("\nORDER BY ")
	sb.WriteString(c.orderBy)
	sb.WriteString("\nLIMIT ? OFFSET ?")

	args := make([]any, 0, len(c.joinArgs)+len(c.whereArgs)+2)
	args = append(args, c.joinArgs...)
	args = append(args, c.whereArgs...)
	args = append(args, limit, offset)
	return sb.String(), args
}
