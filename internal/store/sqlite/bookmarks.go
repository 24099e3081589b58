package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/linkshelfapp/linkshelf-server/internal/domain"
	"github.com/linkshelfapp/linkshelf-server/internal/id"
	"github.com/linkshelfapp/linkshelf-server/internal/store"
)

// bookmarkColumns is the ordered list of columns selected in bookmark
// queries. Must match the scan order in scanBookmark. The collection
// name rides along from the LEFT JOIN on collections c.
const bookmarkColumns = `b.id, b.user_id, b.url, b.title, b.description, b.notes, b.favicon_url,
	b.collection_id, c.name, b.visit_count, b.last_visited_at, b.created_at, b.updated_at`

// scanBookmark scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.Bookmark. Tags are loaded separately.
func scanBookmark(scanner interface{ Scan(dest ...any) error }) (*domain.Bookmark, error) {
	var b domain.Bookmark

	var (
		collectionID   sql.NullString
		collectionName sql.NullString
		lastVisitedAt  sql.NullString
		createdAt      string
		updatedAt      string
	)

	err := scanner.Scan(
		&b.ID,
		&b.UserID,
		&b.URL,
		&b.Title,
		&b.Description,
		&b.Notes,
		&b.FaviconURL,
		&collectionID,
		&collectionName,
		&b.VisitCount,
		&lastVisitedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.CollectionID = collectionID.String
	b.CollectionName = collectionName.String

	b.LastVisitedAt, err = parseNullableTime(lastVisitedAt)
	if err != nil {
		return nil, err
	}
	b.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	b.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

// CreateBookmark inserts a bookmark and its tag links in one transaction.
// Tag names are upserted per user; existing tags are reused. Returns
// store.ErrAlreadyExists when the user already saved this URL.
func (s *Store) CreateBookmark(ctx context.Context, b *domain.Bookmark, tags []string) error {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO bookmarks (id, user_id, url, title, description, notes, favicon_url,
				collection_id, visit_count, last_visited_at, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			b.ID,
			b.UserID,
			b.URL,
			b.Title,
			b.Description,
			b.Notes,
			b.FaviconURL,
			nullString(b.CollectionID),
			b.VisitCount,
			nullTimeString(b.LastVisitedAt),
			formatTime(b.CreatedAt),
			formatTime(b.UpdatedAt),
		)
		if err != nil {
			if strings.Contains(err.Error(), "UNIQUE constraint failed") {
				return store.ErrAlreadyExists
			}
			return fmt.Errorf("insert bookmark: %w", err)
		}

		return s.replaceBookmarkTags(ctx, tx, b.UserID, b.ID, tags)
	})
	if err != nil {
		return err
	}

	b.Tags = tagsOrEmpty(tags)
	return nil
}

// GetBookmark retrieves one bookmark owned by the user.
// Returns store.ErrNotFound if it does not exist or belongs to someone else.
func (s *Store) GetBookmark(ctx context.Context, userID, bookmarkID string) (*domain.Bookmark, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+bookmarkColumns+`
		FROM bookmarks b
		LEFT JOIN collections c ON b.collection_id = c.id
		WHERE b.id = ? AND b.user_id = ?`,
		bookmarkID, userID)

	b, err := scanBookmark(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.attachTags(ctx, []*domain.Bookmark{b}); err != nil {
		return nil, err
	}
	return b, nil
}

// GetBookmarkByURL retrieves the user's bookmark for an exact URL.
// Returns store.ErrNotFound when the URL is not saved.
func (s *Store) GetBookmarkByURL(ctx context.Context, userID, url string) (*domain.Bookmark, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+bookmarkColumns+`
		FROM bookmarks b
		LEFT JOIN collections c ON b.collection_id = c.id
		WHERE b.user_id = ? AND b.url = ?`,
		userID, url)

	b, err := scanBookmark(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.attachTags(ctx, []*domain.Bookmark{b}); err != nil {
		return nil, err
	}
	return b, nil
}

// ListBookmarks returns one page of the user's bookmarks per the query
// descriptor. The page total is the user's overall bookmark count, not
// the filtered match count (see store.BookmarkPage).
func (s *Store) ListBookmarks(ctx context.Context, userID string, q store.ListQuery) (*store.BookmarkPage, error) {
	q.Normalize()

	compiled := compileListQuery(userID, q)
	query, args := compiled.sql(q.Limit, q.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query bookmarks: %w", err)
	}
	defer rows.Close()

	bookmarks := []*domain.Bookmark{}
	for rows.Next() {
		b, err := scanBookmark(rows)
		if err != nil {
			return nil, err
		}
		bookmarks = append(bookmarks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.attachTags(ctx, bookmarks); err != nil {
		return nil, err
	}

	var total int
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookmarks WHERE user_id = ?`, userID).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("count bookmarks: %w", err)
	}

	return &store.BookmarkPage{
		Bookmarks: bookmarks,
		Total:     total,
		Limit:     q.Limit,
		Offset:    q.Offset,
	}, nil
}

// UpdateBookmark persists changes to a bookmark and, when tags is
// non-nil, replaces its tag set in the same transaction. A nil tags
// slice leaves the existing links alone; an empty one clears them.
func (s *Store) UpdateBookmark(ctx context.Context, b *domain.Bookmark, tags []string) error {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE bookmarks
			SET url = ?, title = ?, description = ?, notes = ?, favicon_url = ?,
				collection_id = ?, updated_at = ?
			WHERE id = ? AND user_id = ?`,
			b.URL,
			b.Title,
			b.Description,
			b.Notes,
			b.FaviconURL,
			nullString(b.CollectionID),
			formatTime(b.UpdatedAt),
			b.ID,
			b.UserID,
		)
		if err != nil {
			if strings.Contains(err.Error(), "UNIQUE constraint failed") {
				return store.ErrAlreadyExists
			}
			return fmt.Errorf("update bookmark: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return store.ErrNotFound
		}

		if tags == nil {
			return nil
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM bookmark_tags WHERE bookmark_id = ?`, b.ID); err != nil {
			return fmt.Errorf("clear bookmark_tags: %w", err)
		}
		return s.replaceBookmarkTags(ctx, tx, b.UserID, b.ID, tags)
	})
	if err != nil {
		return err
	}

	if tags != nil {
		b.Tags = tagsOrEmpty(tags)
	}
	return nil
}

// DeleteBookmark removes a bookmark and its tag links.
// Returns store.ErrNotFound if the user has no such bookmark.
func (s *Store) DeleteBookmark(ctx context.Context, userID, bookmarkID string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		// Ownership check before touching the link table.
		var owner string
		err := tx.QueryRowContext(ctx,
			`SELECT user_id FROM bookmarks WHERE id = ?`, bookmarkID).Scan(&owner)
		if errors.Is(err, sql.ErrNoRows) || (err == nil && owner != userID) {
			return store.ErrNotFound
		}
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM bookmark_tags WHERE bookmark_id = ?`, bookmarkID); err != nil {
			return fmt.Errorf("delete bookmark_tags: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM bookmarks WHERE id = ? AND user_id = ?`, bookmarkID, userID); err != nil {
			return fmt.Errorf("delete bookmark: %w", err)
		}
		return nil
	})
}

// RecordVisit atomically bumps the visit counter and stamps the visit
// time, returning the updated bookmark.
func (s *Store) RecordVisit(ctx context.Context, userID, bookmarkID string) (*domain.Bookmark, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE bookmarks
		SET visit_count = visit_count + 1, last_visited_at = ?
		WHERE id = ? AND user_id = ?`,
		formatTime(time.Now()),
		bookmarkID,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("record visit: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, store.ErrNotFound
	}

	return s.GetBookmark(ctx, userID, bookmarkID)
}

// replaceBookmarkTags upserts each tag for the user and links it to the
// bookmark. Callers clear stale links first when replacing.
func (s *Store) replaceBookmarkTags(ctx context.Context, tx *sql.Tx, userID, bookmarkID string, tags []string) error {
	now := formatTime(time.Now())

	for _, name := range tags {
		tagID, err := upsertTagTx(ctx, tx, userID, name)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO bookmark_tags (bookmark_id, tag_id, created_at)
			VALUES (?, ?, ?)
			ON CONFLICT (bookmark_id, tag_id) DO NOTHING`,
			bookmarkID,
			tagID,
			now,
		)
		if err != nil {
			return fmt.Errorf("link tag %q: %w", name, err)
		}
	}
	return nil
}

// upsertTagTx finds or creates the user's tag for a normalized name and
// returns its ID. The unique (user_id, name) index makes concurrent
// upserts converge on one row.
func upsertTagTx(ctx context.Context, tx *sql.Tx, userID, name string) (string, error) {
	tagID, err := id.Generate("tag")
	if err != nil {
		return "", fmt.Errorf("generate tag id: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO tags (id, user_id, name, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, name) DO NOTHING`,
		tagID,
		userID,
		name,
		formatTime(time.Now()),
	)
	if err != nil {
		return "", fmt.Errorf("upsert tag %q: %w", name, err)
	}

	var existingID string
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM tags WHERE user_id = ? AND name = ?`, userID, name).Scan(&existingID)
	if err != nil {
		return "", fmt.Errorf("select tag %q: %w", name, err)
	}
	return existingID, nil
}

// attachTags loads the distinct tag names for each bookmark, sorted by
// name. Bookmarks without tags get an empty slice, never nil.
func (s *Store) attachTags(ctx context.Context, bookmarks []*domain.Bookmark) error {
	for _, b := range bookmarks {
		b.Tags = []string{}
	}
	if len(bookmarks) == 0 {
		return nil
	}

	byID := make(map[string]*domain.Bookmark, len(bookmarks))
	placeholders := make([]string, 0, len(bookmarks))
	args := make([]any, 0, len(bookmarks))
	for _, b := range bookmarks {
		byID[b.ID] = b
		placeholders = append(placeholders, "?")
		args = append(args, b.ID)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT bt.bookmark_id, t.name
		FROM bookmark_tags bt
		JOIN tags t ON bt.tag_id = t.id
		WHERE bt.bookmark_id IN (`+strings.Join(placeholders, ", ")+`)
		ORDER BY t.name ASC`,
		args...)
	if err != nil {
		return fmt.Errorf("query bookmark tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bookmarkID, name string
		if err := rows.Scan(&bookmarkID, &name); err != nil {
			return err
		}
		if b, ok := byID[bookmarkID]; ok {
			b.Tags = append(b.Tags, name)
		}
	}
	return rows.Err()
}

// tagsOrEmpty keeps the "tags are never nil" read invariant.
func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
