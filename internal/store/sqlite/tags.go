package sqlite

import (
	"context"
	"fmt"

	"github.com/linkshelfapp/linkshelf-server/internal/domain"
)

// ListUsedTags returns the user's tags that are attached to at least one
// bookmark, most used first with name as the tiebreak. Tags whose last
// bookmark was deleted drop out of the listing but keep their row, so
// re-tagging later reuses the same identity.
func (s *Store) ListUsedTags(ctx context.Context, userID string) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.user_id, t.name, t.created_at, COUNT(bt.bookmark_id) AS uses
		FROM tags t
		LEFT JOIN bookmark_tags bt ON bt.tag_id = t.id
		WHERE t.user_id = ?
		GROUP BY t.id
		HAVING uses > 0
		ORDER BY uses DESC, t.name ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	tags := []*domain.Tag{}
	for rows.Next() {
		var t domain.Tag
		var createdAt string
		err := rows.Scan(&t.ID, &t.UserID, &t.Name, &createdAt, &t.BookmarkCount)
		if err != nil {
			return nil, err
		}
		t.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, err
		}
		tags = append(tags, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tags, nil
}
