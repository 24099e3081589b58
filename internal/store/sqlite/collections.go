package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/linkshelfapp/linkshelf-server/internal/domain"
	"github.com/linkshelfapp/linkshelf-server/internal/store"
)

// collectionColumns is the ordered list of columns selected in
// collection queries. Must match the scan order in scanCollection.
const collectionColumns = `id, user_id, name, slug, description, color, created_at, updated_at`

// scanCollection scans a sql.Row (or sql.Rows via its Scan method) into
// a domain.Collection. BookmarkCount is populated by list queries only.
func scanCollection(scanner interface{ Scan(dest ...any) error }) (*domain.Collection, error) {
	var c domain.Collection

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&c.ID,
		&c.UserID,
		&c.Name,
		&c.Slug,
		&c.Description,
		&c.Color,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	c.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// CreateCollection inserts a new collection.
func (s *Store) CreateCollection(ctx context.Context, c *domain.Collection) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO collections (id, user_id, name, slug, description, color, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID,
		c.UserID,
		c.Name,
		c.Slug,
		c.Description,
		c.Color,
		formatTime(c.CreatedAt),
		formatTime(c.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert collection: %w", err)
	}
	return nil
}

// GetCollection retrieves one collection owned by the user.
// Returns store.ErrNotFound if it does not exist or belongs to someone else.
func (s *Store) GetCollection(ctx context.Context, userID, collectionID string) (*domain.Collection, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+collectionColumns+` FROM collections WHERE id = ? AND user_id = ?`,
		collectionID, userID)

	c, err := scanCollection(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListCollections returns the user's collections ordered by name, each
// with its bookmark count.
func (s *Store) ListCollections(ctx context.Context, userID string) ([]*domain.Collection, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.user_id, c.name, c.slug, c.description, c.color,
			c.created_at, c.updated_at, COUNT(b.id)
		FROM collections c
		LEFT JOIN bookmarks b ON b.collection_id = c.id
		WHERE c.user_id = ?
		GROUP BY c.id
		ORDER BY c.name ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("query collections: %w", err)
	}
	defer rows.Close()

	collections := []*domain.Collection{}
	for rows.Next() {
		var c domain.Collection
		var createdAt, updatedAt string
		err := rows.Scan(
			&c.ID,
			&c.UserID,
			&c.Name,
			&c.Slug,
			&c.Description,
			&c.Color,
			&createdAt,
			&updatedAt,
			&c.BookmarkCount,
		)
		if err != nil {
			return nil, err
		}
		c.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, err
		}
		c.UpdatedAt, err = parseTime(updatedAt)
		if err != nil {
			return nil, err
		}
		collections = append(collections, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return collections, nil
}

// UpdateCollection persists changes to an existing collection.
// Returns store.ErrNotFound if the user has no such collection.
func (s *Store) UpdateCollection(ctx context.Context, c *domain.Collection) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE collections
		SET name = ?, slug = ?, description = ?, color = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		c.Name,
		c.Slug,
		c.Description,
		c.Color,
		formatTime(c.UpdatedAt),
		c.ID,
		c.UserID,
	)
	if err != nil {
		return fmt.Errorf("update collection: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteCollection removes a collection and detaches its bookmarks in
// one transaction. The bookmarks survive, uncollected.
func (s *Store) DeleteCollection(ctx context.Context, userID, collectionID string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var owner string
		err := tx.QueryRowContext(ctx,
			`SELECT user_id FROM collections WHERE id = ?`, collectionID).Scan(&owner)
		if errors.Is(err, sql.ErrNoRows) || (err == nil && owner != userID) {
			return store.ErrNotFound
		}
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE bookmarks SET collection_id = NULL WHERE collection_id = ?`, collectionID); err != nil {
			return fmt.Errorf("detach bookmarks: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM collections WHERE id = ? AND user_id = ?`, collectionID, userID); err != nil {
			return fmt.Errorf("delete collection: %w", err)
		}
		return nil
	})
}
