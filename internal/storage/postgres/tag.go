package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type TagStore struct {
	db *sqlx.DB
}

func NewTagStore(db *sqlx.DB) *TagStore {
	return &TagStore{db: db}
}

// ReplaceForChannel makes tags the complete tag set of the channel.
func (s *TagStore) ReplaceForChannel(ctx context.Context, userID string, tags []string) error {
	exec := GetExecutor(ctx, s.db)

	_, err := exec.ExecContext(ctx, "DELETE FROM channel_tags WHERE user_id = $1", userID)
	if err != nil {
		return err
	}

	if len(tags) == 0 {
		return nil
	}

	_, err = exec.ExecContext(ctx,
		`INSERT INTO channel_tags (user_id, tag)
		SELECT $1, t FROM unnest($2::text[]) AS t
		ON CONFLICT DO NOTHING`,
		userID, pq.Array(tags),
	)
	return err
}

func (s *TagStore) GetByChannel(ctx context.Context, userID string) ([]string, error) {
	var tags []string
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &tags,
		"SELECT tag FROM channel_tags WHERE user_id = $1 ORDER BY tag", userID)
	return tags, err
}
