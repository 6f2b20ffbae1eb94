package postgres

import (
	"context"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"tubeharvest/internal/domain"
)

const videoColumns = 7

type VideoStore struct {
	db *sqlx.DB
}

func NewVideoStore(db *sqlx.DB) *VideoStore {
	return &VideoStore{db: db}
}

// UpsertBatch stores one page of uploads and returns how many of them were
// not stored before. Later duplicates of a video id within the batch win.
func (s *VideoStore) UpsertBatch(ctx context.Context, userID string, videos []domain.Video) (int, error) {
	videos = dedupeVideos(videos)
	if len(videos) == 0 {
		return 0, nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO videos (
		video_id, user_id, views, hidden_view_count, badge, length_seconds, approx_published_at
	) VALUES `)
	args := make([]any, 0, len(videos)*videoColumns)

	for i, v := range videos {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(")
		for j := 0; j < videoColumns; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("$")
			sb.WriteString(strconv.Itoa(i*videoColumns + j + 1))
		}
		sb.WriteString(")")
		args = append(args, v.VideoID, userID, v.Views, v.HiddenViewCount, v.Badge, v.LengthSeconds, v.ApproxPublishedAt)
	}
	// the first sighting carries the most precise relative date
	sb.WriteString(`
		ON CONFLICT (video_id) DO UPDATE SET
			views = EXCLUDED.views,
			hidden_view_count = EXCLUDED.hidden_view_count,
			badge = EXCLUDED.badge,
			length_seconds = COALESCE(EXCLUDED.length_seconds, videos.length_seconds),
			approx_published_at = COALESCE(videos.approx_published_at, EXCLUDED.approx_published_at),
			updated_at = NOW()
		RETURNING (xmax = 0)`)

	rows, err := GetExecutor(ctx, s.db).QueryxContext(ctx, sb.String(), args...)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	inserted := 0
	for rows.Next() {
		var isNew bool
		if err := rows.Scan(&isNew); err != nil {
			return 0, err
		}
		if isNew {
			inserted++
		}
	}

	return inserted, rows.Err()
}

// ListByChannel returns up to limit stored uploads, newest first.
func (s *VideoStore) ListByChannel(ctx context.Context, userID string, limit int) ([]domain.Video, error) {
	query := `
		SELECT video_id, views, hidden_view_count, badge, length_seconds, approx_published_at
		FROM videos
		WHERE user_id = $1
		ORDER BY approx_published_at DESC NULLS LAST, video_id
		LIMIT $2`

	var videos []domain.Video
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &videos, query, userID, limit)
	return videos, err
}

func dedupeVideos(videos []domain.Video) []domain.Video {
	index := make(map[string]int, len(videos))
	out := make([]domain.Video, 0, len(videos))
	for _, v := range videos {
		if i, ok := index[v.VideoID]; ok {
			out[i] = v
			continue
		}
		index[v.VideoID] = len(out)
		out = append(out, v)
	}
	return out
}
