package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"tubeharvest/internal/domain"
)

type ChannelStore struct {
	db *sqlx.DB
}

func NewChannelStore(db *sqlx.DB) *ChannelStore {
	return &ChannelStore{db: db}
}

// Upsert stores the latest profile of a channel and reports whether the
// channel was seen for the first time.
func (s *ChannelStore) Upsert(ctx context.Context, ch *domain.Channel) (bool, error) {
	links, err := json.Marshal(nonNilLinks(ch.Links))
	if err != nil {
		return false, fmt.Errorf("marshal links: %w", err)
	}

	// lib/pq sends []byte as bytea, so JSONB goes over as text
	var cms sql.NullString
	if ch.CMSAssociation != nil {
		raw, err := json.Marshal(ch.CMSAssociation)
		if err != nil {
			return false, fmt.Errorf("marshal cms association: %w", err)
		}
		cms = sql.NullString{String: string(raw), Valid: true}
	}

	query := `
		INSERT INTO channels (
			user_id, handle, display_name, description, profile_picture, banner,
			verified, oac, subscribers, views, videos, created_at, country,
			has_business_email, links, deleted, hidden, terminated, termination_reason,
			no_index, unlisted, family_safe, blocked_countries, channel_tabs,
			has_carousel, cms_association
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26
		)
		ON CONFLICT (user_id) DO UPDATE SET
			handle = EXCLUDED.handle,
			display_name = EXCLUDED.display_name,
			description = EXCLUDED.description,
			profile_picture = EXCLUDED.profile_picture,
			banner = EXCLUDED.banner,
			verified = EXCLUDED.verified,
			oac = EXCLUDED.oac,
			subscribers = EXCLUDED.subscribers,
			views = EXCLUDED.views,
			videos = EXCLUDED.videos,
			created_at = EXCLUDED.created_at,
			country = EXCLUDED.country,
			has_business_email = EXCLUDED.has_business_email,
			links = EXCLUDED.links,
			deleted = EXCLUDED.deleted,
			hidden = EXCLUDED.hidden,
			terminated = EXCLUDED.terminated,
			termination_reason = EXCLUDED.termination_reason,
			no_index = EXCLUDED.no_index,
			unlisted = EXCLUDED.unlisted,
			family_safe = EXCLUDED.family_safe,
			blocked_countries = EXCLUDED.blocked_countries,
			channel_tabs = EXCLUDED.channel_tabs,
			has_carousel = EXCLUDED.has_carousel,
			cms_association = EXCLUDED.cms_association,
			updated_at = NOW()
		RETURNING (xmax = 0)`

	var createdAt sql.NullTime
	if !ch.CreatedAt.IsZero() {
		createdAt = sql.NullTime{Time: ch.CreatedAt, Valid: true}
	}

	var inserted bool
	err = GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		ch.UserID,
		ch.Handle,
		ch.DisplayName,
		ch.Description,
		ch.ProfilePicture,
		ch.Banner,
		ch.Verified,
		ch.OAC,
		ch.Subscribers,
		ch.Views,
		ch.Videos,
		createdAt,
		ch.Country,
		ch.HasBusinessEmail,
		string(links),
		ch.Deleted,
		ch.Hidden,
		ch.Terminated,
		ch.TerminationReason,
		ch.NoIndex,
		ch.Unlisted,
		ch.FamilySafe,
		pq.Array(nonNil(ch.BlockedCountries)),
		pq.Array(nonNil(ch.ChannelTabs)),
		ch.HasCarousel,
		cms,
	).Scan(&inserted)
	if err != nil {
		return false, err
	}

	return inserted, nil
}

type channelRow struct {
	domain.Channel
	CreatedAt        sql.NullTime   `db:"created_at"`
	Links            []byte         `db:"links"`
	BlockedCountries pq.StringArray `db:"blocked_countries"`
	ChannelTabs      pq.StringArray `db:"channel_tabs"`
	CMSAssociation   []byte         `db:"cms_association"`
}

// Get returns the stored profile, or nil when the channel is unknown.
func (s *ChannelStore) Get(ctx context.Context, userID string) (*domain.Channel, error) {
	query := `
		SELECT user_id, handle, display_name, description, profile_picture, banner,
			verified, oac, subscribers, views, videos, created_at, country,
			has_business_email, links, deleted, hidden, terminated, termination_reason,
			no_index, unlisted, family_safe, blocked_countries, channel_tabs,
			has_carousel, cms_association
		FROM channels
		WHERE user_id = $1`

	var row channelRow
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &row, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	ch := row.Channel
	if row.CreatedAt.Valid {
		ch.CreatedAt = row.CreatedAt.Time.UTC()
	}
	if len(row.Links) > 0 {
		if err := json.Unmarshal(row.Links, &ch.Links); err != nil {
			return nil, fmt.Errorf("unmarshal links: %w", err)
		}
	}
	if len(row.CMSAssociation) > 0 {
		ch.CMSAssociation = &domain.ContentOwnerAssociation{}
		if err := json.Unmarshal(row.CMSAssociation, ch.CMSAssociation); err != nil {
			return nil, fmt.Errorf("unmarshal cms association: %w", err)
		}
	}
	ch.BlockedCountries = row.BlockedCountries
	ch.ChannelTabs = row.ChannelTabs
	if len(ch.Links) == 0 {
		ch.Links = nil
	}
	if len(ch.BlockedCountries) == 0 {
		ch.BlockedCountries = nil
	}
	if len(ch.ChannelTabs) == 0 {
		ch.ChannelTabs = nil
	}

	return &ch, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilLinks(l []domain.Link) []domain.Link {
	if l == nil {
		return []domain.Link{}
	}
	return l
}
