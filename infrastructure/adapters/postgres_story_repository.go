package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Xalars/fairytales.uz-sub000/application/ports/outbound"
	"github.com/Xalars/fairytales.uz-sub000/domain"
)

const sharedStoryColumns = "id, title, content, language, audio_url, image_url, cover_image_url, like_count, created_at, updated_at"

// postgresStoryRepository addresses the three story tables. The table name
// always comes from StoryKind.TableName, never from request input, so
// interpolating it into SQL is safe.
type postgresStoryRepository struct {
	logger outbound.LoggerPort
	pool   *pgxpool.Pool
}

func NewPostgresStoryRepository(logger outbound.LoggerPort, pool *pgxpool.Pool) outbound.StoryRepositoryPort {
	return &postgresStoryRepository{
		logger: logger,
		pool:   pool,
	}
}

func (r *postgresStoryRepository) UpdateAudioURL(ctx context.Context, kind domain.StoryKind, storyID string, url string) error {
	return r.updateColumn(ctx, kind, storyID, "audio_url", url)
}

func (r *postgresStoryRepository) UpdateCoverImageURL(ctx context.Context, kind domain.StoryKind, storyID string, url string) error {
	return r.updateColumn(ctx, kind, storyID, "cover_image_url", url)
}

func (r *postgresStoryRepository) updateColumn(ctx context.Context, kind domain.StoryKind, storyID string, column string, url string) error {
	table, err := kind.TableName()
	if err != nil {
		return err
	}

	query := fmt.Sprintf("UPDATE %s SET %s = $1, updated_at = $2 WHERE id = $3", table, column)
	tag, err := r.pool.Exec(ctx, query, url, time.Now().UTC(), storyID)
	if err != nil {
		r.logger.ErrorWithFields(err, "Failed to update story record", map[string]interface{}{
			"table":    table,
			"column":   column,
			"story_id": storyID,
		})
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s/%s", domain.ErrStoryNotFound, kind, storyID)
	}

	return nil
}

func (r *postgresStoryRepository) InsertUserStory(ctx context.Context, record domain.StoryRecord) (domain.StoryRecord, error) {
	record.ID = uuid.NewString()
	record.LikeCount = 0
	record.CreatedAt = time.Now().UTC()
	record.UpdatedAt = record.CreatedAt

	query := `INSERT INTO user_stories (id, title, content, language, author_id, like_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query, record.ID, record.Title, record.Content, record.Language,
		record.AuthorID, record.LikeCount, record.CreatedAt, record.UpdatedAt)
	if err != nil {
		r.logger.Error(err, "Failed to insert user story")
		return domain.StoryRecord{}, err
	}

	return record, nil
}

func (r *postgresStoryRepository) InsertGeneratedStory(ctx context.Context, record domain.StoryRecord) (domain.StoryRecord, error) {
	record.ID = uuid.NewString()
	record.LikeCount = 0
	record.CreatedAt = time.Now().UTC()
	record.UpdatedAt = record.CreatedAt

	query := `INSERT INTO generated_stories (id, title, content, language, created_by_user_id, parameters, like_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(ctx, query, record.ID, record.Title, record.Content, record.Language,
		record.CreatedByUserID, record.Parameters, record.LikeCount, record.CreatedAt, record.UpdatedAt)
	if err != nil {
		r.logger.Error(err, "Failed to insert generated story")
		return domain.StoryRecord{}, err
	}

	return record, nil
}

func (r *postgresStoryRepository) GetStory(ctx context.Context, kind domain.StoryKind, storyID string) (domain.StoryRecord, error) {
	table, err := kind.TableName()
	if err != nil {
		return domain.StoryRecord{}, err
	}

	columns := sharedStoryColumns
	switch kind {
	case domain.UserGeneratedStoryKind:
		columns += ", author_id"
	case domain.AIGeneratedStoryKind:
		columns += ", created_by_user_id, parameters"
	}

	var record domain.StoryRecord
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", columns, table)
	if err := pgxscan.Get(ctx, r.pool, &record, query, storyID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.StoryRecord{}, fmt.Errorf("%w: %s/%s", domain.ErrStoryNotFound, kind, storyID)
		}
		r.logger.ErrorWithFields(err, "Failed to load story record", map[string]interface{}{
			"table":    table,
			"story_id": storyID,
		})
		return domain.StoryRecord{}, err
	}

	return record, nil
}

func (r *postgresStoryRepository) IncrementLikeCount(ctx context.Context, kind domain.StoryKind, storyID string) (int, error) {
	table, err := kind.TableName()
	if err != nil {
		return 0, err
	}

	var likeCount int
	query := fmt.Sprintf("UPDATE %s SET like_count = like_count + 1, updated_at = $1 WHERE id = $2 RETURNING like_count", table)
	if err := r.pool.QueryRow(ctx, query, time.Now().UTC(), storyID).Scan(&likeCount); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%w: %s/%s", domain.ErrStoryNotFound, kind, storyID)
		}
		r.logger.ErrorWithFields(err, "Failed to increment like count", map[string]interface{}{
			"table":    table,
			"story_id": storyID,
		})
		return 0, err
	}

	return likeCount, nil
}
