package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/askboard-dev/askboard/internal/domain"
	internal_errors "github.com/askboard-dev/askboard/internal/errors"
)

func (s *Storage) CreateTopic(creation domain.TopicCreationData) (domain.TopicId, error) {
	var id domain.TopicId
	err := s.db.QueryRow(`
	INSERT INTO topics (creator_id, text, pinned_image)
	VALUES ($1, $2, $3)
	RETURNING id`,
		creation.CreatorId, creation.Text, creation.PinnedImage,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert topic: %w", err)
	}
	return id, nil
}

func (s *Storage) Topic(id domain.TopicId) (domain.Topic, error) {
	var t domain.Topic
	err := s.db.QueryRow(`
	SELECT id, creator_id, created, text, pinned_image
	FROM topics
	WHERE id = $1`, id).Scan(&t.Id, &t.CreatorId, &t.CreatedAt, &t.Text, &t.PinnedImage)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Topic{}, internal_errors.NotFound("Topic")
		}
		return domain.Topic{}, fmt.Errorf("failed to fetch topic: %w", err)
	}
	return t, nil
}

func (s *Storage) Topics() ([]domain.Topic, error) {
	rows, err := s.db.Query(`
	SELECT id, creator_id, created, text, pinned_image
	FROM topics
	ORDER BY created DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch topics: %w", err)
	}
	defer rows.Close()

	var topics []domain.Topic
	for rows.Next() {
		var t domain.Topic
		if err := rows.Scan(&t.Id, &t.CreatorId, &t.CreatedAt, &t.Text, &t.PinnedImage); err != nil {
			return nil, fmt.Errorf("failed to scan topic: %w", err)
		}
		topics = append(topics, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return topics, nil
}

// DeleteTopic removes the topic and every message attached to it in one
// transaction, returning the pinned image key for blob release. The topic
// row is locked first so no reply can slip in mid-delete.
func (s *Storage) DeleteTopic(id domain.TopicId) (domain.BlobKey, error) {
	var pinnedImage domain.BlobKey
	err := s.withTx(context.Background(), func(tx *sql.Tx) error {
		err := tx.QueryRow(`SELECT pinned_image FROM topics WHERE id = $1 FOR UPDATE`, id).Scan(&pinnedImage)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return internal_errors.NotFound("Topic")
			}
			return fmt.Errorf("failed to lock topic: %w", err)
		}

		if _, err := tx.Exec(`DELETE FROM messages WHERE topic_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete topic messages: %w", err)
		}
		if _, err := tx.Exec(`DELETE FROM topics WHERE id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete topic: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", mapConflict(err)
	}
	return pinnedImage, nil
}
