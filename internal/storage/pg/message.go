package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/askboard-dev/askboard/internal/domain"
	internal_errors "github.com/askboard-dev/askboard/internal/errors"
)

// CreateMessage validates the reply attachment rules and inserts the row in
// one transaction:
//   - the target topic must exist (its row is share-locked so a concurrent
//     topic delete and this insert are mutually exclusive),
//   - a reply target, when given, must be a message of the same topic.
//
// A lost row race surfaces as ConflictRetry.
func (s *Storage) CreateMessage(creation domain.MessageCreationData) (domain.MessageId, error) {
	var id domain.MessageId
	err := s.withTx(context.Background(), func(tx *sql.Tx) error {
		var topicId domain.TopicId
		err := tx.QueryRow(`SELECT id FROM topics WHERE id = $1 FOR SHARE`, creation.TopicId).Scan(&topicId)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return internal_errors.NotFound("Topic")
			}
			return fmt.Errorf("failed to validate topic: %w", err)
		}

		if creation.ReplyTo != nil {
			var parentTopic domain.TopicId
			err := tx.QueryRow(`SELECT topic_id FROM messages WHERE id = $1 FOR SHARE`, *creation.ReplyTo).Scan(&parentTopic)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return internal_errors.InvalidReplyTarget
				}
				return fmt.Errorf("failed to validate reply target: %w", err)
			}
			if parentTopic != creation.TopicId {
				return internal_errors.InvalidReplyTarget
			}
		}

		createdTs := time.Now().UTC().Round(time.Microsecond) // database rounds to microsecond anyway
		var replyTo any
		if creation.ReplyTo != nil {
			replyTo = *creation.ReplyTo
		}
		err = tx.QueryRow(`
		INSERT INTO messages (creator_id, created, topic_id, reply_to, text)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
			creation.CreatorId, createdTs, creation.TopicId, replyTo, creation.Text,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to insert message: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, mapConflict(err)
	}
	return id, nil
}

func (s *Storage) Message(id domain.MessageId) (domain.Message, error) {
	var msg domain.Message
	var replyTo sql.NullInt64
	err := s.db.QueryRow(`
	SELECT id, creator_id, created, topic_id, reply_to, text
	FROM messages
	WHERE id = $1`, id).Scan(&msg.Id, &msg.CreatorId, &msg.CreatedAt, &msg.TopicId, &replyTo, &msg.Text)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Message{}, internal_errors.NotFound("Message")
		}
		return domain.Message{}, fmt.Errorf("failed to fetch message: %w", err)
	}
	if replyTo.Valid {
		msg.ReplyTo = &replyTo.Int64
	}
	return msg, nil
}

func (s *Storage) TopicMessages(topicId domain.TopicId) ([]domain.Message, error) {
	rows, err := s.db.Query(`
	SELECT id, creator_id, created, topic_id, reply_to, text
	FROM messages
	WHERE topic_id = $1
	ORDER BY created`, topicId)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		var replyTo sql.NullInt64
		if err := rows.Scan(&msg.Id, &msg.CreatorId, &msg.CreatedAt, &msg.TopicId, &replyTo, &msg.Text); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		if replyTo.Valid {
			msg.ReplyTo = &replyTo.Int64
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return messages, nil
}

// DeleteMessage removes the row only. Replies that referenced it keep their
// dangling reply_to on purpose; readers treat it as "reply to a deleted
// message". Returns the topic the message belonged to.
func (s *Storage) DeleteMessage(id domain.MessageId) (domain.TopicId, error) {
	var topicId domain.TopicId
	err := s.db.QueryRow(`DELETE FROM messages WHERE id = $1 RETURNING topic_id`, id).Scan(&topicId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, internal_errors.NotFound("Message")
		}
		return 0, fmt.Errorf("failed to delete message: %w", err)
	}
	return topicId, nil
}
