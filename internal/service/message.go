package service

import (
	"github.com/askboard-dev/askboard/internal/domain"
)

type MessageService interface {
	Post(actor *domain.User, topicId domain.TopicId, text string, replyTo *domain.MessageId) (domain.MessageId, error)
	Get(id domain.MessageId) (domain.Message, error)
	Delete(actor *domain.User, id domain.MessageId) (domain.TopicId, error)
}

type Message struct {
	storage   MessageStorage
	validator TextValidator
	authority *Authority
}

type MessageStorage interface {
	CreateMessage(creation domain.MessageCreationData) (domain.MessageId, error)
	Message(id domain.MessageId) (domain.Message, error)
	DeleteMessage(id domain.MessageId) (domain.TopicId, error)
}

type TextValidator interface {
	Text(text string) (string, error)
}

func NewMessage(storage MessageStorage, validator TextValidator, authority *Authority) *Message {
	return &Message{storage, validator, authority}
}

// Post attaches a reply to a topic. The attachment rules (topic exists,
// reply target belongs to the same topic) are enforced atomically by the
// storage transaction; an absent replyTo means a top-level reply.
func (m *Message) Post(actor *domain.User, topicId domain.TopicId, text string, replyTo *domain.MessageId) (domain.MessageId, error) {
	text, err := m.validator.Text(text)
	if err != nil {
		return 0, err
	}

	return m.storage.CreateMessage(domain.MessageCreationData{
		CreatorId: actor.Id,
		TopicId:   topicId,
		ReplyTo:   replyTo,
		Text:      text,
	})
}

func (m *Message) Get(id domain.MessageId) (domain.Message, error) {
	return m.storage.Message(id)
}

// Delete removes the message row only; replies referencing it keep their
// dangling parent reference. Returns the owning topic id so the caller can
// continue there.
func (m *Message) Delete(actor *domain.User, id domain.MessageId) (domain.TopicId, error) {
	if err := m.authority.Can(actor, Action{Kind: ActionDeleteMessage}); err != nil {
		return 0, err
	}
	return m.storage.DeleteMessage(id)
}
