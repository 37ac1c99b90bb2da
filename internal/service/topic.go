package service

import (
	"github.com/askboard-dev/askboard/internal/assets"
	"github.com/askboard-dev/askboard/internal/domain"
)

type TopicService interface {
	Create(actor *domain.User, text string, pinnedImage []byte, imageExt string) (domain.TopicId, error)
	Get(id domain.TopicId) (domain.Topic, []domain.Message, error)
	List() ([]domain.Topic, error)
	Delete(actor *domain.User, id domain.TopicId) error
}

type Topic struct {
	storage   TopicStorage
	validator TextValidator
	authority *Authority
	assets    *assets.Store
}

type TopicStorage interface {
	CreateTopic(creation domain.TopicCreationData) (domain.TopicId, error)
	Topic(id domain.TopicId) (domain.Topic, error)
	Topics() ([]domain.Topic, error)
	DeleteTopic(id domain.TopicId) (domain.BlobKey, error)
	TopicMessages(topicId domain.TopicId) ([]domain.Message, error)
}

func NewTopic(storage TopicStorage, validator TextValidator, authority *Authority, assets *assets.Store) *Topic {
	return &Topic{storage, validator, authority, assets}
}

// Create posts a new question. A pinned image, when supplied, is written to
// the blob store and its key committed with the row; a failed row insert
// rolls the blob back.
func (t *Topic) Create(actor *domain.User, text string, pinnedImage []byte, imageExt string) (domain.TopicId, error) {
	text, err := t.validator.Text(text)
	if err != nil {
		return 0, err
	}

	creation := domain.TopicCreationData{CreatorId: actor.Id, Text: text}

	var id domain.TopicId
	if len(pinnedImage) == 0 {
		id, err = t.storage.CreateTopic(creation)
		return id, err
	}

	_, err = t.assets.Replace("", pinnedImage, imageExt, func(newKey string) error {
		creation.PinnedImage = newKey
		var createErr error
		id, createErr = t.storage.CreateTopic(creation)
		return createErr
	})
	return id, err
}

func (t *Topic) Get(id domain.TopicId) (domain.Topic, []domain.Message, error) {
	topic, err := t.storage.Topic(id)
	if err != nil {
		return domain.Topic{}, nil, err
	}
	messages, err := t.storage.TopicMessages(id)
	if err != nil {
		return domain.Topic{}, nil, err
	}
	return topic, messages, nil
}

func (t *Topic) List() ([]domain.Topic, error) {
	return t.storage.Topics()
}

// Delete cascades to the topic's messages inside the storage transaction
// and releases the pinned image blob once the rows are gone. A blob left
// behind by a failed release is an orphan, not an error.
func (t *Topic) Delete(actor *domain.User, id domain.TopicId) error {
	if err := t.authority.Can(actor, Action{Kind: ActionDeleteTopic}); err != nil {
		return err
	}

	pinnedImage, err := t.storage.DeleteTopic(id)
	if err != nil {
		return err
	}
	t.assets.Release(pinnedImage)
	return nil
}
