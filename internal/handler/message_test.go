package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/askboard-dev/askboard/internal/domain"
	"github.com/askboard-dev/askboard/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestCreateMessageHandler(t *testing.T) {
	user := &domain.User{Id: 1, Username: "bob"}

	t.Run("successful post", func(t *testing.T) {
		message := &MockMessageService{
			MockPost: func(actor *domain.User, topicId domain.TopicId, text string, replyTo *domain.MessageId) (domain.MessageId, error) {
				assert.Equal(t, user.Id, actor.Id)
				assert.Equal(t, domain.TopicId(5), topicId)
				assert.Equal(t, "test text", text)
				assert.Nil(t, replyTo)
				return 123, nil
			},
		}
		router := newTestHandler(t, testServices{message: message})

		req := asUser(createRequest(t, http.MethodPost, "/v1/topics/5/messages", []byte(`{"text": "test text"}`)), user)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.JSONEq(t, `{"id": 123}`, rr.Body.String())
	})

	t.Run("reply_to is forwarded", func(t *testing.T) {
		message := &MockMessageService{
			MockPost: func(actor *domain.User, topicId domain.TopicId, text string, replyTo *domain.MessageId) (domain.MessageId, error) {
				if assert.NotNil(t, replyTo) {
					assert.Equal(t, domain.MessageId(7), *replyTo)
				}
				return 124, nil
			},
		}
		router := newTestHandler(t, testServices{message: message})

		req := asUser(createRequest(t, http.MethodPost, "/v1/topics/5/messages", []byte(`{"text": "a reply", "reply_to": 7}`)), user)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("invalid reply target status passes through", func(t *testing.T) {
		message := &MockMessageService{
			MockPost: func(actor *domain.User, topicId domain.TopicId, text string, replyTo *domain.MessageId) (domain.MessageId, error) {
				return 0, errors.InvalidReplyTarget
			},
		}
		router := newTestHandler(t, testServices{message: message})

		req := asUser(createRequest(t, http.MethodPost, "/v1/topics/5/messages", []byte(`{"text": "x", "reply_to": 999}`)), user)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid reply target")
	})

	t.Run("invalid body json", func(t *testing.T) {
		router := newTestHandler(t, testServices{})

		req := asUser(createRequest(t, http.MethodPost, "/v1/topics/5/messages", []byte(`{invalid json::}`)), user)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Body is invalid json")
	})

	t.Run("missing text field", func(t *testing.T) {
		router := newTestHandler(t, testServices{})

		req := asUser(createRequest(t, http.MethodPost, "/v1/topics/5/messages", []byte(`{"reply_to": 1}`)), user)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Required fields missing")
	})

	t.Run("non-numeric topic id", func(t *testing.T) {
		router := newTestHandler(t, testServices{})

		req := asUser(createRequest(t, http.MethodPost, "/v1/topics/abc/messages", []byte(`{"text": "x"}`)), user)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("no user in context", func(t *testing.T) {
		router := newTestHandler(t, testServices{})

		req := createRequest(t, http.MethodPost, "/v1/topics/5/messages", []byte(`{"text": "x"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestGetMessageHandler(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		message := &MockMessageService{
			MockGet: func(id domain.MessageId) (domain.Message, error) {
				assert.Equal(t, domain.MessageId(9), id)
				return domain.Message{Id: 9, Text: "hello"}, nil
			},
		}
		router := newTestHandler(t, testServices{message: message})

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, createRequest(t, http.MethodGet, "/v1/messages/9", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"hello"`)
	})

	t.Run("missing", func(t *testing.T) {
		message := &MockMessageService{
			MockGet: func(id domain.MessageId) (domain.Message, error) {
				return domain.Message{}, errors.NotFound("Message")
			},
		}
		router := newTestHandler(t, testServices{message: message})

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, createRequest(t, http.MethodGet, "/v1/messages/9", nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestDeleteMessageHandler(t *testing.T) {
	moderator := &domain.User{Id: 2, Username: "mod", Moderator: true}

	t.Run("answers with the owning topic", func(t *testing.T) {
		message := &MockMessageService{
			MockDelete: func(actor *domain.User, id domain.MessageId) (domain.TopicId, error) {
				assert.Equal(t, domain.MessageId(9), id)
				return 5, nil
			},
		}
		router := newTestHandler(t, testServices{message: message})

		req := asUser(createRequest(t, http.MethodDelete, "/v1/messages/9", nil), moderator)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"topic_id": 5}`, rr.Body.String())
	})

	t.Run("privilege error passes through", func(t *testing.T) {
		message := &MockMessageService{
			MockDelete: func(actor *domain.User, id domain.MessageId) (domain.TopicId, error) {
				return 0, errors.InsufficientPrivilege
			},
		}
		router := newTestHandler(t, testServices{message: message})

		req := asUser(createRequest(t, http.MethodDelete, "/v1/messages/9", nil), &domain.User{Id: 3})
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}
