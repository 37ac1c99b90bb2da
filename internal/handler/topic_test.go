package handler

import (
	"bytes"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/askboard-dev/askboard/internal/domain"
	"github.com/askboard-dev/askboard/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

// multipartBody builds a "text" field plus an optional image file field.
func multipartBody(t *testing.T, text string, fileField string, fileData []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if text != "" {
		require.NoError(t, mw.WriteField("text", text))
	}
	if fileData != nil {
		fw, err := mw.CreateFormFile(fileField, "upload.png")
		require.NoError(t, err)
		_, err = fw.Write(fileData)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestCreateTopicHandler(t *testing.T) {
	user := &domain.User{Id: 1, Username: "bob"}

	t.Run("text only", func(t *testing.T) {
		topic := &MockTopicService{
			MockCreate: func(actor *domain.User, text string, pinnedImage []byte, imageExt string) (domain.TopicId, error) {
				assert.Equal(t, "how do I tune this?", text)
				assert.Nil(t, pinnedImage)
				return 11, nil
			},
		}
		router := newTestHandler(t, testServices{topic: topic})

		body, contentType := multipartBody(t, "how do I tune this?", "", nil)
		req := asUser(httptest.NewRequest(http.MethodPost, "/v1/topics", body), user)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.JSONEq(t, `{"id": 11}`, rr.Body.String())
	})

	t.Run("with pinned image", func(t *testing.T) {
		img := pngBytes(t)
		topic := &MockTopicService{
			MockCreate: func(actor *domain.User, text string, pinnedImage []byte, imageExt string) (domain.TopicId, error) {
				assert.Equal(t, img, pinnedImage)
				assert.Equal(t, ".png", imageExt)
				return 12, nil
			},
		}
		router := newTestHandler(t, testServices{topic: topic})

		body, contentType := multipartBody(t, "look at this", "pinned_image", img)
		req := asUser(httptest.NewRequest(http.MethodPost, "/v1/topics", body), user)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("missing text", func(t *testing.T) {
		router := newTestHandler(t, testServices{})

		body, contentType := multipartBody(t, "", "pinned_image", pngBytes(t))
		req := asUser(httptest.NewRequest(http.MethodPost, "/v1/topics", body), user)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Text is required")
	})

	t.Run("non-image upload is rejected", func(t *testing.T) {
		router := newTestHandler(t, testServices{})

		body, contentType := multipartBody(t, "text", "pinned_image", []byte("not an image"))
		req := asUser(httptest.NewRequest(http.MethodPost, "/v1/topics", body), user)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Unsupported image format")
	})
}

func TestGetTopicsHandler(t *testing.T) {
	topic := &MockTopicService{
		MockList: func() ([]domain.Topic, error) {
			return []domain.Topic{{Id: 1, Text: "first"}, {Id: 2, Text: "second"}}, nil
		},
	}
	router := newTestHandler(t, testServices{topic: topic})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, createRequest(t, http.MethodGet, "/v1/topics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"first"`)
	assert.Contains(t, rr.Body.String(), `"second"`)
}

func TestGetTopicHandler(t *testing.T) {
	t.Run("topic with messages", func(t *testing.T) {
		topic := &MockTopicService{
			MockGet: func(id domain.TopicId) (domain.Topic, []domain.Message, error) {
				assert.Equal(t, domain.TopicId(3), id)
				return domain.Topic{Id: 3, Text: "q"}, []domain.Message{{Id: 1, Text: "a"}}, nil
			},
		}
		router := newTestHandler(t, testServices{topic: topic})

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, createRequest(t, http.MethodGet, "/v1/topics/3", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"topic"`)
		assert.Contains(t, rr.Body.String(), `"messages"`)
	})

	t.Run("missing topic", func(t *testing.T) {
		topic := &MockTopicService{
			MockGet: func(id domain.TopicId) (domain.Topic, []domain.Message, error) {
				return domain.Topic{}, nil, errors.NotFound("Topic")
			},
		}
		router := newTestHandler(t, testServices{topic: topic})

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, createRequest(t, http.MethodGet, "/v1/topics/3", nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestDeleteTopicHandler(t *testing.T) {
	t.Run("moderator deletes", func(t *testing.T) {
		topic := &MockTopicService{
			MockDelete: func(actor *domain.User, id domain.TopicId) error {
				assert.Equal(t, domain.TopicId(3), id)
				return nil
			},
		}
		router := newTestHandler(t, testServices{topic: topic})

		req := asUser(createRequest(t, http.MethodDelete, "/v1/topics/3", nil), &domain.User{Id: 2, Moderator: true})
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("privilege error passes through", func(t *testing.T) {
		topic := &MockTopicService{
			MockDelete: func(actor *domain.User, id domain.TopicId) error {
				return errors.InsufficientPrivilege
			},
		}
		router := newTestHandler(t, testServices{topic: topic})

		req := asUser(createRequest(t, http.MethodDelete, "/v1/topics/3", nil), &domain.User{Id: 3})
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}
