package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/askboard-dev/askboard/internal/config"
	"github.com/askboard-dev/askboard/internal/domain"
	"github.com/askboard-dev/askboard/internal/middleware"
	"github.com/askboard-dev/askboard/internal/storage/fs"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// Func-field mocks for every service the handler depends on. A nil field
// means default behavior (zero values, no error).

type MockAuthService struct {
	MockRegister func(creds domain.Credentials, email string) (domain.UserId, error)
	MockLogin    func(creds domain.Credentials) (string, error)
}

func (m *MockAuthService) Register(creds domain.Credentials, email string) (domain.UserId, error) {
	if m.MockRegister != nil {
		return m.MockRegister(creds, email)
	}
	return 0, nil
}

func (m *MockAuthService) Login(creds domain.Credentials) (string, error) {
	if m.MockLogin != nil {
		return m.MockLogin(creds)
	}
	return "", nil
}

type MockTopicService struct {
	MockCreate func(actor *domain.User, text string, pinnedImage []byte, imageExt string) (domain.TopicId, error)
	MockGet    func(id domain.TopicId) (domain.Topic, []domain.Message, error)
	MockList   func() ([]domain.Topic, error)
	MockDelete func(actor *domain.User, id domain.TopicId) error
}

func (m *MockTopicService) Create(actor *domain.User, text string, pinnedImage []byte, imageExt string) (domain.TopicId, error) {
	if m.MockCreate != nil {
		return m.MockCreate(actor, text, pinnedImage, imageExt)
	}
	return 0, nil
}

func (m *MockTopicService) Get(id domain.TopicId) (domain.Topic, []domain.Message, error) {
	if m.MockGet != nil {
		return m.MockGet(id)
	}
	return domain.Topic{}, nil, nil
}

func (m *MockTopicService) List() ([]domain.Topic, error) {
	if m.MockList != nil {
		return m.MockList()
	}
	return nil, nil
}

func (m *MockTopicService) Delete(actor *domain.User, id domain.TopicId) error {
	if m.MockDelete != nil {
		return m.MockDelete(actor, id)
	}
	return nil
}

type MockMessageService struct {
	MockPost   func(actor *domain.User, topicId domain.TopicId, text string, replyTo *domain.MessageId) (domain.MessageId, error)
	MockGet    func(id domain.MessageId) (domain.Message, error)
	MockDelete func(actor *domain.User, id domain.MessageId) (domain.TopicId, error)
}

func (m *MockMessageService) Post(actor *domain.User, topicId domain.TopicId, text string, replyTo *domain.MessageId) (domain.MessageId, error) {
	if m.MockPost != nil {
		return m.MockPost(actor, topicId, text, replyTo)
	}
	return 0, nil
}

func (m *MockMessageService) Get(id domain.MessageId) (domain.Message, error) {
	if m.MockGet != nil {
		return m.MockGet(id)
	}
	return domain.Message{}, nil
}

func (m *MockMessageService) Delete(actor *domain.User, id domain.MessageId) (domain.TopicId, error) {
	if m.MockDelete != nil {
		return m.MockDelete(actor, id)
	}
	return 0, nil
}

type MockUserService struct {
	MockGet             func(id domain.UserId) (domain.User, error)
	MockDelete          func(actor *domain.User, targetId domain.UserId) error
	MockSetModerator    func(actor *domain.User, targetId domain.UserId, moderator bool) error
	MockUpdateProfile   func(actor *domain.User, targetId domain.UserId, about string) error
	MockSetProfileImage func(actor *domain.User, targetId domain.UserId, image []byte, imageExt string) error
}

func (m *MockUserService) Get(id domain.UserId) (domain.User, error) {
	if m.MockGet != nil {
		return m.MockGet(id)
	}
	return domain.User{}, nil
}

func (m *MockUserService) Delete(actor *domain.User, targetId domain.UserId) error {
	if m.MockDelete != nil {
		return m.MockDelete(actor, targetId)
	}
	return nil
}

func (m *MockUserService) SetModerator(actor *domain.User, targetId domain.UserId, moderator bool) error {
	if m.MockSetModerator != nil {
		return m.MockSetModerator(actor, targetId, moderator)
	}
	return nil
}

func (m *MockUserService) UpdateProfile(actor *domain.User, targetId domain.UserId, about string) error {
	if m.MockUpdateProfile != nil {
		return m.MockUpdateProfile(actor, targetId, about)
	}
	return nil
}

func (m *MockUserService) SetProfileImage(actor *domain.User, targetId domain.UserId, image []byte, imageExt string) error {
	if m.MockSetProfileImage != nil {
		return m.MockSetProfileImage(actor, targetId, image, imageExt)
	}
	return nil
}

type MockLocationService struct {
	MockUpdate func(ctx context.Context, actor *domain.User, targetId domain.UserId, locationText string) error
}

func (m *MockLocationService) Update(ctx context.Context, actor *domain.User, targetId domain.UserId, locationText string) error {
	if m.MockUpdate != nil {
		return m.MockUpdate(ctx, actor, targetId, locationText)
	}
	return nil
}

type MockPinger struct {
	MockPing func() error
}

func (m *MockPinger) Ping() error {
	if m.MockPing != nil {
		return m.MockPing()
	}
	return nil
}

func testConfig() *config.Config {
	return &config.Config{Public: config.Public{MaxImageBytes: 5 << 20}}
}

type testServices struct {
	auth     *MockAuthService
	topic    *MockTopicService
	message  *MockMessageService
	user     *MockUserService
	location *MockLocationService
	pinger   *MockPinger
	blobs    *fs.Storage
}

// newTestHandler routes the same paths the real router does, minus the
// middleware stack.
func newTestHandler(t *testing.T, svc testServices) *chi.Mux {
	t.Helper()
	if svc.auth == nil {
		svc.auth = &MockAuthService{}
	}
	if svc.topic == nil {
		svc.topic = &MockTopicService{}
	}
	if svc.message == nil {
		svc.message = &MockMessageService{}
	}
	if svc.user == nil {
		svc.user = &MockUserService{}
	}
	if svc.location == nil {
		svc.location = &MockLocationService{}
	}
	if svc.pinger == nil {
		svc.pinger = &MockPinger{}
	}

	h := New(svc.auth, svc.topic, svc.message, svc.user, svc.location, svc.blobs, svc.pinger, testConfig())

	r := chi.NewRouter()
	r.Get("/healthz", h.Health)
	r.Get("/readyz", h.Ready)
	r.Post("/v1/auth/register", h.Register)
	r.Post("/v1/auth/login", h.Login)
	r.Post("/v1/auth/logout", h.Logout)
	r.Get("/v1/assets/{key}", h.GetAsset)
	r.Get("/v1/topics", h.GetTopics)
	r.Post("/v1/topics", h.CreateTopic)
	r.Get("/v1/topics/{topic}", h.GetTopic)
	r.Delete("/v1/topics/{topic}", h.DeleteTopic)
	r.Post("/v1/topics/{topic}/messages", h.CreateMessage)
	r.Get("/v1/messages/{message}", h.GetMessage)
	r.Delete("/v1/messages/{message}", h.DeleteMessage)
	r.Get("/v1/users/{user}", h.GetUser)
	r.Delete("/v1/users/{user}", h.DeleteUser)
	r.Put("/v1/users/{user}/moderator", h.SetModerator)
	r.Put("/v1/users/{user}/profile", h.UpdateProfile)
	r.Put("/v1/users/{user}/profile_image", h.SetProfileImage)
	r.Put("/v1/users/{user}/location", h.UpdateLocation)
	return r
}

func createRequest(t *testing.T, method, url string, body []byte) *http.Request {
	t.Helper()
	return httptest.NewRequest(method, url, bytes.NewBuffer(body))
}

// asUser injects the identity the auth middleware would have resolved.
func asUser(req *http.Request, user *domain.User) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.UserClaimsKey, user)
	return req.WithContext(ctx)
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusCreated, map[string]string{"message": "hello"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"hello"}`, rec.Body.String())
}
