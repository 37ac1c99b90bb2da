package handler

import (
	"net/http"

	"github.com/askboard-dev/askboard/internal/errors"
	"github.com/askboard-dev/askboard/internal/utils"
)

// CreateTopic accepts multipart form data: a required "text" field and an
// optional "pinned_image" file.
func (h *Handler) CreateTopic(w http.ResponseWriter, r *http.Request) {
	user := actingUser(w, r)
	if user == nil {
		return
	}

	image, ext, err := h.readImageUpload(r, "pinned_image")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	text := r.FormValue("text")
	if text == "" {
		utils.WriteErrorAndStatusCode(w, &errors.ErrorWithStatusCode{Message: "Text is required", StatusCode: http.StatusBadRequest})
		return
	}

	id, err := h.topic.Create(user, text, image, ext)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handler) GetTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := h.topic.List()
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"topics": topics})
}

func (h *Handler) GetTopic(w http.ResponseWriter, r *http.Request) {
	topicId, err := parseIdParam(r, "topic")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	topic, messages, err := h.topic.Get(topicId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"topic": topic, "messages": messages})
}

func (h *Handler) DeleteTopic(w http.ResponseWriter, r *http.Request) {
	user := actingUser(w, r)
	if user == nil {
		return
	}
	topicId, err := parseIdParam(r, "topic")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.topic.Delete(user, topicId); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
