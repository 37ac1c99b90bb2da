package handler

import (
	"net/http"

	"github.com/askboard-dev/askboard/internal/domain"
	"github.com/askboard-dev/askboard/internal/utils"
)

func (h *Handler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	user := actingUser(w, r)
	if user == nil {
		return
	}
	topicId, err := parseIdParam(r, "topic")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	type bodyJson struct {
		Text    string            `validate:"required" json:"text"`
		ReplyTo *domain.MessageId `json:"reply_to"`
	}
	var body bodyJson
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	id, err := h.message.Post(user, topicId, body.Text, body.ReplyTo)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handler) GetMessage(w http.ResponseWriter, r *http.Request) {
	msgId, err := parseIdParam(r, "message")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	msg, err := h.message.Get(msgId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, msg)
}

// DeleteMessage answers with the topic the message belonged to, so the
// client can continue there.
func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	user := actingUser(w, r)
	if user == nil {
		return
	}
	msgId, err := parseIdParam(r, "message")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	topicId, err := h.message.Delete(user, msgId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"topic_id": topicId})
}
