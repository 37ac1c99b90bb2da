package handler

import (
	"net/http"

	"github.com/askboard-dev/askboard/internal/utils"
)

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	userId, err := parseIdParam(r, "user")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	user, err := h.user.Get(userId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actor := actingUser(w, r)
	if actor == nil {
		return
	}
	userId, err := parseIdParam(r, "user")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.user.Delete(actor, userId); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// SetModerator grants or revokes the moderator flag. Super-user only; the
// authority enforces that, the route just carries the request.
func (h *Handler) SetModerator(w http.ResponseWriter, r *http.Request) {
	actor := actingUser(w, r)
	if actor == nil {
		return
	}
	userId, err := parseIdParam(r, "user")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	type bodyJson struct {
		Moderator *bool `validate:"required" json:"moderator"`
	}
	var body bodyJson
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.user.SetModerator(actor, userId, *body.Moderator); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor := actingUser(w, r)
	if actor == nil {
		return
	}
	userId, err := parseIdParam(r, "user")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	type bodyJson struct {
		About string `json:"about"`
	}
	var body bodyJson
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.user.UpdateProfile(actor, userId, body.About); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// SetProfileImage replaces the profile image from a multipart "image" file.
func (h *Handler) SetProfileImage(w http.ResponseWriter, r *http.Request) {
	actor := actingUser(w, r)
	if actor == nil {
		return
	}
	userId, err := parseIdParam(r, "user")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	image, ext, err := h.readImageUpload(r, "image")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if image == nil {
		http.Error(w, "Image file is required", http.StatusBadRequest)
		return
	}

	if err := h.user.SetProfileImage(actor, userId, image, ext); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// UpdateLocation re-geocodes the user's free-text location. An empty text
// clears the snapshot.
func (h *Handler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	actor := actingUser(w, r)
	if actor == nil {
		return
	}
	userId, err := parseIdParam(r, "user")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	type bodyJson struct {
		Location string `json:"location"`
	}
	var body bodyJson
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.location.Update(r.Context(), actor, userId, body.Location); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
