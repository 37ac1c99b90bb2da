package handler

import (
	"net/http"
	"time"

	"github.com/askboard-dev/askboard/internal/domain"
	"github.com/askboard-dev/askboard/internal/errors"
	"github.com/askboard-dev/askboard/internal/utils"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	type bodyJson struct {
		Username       string `validate:"required" json:"username"`
		Email          string `json:"email"`
		Password       string `validate:"required" json:"password"`
		RepeatPassword string `validate:"required" json:"repeat_password"`
	}
	var body bodyJson
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if body.Password != body.RepeatPassword {
		utils.WriteErrorAndStatusCode(w, &errors.ErrorWithStatusCode{Message: "Passwords do not match", StatusCode: http.StatusBadRequest})
		return
	}

	id, err := h.auth.Register(domain.Credentials{Username: body.Username, Password: body.Password}, body.Email)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	type bodyJson struct {
		Username string `validate:"required" json:"username"`
		Password string `validate:"required" json:"password"`
	}
	var body bodyJson
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	token, err := h.auth.Login(domain.Credentials{Username: body.Username, Password: body.Password})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	http.SetCookie(w, h.accessCookie(token, h.cfg.JwtTTL()))
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie := h.accessCookie("", 0)
	cookie.MaxAge = -1
	http.SetCookie(w, cookie)
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) accessCookie(token string, ttl time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Path:     "/",
		Name:     "accessToken",
		Value:    token,
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl > 0 {
		cookie.Expires = time.Now().Add(ttl)
	}
	return cookie
}
