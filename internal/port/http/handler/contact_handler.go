package handler

import (
	"encoding/json"
	"net/http"

	"github.com/MateoKaloshi/MotoLine/internal/platform/logger"
	"github.com/MateoKaloshi/MotoLine/internal/service"
)

type contactRequest struct {
	Name     string `json:"name"`
	LastName string `json:"last_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
}

type ContactHandler struct {
	contacts service.ContactService
	log      logger.Logger
}

func NewContactHandler(contacts service.ContactService, log logger.Logger) *ContactHandler {
	return &ContactHandler{contacts: contacts, log: log}
}

func (h *ContactHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	created, err := h.contacts.Submit(r.Context(), service.ContactInput{
		Name:     req.Name,
		LastName: req.LastName,
		Email:    req.Email,
		Phone:    req.Phone,
		Subject:  req.Subject,
		Message:  req.Message,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}
