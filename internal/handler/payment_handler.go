package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/surveymaster/server/internal/auth"
	"github.com/surveymaster/server/internal/models"
	"github.com/surveymaster/server/internal/service"
)

type PaymentHandler struct {
	svc *service.PaymentService
}

func NewPaymentHandler(svc *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

// CreateIntent asks the processor for a payment intent and hands the client
// secret back for client-side confirmation.
func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Price float64 `json:"price"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	secret, err := h.svc.CreateIntent(r.Context(), req.Price)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"clientSecret": secret})
}

func (h *PaymentHandler) Record(w http.ResponseWriter, r *http.Request) {
	var payment models.Payment
	if err := readJSON(r, &payment); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payment.Email == "" {
		payment.Email = auth.GetUser(r.Context()).Email
	}
	id, err := h.svc.Record(r.Context(), &payment)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"insertedId": id})
}

func (h *PaymentHandler) ByEmail(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	payments, err := h.svc.ByEmail(r.Context(), email)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	payments, err := h.svc.All(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

func (h *PaymentHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.Approve(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"modifiedCount": 1})
}
