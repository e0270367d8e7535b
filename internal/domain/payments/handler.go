package payments

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-adoption-platform/internal/domain/campaigns"
	"pet-adoption-platform/internal/domain/users"
	"pet-adoption-platform/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, campaignsSvc *campaigns.Service, usersSvc *users.Service) {
	r.Post("/create-payment-intent", createIntentHandler(svc))

	// Acreditar una donación confirmada contra la campaña.
	r.Patch("/donations/{campaignID}", donateHandler(svc, campaignsSvc))

	// Donantes de una campaña (owner o admin)
	r.Get("/donations/donators/{campaignID}", listDonatorsHandler(svc, campaignsSvc, usersSvc))

	// Mis donaciones + refund
	r.Get("/me/payments", listMyDonationsHandler(svc))
	r.Delete("/payments/{paymentID}", refundHandler(svc, campaignsSvc))
}

type createIntentRequest struct {
	Amount float64 `json:"amount"`
}

type createIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

type donateRequest struct {
	DonationAmount float64 `json:"donationAmount"`
	DonatorName    string  `json:"donatorName"`
	DonatorEmail   string  `json:"donatorEmail"`
}

type donationResponse struct {
	ID             string    `json:"id"`
	CampaignID     string    `json:"campaignId"`
	PetName        string    `json:"petName"`
	DonatorName    string    `json:"donatorName"`
	DonatorEmail   string    `json:"donatorEmail"`
	DonationAmount float64   `json:"donationAmount"`
	Date           time.Time `json:"date"`
}

// createIntentHandler godoc
// @Summary Crear payment intent
// @Description Pide al gateway un payment intent por el monto a donar y devuelve el client secret. Montos no-positivos se rechazan sin tocar el gateway.
// @Tags payments
// @Accept json
// @Produce json
// @Param payload body createIntentRequest true "Monto a donar"
// @Success 200 {object} createIntentResponse
// @Failure 400 {string} string "amount must be positive"
// @Failure 401 {string} string "unauthorized"
// @Router /create-payment-intent [post]
func createIntentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Email) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createIntentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		intent, err := svc.CreateIntent(r.Context(), req.Amount)
		if err != nil {
			if errors.Is(err, ErrInvalidAmount) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "payment gateway error", http.StatusBadGateway)
			return
		}

		writeJSON(w, http.StatusOK, createIntentResponse{ClientSecret: intent.ClientSecret})
	}
}

// donateHandler godoc
// @Summary Acreditar donación
// @Description Registra una donación confirmada: incrementa el total de la campaña, estampa lastDonationDate y persiste el registro del donante. Es el único camino que muta donatedAmount hacia arriba.
// @Tags payments
// @Accept json
// @Produce json
// @Param campaignID path string true "ID de la campaña"
// @Param payload body donateRequest true "Monto y donante"
// @Success 200 {object} donationResponse
// @Failure 400 {string} string "invalid json / monto inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "campaign not found"
// @Failure 409 {string} string "campaign is paused"
// @Router /donations/{campaignID} [patch]
func donateHandler(svc *Service, campaignsSvc *campaigns.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Email) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		campaignID := chi.URLParam(r, "campaignID")

		var req donateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := campaignsSvc.Donate(r.Context(), campaignID, req.DonationAmount)
		if err != nil {
			switch {
			case errors.Is(err, campaigns.ErrNotFound):
				http.Error(w, "campaign not found", http.StatusNotFound)
			case errors.Is(err, campaigns.ErrPaused):
				http.Error(w, "campaign is paused", http.StatusConflict)
			case errors.Is(err, campaigns.ErrInvalidInput):
				http.Error(w, "donation amount must be positive", http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		d, err := svc.Record(r.Context(), RecordInput{
			CampaignID: c.ID,
			PetName:    c.PetName,
			DonorName:  req.DonatorName,
			DonorEmail: req.DonatorEmail,
			Amount:     req.DonationAmount,
		})
		if err != nil {
			http.Error(w, "donation credited but record failed", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toDonationResponse(d))
	}
}

func listDonatorsHandler(svc *Service, campaignsSvc *campaigns.Service, usersSvc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Email) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		campaignID := chi.URLParam(r, "campaignID")
		c, err := campaignsSvc.GetByID(r.Context(), campaignID)
		if err != nil {
			http.Error(w, "campaign not found", http.StatusNotFound)
			return
		}

		// Owner bypass, si no admin.
		if !strings.EqualFold(c.Owner.Email, claims.Email) && !usersSvc.IsAdmin(r.Context(), claims.Email) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		items, err := svc.ListByCampaign(r.Context(), campaignID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]donationResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toDonationResponse(d))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func listMyDonationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Email) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByDonor(r.Context(), claims.Email)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]donationResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toDonationResponse(d))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// refundHandler borra el registro del donante y revierte el total de la
// campaña. Si la campaña ya no existe, el refund del registro vale igual.
func refundHandler(svc *Service, campaignsSvc *campaigns.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Email) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		d, err := svc.Refund(r.Context(), chi.URLParam(r, "paymentID"), claims.Email)
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				http.Error(w, "donation not found", http.StatusNotFound)
			case errors.Is(err, ErrForbidden):
				http.Error(w, "forbidden", http.StatusForbidden)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		_, _ = campaignsSvc.Refund(r.Context(), d.CampaignID, d.Amount)

		w.WriteHeader(http.StatusNoContent)
	}
}

func toDonationResponse(d Donation) donationResponse {
	return donationResponse{
		ID:             d.ID,
		CampaignID:     d.CampaignID,
		PetName:        d.PetName,
		DonatorName:    d.DonorName,
		DonatorEmail:   d.DonorEmail,
		DonationAmount: d.Amount,
		Date:           d.CreatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
