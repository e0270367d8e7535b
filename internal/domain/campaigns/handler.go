package campaigns

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-adoption-platform/internal/domain/users"
	"pet-adoption-platform/internal/middleware"
	"pet-adoption-platform/internal/pagination"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, usersSvc *users.Service) {
	// Rutas planas (sin subrouter): el módulo payments también registra
	// bajo /donations y chi no permite montar el subtree dos veces.
	r.Get("/donations", listCampaignsHandler(svc))
	r.Post("/donations", createCampaignHandler(svc, usersSvc))
	r.Get("/donations/{campaignID}", getCampaignHandler(svc))

	// Owner o admin
	r.Patch("/donations/pause/{campaignID}", pauseCampaignHandler(svc, usersSvc))

	// La edición usa su propio path (compat con el cliente web, que
	// reserva PATCH /donations/{id} para acreditar donaciones).
	r.Patch("/donations-edit/{campaignID}", editCampaignHandler(svc, usersSvc))

	r.Get("/me/donations", listMyCampaignsHandler(svc))

	// Tabla admin
	r.Get("/admin/donations", listAllCampaignsHandler(svc, usersSvc))
	r.Delete("/admin/donations/{campaignID}", deleteCampaignHandler(svc, usersSvc))
}

type createCampaignRequest struct {
	PetName          string  `json:"petName"`
	ImageURL         string  `json:"imageUrl"`
	MaxAmount        float64 `json:"maxDonationAmount"`
	ShortDescription string  `json:"shortDescription"`
	LongDescription  string  `json:"longDescription"`
}

type campaignResponse struct {
	ID               string     `json:"id"`
	PetName          string     `json:"petName"`
	ImageURL         string     `json:"imageUrl"`
	MaxAmount        float64    `json:"maxDonationAmount"`
	DonatedAmount    float64    `json:"donatedAmount"`
	LastDonationDate *time.Time `json:"lastDonationDate,omitempty"`
	ShortDescription string     `json:"shortDescription"`
	LongDescription  string     `json:"longDescription"`
	OwnerName        string     `json:"ownerName"`
	OwnerEmail       string     `json:"ownerEmail"`
	Paused           bool       `json:"isPaused"`
	DateAdded        time.Time  `json:"dateAdded"`
}

type editCampaignRequest struct {
	PetName          *string  `json:"petName"`
	ImageURL         *string  `json:"imageUrl"`
	MaxAmount        *float64 `json:"maxDonationAmount"`
	ShortDescription *string  `json:"shortDescription"`
	LongDescription  *string  `json:"longDescription"`
}

type pauseCampaignRequest struct {
	Paused bool `json:"isPaused"`
}

func createCampaignHandler(svc *Service, usersSvc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Email) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createCampaignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ownerName := claims.Name
		if u, err := usersSvc.GetByEmail(r.Context(), claims.Email); err == nil {
			ownerName = u.Name
		}

		c, err := svc.Create(r.Context(), Owner{Name: ownerName, Email: claims.Email}, CreateInput{
			PetName:          req.PetName,
			ImageURL:         req.ImageURL,
			MaxAmount:        req.MaxAmount,
			ShortDescription: req.ShortDescription,
			LongDescription:  req.LongDescription,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toCampaignResponse(c))
	}
}

func listCampaignsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := pagination.FromQuery(r.URL.Query())

		items, total, err := svc.List(r.Context(), params)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]campaignResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toCampaignResponse(c))
		}

		writeJSON(w, http.StatusOK, pagination.NewResult(out, params.Page, params.Limit, total))
	}
}

func getCampaignHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.GetByID(r.Context(), chi.URLParam(r, "campaignID"))
		if err != nil {
			http.Error(w, "campaign not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toCampaignResponse(c))
	}
}

func editCampaignHandler(svc *Service, usersSvc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Email) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		campaignID := chi.URLParam(r, "campaignID")
		current, err := svc.GetByID(r.Context(), campaignID)
		if err != nil {
			http.Error(w, "campaign not found", http.StatusNotFound)
			return
		}

		if !canManage(r, usersSvc, current, claims.Email) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req editCampaignRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		updated, err := svc.Update(r.Context(), campaignID, UpdateInput{
			PetName:          req.PetName,
			ImageURL:         req.ImageURL,
			MaxAmount:        req.MaxAmount,
			ShortDescription: req.ShortDescription,
			LongDescription:  req.LongDescription,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "campaign not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toCampaignResponse(updated))
	}
}

func pauseCampaignHandler(svc *Service, usersSvc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Email) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		campaignID := chi.URLParam(r, "campaignID")
		current, err := svc.GetByID(r.Context(), campaignID)
		if err != nil {
			http.Error(w, "campaign not found", http.StatusNotFound)
			return
		}

		if !canManage(r, usersSvc, current, claims.Email) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req pauseCampaignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		updated, err := svc.SetPaused(r.Context(), campaignID, req.Paused)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toCampaignResponse(updated))
	}
}

func listMyCampaignsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Email) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.Email)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]campaignResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toCampaignResponse(c))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func listAllCampaignsHandler(svc *Service, usersSvc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || !usersSvc.IsAdmin(r.Context(), claims.Email) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		params := pagination.FromQuery(r.URL.Query())
		items, total, err := svc.List(r.Context(), params)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]campaignResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toCampaignResponse(c))
		}

		writeJSON(w, http.StatusOK, pagination.NewResult(out, params.Page, params.Limit, total))
	}
}

func deleteCampaignHandler(svc *Service, usersSvc *users.Service) http.HandlerFunc {
	// Solo admin: el owner pausa, pero no borra (política del dashboard).
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || !usersSvc.IsAdmin(r.Context(), claims.Email) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		campaignID := chi.URLParam(r, "campaignID")
		if _, err := svc.GetByID(r.Context(), campaignID); err != nil {
			http.Error(w, "campaign not found", http.StatusNotFound)
			return
		}

		if err := svc.Delete(r.Context(), campaignID); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func canManage(r *http.Request, usersSvc *users.Service, c Campaign, email string) bool {
	if c.Owner.Email == email {
		return true
	}
	return usersSvc.IsAdmin(r.Context(), email)
}

func toCampaignResponse(c Campaign) campaignResponse {
	return campaignResponse{
		ID:               c.ID,
		PetName:          c.PetName,
		ImageURL:         c.ImageURL,
		MaxAmount:        c.MaxAmount,
		DonatedAmount:    c.DonatedAmount,
		LastDonationDate: c.LastDonationDate,
		ShortDescription: c.ShortDescription,
		LongDescription:  c.LongDescription,
		OwnerName:        c.Owner.Name,
		OwnerEmail:       c.Owner.Email,
		Paused:           c.Paused,
		DateAdded:        c.CreatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
