// Package stats arma los resúmenes de los dashboards a partir de los
// servicios de los otros módulos; no tiene repositorio propio.
package stats

import (
	"encoding/json"
	"net/http"
	"strings"

	"pet-adoption-platform/internal/domain/adoptions"
	"pet-adoption-platform/internal/domain/campaigns"
	"pet-adoption-platform/internal/domain/payments"
	"pet-adoption-platform/internal/domain/pets"
	"pet-adoption-platform/internal/domain/users"
	"pet-adoption-platform/internal/middleware"
	"pet-adoption-platform/internal/pagination"

	"github.com/go-chi/chi/v5"
)

type meOverview struct {
	Pets             int     `json:"pets"`
	Campaigns        int     `json:"campaigns"`
	AdoptionRequests int     `json:"adoptionRequests"`
	Donations        int     `json:"donations"`
	TotalDonated     float64 `json:"totalDonated"`
}

type adminOverview struct {
	Users     int `json:"users"`
	Pets      int `json:"pets"`
	Campaigns int `json:"campaigns"`
	Donations int `json:"donations"`
}

func RegisterRoutes(
	r chi.Router,
	petsSvc *pets.Service,
	campaignsSvc *campaigns.Service,
	adoptionsSvc *adoptions.Service,
	paymentsSvc *payments.Service,
	usersSvc *users.Service,
) {
	r.Get("/me/overview", meOverviewHandler(petsSvc, campaignsSvc, adoptionsSvc, paymentsSvc))
	r.Get("/admin/overview", adminOverviewHandler(petsSvc, campaignsSvc, paymentsSvc, usersSvc))
}

func meOverviewHandler(
	petsSvc *pets.Service,
	campaignsSvc *campaigns.Service,
	adoptionsSvc *adoptions.Service,
	paymentsSvc *payments.Service,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Email) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var out meOverview

		if items, err := petsSvc.ListByOwner(r.Context(), claims.Email); err == nil {
			out.Pets = len(items)
		}
		if items, err := campaignsSvc.ListByOwner(r.Context(), claims.Email); err == nil {
			out.Campaigns = len(items)
		}
		if items, err := adoptionsSvc.ListByOwner(r.Context(), claims.Email); err == nil {
			out.AdoptionRequests = len(items)
		}
		if items, err := paymentsSvc.ListByDonor(r.Context(), claims.Email); err == nil {
			out.Donations = len(items)
			for _, d := range items {
				out.TotalDonated += d.Amount
			}
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func adminOverviewHandler(
	petsSvc *pets.Service,
	campaignsSvc *campaigns.Service,
	paymentsSvc *payments.Service,
	usersSvc *users.Service,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || !usersSvc.IsAdmin(r.Context(), claims.Email) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var out adminOverview

		if items, err := usersSvc.List(r.Context()); err == nil {
			out.Users = len(items)
		}
		// Con limit 1 el total viene igual; no hace falta traer todo.
		one := pagination.Params{Page: 0, Limit: 1}
		if _, total, err := petsSvc.List(r.Context(), one); err == nil {
			out.Pets = total
		}
		if _, total, err := campaignsSvc.List(r.Context(), one); err == nil {
			out.Campaigns = total
		}
		if n, err := paymentsSvc.Count(r.Context()); err == nil {
			out.Donations = n
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
