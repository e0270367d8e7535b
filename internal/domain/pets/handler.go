package pets

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
	r.Route("/pets", func(pr chi.Router) {
		// Catálogo público infinito (search/category/sortBy/sortOrder/page)
		pr.Get("/", listPetsHandler(svc))
		pr.Post("/", createPetHandler(svc, usersSvc))

		pr.Get("/{petID}", getPetHandler(svc))

		// Owner o admin
		pr.Patch("/{petID}", updatePetHandler(svc, usersSvc))
		pr.Delete("/{petID}", deletePetHandler(svc, usersSvc))
		pr.Patch("/adopt/{petID}", adoptPetHandler(svc, usersSvc))
	})

	// Mis mascotas publicadas
	r.Get("/me/pets", listMyPetsHandler(svc))

	// Tabla admin (paginada)
	r.Get("/admin/pets", listAllPetsHandler(svc, usersSvc))
}

type createPetRequest struct {
	PetName          string `json:"petName"`
	PetAge           int    `json:"petAge"`
	Category         string `json:"category"`
	Location         string `json:"location"`
	ShortDescription string `json:"shortDescription"`
	LongDescription  string `json:"longDescription"`
	ImageURL         string `json:"imageUrl"`
}

type petResponse struct {
	ID               string    `json:"id"`
	PetName          string    `json:"petName"`
	PetAge           int       `json:"petAge"`
	Category         string    `json:"category"`
	Location         string    `json:"location"`
	ShortDescription string    `json:"shortDescription"`
	LongDescription  string    `json:"longDescription"`
	ImageURL         string    `json:"imageUrl"`
	OwnerName        string    `json:"ownerName"`
	OwnerEmail       string    `json:"ownerEmail"`
	Adopted          bool      `json:"adopted"`
	DateAdded        time.Time `json:"dateAdded"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type updatePetRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	PetName          *string `json:"petName"`
	PetAge           *int    `json:"petAge"`
	Category         *string `json:"category"`
	Location         *string `json:"location"`
	ShortDescription *string `json:"shortDescription"`
	LongDescription  *string `json:"longDescription"`
	ImageURL         *string `json:"imageUrl"`
}

type adoptPetRequest struct {
	Adopted bool `json:"adopted"`
}

func createPetHandler(svc *Service, usersSvc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Email) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		// El nombre del owner sale del perfil si existe; si no, de los claims.
		ownerName := claims.Name
		if u, err := usersSvc.GetByEmail(r.Context(), claims.Email); err == nil {
			ownerName = u.Name
		}

		p, err := svc.Create(r.Context(), Owner{Name: ownerName, Email: claims.Email}, CreateInput{
			Name:             req.PetName,
			Age:              req.PetAge,
			Category:         req.Category,
			Location:         req.Location,
			ShortDescription: req.ShortDescription,
			LongDescription:  req.LongDescription,
			ImageURL:         req.ImageURL,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := pagination.FromQuery(r.URL.Query())

		items, total, err := svc.List(r.Context(), params)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}

		writeJSON(w, http.StatusOK, pagination.NewResult(out, params.Page, params.Limit, total))
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func updatePetHandler(svc *Service, usersSvc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Email) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")
		current, err := svc.GetByID(r.Context(), petID)
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}

		if !canManage(r, usersSvc, current, claims.Email) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req updatePetRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		updated, err := svc.Update(r.Context(), petID, UpdateInput{
			Name:             req.PetName,
			Age:              req.PetAge,
			Category:         req.Category,
			Location:         req.Location,
			ShortDescription: req.ShortDescription,
			LongDescription:  req.LongDescription,
			ImageURL:         req.ImageURL,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "pet not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(updated))
	}
}

func adoptPetHandler(svc *Service, usersSvc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Email) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")
		current, err := svc.GetByID(r.Context(), petID)
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}

		if !canManage(r, usersSvc, current, claims.Email) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req adoptPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		updated, err := svc.SetAdopted(r.Context(), petID, req.Adopted)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(updated))
	}
}

func deletePetHandler(svc *Service, usersSvc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Email) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")
		current, err := svc.GetByID(r.Context(), petID)
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}

		if !canManage(r, usersSvc, current, claims.Email) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		if err := svc.Delete(r.Context(), petID); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func listMyPetsHandler(svc *Service) http.HandlerFunc {
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

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func listAllPetsHandler(svc *Service, usersSvc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Email) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !usersSvc.IsAdmin(r.Context(), claims.Email) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		params := pagination.FromQuery(r.URL.Query())
		items, total, err := svc.List(r.Context(), params)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}

		writeJSON(w, http.StatusOK, pagination.NewResult(out, params.Page, params.Limit, total))
	}
}

// canManage: owner bypass, si no, requiere rol admin.
func canManage(r *http.Request, usersSvc *users.Service, p Pet, email string) bool {
	if p.Owner.Email == email {
		return true
	}
	return usersSvc.IsAdmin(r.Context(), email)
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:               p.ID,
		PetName:          p.Name,
		PetAge:           p.Age,
		Category:         string(p.Category),
		Location:         p.Location,
		ShortDescription: p.ShortDescription,
		LongDescription:  p.LongDescription,
		ImageURL:         p.ImageURL,
		OwnerName:        p.Owner.Name,
		OwnerEmail:       p.Owner.Email,
		Adopted:          p.Adopted,
		DateAdded:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
