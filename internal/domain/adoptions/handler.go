package adoptions

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-adoption-platform/internal/domain/pets"
	"pet-adoption-platform/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Post("/adoptions", createRequestHandler(svc, petsSvc))

	// Solicitudes sobre mis mascotas
	r.Get("/me/adoptions", listMyRequestsHandler(svc))

	// Transiciones (solo dueño de la mascota)
	r.Patch("/adoptions/accept/{requestID}", acceptRequestHandler(svc, petsSvc))
	r.Patch("/adoptions/reject/{requestID}", rejectRequestHandler(svc))
}

type createRequestRequest struct {
	PetID   string `json:"petId"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type requestResponse struct {
	ID             string    `json:"id"`
	PetID          string    `json:"petId"`
	PetName        string    `json:"petName"`
	OwnerEmail     string    `json:"ownerEmail"`
	RequesterName  string    `json:"requesterName"`
	RequesterEmail string    `json:"requesterEmail"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address"`
	Status         Status    `json:"status"`
	DateRequested  time.Time `json:"dateRequested"`
}

func createRequestHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Email) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createRequestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := petsSvc.GetByID(r.Context(), req.PetID)
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		if p.Adopted {
			http.Error(w, "pet already adopted", http.StatusConflict)
			return
		}

		created, err := svc.Create(r.Context(), CreateInput{
			PetID:          p.ID,
			PetName:        p.Name,
			OwnerEmail:     p.Owner.Email,
			RequesterName:  claims.Name,
			RequesterEmail: claims.Email,
			Phone:          req.Phone,
			Address:        req.Address,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toRequestResponse(created))
	}
}

func listMyRequestsHandler(svc *Service) http.HandlerFunc {
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

		out := make([]requestResponse, 0, len(items))
		for _, req := range items {
			out = append(out, toRequestResponse(req))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// acceptRequestHandler acepta la solicitud y marca la mascota como
// adoptada. El void de las otras pending lo hace el service.
func acceptRequestHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Email) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		accepted, err := svc.Accept(r.Context(), chi.URLParam(r, "requestID"), claims.Email)
		if err != nil {
			writeTransitionError(w, err)
			return
		}

		if _, err := petsSvc.SetAdopted(r.Context(), accepted.PetID, true); err != nil {
			// La solicitud quedó aceptada; la bandera se puede re-aplicar
			// con PATCH /pets/adopt/{petID}.
			http.Error(w, "request accepted but pet flag update failed", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toRequestResponse(accepted))
	}
}

func rejectRequestHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Email) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		rejected, err := svc.Reject(r.Context(), chi.URLParam(r, "requestID"), claims.Email)
		if err != nil {
			writeTransitionError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toRequestResponse(rejected))
	}
}

func writeTransitionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "request not found", http.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrBadState):
		http.Error(w, "request already resolved", http.StatusConflict)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toRequestResponse(req Request) requestResponse {
	return requestResponse{
		ID:             req.ID,
		PetID:          req.PetID,
		PetName:        req.PetName,
		OwnerEmail:     req.OwnerEmail,
		RequesterName:  req.RequesterName,
		RequesterEmail: req.RequesterEmail,
		Phone:          req.Phone,
		Address:        req.Address,
		Status:         req.Status,
		DateRequested:  req.CreatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
