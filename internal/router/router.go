package router

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"

	paymem "pet-adoption-platform/internal/adapters/payments/memory"
	mem "pet-adoption-platform/internal/adapters/storage/memory"
	pg "pet-adoption-platform/internal/adapters/storage/postgres"
	"pet-adoption-platform/internal/domain/adoptions"
	"pet-adoption-platform/internal/domain/campaigns"
	"pet-adoption-platform/internal/domain/payments"
	"pet-adoption-platform/internal/domain/pets"
	"pet-adoption-platform/internal/domain/stats"
	"pet-adoption-platform/internal/domain/users"
	"pet-adoption-platform/internal/middleware"
	"pet-adoption-platform/internal/ports/auth"
	"pet-adoption-platform/internal/ports/images"
	paygw "pet-adoption-platform/internal/ports/payments"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "pet-adoption-platform/docs"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Issuer firma los tokens de sesión que emite POST /auth/jwt.
	Issuer auth.TokenIssuer

	// Provider valida ID tokens del proveedor social. Nil = modo dev:
	// /auth/jwt confía en el email del payload.
	Provider auth.ProviderVerifier

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Gateway de pagos. Nil = gateway in-memory (dev/tests).
	Gateway paygw.Gateway

	// Hosting de imágenes. Nil = POST /images responde 503.
	ImageHost images.Host

	// Cuentas promovidas a admin en el arranque (ADMIN_EMAILS).
	AdminEmails []string
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler())

	var (
		petsRepo      pets.Repository
		campaignsRepo campaigns.Repository
		adoptionsRepo adoptions.Repository
		usersRepo     users.Repository
		donationsRepo payments.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		petsRepo = pg.NewPetsRepo(db)
		campaignsRepo = pg.NewCampaignsRepo(db)
		adoptionsRepo = pg.NewAdoptionsRepo(db)
		usersRepo = pg.NewUsersRepo(db)
		donationsRepo = pg.NewDonationsRepo(db)
	} else {
		petsRepo = mem.NewPetsRepo()
		campaignsRepo = mem.NewCampaignsRepo()
		adoptionsRepo = mem.NewAdoptionsRepo()
		usersRepo = mem.NewUsersRepo()
		donationsRepo = mem.NewDonationsRepo()
	}

	gateway := opts.Gateway
	if gateway == nil {
		gateway = paymem.NewGateway()
	}

	// Services por módulo
	usersSvc := users.NewService(usersRepo)
	petsSvc := pets.NewService(petsRepo)
	campaignsSvc := campaigns.NewService(campaignsRepo)
	adoptionsSvc := adoptions.NewService(adoptionsRepo)
	paymentsSvc := payments.NewService(donationsRepo, gateway)

	// Bootstrap de admins por env
	for _, email := range opts.AdminEmails {
		if email = strings.TrimSpace(email); email != "" {
			_ = usersSvc.EnsureAdmin(context.Background(), email)
		}
	}

	// Rutas por módulo
	users.RegisterAuthRoutes(r, usersSvc, opts.Issuer, opts.Provider)
	users.RegisterRoutes(r, usersSvc)
	pets.RegisterRoutes(r, petsSvc, usersSvc)
	campaigns.RegisterRoutes(r, campaignsSvc, usersSvc)
	adoptions.RegisterRoutes(r, adoptionsSvc, petsSvc)
	payments.RegisterRoutes(r, paymentsSvc, campaignsSvc, usersSvc)
	stats.RegisterRoutes(r, petsSvc, campaignsSvc, adoptionsSvc, paymentsSvc, usersSvc)

	r.Post("/images", uploadImageHandler(opts.ImageHost))

	return r
}

// maxImageBytes limita el body del upload (imgbb rechaza >32MB igual).
const maxImageBytes = 16 << 20

func uploadImageHandler(host images.Host) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if host == nil {
			http.Error(w, "image hosting not configured", http.StatusServiceUnavailable)
			return
		}

		if err := r.ParseMultipartForm(maxImageBytes); err != nil {
			http.Error(w, "invalid multipart form", http.StatusBadRequest)
			return
		}
		file, header, err := r.FormFile("image")
		if err != nil {
			http.Error(w, "image field required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
		if err != nil {
			http.Error(w, "read image", http.StatusBadRequest)
			return
		}

		url, err := host.Upload(r.Context(), header.Filename, data)
		if err != nil {
			http.Error(w, "image upload failed", http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"url": url})
	}
}
