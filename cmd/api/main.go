package main

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	fbauth "pet-adoption-platform/internal/adapters/auth/firebase"
	"pet-adoption-platform/internal/adapters/auth/hmactoken"
	"pet-adoption-platform/internal/adapters/images/imgbb"
	"pet-adoption-platform/internal/adapters/payments/stripe"
	"pet-adoption-platform/internal/platform/logger"
	"pet-adoption-platform/internal/router"
)

// @title Pet Adoption Platform API
// @version 1.0
// @description API de adopciones y campañas de donación.
// @BasePath /
func main() {
	log := logger.NewFromEnv()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	opts := router.Options{
		AdminEmails: splitEmails(os.Getenv("ADMIN_EMAILS")),
	}

	// Sin JWT_SIGNING_KEY el server arranca en modo dev:
	// claims via X-Debug-User-Email, sin tokens firmados.
	if key := os.Getenv("JWT_SIGNING_KEY"); key != "" {
		tokens := hmactoken.New(key, "pet-adoption-platform")
		opts.Issuer = tokens
		opts.AuthVerifier = tokens
	}

	if creds := os.Getenv("FIREBASE_CREDENTIALS"); creds != "" {
		provider, err := fbauth.New(context.Background(), creds)
		if err != nil {
			log.Error("firebase init failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		opts.Provider = provider
	}

	if key := os.Getenv("STRIPE_SECRET_KEY"); key != "" {
		opts.Gateway = stripe.NewClient(stripe.Config{SecretKey: key})
	}

	if key := os.Getenv("IMGBB_KEY"); key != "" {
		opts.ImageHost = imgbb.NewClient(imgbb.Config{APIKey: key})
	}

	r := router.NewRouter(opts)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{
		"addr":   addr,
		"dev":    opts.Issuer == nil,
		"stripe": opts.Gateway != nil,
		"imgbb":  opts.ImageHost != nil,
		"social": opts.Provider != nil,
		"admins": len(opts.AdminEmails),
	})

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
}

func splitEmails(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
