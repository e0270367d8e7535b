package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-adoption-platform/internal/router"
)

func TestHTTP_EndToEnd_AdoptionFlow(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	owner := "owner@example.com"
	adopterA := "ana@example.com"
	adopterB := "bruno@example.com"

	// 1) Owner publica mascota
	petID := createPet(t, ts.URL, owner, map[string]any{
		"petName":  "Milo",
		"petAge":   3,
		"category": "dog",
		"location": "Lima",
	})

	// 2) Dos adoptantes piden la misma mascota
	reqA := createAdoption(t, ts.URL, adopterA, petID)
	reqB := createAdoption(t, ts.URL, adopterB, petID)

	// 3) El adoptante no puede aceptar (no es dueño)
	{
		st, _ := doReq(t, ts.URL, "PATCH", "/adoptions/accept/"+reqA, adopterA, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 accept by non-owner, got %d", st)
		}
	}

	// 4) El dueño acepta la primera
	{
		st, body := doReq(t, ts.URL, "PATCH", "/adoptions/accept/"+reqA, owner, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 accept, got %d body=%s", st, string(body))
		}
	}

	// 5) La mascota queda adoptada
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/"+petID, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get pet, got %d", st)
		}
		var resp struct {
			Adopted bool `json:"adopted"`
		}
		_ = json.Unmarshal(body, &resp)
		if !resp.Adopted {
			t.Fatalf("expected pet adopted after accept, body=%s", string(body))
		}
	}

	// 6) La otra solicitud pending quedó rechazada
	{
		st, body := doReq(t, ts.URL, "GET", "/me/adoptions", owner, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list my adoptions, got %d", st)
		}
		var items []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		}
		_ = json.Unmarshal(body, &items)
		for _, it := range items {
			if it.ID == reqB && it.Status != "rejected" {
				t.Fatalf("expected request B rejected after accepting A, got %s", it.Status)
			}
		}
	}

	// 7) Aceptar la rechazada ahora es un estado inválido
	{
		st, _ := doReq(t, ts.URL, "PATCH", "/adoptions/accept/"+reqB, owner, nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 accept rejected request, got %d", st)
		}
	}

	// 8) No se puede pedir una mascota ya adoptada
	{
		st, _ := doReq(t, ts.URL, "POST", "/adoptions", adopterB, map[string]any{
			"petId": petID,
		})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 adopt already-adopted pet, got %d", st)
		}
	}
}

func TestHTTP_PetCatalog_PaginationAndFilters(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	owner := "owner@example.com"

	// 12 mascotas: 6 perros y 6 gatos, nombres ordenables
	for i := 0; i < 12; i++ {
		category := "dog"
		if i%2 == 1 {
			category = "cat"
		}
		createPet(t, ts.URL, owner, map[string]any{
			"petName":  fmt.Sprintf("pet-%02d", i),
			"petAge":   1,
			"category": category,
			"location": "Lima",
		})
	}

	// Página 0: 9 items (límite default), 2 páginas en total
	{
		page := listPets(t, ts.URL, "/pets?page=0")
		if len(page.Items) != 9 {
			t.Fatalf("expected 9 items on page 0, got %d", len(page.Items))
		}
		if page.CurrentPage != 0 || page.TotalPages != 2 {
			t.Fatalf("expected currentPage=0 totalPages=2, got %d/%d", page.CurrentPage, page.TotalPages)
		}
	}

	// Página 1: los 3 restantes
	{
		page := listPets(t, ts.URL, "/pets?page=1")
		if len(page.Items) != 3 {
			t.Fatalf("expected 3 items on page 1, got %d", len(page.Items))
		}
	}

	// Filtro por categoría
	{
		page := listPets(t, ts.URL, "/pets?page=0&category=cat")
		if len(page.Items) != 6 || page.TotalPages != 1 {
			t.Fatalf("expected 6 cats on 1 page, got %d items %d pages", len(page.Items), page.TotalPages)
		}
	}

	// Search por nombre
	{
		page := listPets(t, ts.URL, "/pets?page=0&search=pet-03")
		if len(page.Items) != 1 || page.Items[0].PetName != "pet-03" {
			t.Fatalf("expected exactly pet-03, got %+v", page.Items)
		}
	}

	// Orden por nombre descendente
	{
		page := listPets(t, ts.URL, "/pets?page=0&sortBy=petName&sortOrder=desc")
		if page.Items[0].PetName != "pet-11" {
			t.Fatalf("expected pet-11 first sorting desc, got %s", page.Items[0].PetName)
		}
	}
}

func TestHTTP_DonationFlow(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{
		AdminEmails: []string{"admin@example.com"},
	}))
	defer ts.Close()

	owner := "owner@example.com"
	donor := "donor@example.com"

	// 1) Owner crea campaña
	campaignID := createCampaign(t, ts.URL, owner, map[string]any{
		"petName":           "Luna",
		"maxDonationAmount": 500.0,
		"shortDescription":  "surgery",
	})

	// 2) Montos no-positivos no llegan al gateway
	{
		st, _ := doReq(t, ts.URL, "POST", "/create-payment-intent", donor, map[string]any{
			"amount": 0,
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for zero amount intent, got %d", st)
		}
	}

	// 3) Intent válido devuelve client secret
	{
		st, body := doReq(t, ts.URL, "POST", "/create-payment-intent", donor, map[string]any{
			"amount": 25.0,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 create intent, got %d body=%s", st, string(body))
		}
		var resp struct {
			ClientSecret string `json:"clientSecret"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.ClientSecret == "" {
			t.Fatalf("expected non-empty clientSecret, body=%s", string(body))
		}
	}

	// 4) Donación confirmada acredita la campaña
	var donationID string
	{
		st, body := doReq(t, ts.URL, "PATCH", "/donations/"+campaignID, donor, map[string]any{
			"donationAmount": 25.0,
			"donatorName":    "Dana",
			"donatorEmail":   donor,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 credit donation, got %d body=%s", st, string(body))
		}
		var resp struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(body, &resp)
		donationID = resp.ID
	}
	if got := campaignDonated(t, ts.URL, campaignID); got != 25 {
		t.Fatalf("expected donatedAmount 25, got %v", got)
	}

	// 5) Campaña pausada rechaza donaciones
	{
		st, body := doReq(t, ts.URL, "PATCH", "/donations/pause/"+campaignID, owner, map[string]any{
			"isPaused": true,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 pause, got %d body=%s", st, string(body))
		}
		st, _ = doReq(t, ts.URL, "PATCH", "/donations/"+campaignID, donor, map[string]any{
			"donationAmount": 10.0,
			"donatorEmail":   donor,
		})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 donating to paused campaign, got %d", st)
		}
	}

	// 6) El donante ve su donación
	{
		st, body := doReq(t, ts.URL, "GET", "/me/payments", donor, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 my payments, got %d", st)
		}
		var items []struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(body, &items)
		if len(items) != 1 || items[0].ID != donationID {
			t.Fatalf("expected exactly the credited donation, got %+v", items)
		}
	}

	// 7) Otro usuario no puede refundarla
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/payments/"+donationID, owner, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 refund by non-donor, got %d", st)
		}
	}

	// 8) El refund del donante revierte el total
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/payments/"+donationID, donor, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 refund, got %d", st)
		}
	}
	if got := campaignDonated(t, ts.URL, campaignID); got != 0 {
		t.Fatalf("expected donatedAmount back to 0 after refund, got %v", got)
	}

	// 9) Solo admin borra campañas
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/admin/donations/"+campaignID, owner, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 delete campaign by owner, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "DELETE", "/admin/donations/"+campaignID, "admin@example.com", nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete campaign by admin, got %d", st)
		}
	}
}

func TestHTTP_RoleGatingAndPromotion(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{
		AdminEmails: []string{"admin@example.com"},
	}))
	defer ts.Close()

	admin := "admin@example.com"
	regular := "user@example.com"

	// Perfil del usuario común (primer login)
	var userID string
	{
		st, body := doReq(t, ts.URL, "POST", "/users", "", map[string]any{
			"name":  "Uma",
			"email": regular,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 upsert user, got %d body=%s", st, string(body))
		}
		var resp struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(body, &resp)
		userID = resp.ID
	}

	// Resolver de rol: el propio usuario sí, ajeno no
	{
		st, body := doReq(t, ts.URL, "GET", "/users/admin/"+regular, regular, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 own role check, got %d", st)
		}
		var resp struct {
			Admin bool `json:"admin"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Admin {
			t.Fatalf("expected admin=false for regular user")
		}

		st, _ = doReq(t, ts.URL, "GET", "/users/admin/"+admin, regular, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 checking someone else's role, got %d", st)
		}
	}

	// Tabla de usuarios: solo admin
	{
		st, _ := doReq(t, ts.URL, "GET", "/users", regular, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 list users as regular, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "GET", "/users", admin, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list users as admin, got %d", st)
		}
	}

	// Promoción: solo admin, y es monotónica
	{
		st, _ := doReq(t, ts.URL, "PATCH", "/users/admin/"+userID, regular, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 promote by regular, got %d", st)
		}

		st, body := doReq(t, ts.URL, "PATCH", "/users/admin/"+userID, admin, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 promote, got %d body=%s", st, string(body))
		}

		st, body = doReq(t, ts.URL, "GET", "/users/admin/"+regular, regular, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 role check after promote, got %d", st)
		}
		var resp struct {
			Admin bool `json:"admin"`
		}
		_ = json.Unmarshal(body, &resp)
		if !resp.Admin {
			t.Fatalf("expected admin=true after promotion")
		}
	}

	// Overview admin
	{
		st, _ := doReq(t, ts.URL, "GET", "/admin/overview", admin, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 admin overview, got %d", st)
		}
	}
}

type petItem struct {
	ID      string `json:"id"`
	PetName string `json:"petName"`
}

type petPage struct {
	Items       []petItem `json:"items"`
	CurrentPage int       `json:"currentPage"`
	TotalPages  int       `json:"totalPages"`
}

func listPets(t *testing.T, baseURL, path string) petPage {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", path, "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list pets, got %d body=%s", st, string(body))
	}
	var page petPage
	if err := json.Unmarshal(body, &page); err != nil {
		t.Fatalf("unmarshal page: %v body=%s", err, string(body))
	}
	return page
}

func createPet(t *testing.T, baseURL, userEmail string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/pets", userEmail, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create pet, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create pet: missing id body=%s", string(body))
	}
	return resp.ID
}

func createAdoption(t *testing.T, baseURL, userEmail, petID string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/adoptions", userEmail, map[string]any{
		"petId":   petID,
		"phone":   "555-0100",
		"address": "Av. Siempre Viva 742",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create adoption, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create adoption: missing id body=%s", string(body))
	}
	return resp.ID
}

func createCampaign(t *testing.T, baseURL, userEmail string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/donations", userEmail, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create campaign, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create campaign: missing id body=%s", string(body))
	}
	return resp.ID
}

func campaignDonated(t *testing.T, baseURL, campaignID string) float64 {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", "/donations/"+campaignID, "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 get campaign, got %d body=%s", st, string(body))
	}
	var resp struct {
		DonatedAmount float64 `json:"donatedAmount"`
	}
	_ = json.Unmarshal(body, &resp)
	return resp.DonatedAmount
}

func doReq(t *testing.T, baseURL, method, path, debugUserEmail string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserEmail != "" {
		req.Header.Set("X-Debug-User-Email", debugUserEmail)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
