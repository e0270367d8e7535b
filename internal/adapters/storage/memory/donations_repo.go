package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-adoption-platform/internal/domain/payments"
)

type donationsRepo struct {
	mu   sync.RWMutex
	byID map[string]payments.Donation
}

func NewDonationsRepo() payments.Repository {
	return &donationsRepo{
		byID: make(map[string]payments.Donation),
	}
}

func (r *donationsRepo) Create(ctx context.Context, d payments.Donation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(d.ID) == "" {
		return errors.New("donation id required")
	}
	if _, exists := r.byID[d.ID]; exists {
		return errors.New("donation already exists")
	}
	r.byID[d.ID] = d
	return nil
}

func (r *donationsRepo) GetByID(ctx context.Context, id string) (payments.Donation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byID[id]
	if !ok {
		return payments.Donation{}, ErrNotFound
	}
	return d, nil
}

func (r *donationsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *donationsRepo) ListByDonor(ctx context.Context, donorEmail string) ([]payments.Donation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]payments.Donation, 0)
	for _, d := range r.byID {
		if strings.EqualFold(d.DonorEmail, donorEmail) {
			out = append(out, d)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *donationsRepo) ListByCampaign(ctx context.Context, campaignID string) ([]payments.Donation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]payments.Donation, 0)
	for _, d := range r.byID {
		if d.CampaignID == campaignID {
			out = append(out, d)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *donationsRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}
