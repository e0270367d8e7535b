package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-adoption-platform/internal/domain/campaigns"
	"pet-adoption-platform/internal/pagination"
)

type campaignsRepo struct {
	mu   sync.RWMutex
	byID map[string]campaigns.Campaign
}

func NewCampaignsRepo() campaigns.Repository {
	return &campaignsRepo{
		byID: make(map[string]campaigns.Campaign),
	}
}

func (r *campaignsRepo) Create(ctx context.Context, c campaigns.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(c.ID) == "" {
		return errors.New("campaign id required")
	}
	if _, exists := r.byID[c.ID]; exists {
		return errors.New("campaign already exists")
	}
	r.byID[c.ID] = c
	return nil
}

func (r *campaignsRepo) Update(ctx context.Context, c campaigns.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[c.ID]; !exists {
		return ErrNotFound
	}
	r.byID[c.ID] = c
	return nil
}

func (r *campaignsRepo) GetByID(ctx context.Context, id string) (campaigns.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return campaigns.Campaign{}, ErrNotFound
	}
	return c, nil
}

func (r *campaignsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *campaignsRepo) List(ctx context.Context, params pagination.Params) ([]campaigns.Campaign, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(params.Search))

	matched := make([]campaigns.Campaign, 0)
	for _, c := range r.byID {
		if search != "" && !strings.Contains(strings.ToLower(c.PetName), search) {
			continue
		}
		matched = append(matched, c)
	}

	desc := params.SortOrder == "desc"
	sort.Slice(matched, func(i, j int) bool {
		var less bool
		switch params.SortBy {
		case campaigns.SortByMaxDonation:
			less = matched[i].MaxAmount < matched[j].MaxAmount
		default:
			less = matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		if desc {
			return !less
		}
		return less
	})

	total := len(matched)
	start := params.Offset()
	if start > total {
		start = total
	}
	end := start + params.Limit
	if end > total {
		end = total
	}

	return matched[start:end], total, nil
}

func (r *campaignsRepo) ListByOwner(ctx context.Context, ownerEmail string) ([]campaigns.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]campaigns.Campaign, 0)
	for _, c := range r.byID {
		if strings.EqualFold(c.Owner.Email, ownerEmail) {
			out = append(out, c)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}
