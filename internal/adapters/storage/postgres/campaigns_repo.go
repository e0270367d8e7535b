package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"pet-adoption-platform/internal/domain/campaigns"
	"pet-adoption-platform/internal/pagination"
)

type CampaignsRepo struct {
	db *sql.DB
}

func NewCampaignsRepo(db *sql.DB) *CampaignsRepo {
	return &CampaignsRepo{db: db}
}

func (r *CampaignsRepo) Create(ctx context.Context, c campaigns.Campaign) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO campaigns (
			id,
			pet_name, image_url,
			max_amount, donated_amount, last_donation_date,
			short_description, long_description,
			owner_name, owner_email, paused,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		c.ID,
		c.PetName,
		c.ImageURL,
		c.MaxAmount,
		c.DonatedAmount,
		toNullTime(c.LastDonationDate),
		c.ShortDescription,
		c.LongDescription,
		c.Owner.Name,
		c.Owner.Email,
		c.Paused,
		c.CreatedAt,
		c.UpdatedAt,
	)
	return err
}

func (r *CampaignsRepo) Update(ctx context.Context, c campaigns.Campaign) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE campaigns
		SET
			pet_name = $2,
			image_url = $3,
			max_amount = $4,
			donated_amount = $5,
			last_donation_date = $6,
			short_description = $7,
			long_description = $8,
			paused = $9,
			updated_at = $10
		WHERE id = $1
	`,
		c.ID,
		c.PetName,
		c.ImageURL,
		c.MaxAmount,
		c.DonatedAmount,
		toNullTime(c.LastDonationDate),
		c.ShortDescription,
		c.LongDescription,
		c.Paused,
		c.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CampaignsRepo) GetByID(ctx context.Context, id string) (campaigns.Campaign, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return campaigns.Campaign{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+campaignColumns+`
		FROM campaigns
		WHERE id = $1
	`, id)

	c, err := scanCampaign(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return campaigns.Campaign{}, ErrNotFound
		}
		return campaigns.Campaign{}, err
	}
	return c, nil
}

func (r *CampaignsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CampaignsRepo) List(ctx context.Context, params pagination.Params) ([]campaigns.Campaign, int, error) {
	where := "WHERE 1=1"
	args := []any{}

	if s := strings.TrimSpace(params.Search); s != "" {
		args = append(args, "%"+s+"%")
		where += fmt.Sprintf(" AND pet_name ILIKE $%d", len(args))
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM campaigns "+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	orderCol := "created_at"
	if params.SortBy == campaigns.SortByMaxDonation {
		orderCol = "max_amount"
	}
	dir := "ASC"
	if params.SortOrder == "desc" {
		dir = "DESC"
	}

	args = append(args, params.Limit, params.Offset())
	query := fmt.Sprintf(`
		SELECT %s
		FROM campaigns
		%s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, campaignColumns, where, orderCol, dir, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]campaigns.Campaign, 0)
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}

	return out, total, rows.Err()
}

func (r *CampaignsRepo) ListByOwner(ctx context.Context, ownerEmail string) ([]campaigns.Campaign, error) {
	ownerEmail = strings.TrimSpace(ownerEmail)
	if ownerEmail == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+campaignColumns+`
		FROM campaigns
		WHERE owner_email = $1
		ORDER BY created_at ASC
	`, ownerEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]campaigns.Campaign, 0)
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}

	return out, rows.Err()
}

const campaignColumns = `
	id,
	pet_name, image_url,
	max_amount, donated_amount, last_donation_date,
	short_description, long_description,
	owner_name, owner_email, paused,
	created_at, updated_at`

func scanCampaign(row rowScanner) (campaigns.Campaign, error) {
	var c campaigns.Campaign
	var last sql.NullTime
	if err := row.Scan(
		&c.ID,
		&c.PetName,
		&c.ImageURL,
		&c.MaxAmount,
		&c.DonatedAmount,
		&last,
		&c.ShortDescription,
		&c.LongDescription,
		&c.Owner.Name,
		&c.Owner.Email,
		&c.Paused,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return campaigns.Campaign{}, err
	}
	if last.Valid {
		t := last.Time
		c.LastDonationDate = &t
	}
	return c, nil
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
