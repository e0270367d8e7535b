package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-adoption-platform/internal/domain/payments"
)

type DonationsRepo struct {
	db *sql.DB
}

func NewDonationsRepo(db *sql.DB) *DonationsRepo {
	return &DonationsRepo{db: db}
}

func (r *DonationsRepo) Create(ctx context.Context, d payments.Donation) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO donations (
			id,
			campaign_id, pet_name,
			donor_name, donor_email,
			amount, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		d.ID,
		d.CampaignID,
		d.PetName,
		d.DonorName,
		d.DonorEmail,
		d.Amount,
		d.CreatedAt,
	)
	return err
}

func (r *DonationsRepo) GetByID(ctx context.Context, id string) (payments.Donation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return payments.Donation{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+donationColumns+`
		FROM donations
		WHERE id = $1
	`, id)

	d, err := scanDonation(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return payments.Donation{}, ErrNotFound
		}
		return payments.Donation{}, err
	}
	return d, nil
}

func (r *DonationsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM donations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *DonationsRepo) ListByDonor(ctx context.Context, donorEmail string) ([]payments.Donation, error) {
	return r.list(ctx, "donor_email", donorEmail)
}

func (r *DonationsRepo) ListByCampaign(ctx context.Context, campaignID string) ([]payments.Donation, error) {
	return r.list(ctx, "campaign_id", campaignID)
}

func (r *DonationsRepo) list(ctx context.Context, column, value string) ([]payments.Donation, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+donationColumns+`
		FROM donations
		WHERE `+column+` = $1
		ORDER BY created_at ASC
	`, value)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]payments.Donation, 0)
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}

	return out, rows.Err()
}

func (r *DonationsRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM donations`).Scan(&n)
	return n, err
}

const donationColumns = `
	id,
	campaign_id, pet_name,
	donor_name, donor_email,
	amount, created_at`

func scanDonation(row rowScanner) (payments.Donation, error) {
	var d payments.Donation
	if err := row.Scan(
		&d.ID,
		&d.CampaignID,
		&d.PetName,
		&d.DonorName,
		&d.DonorEmail,
		&d.Amount,
		&d.CreatedAt,
	); err != nil {
		return payments.Donation{}, err
	}
	return d, nil
}
