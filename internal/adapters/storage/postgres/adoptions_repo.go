package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-adoption-platform/internal/domain/adoptions"
)

type AdoptionsRepo struct {
	db *sql.DB
}

func NewAdoptionsRepo(db *sql.DB) *AdoptionsRepo {
	return &AdoptionsRepo{db: db}
}

func (r *AdoptionsRepo) Create(ctx context.Context, req adoptions.Request) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO adoption_requests (
			id,
			pet_id, pet_name, owner_email,
			requester_name, requester_email, phone, address,
			status,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		req.ID,
		req.PetID,
		req.PetName,
		req.OwnerEmail,
		req.RequesterName,
		req.RequesterEmail,
		req.Phone,
		req.Address,
		string(req.Status),
		req.CreatedAt,
		req.UpdatedAt,
	)
	return err
}

func (r *AdoptionsRepo) Update(ctx context.Context, req adoptions.Request) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE adoption_requests
		SET status = $2, updated_at = $3
		WHERE id = $1
	`,
		req.ID,
		string(req.Status),
		req.UpdatedAt,
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

func (r *AdoptionsRepo) GetByID(ctx context.Context, id string) (adoptions.Request, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return adoptions.Request{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+adoptionColumns+`
		FROM adoption_requests
		WHERE id = $1
	`, id)

	req, err := scanAdoption(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return adoptions.Request{}, ErrNotFound
		}
		return adoptions.Request{}, err
	}
	return req, nil
}

func (r *AdoptionsRepo) ListByOwner(ctx context.Context, ownerEmail string) ([]adoptions.Request, error) {
	return r.list(ctx, "owner_email", ownerEmail)
}

func (r *AdoptionsRepo) ListByPet(ctx context.Context, petID string) ([]adoptions.Request, error) {
	return r.list(ctx, "pet_id", petID)
}

func (r *AdoptionsRepo) list(ctx context.Context, column, value string) ([]adoptions.Request, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+adoptionColumns+`
		FROM adoption_requests
		WHERE `+column+` = $1
		ORDER BY created_at ASC
	`, value)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]adoptions.Request, 0)
	for rows.Next() {
		req, err := scanAdoption(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}

	return out, rows.Err()
}

const adoptionColumns = `
	id,
	pet_id, pet_name, owner_email,
	requester_name, requester_email, phone, address,
	status,
	created_at, updated_at`

func scanAdoption(row rowScanner) (adoptions.Request, error) {
	var req adoptions.Request
	var status string
	if err := row.Scan(
		&req.ID,
		&req.PetID,
		&req.PetName,
		&req.OwnerEmail,
		&req.RequesterName,
		&req.RequesterEmail,
		&req.Phone,
		&req.Address,
		&status,
		&req.CreatedAt,
		&req.UpdatedAt,
	); err != nil {
		return adoptions.Request{}, err
	}
	req.Status = adoptions.Status(status)
	return req, nil
}
