package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"pet-adoption-platform/internal/domain/pets"
	"pet-adoption-platform/internal/pagination"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (
			id,
			name, age, category, location,
			short_description, long_description, image_url,
			owner_name, owner_email, adopted,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		p.ID,
		p.Name,
		p.Age,
		string(p.Category),
		p.Location,
		p.ShortDescription,
		p.LongDescription,
		p.ImageURL,
		p.Owner.Name,
		p.Owner.Email,
		p.Adopted,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2,
			age = $3,
			category = $4,
			location = $5,
			short_description = $6,
			long_description = $7,
			image_url = $8,
			adopted = $9,
			updated_at = $10
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		p.Age,
		string(p.Category),
		p.Location,
		p.ShortDescription,
		p.LongDescription,
		p.ImageURL,
		p.Adopted,
		p.UpdatedAt,
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

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE id = $1
	`, id)

	p, err := scanPet(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return pets.Pet{}, ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PetsRepo) List(ctx context.Context, params pagination.Params) ([]pets.Pet, int, error) {
	where := "WHERE 1=1"
	args := []any{}

	if s := strings.TrimSpace(params.Search); s != "" {
		args = append(args, "%"+s+"%")
		where += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}
	if c := strings.TrimSpace(params.Category); c != "" {
		args = append(args, c)
		where += fmt.Sprintf(" AND category = $%d", len(args))
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM pets "+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	orderCol := "created_at"
	if params.SortBy == pets.SortByPetName {
		orderCol = "name"
	}
	dir := "ASC"
	if params.SortOrder == "desc" {
		dir = "DESC"
	}

	args = append(args, params.Limit, params.Offset())
	query := fmt.Sprintf(`
		SELECT %s
		FROM pets
		%s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, petColumns, where, orderCol, dir, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}

	return out, total, rows.Err()
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerEmail string) ([]pets.Pet, error) {
	ownerEmail = strings.TrimSpace(ownerEmail)
	if ownerEmail == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE owner_email = $1
		ORDER BY created_at ASC
	`, ownerEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

const petColumns = `
	id,
	name, age, category, location,
	short_description, long_description, image_url,
	owner_name, owner_email, adopted,
	created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var p pets.Pet
	var category string
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Age,
		&category,
		&p.Location,
		&p.ShortDescription,
		&p.LongDescription,
		&p.ImageURL,
		&p.Owner.Name,
		&p.Owner.Email,
		&p.Adopted,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return pets.Pet{}, err
	}
	p.Category = pets.Category(category)
	return p, nil
}
