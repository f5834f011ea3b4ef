package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yourusername/qrfolio-api/internal/model"
)

type ResumeRepo struct {
	pool *pgxpool.Pool
}

func NewResumeRepo(pool *pgxpool.Pool) *ResumeRepo {
	return &ResumeRepo{pool: pool}
}

const resumeColumns = `id, user_id, full_name, designation, email, phone, location,
	       profile_photo_url, summary, linkedin_url, github_url, portfolio_url,
	       template, is_active, created_at, updated_at`

func scanResume(row pgx.Row) (*model.ResumeProfile, error) {
	var p model.ResumeProfile
	err := row.Scan(
		&p.ID, &p.UserID, &p.FullName, &p.Designation, &p.Email, &p.Phone,
		&p.Location, &p.ProfilePhotoURL, &p.Summary, &p.LinkedinURL,
		&p.GithubURL, &p.PortfolioURL, &p.Template, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetOrCreate returns the user's resume profile, inserting an empty one on
// first access. The upsert keeps concurrent first requests from racing; the
// no-op DO UPDATE is what makes RETURNING yield the existing row.
func (r *ResumeRepo) GetOrCreate(ctx context.Context, userID uuid.UUID) (*model.ResumeProfile, error) {
	p, err := scanResume(r.pool.QueryRow(ctx, `
		INSERT INTO resume_profiles (user_id, template)
		VALUES ($1, 'classic')
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING `+resumeColumns+`
	`, userID))
	if err != nil {
		return nil, fmt.Errorf("getting or creating resume profile: %w", err)
	}
	return p, nil
}

// FindByUserID returns the user's resume profile, or nil when none exists yet
func (r *ResumeRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.ResumeProfile, error) {
	p, err := scanResume(r.pool.QueryRow(ctx, `
		SELECT `+resumeColumns+`
		FROM resume_profiles
		WHERE user_id = $1
	`, userID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding resume profile by user: %w", err)
	}
	return p, nil
}

// Update replaces the profile's scalar fields. Section lists live in their
// own tables and are replaced separately.
func (r *ResumeRepo) Update(ctx context.Context, id uuid.UUID, updates *model.ResumeProfile) (*model.ResumeProfile, error) {
	p, err := scanResume(r.pool.QueryRow(ctx, `
		UPDATE resume_profiles
		SET full_name = $2, designation = $3, email = $4, phone = $5,
		    location = $6, summary = $7, linkedin_url = $8, github_url = $9,
		    portfolio_url = $10, template = $11, updated_at = now()
		WHERE id = $1
		RETURNING `+resumeColumns+`
	`, id, updates.FullName, updates.Designation, updates.Email, updates.Phone,
		updates.Location, updates.Summary, updates.LinkedinURL, updates.GithubURL,
		updates.PortfolioURL, string(model.NormalizeTemplate(string(updates.Template))),
	))
	if err != nil {
		return nil, fmt.Errorf("updating resume profile: %w", err)
	}
	return p, nil
}

// UpdatePhotoURL stores the uploaded photo's public URL
func (r *ResumeRepo) UpdatePhotoURL(ctx context.Context, id uuid.UUID, photoURL string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE resume_profiles SET profile_photo_url = $2, updated_at = now() WHERE id = $1
	`, id, photoURL)
	if err != nil {
		return fmt.Errorf("updating photo url: %w", err)
	}
	return nil
}

// SetActive flips the public visibility of the resume
func (r *ResumeRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) (*model.ResumeProfile, error) {
	p, err := scanResume(r.pool.QueryRow(ctx, `
		UPDATE resume_profiles
		SET is_active = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+resumeColumns+`
	`, id, active))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("setting resume active: %w", err)
	}
	return p, nil
}

// likeEscaper neutralizes ILIKE metacharacters in caller-supplied slugs so
// "50%_off" matches literally instead of scanning every row.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// FindActiveByNamePrefix returns every active resume whose full name starts
// with the slug, case-insensitively. Callers disambiguate multiple matches.
func (r *ResumeRepo) FindActiveByNamePrefix(ctx context.Context, slug string) ([]model.ResumeProfile, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+resumeColumns+`
		FROM resume_profiles
		WHERE is_active = true AND full_name ILIKE $1 || '%'
		ORDER BY updated_at DESC
	`, escapeLike(slug))
	if err != nil {
		return nil, fmt.Errorf("finding active resumes by prefix: %w", err)
	}
	defer rows.Close()

	var profiles []model.ResumeProfile
	for rows.Next() {
		p, err := scanResume(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning resume row: %w", err)
		}
		profiles = append(profiles, *p)
	}
	return profiles, nil
}
