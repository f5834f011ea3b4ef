package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yourusername/qrfolio-api/internal/model"
)

// SectionRepo persists the four repeatable resume sections. Each section
// lives in its own table keyed by resume_id, with the client-assigned entry
// id kept as text. Lists come back newest-first by their date column, with
// insertion order (sort_order) breaking ties.
type SectionRepo struct {
	pool *pgxpool.Pool
}

func NewSectionRepo(pool *pgxpool.Pool) *SectionRepo {
	return &SectionRepo{pool: pool}
}

// ListEducation returns education entries in saved order
func (r *SectionRepo) ListEducation(ctx context.Context, resumeID uuid.UUID) ([]model.EducationEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT entry_id, institution, degree, field_of_study, start_date,
		       end_date, is_current, grade_gpa, description
		FROM resume_education
		WHERE resume_id = $1
		ORDER BY start_date DESC, sort_order
	`, resumeID)
	if err != nil {
		return nil, fmt.Errorf("listing education: %w", err)
	}
	defer rows.Close()

	entries := []model.EducationEntry{}
	for rows.Next() {
		var e model.EducationEntry
		err := rows.Scan(
			&e.ID, &e.Institution, &e.Degree, &e.FieldOfStudy, &e.StartDate,
			&e.EndDate, &e.IsCurrent, &e.GradeGPA, &e.Description,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning education row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// ListExperience returns experience entries in saved order
func (r *SectionRepo) ListExperience(ctx context.Context, resumeID uuid.UUID) ([]model.ExperienceEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT entry_id, company, position, location, start_date,
		       end_date, is_current, description
		FROM resume_experience
		WHERE resume_id = $1
		ORDER BY start_date DESC, sort_order
	`, resumeID)
	if err != nil {
		return nil, fmt.Errorf("listing experience: %w", err)
	}
	defer rows.Close()

	entries := []model.ExperienceEntry{}
	for rows.Next() {
		var e model.ExperienceEntry
		err := rows.Scan(
			&e.ID, &e.Company, &e.Position, &e.Location, &e.StartDate,
			&e.EndDate, &e.IsCurrent, &e.Description,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning experience row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// ListCertifications returns certification entries in saved order
func (r *SectionRepo) ListCertifications(ctx context.Context, resumeID uuid.UUID) ([]model.CertificationEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT entry_id, name, issuing_organization, issue_date, expiry_date,
		       credential_id, credential_url
		FROM resume_certifications
		WHERE resume_id = $1
		ORDER BY issue_date DESC, sort_order
	`, resumeID)
	if err != nil {
		return nil, fmt.Errorf("listing certifications: %w", err)
	}
	defer rows.Close()

	entries := []model.CertificationEntry{}
	for rows.Next() {
		var c model.CertificationEntry
		err := rows.Scan(
			&c.ID, &c.Name, &c.IssuingOrganization, &c.IssueDate, &c.ExpiryDate,
			&c.CredentialID, &c.CredentialURL,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning certification row: %w", err)
		}
		entries = append(entries, c)
	}
	return entries, nil
}

// ListSkills returns skill entries in saved order
func (r *SectionRepo) ListSkills(ctx context.Context, resumeID uuid.UUID) ([]model.SkillEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT entry_id, name, category, proficiency_level
		FROM resume_skills
		WHERE resume_id = $1
		ORDER BY category, sort_order
	`, resumeID)
	if err != nil {
		return nil, fmt.Errorf("listing skills: %w", err)
	}
	defer rows.Close()

	entries := []model.SkillEntry{}
	for rows.Next() {
		var s model.SkillEntry
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.ProficiencyLevel); err != nil {
			return nil, fmt.Errorf("scanning skill row: %w", err)
		}
		entries = append(entries, s)
	}
	return entries, nil
}

// ReplaceEducation swaps the resume's education list atomically
func (r *SectionRepo) ReplaceEducation(ctx context.Context, resumeID uuid.UUID, entries []model.EducationEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning education replace: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM resume_education WHERE resume_id = $1`, resumeID); err != nil {
		return fmt.Errorf("clearing education: %w", err)
	}
	for i, e := range entries {
		_, err := tx.Exec(ctx, `
			INSERT INTO resume_education
				(resume_id, entry_id, sort_order, institution, degree, field_of_study,
				 start_date, end_date, is_current, grade_gpa, description)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, resumeID, e.ID, i, e.Institution, e.Degree, e.FieldOfStudy,
			e.StartDate, e.EndDate, e.IsCurrent, e.GradeGPA, e.Description)
		if err != nil {
			return fmt.Errorf("inserting education entry: %w", err)
		}
	}
	return tx.Commit(ctx)
}

// ReplaceExperience swaps the resume's experience list atomically
func (r *SectionRepo) ReplaceExperience(ctx context.Context, resumeID uuid.UUID, entries []model.ExperienceEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning experience replace: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM resume_experience WHERE resume_id = $1`, resumeID); err != nil {
		return fmt.Errorf("clearing experience: %w", err)
	}
	for i, e := range entries {
		_, err := tx.Exec(ctx, `
			INSERT INTO resume_experience
				(resume_id, entry_id, sort_order, company, position, location,
				 start_date, end_date, is_current, description)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, resumeID, e.ID, i, e.Company, e.Position, e.Location,
			e.StartDate, e.EndDate, e.IsCurrent, e.Description)
		if err != nil {
			return fmt.Errorf("inserting experience entry: %w", err)
		}
	}
	return tx.Commit(ctx)
}

// ReplaceCertifications swaps the resume's certification list atomically
func (r *SectionRepo) ReplaceCertifications(ctx context.Context, resumeID uuid.UUID, entries []model.CertificationEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning certifications replace: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM resume_certifications WHERE resume_id = $1`, resumeID); err != nil {
		return fmt.Errorf("clearing certifications: %w", err)
	}
	for i, c := range entries {
		_, err := tx.Exec(ctx, `
			INSERT INTO resume_certifications
				(resume_id, entry_id, sort_order, name, issuing_organization,
				 issue_date, expiry_date, credential_id, credential_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, resumeID, c.ID, i, c.Name, c.IssuingOrganization,
			c.IssueDate, c.ExpiryDate, c.CredentialID, c.CredentialURL)
		if err != nil {
			return fmt.Errorf("inserting certification entry: %w", err)
		}
	}
	return tx.Commit(ctx)
}

// ReplaceSkills swaps the resume's skill list atomically
func (r *SectionRepo) ReplaceSkills(ctx context.Context, resumeID uuid.UUID, entries []model.SkillEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning skills replace: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM resume_skills WHERE resume_id = $1`, resumeID); err != nil {
		return fmt.Errorf("clearing skills: %w", err)
	}
	for i, s := range entries {
		_, err := tx.Exec(ctx, `
			INSERT INTO resume_skills
				(resume_id, entry_id, sort_order, name, category, proficiency_level)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, resumeID, s.ID, i, s.Name, s.Category, s.ProficiencyLevel)
		if err != nil {
			return fmt.Errorf("inserting skill entry: %w", err)
		}
	}
	return tx.Commit(ctx)
}
