package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"agrilink-backend/internal/apperr"
	"agrilink-backend/internal/models"
	"agrilink-backend/internal/utils"
)

// ProgramService manages support programs and their applicant rosters
type ProgramService struct {
	db *sql.DB
}

func NewProgramService(db *sql.DB) *ProgramService {
	return &ProgramService{db: db}
}

// Create registers a new program
func (s *ProgramService) Create(creatorID string, req *models.ProgramCreation) (*models.Program, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperr.InvalidInput(err.Error())
	}
	if !req.Type.IsValid() {
		return nil, apperr.InvalidInput(fmt.Sprintf("invalid program type: %s", req.Type))
	}

	program := &models.Program{
		ID:          uuid.New().String(),
		Title:       utils.SanitizeString(req.Title),
		Description: utils.SanitizeString(req.Description),
		Type:        req.Type,
		Eligibility: utils.SanitizeString(req.Eligibility),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CreatedBy:   creatorID,
		CreatedAt:   time.Now().UTC(),
		Applicants:  []models.Applicant{},
	}

	_, err := s.db.Exec(`
		INSERT INTO programs (id, title, description, type, eligibility, start_date, end_date, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		program.ID, program.Title, program.Description, program.Type,
		program.Eligibility, program.StartDate, program.EndDate,
		program.CreatedBy, program.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create program: %w", err)
	}

	return program, nil
}

// List returns all programs with their applicants
func (s *ProgramService) List() ([]models.Program, error) {
	rows, err := s.db.Query(`
		SELECT id, title, description, type, eligibility, start_date, end_date, created_by, created_at
		FROM programs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list programs: %w", err)
	}
	defer rows.Close()

	programs := []models.Program{}
	for rows.Next() {
		var p models.Program
		var start, end sql.NullTime
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Type, &p.Eligibility,
			&start, &end, &p.CreatedBy, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan program: %w", err)
		}
		if start.Valid {
			p.StartDate = &start.Time
		}
		if end.Valid {
			p.EndDate = &end.Time
		}
		programs = append(programs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range programs {
		applicants, err := s.listApplicants(programs[i].ID)
		if err != nil {
			return nil, err
		}
		programs[i].Applicants = applicants
	}
	return programs, nil
}

// GetByID fetches a program with its applicants
func (s *ProgramService) GetByID(id string) (*models.Program, error) {
	var p models.Program
	var start, end sql.NullTime
	err := s.db.QueryRow(`
		SELECT id, title, description, type, eligibility, start_date, end_date, created_by, created_at
		FROM programs WHERE id = ?`, id).
		Scan(&p.ID, &p.Title, &p.Description, &p.Type, &p.Eligibility,
			&start, &end, &p.CreatedBy, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("program not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch program: %w", err)
	}
	if start.Valid {
		p.StartDate = &start.Time
	}
	if end.Valid {
		p.EndDate = &end.Time
	}

	p.Applicants, err = s.listApplicants(p.ID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Apply records a farmer's application. A farmer can hold at most one
// application per program; a second attempt is a conflict.
func (s *ProgramService) Apply(programID, farmerID string) (*models.Applicant, error) {
	if _, err := s.GetByID(programID); err != nil {
		return nil, err
	}

	applicant := &models.Applicant{
		ProgramID: programID,
		FarmerID:  farmerID,
		Status:    models.ApplicantStatusApplied,
		AppliedAt: time.Now().UTC(),
	}

	result, err := s.db.Exec(`
		INSERT OR IGNORE INTO program_applicants (program_id, farmer_id, status, applied_at)
		VALUES (?, ?, ?, ?)`,
		applicant.ProgramID, applicant.FarmerID, applicant.Status, applicant.AppliedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to record application: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, apperr.Conflict("you have already applied to this program")
	}

	return applicant, nil
}

// UpdateApplicant sets an admin decision on an existing application.
// Decisions overwrite whatever status was there before.
func (s *ProgramService) UpdateApplicant(programID, farmerID string, status models.ApplicantStatus) (*models.Applicant, error) {
	if !status.IsDecision() {
		return nil, apperr.InvalidInput("status must be APPROVED or REJECTED")
	}

	result, err := s.db.Exec(`
		UPDATE program_applicants SET status = ? WHERE program_id = ? AND farmer_id = ?`,
		status, programID, farmerID)
	if err != nil {
		return nil, fmt.Errorf("failed to update application: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, apperr.NotFound("application not found")
	}

	var a models.Applicant
	err = s.db.QueryRow(`
		SELECT program_id, farmer_id, status, applied_at
		FROM program_applicants WHERE program_id = ? AND farmer_id = ?`,
		programID, farmerID).
		Scan(&a.ProgramID, &a.FarmerID, &a.Status, &a.AppliedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch application: %w", err)
	}
	return &a, nil
}

// Delete removes a program and its applicant roster
func (s *ProgramService) Delete(id string) error {
	result, err := s.db.Exec("DELETE FROM programs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete program: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return apperr.NotFound("program not found")
	}
	return nil
}

func (s *ProgramService) listApplicants(programID string) ([]models.Applicant, error) {
	rows, err := s.db.Query(`
		SELECT a.program_id, a.farmer_id, a.status, a.applied_at, u.name, u.email
		FROM program_applicants a
		JOIN users u ON u.id = a.farmer_id
		WHERE a.program_id = ?
		ORDER BY a.applied_at`, programID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applicants: %w", err)
	}
	defer rows.Close()

	applicants := []models.Applicant{}
	for rows.Next() {
		var a models.Applicant
		var name, email string
		if err := rows.Scan(&a.ProgramID, &a.FarmerID, &a.Status, &a.AppliedAt, &name, &email); err != nil {
			return nil, fmt.Errorf("failed to scan applicant: %w", err)
		}
		a.Farmer = &models.User{ID: a.FarmerID, Name: name, Email: email}
		applicants = append(applicants, a)
	}
	return applicants, rows.Err()
}
