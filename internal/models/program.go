package models

import "time"

// ProgramType represents the kind of support program
type ProgramType string

const (
	ProgramTypeSubsidy  ProgramType = "SUBSIDY"
	ProgramTypeTraining ProgramType = "TRAINING"
	ProgramTypeGrant    ProgramType = "GRANT"
)

func (t ProgramType) IsValid() bool {
	switch t {
	case ProgramTypeSubsidy, ProgramTypeTraining, ProgramTypeGrant:
		return true
	}
	return false
}

// ApplicantStatus represents the state of a program application
type ApplicantStatus string

const (
	ApplicantStatusApplied  ApplicantStatus = "APPLIED"
	ApplicantStatusApproved ApplicantStatus = "APPROVED"
	ApplicantStatusRejected ApplicantStatus = "REJECTED"
)

// IsDecision reports whether the status is one an admin may set on an
// existing application.
func (s ApplicantStatus) IsDecision() bool {
	return s == ApplicantStatusApproved || s == ApplicantStatusRejected
}

// Program represents a subsidy/training/grant program
type Program struct {
	ID          string      `json:"id" db:"id"`
	Title       string      `json:"title" db:"title"`
	Description string      `json:"description" db:"description"`
	Type        ProgramType `json:"type" db:"type"`
	Eligibility string      `json:"eligibility" db:"eligibility"`
	StartDate   *time.Time  `json:"startDate,omitempty" db:"start_date"`
	EndDate     *time.Time  `json:"endDate,omitempty" db:"end_date"`
	CreatedBy   string      `json:"createdBy" db:"created_by"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
	Applicants  []Applicant `json:"applicants"`

	// Joined data (populated when needed)
	Creator *User `json:"creator,omitempty"`
}

// Applicant is a farmer's application record embedded within a program.
// At most one applicant entry exists per (program, farmer) pair.
type Applicant struct {
	ProgramID string          `json:"programId" db:"program_id"`
	FarmerID  string          `json:"farmerId" db:"farmer_id"`
	Status    ApplicantStatus `json:"status" db:"status"`
	AppliedAt time.Time       `json:"appliedAt" db:"applied_at"`

	// Joined data (populated when needed)
	Farmer *User `json:"farmer,omitempty"`
}

// ProgramCreation represents data for creating a program
type ProgramCreation struct {
	Title       string      `json:"title" validate:"required,max=200"`
	Description string      `json:"description"`
	Type        ProgramType `json:"type" validate:"required"`
	Eligibility string      `json:"eligibility"`
	StartDate   *time.Time  `json:"startDate,omitempty"`
	EndDate     *time.Time  `json:"endDate,omitempty"`
}

// ApplicantStatusUpdate represents an admin decision on an application
type ApplicantStatusUpdate struct {
	Status ApplicantStatus `json:"status" validate:"required"`
}
