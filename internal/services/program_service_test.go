package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrilink-backend/internal/apperr"
	"agrilink-backend/internal/models"
)

func TestProgramApplyOncePerFarmer(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "admin@example.com", models.UserRoleAdmin)
	farmer := createTestUser(t, db, "farmer@example.com", models.UserRoleFarmer)

	programs := NewProgramService(db)
	program, err := programs.Create(admin.ID, &models.ProgramCreation{
		Title: "Fertilizer Subsidy",
		Type:  models.ProgramTypeSubsidy,
	})
	require.NoError(t, err)

	applicant, err := programs.Apply(program.ID, farmer.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicantStatusApplied, applicant.Status)

	_, err = programs.Apply(program.ID, farmer.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	fetched, err := programs.GetByID(program.ID)
	require.NoError(t, err)
	assert.Len(t, fetched.Applicants, 1)
}

func TestProgramApplyUnknownProgram(t *testing.T) {
	db := setupTestDB(t)
	farmer := createTestUser(t, db, "farmer@example.com", models.UserRoleFarmer)

	_, err := NewProgramService(db).Apply("missing", farmer.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestProgramApplicantDecisionOverwrites(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "admin@example.com", models.UserRoleAdmin)
	farmer := createTestUser(t, db, "farmer@example.com", models.UserRoleFarmer)

	programs := NewProgramService(db)
	program, err := programs.Create(admin.ID, &models.ProgramCreation{
		Title: "Irrigation Training",
		Type:  models.ProgramTypeTraining,
	})
	require.NoError(t, err)

	_, err = programs.Apply(program.ID, farmer.ID)
	require.NoError(t, err)

	approved, err := programs.UpdateApplicant(program.ID, farmer.ID, models.ApplicantStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicantStatusApproved, approved.Status)

	// A decision can be reversed by setting the other decision.
	rejected, err := programs.UpdateApplicant(program.ID, farmer.ID, models.ApplicantStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicantStatusRejected, rejected.Status)
}

func TestProgramApplicantDecisionValidation(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "admin@example.com", models.UserRoleAdmin)
	farmer := createTestUser(t, db, "farmer@example.com", models.UserRoleFarmer)

	programs := NewProgramService(db)
	program, err := programs.Create(admin.ID, &models.ProgramCreation{
		Title: "Grant Round",
		Type:  models.ProgramTypeGrant,
	})
	require.NoError(t, err)

	_, err = programs.Apply(program.ID, farmer.ID)
	require.NoError(t, err)

	// APPLIED is not an admin decision.
	_, err = programs.UpdateApplicant(program.ID, farmer.ID, models.ApplicantStatusApplied)
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))

	// Decisions on someone who never applied are not found.
	_, err = programs.UpdateApplicant(program.ID, admin.ID, models.ApplicantStatusApproved)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestProgramCreateRejectsUnknownType(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "admin@example.com", models.UserRoleAdmin)

	_, err := NewProgramService(db).Create(admin.ID, &models.ProgramCreation{
		Title: "Mystery Program",
		Type:  "LOTTERY",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
}
