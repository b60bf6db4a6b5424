package service

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/fees/dto"
	m "schoolku_backend/internals/features/finance/fees/model"
	"schoolku_backend/internals/features/finance/money"
	helper "schoolku_backend/internals/helpers"
)

/* =========================================================
   Fee Assignment Engine — materializes obligations for
   students from a catalog structure. One transaction covers
   the whole batch: an assignment row never exists without
   its paired CHARGE ledger row.
========================================================= */

// ComputeStructureTotal resolves the amount owed for one assignment.
// The explicit structure total wins; otherwise the linked head amounts are
// summed. No reconciliation between the two is performed.
func ComputeStructureTotal(s *m.FeeStructure) money.Amount {
	if s.FeeStructureTotalAmount != nil && !s.FeeStructureTotalAmount.IsZero() {
		return *s.FeeStructureTotalAmount
	}
	total := money.Zero
	for _, h := range s.Heads {
		total = total.Add(h.FeeStructureHeadAmount)
	}
	return total
}

// AssignFees binds a fee structure to each given student and writes the
// opening CHARGE for every created assignment, all in one transaction.
func AssignFees(
	ctx context.Context,
	db *gorm.DB,
	institutionID, assignedBy uuid.UUID,
	req dto.AssignFeesRequest,
) ([]m.FeeAssignment, error) {
	var structure m.FeeStructure
	if err := db.WithContext(ctx).
		Preload("Heads").
		Where("fee_structure_id = ? AND fee_structure_institution_id = ?", req.FeeStructureID, institutionID).
		First(&structure).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "fee structure not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	total := ComputeStructureTotal(&structure)
	if !total.IsPositive() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "fee structure has no chargeable amount")
	}

	if err := ensureStudentsExist(ctx, db, institutionID, req.StudentIDs); err != nil {
		return nil, err
	}

	created := make([]m.FeeAssignment, 0, len(req.StudentIDs))
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, studentID := range req.StudentIDs {
			a := m.FeeAssignment{
				FeeAssignmentInstitutionID: institutionID,
				FeeAssignmentStudentID:     studentID,
				FeeAssignmentStructureID:   structure.FeeStructureID,
				FeeAssignmentAssignedByID:  assignedBy,
				FeeAssignmentDueDate:       req.DueDate,
				FeeAssignmentTotal:         total,
				FeeAssignmentOutstanding:   total,
				FeeAssignmentStatus:        m.FeeAssignmentPending,
			}
			if err := tx.Create(&a).Error; err != nil {
				return failFor(studentID, err)
			}

			entry := newLedgerEntry(a.FeeAssignmentID, m.FeeLedgerCharge, total, total, "Initial fee assigned")
			if err := tx.Create(&entry).Error; err != nil {
				return failFor(studentID, err)
			}
			created = append(created, a)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// failFor names the student whose creation broke the batch so the caller
// knows exactly what to retry. A duplicate pair means the structure was
// already assigned to that student.
func failFor(studentID uuid.UUID, err error) error {
	if helper.IsUniqueViolation(err) {
		return fiber.NewError(fiber.StatusConflict,
			fmt.Sprintf("fee structure already assigned to student %s", studentID))
	}
	return fiber.NewError(fiber.StatusInternalServerError,
		fmt.Sprintf("failed to assign fees to student %s: %v", studentID, err))
}

// ensureStudentsExist verifies every target id against the registration
// table inside the caller's institution before anything is written.
func ensureStudentsExist(ctx context.Context, db *gorm.DB, institutionID uuid.UUID, studentIDs []uuid.UUID) error {
	var found []uuid.UUID
	if err := db.WithContext(ctx).
		Table("student_registrations").
		Where("id IN ? AND institution_id = ?", studentIDs, institutionID).
		Pluck("id", &found).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if len(found) == len(studentIDs) {
		return nil
	}
	seen := make(map[uuid.UUID]bool, len(found))
	for _, id := range found {
		seen[id] = true
	}
	for _, id := range studentIDs {
		if !seen[id] {
			return fiber.NewError(fiber.StatusNotFound,
				fmt.Sprintf("student registration %s not found", id))
		}
	}
	return nil
}
