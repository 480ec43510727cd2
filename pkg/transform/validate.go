package transform

import (
	"fmt"
	"slices"
)

// ValidationError describes an invalid edit.
type ValidationError struct {
	Edit    Edit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.Start, e.Edit.End, e.Message)
}

// ConflictError describes overlapping edits.
type ConflictError struct {
	First  Edit
	Second Edit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		e.First.Start, e.First.End, e.Second.Start, e.Second.End)
}

// ValidateEdits checks that all edits have valid ranges for the given content length.
// Returns the first validation error encountered.
func ValidateEdits(edits []Edit, contentLen int) error {
	for _, edit := range edits {
		switch {
		case edit.Start < 0:
			return &ValidationError{Edit: edit, Message: "start offset is negative"}
		case edit.End < edit.Start:
			return &ValidationError{Edit: edit, Message: "end offset is before start offset"}
		case edit.End > contentLen:
			return &ValidationError{
				Edit:    edit,
				Message: fmt.Sprintf("end offset %d exceeds content length %d", edit.End, contentLen),
			}
		}
	}
	return nil
}

// SortEdits sorts edits by start offset, then by end offset.
// Insertions at the same offset keep their relative order.
func SortEdits(edits []Edit) {
	slices.SortStableFunc(edits, func(a, b Edit) int {
		if a.Start != b.Start {
			return a.Start - b.Start
		}
		return a.End - b.End
	})
}

// DetectConflicts checks for overlapping edits in a sorted slice.
// Edits must be sorted by SortEdits before calling.
func DetectConflicts(edits []Edit) error {
	for i := 1; i < len(edits); i++ {
		prev, curr := edits[i-1], edits[i]
		if curr.Start < prev.End {
			return &ConflictError{First: prev, Second: curr}
		}
	}
	return nil
}

// PrepareEdits validates, sorts, and checks for conflicts.
// The input slice is not modified.
func PrepareEdits(edits []Edit, contentLen int) ([]Edit, error) {
	if len(edits) == 0 {
		return edits, nil
	}

	if err := ValidateEdits(edits, contentLen); err != nil {
		return nil, err
	}

	result := slices.Clone(edits)
	SortEdits(result)

	if err := DetectConflicts(result); err != nil {
		return nil, err
	}

	return result, nil
}
