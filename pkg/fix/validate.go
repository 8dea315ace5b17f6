package fix

import (
	"cmp"
	"fmt"
	"slices"
)

// ValidationError reports an edit whose range falls outside the document.
type ValidationError struct {
	Edit    TextEdit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.StartOffset, e.Edit.EndOffset, e.Message)
}

// ConflictError reports two edits whose ranges overlap.
type ConflictError struct {
	Edit1 TextEdit
	Edit2 TextEdit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		e.Edit1.StartOffset, e.Edit1.EndOffset,
		e.Edit2.StartOffset, e.Edit2.EndOffset)
}

// ValidateEdits returns a *ValidationError for the first edit that does not
// lie within [0, contentLen].
func ValidateEdits(edits []TextEdit, contentLen int) error {
	for _, edit := range edits {
		var msg string
		switch {
		case edit.StartOffset < 0:
			msg = "start offset is negative"
		case edit.EndOffset < edit.StartOffset:
			msg = "end offset is before start offset"
		case edit.EndOffset > contentLen:
			msg = fmt.Sprintf("end offset %d exceeds content length %d", edit.EndOffset, contentLen)
		default:
			continue
		}
		return &ValidationError{Edit: edit, Message: msg}
	}
	return nil
}

// SortEdits orders edits by start then end offset. Equal ranges keep their
// relative order.
func SortEdits(edits []TextEdit) {
	slices.SortStableFunc(edits, func(a, b TextEdit) int {
		return cmp.Or(
			cmp.Compare(a.StartOffset, b.StartOffset),
			cmp.Compare(a.EndOffset, b.EndOffset),
		)
	})
}

// DetectConflicts returns a *ConflictError for the first overlapping pair in
// sorted edits. Touching ranges do not conflict.
func DetectConflicts(edits []TextEdit) error {
	for i := 1; i < len(edits); i++ {
		if edits[i].StartOffset < edits[i-1].EndOffset {
			return &ConflictError{Edit1: edits[i-1], Edit2: edits[i]}
		}
	}
	return nil
}

// PrepareEdits validates edits and returns a sorted, conflict-free copy ready
// for ApplyEdits. The input is left untouched.
func PrepareEdits(edits []TextEdit, contentLen int) ([]TextEdit, error) {
	if len(edits) == 0 {
		return edits, nil
	}
	if err := ValidateEdits(edits, contentLen); err != nil {
		return nil, err
	}

	sorted := slices.Clone(edits)
	SortEdits(sorted)
	if err := DetectConflicts(sorted); err != nil {
		return nil, err
	}
	return sorted, nil
}
