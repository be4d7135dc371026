package builder

// MoveQuestion applies a completed drag gesture: the question dragID was
// picked up and dropped onto the slot currently held by dropID.
//
// Both positions are resolved by id at the moment the gesture completes, not
// when it started, so a list that changed mid-drag (say a question deleted
// elsewhere) cannot misorder anything: if either id is gone the move is
// abandoned. Dropping a question onto its own position is a no-op.
func (d *Document) MoveQuestion(dragID, dropID string) bool {
	if dragID == "" || dropID == "" || dragID == dropID {
		return false
	}
	from := d.IndexOf(dragID)
	to := d.IndexOf(dropID)
	if from < 0 || to < 0 || from == to {
		return false
	}
	d.Reorder(from, to)
	return true
}

// MoveQuestionBy shifts a question up (delta < 0) or down (delta > 0) by one
// slot, expressed as a drag onto the neighbour's id so the same abandonment
// rules apply. Used by keyboard-driven reordering in the TUI.
func (d *Document) MoveQuestionBy(id string, delta int) bool {
	from := d.IndexOf(id)
	if from < 0 {
		return false
	}
	to := from + delta
	if to < 0 || to >= len(d.Questions) {
		return false
	}
	return d.MoveQuestion(id, d.Questions[to].ID)
}
