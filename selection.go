package pathedit

// Selection is the set of selected anchor indices. Order is irrelevant;
// indices are positional and must be cleared or remapped when anchors are
// inserted or deleted.
type Selection map[int]struct{}

// Select adds the anchor to the selection. Without additive the selection is
// replaced, matching a click without the shift modifier held.
func (s Selection) Select(anchor int, additive bool) {
	if !additive {
		s.Clear()
	}
	s[anchor] = struct{}{}
}

// Deselect removes the anchor from the selection.
func (s Selection) Deselect(anchor int) {
	delete(s, anchor)
}

// Toggle inverts the selection state of the anchor.
func (s Selection) Toggle(anchor int) {
	if s.Contains(anchor) {
		delete(s, anchor)
	} else {
		s[anchor] = struct{}{}
	}
}

// Clear empties the selection.
func (s Selection) Clear() {
	clear(s)
}

// Contains returns true if the anchor is selected.
func (s Selection) Contains(anchor int) bool {
	_, ok := s[anchor]
	return ok
}

// Len returns the number of selected anchors.
func (s Selection) Len() int {
	return len(s)
}
