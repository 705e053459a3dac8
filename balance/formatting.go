package balance

// formattingEntry is either a live formatting element or a marker
// (§4.3 "list of active formatting elements"). A marker's elem is nil.
type formattingEntry struct {
	elem *ElementNode
}

func (e formattingEntry) isMarker() bool { return e.elem == nil }

// ActiveFormattingList tracks recently-opened formatting elements so
// they can be reconstructed after a misnesting closes their containing
// block (§4.3), and supports the Adoption Agency Algorithm's bookmark
// splicing (§4.4).
type ActiveFormattingList struct {
	entries []formattingEntry
}

func newActiveFormattingList() *ActiveFormattingList {
	return &ActiveFormattingList{}
}

// InsertMarker pushes a scope marker, used when entering template,
// applet, object, marquee, td/th, and caption contents (§4.3).
func (a *ActiveFormattingList) InsertMarker() {
	a.entries = append(a.entries, formattingEntry{})
}

// Push appends n to the list, first running the Noah's Ark clause: if
// three elements already in the list since the last marker have the
// same tag name, namespace, and attributes as n, the earliest of the
// three is removed (§4.3 "Noah's Ark clause").
func (a *ActiveFormattingList) Push(n *ElementNode) {
	matches := 0
	earliest := -1
	for i := len(a.entries) - 1; i >= 0; i-- {
		e := a.entries[i]
		if e.isMarker() {
			break
		}
		if sameFormattingElement(e.elem, n) {
			matches++
			earliest = i
		}
		if matches == 3 {
			break
		}
	}
	if matches == 3 {
		a.entries = append(a.entries[:earliest], a.entries[earliest+1:]...)
	}
	a.entries = append(a.entries, formattingEntry{elem: n})
}

func sameFormattingElement(a, b *ElementNode) bool {
	return a.Namespace == b.Namespace && a.LocalName == b.LocalName && a.Attrs == b.Attrs
}

// Len reports how many entries (markers included) are in the list.
func (a *ActiveFormattingList) Len() int { return len(a.entries) }

// At returns the element at position i, or nil if i is a marker.
func (a *ActiveFormattingList) At(i int) *ElementNode { return a.entries[i].elem }

// IndexOf returns n's position in the list, or -1.
func (a *ActiveFormattingList) IndexOf(n *ElementNode) int {
	for i, e := range a.entries {
		if e.elem == n {
			return i
		}
	}
	return -1
}

// Contains reports whether n is currently in the list.
func (a *ActiveFormattingList) Contains(n *ElementNode) bool { return a.IndexOf(n) != -1 }

// ClearToLastMarker removes entries back to and including the most
// recent marker (§4.3 "clear the list of active formatting elements up
// to the last marker"), used on leaving td/th/caption/object/etc.
func (a *ActiveFormattingList) ClearToLastMarker() {
	for len(a.entries) > 0 {
		last := len(a.entries) - 1
		wasMarker := a.entries[last].isMarker()
		a.entries = a.entries[:last]
		if wasMarker {
			return
		}
	}
}

// Remove excises n from the list by identity.
func (a *ActiveFormattingList) Remove(n *ElementNode) {
	idx := a.IndexOf(n)
	if idx == -1 {
		return
	}
	a.entries = append(a.entries[:idx], a.entries[idx+1:]...)
}

// ReplaceAt overwrites the entry at position i with n (§4.4's "replace
// the entry for the entry for the old node in the list... with an entry
// for the new node").
func (a *ActiveFormattingList) ReplaceAt(i int, n *ElementNode) {
	a.entries[i] = formattingEntry{elem: n}
}

// InsertAt splices n into the list at position i, shifting later
// entries up — used by the adoption agency to place the clone at the
// bookmark position (§4.4 step 14.8).
func (a *ActiveFormattingList) InsertAt(i int, n *ElementNode) {
	a.entries = append(a.entries, formattingEntry{})
	copy(a.entries[i+1:], a.entries[i:])
	a.entries[i] = formattingEntry{elem: n}
}

// Reconstruct implements "reconstruct the active formatting elements"
// (§4.3): walks backward to find the first entry that either is a
// marker or whose element is already on the open-elements stack, then
// walks forward from there re-inserting fresh clones and pushing them
// onto stack, so misnested formatting context survives a block close.
func (a *ActiveFormattingList) Reconstruct(stack *OpenElementStack) {
	if len(a.entries) == 0 {
		return
	}
	last := len(a.entries) - 1
	if a.entries[last].isMarker() || stack.Contains(a.entries[last].elem) {
		return
	}

	i := last
	for i > 0 {
		i--
		if a.entries[i].isMarker() || stack.Contains(a.entries[i].elem) {
			i++
			break
		}
	}

	for ; i <= last; i++ {
		clone := a.entries[i].elem.clone()
		stack.InsertElement(clone)
		a.entries[i] = formattingEntry{elem: clone}
	}
}
