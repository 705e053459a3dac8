package balance

import "testing"

func TestActiveFormattingListNoahsArk(t *testing.T) {
	list := newActiveFormattingList()
	for i := 0; i < 4; i++ {
		list.Push(NewElementNode(HTML, "b", ""))
	}
	if list.Len() != 3 {
		t.Fatalf("Noah's Ark should have dropped the earliest of 3 identical entries on the 4th push, got %d entries", list.Len())
	}
}

func TestActiveFormattingListMarkerStopsNoahsArk(t *testing.T) {
	list := newActiveFormattingList()
	list.Push(NewElementNode(HTML, "b", ""))
	list.Push(NewElementNode(HTML, "b", ""))
	list.Push(NewElementNode(HTML, "b", ""))
	list.InsertMarker()
	list.Push(NewElementNode(HTML, "b", ""))
	if list.Len() != 5 {
		t.Fatalf("marker should isolate the new push from the earlier three, got %d entries", list.Len())
	}
}

func TestActiveFormattingListClearToLastMarker(t *testing.T) {
	list := newActiveFormattingList()
	list.Push(NewElementNode(HTML, "b", ""))
	list.InsertMarker()
	list.Push(NewElementNode(HTML, "i", ""))
	list.Push(NewElementNode(HTML, "u", ""))

	list.ClearToLastMarker()
	if list.Len() != 1 {
		t.Fatalf("want 1 entry left (the pre-marker <b>), got %d", list.Len())
	}
}

func TestActiveFormattingListReconstruct(t *testing.T) {
	stack := newOpenElementStack()
	b := NewElementNode(HTML, "b", "")
	stack.InsertElement(b)

	list := newActiveFormattingList()
	list.Push(b)

	// Simulate <b> having been popped by some other mechanism (e.g. the
	// adoption agency), leaving it in the formatting list but no longer
	// on the stack, the precondition Reconstruct exists to repair.
	stack.RemoveElement(b, false)

	list.Reconstruct(stack)

	if stack.Current() == b {
		t.Fatal("reconstruct must clone, not resurrect the original node")
	}
	if stack.Current().LocalName != "b" {
		t.Fatalf("want a fresh <b> on the stack, got <%s>", stack.Current().LocalName)
	}
	if list.At(0) == b {
		t.Fatal("the list entry should now point at the clone")
	}
}
