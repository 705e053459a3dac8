package balance

import "testing"

func TestOpenElementStackPushPop(t *testing.T) {
	s := newOpenElementStack()
	div := NewElementNode(HTML, "div", "")
	s.InsertElement(div)

	if s.Current() != div {
		t.Fatal("current should be the just-inserted div")
	}
	if s.Root().children[0].elem != div {
		t.Fatal("div should have been appended to the root")
	}

	popped := s.Pop()
	if popped != div {
		t.Fatal("pop should return the div")
	}
	if s.Current() != s.Root() {
		t.Fatal("current should fall back to root after popping the only child")
	}
	if !div.IsFlattened() {
		t.Fatal("popped node should be flattened")
	}
}

func TestOpenElementStackPopNeverRemovesRoot(t *testing.T) {
	s := newOpenElementStack()
	if s.Pop() != nil {
		t.Fatal("popping an empty-above-root stack should return nil")
	}
	if s.Len() != 1 {
		t.Fatal("root must remain on the stack")
	}
}

func TestOpenElementStackScopePredicates(t *testing.T) {
	s := newOpenElementStack()
	table := NewElementNode(HTML, "table", "")
	s.InsertElement(table)
	td := NewElementNode(HTML, "td", "")
	s.InsertElement(td)
	span := NewElementNode(HTML, "span", "")
	s.InsertElement(span)

	if !s.InDefaultScope(span) {
		t.Error("span should be in default scope")
	}
	if s.InDefaultScope(table) {
		t.Error("td is a default-scope boundary; table below it should not be reachable from the top of the stack")
	}
	if !s.HasTagInTableScope("table") {
		t.Error("table should be reachable via table scope")
	}
}

func TestFosterParentingInsertsBeforeTable(t *testing.T) {
	s := newOpenElementStack()
	table := NewElementNode(HTML, "table", "")
	s.InsertElement(table)
	tbody := NewElementNode(HTML, "tbody", "")
	s.InsertElement(tbody)

	s.SetFosterParenting(true)
	b := NewElementNode(HTML, "b", "")
	s.InsertElement(b)
	s.SetFosterParenting(false)

	root := s.Root()
	if len(root.children) != 2 {
		t.Fatalf("want root to gain a sibling of table, got %d children", len(root.children))
	}
	if root.children[0].elem != b || root.children[1].elem != table {
		t.Fatalf("want <b> foster-parented immediately before <table>, got %+v", root.children)
	}
	if s.Current() != b {
		t.Fatal("the foster-parented element must still become the new current node")
	}
}

func TestGenerateImpliedEndTags(t *testing.T) {
	s := newOpenElementStack()
	ul := NewElementNode(HTML, "ul", "")
	s.InsertElement(ul)
	li := NewElementNode(HTML, "li", "")
	s.InsertElement(li)

	s.GenerateImpliedEndTags("")
	if s.Current() != ul {
		t.Fatalf("expected li to be implicitly closed, current is %s", s.Current().LocalName)
	}
}
