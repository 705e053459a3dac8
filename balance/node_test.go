package balance

import "testing"

func TestElementNodeAppendTextCoalesces(t *testing.T) {
	n := NewElementNode(HTML, "div", "")
	n.AppendText("a")
	n.AppendText("b")
	if len(n.children) != 1 {
		t.Fatalf("want 1 coalesced child, got %d", len(n.children))
	}
	if n.children[0].text != "ab" {
		t.Fatalf("want %q, got %q", "ab", n.children[0].text)
	}
}

func TestElementNodeFlattenVoidWithChildrenPanics(t *testing.T) {
	n := NewElementNode(HTML, "br", "")
	n.children = append(n.children, textChild("oops"))

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic flattening a void element with children")
		}
	}()
	n.Flatten()
}

func TestElementNodeFlattenTwicePanics(t *testing.T) {
	n := NewElementNode(HTML, "span", "")
	n.Flatten()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on double flatten")
		}
	}()
	n.Flatten()
}

func TestElementNodeFlattenReplacesSelfInParent(t *testing.T) {
	parent := NewElementNode(HTML, "div", "")
	child := NewElementNode(HTML, "span", "")
	parent.AppendChild(child)
	child.AppendText("hi")

	got := child.Flatten()
	want := "<span>hi</span>"
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
	if parent.children[0].text != want {
		t.Fatalf("parent's child wasn't replaced with the flattened string")
	}
	if !child.IsFlattened() {
		t.Fatal("child should report itself flattened")
	}
}

func TestElementNodeIntegrationPoints(t *testing.T) {
	svgForeign := NewElementNode(SVG, "foreignObject", "")
	if !svgForeign.IsHTMLIntegrationPoint() {
		t.Error("svg foreignObject should be an HTML integration point")
	}

	annotation := NewElementNode(MathML, "annotation-xml", ` encoding="text/html"`)
	if !annotation.IsHTMLIntegrationPoint() {
		t.Error("annotation-xml with text/html encoding should be an HTML integration point")
	}

	mi := NewElementNode(MathML, "mi", "")
	if !mi.IsMathMLTextIntegrationPoint() {
		t.Error("mi should be a MathML text integration point")
	}
}

func TestInsertTextBeforeCoalescesWithPrecedingText(t *testing.T) {
	parent := NewElementNode(HTML, "body", "")
	table := NewElementNode(HTML, "table", "")
	parent.AppendText("before")
	parent.AppendChild(table)

	parent.InsertTextBefore(" more", table)

	if len(parent.children) != 2 {
		t.Fatalf("want 2 children, got %d", len(parent.children))
	}
	if parent.children[0].text != "before more" {
		t.Fatalf("want coalesced text, got %q", parent.children[0].text)
	}
}
