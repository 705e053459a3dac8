package balance

// runAdoptionAgency implements the Adoption Agency Algorithm (§4.4) for
// an end tag named subject. It is the mechanism that lets a formatting
// element like <b> or <a> survive being misnested across a block
// boundary: rather than simply failing to match, the offending
// formatting element is cloned onto the far side of the block it
// leaked into.
//
// The outer loop is bounded at 8 iterations and the inner loop is
// bounded by the stack depth, both per §4.4 — these bounds exist
// because a naive implementation of the algorithm as written in the
// HTML5 spec can otherwise loop indefinitely on adversarial input.
func (b *Balancer) runAdoptionAgency(subject string) {
	stack := b.stack
	list := b.formatting

	// Step 1 fast path: if the current node is an HTML element with
	// the subject tag name and it isn't in the list of active
	// formatting elements at all, there's nothing to reconstruct —
	// just pop it and stop.
	if cur := stack.Current(); cur.Namespace == HTML && cur.Is(subject) && !list.Contains(cur) {
		stack.Pop()
		return
	}

	for outer := 0; outer < 8; outer++ {
		// Step 4: find the formatting element, the last one in the
		// list of active formatting elements with the subject tag
		// name, below the last marker.
		feIdx := -1
		for i := len(list.entries) - 1; i >= 0; i-- {
			e := list.entries[i]
			if e.isMarker() {
				break
			}
			if e.elem.Is(subject) {
				feIdx = i
				break
			}
		}
		if feIdx == -1 {
			// No formatting element: let the caller's "any other end
			// tag" handling deal with it.
			b.adoptionAgencyFallback(subject)
			return
		}
		fe := list.entries[feIdx].elem

		feStackIdx := stack.IndexOf(fe)
		if feStackIdx == -1 {
			// In the list but not on the stack: a parse error: drop it
			// from the list and stop.
			b.logRecovery("formatting element in list but not on stack", subject, b.mode, stack.Len())
			list.Remove(fe)
			return
		}
		if !stack.InDefaultScope(fe) {
			return
		}

		// Step 9: find the furthest block: the topmost node above fe
		// on the stack that is in the special set.
		furthestBlockIdx := -1
		for i := feStackIdx + 1; i < stack.Len(); i++ {
			if stack.At(i).isSpecial() {
				furthestBlockIdx = i
				break
			}
		}

		if furthestBlockIdx == -1 {
			// No furthest block: simply pop the stack back through fe
			// and drop it from the formatting list.
			stack.PopTo(feStackIdx)
			stack.Pop()
			list.Remove(fe)
			return
		}

		furthestBlock := stack.At(furthestBlockIdx)
		commonAncestor := stack.At(feStackIdx - 1)

		bookmark := feIdx + 1
		lastNode := furthestBlock
		node := furthestBlock

		for inner := 0; ; inner++ {
			nodeIdx := stack.IndexOf(node)
			nodeIdx--
			if nodeIdx <= feStackIdx {
				break
			}
			node = stack.At(nodeIdx)

			nodeListIdx := list.IndexOf(node)
			if nodeListIdx == -1 {
				stack.RemoveElement(node, false)
				continue
			}
			if inner >= 3 {
				list.Remove(node)
				stack.RemoveElement(node, false)
				continue
			}

			clone := node.clone()
			list.ReplaceAt(nodeListIdx, clone)
			newStackIdx := stack.IndexOf(node)
			stack.ReplaceAt(newStackIdx, clone)
			node = clone

			if lastNode == furthestBlock {
				bookmark = list.IndexOf(clone) + 1
			}
			if p := lastNode.Parent(); p != nil {
				p.RemoveChild(lastNode)
			}
			node.AppendChild(lastNode)
			lastNode = node
		}

		if p := lastNode.Parent(); p != nil {
			p.RemoveChild(lastNode)
		}
		insertLastNodeInto(commonAncestor, stack, lastNode)

		clone := fe.clone()
		clone.AdoptChildren(furthestBlock)
		furthestBlock.AppendChild(clone)

		list.Remove(fe)
		if bookmark > list.Len() {
			bookmark = list.Len()
		}
		list.InsertAt(bookmark, clone)

		stack.RemoveElement(fe, false)
		stack.InsertAfter(furthestBlock, clone)
	}
}

// insertLastNodeInto re-homes lastNode under commonAncestor, applying
// the same foster-parenting rule the main insertion point uses when
// commonAncestor is a table-structural element (§4.4 step 14.7, §4.2).
func insertLastNodeInto(commonAncestor *ElementNode, stack *OpenElementStack, lastNode *ElementNode) {
	if stack.fosterParentMode && commonAncestor.IsInSet(HTML, tableSectionRowSet) {
		parent, before := stack.fosterTarget()
		if before != nil {
			parent.InsertChildBefore(lastNode, before)
			return
		}
		parent.AppendChild(lastNode)
		return
	}
	commonAncestor.AppendChild(lastNode)
}

// adoptionAgencyFallback implements the "any other end tag" branch of
// the in-body insertion mode (§4.4 step 4, §9 "in body" handler): walk
// the stack from the top, popping through to the first open element
// matching subject, generating implied end tags along the way, unless
// a special element is hit first, in which case the end tag is simply
// ignored.
func (b *Balancer) adoptionAgencyFallback(subject string) {
	stack := b.stack
	for i := stack.Len() - 1; i >= 0; i-- {
		node := stack.At(i)
		if node.Is(subject) {
			stack.GenerateImpliedEndTags("")
			stack.PopTo(i)
			stack.Pop()
			return
		}
		if node.isSpecial() {
			b.logRecovery("formatting end tag ignored at special boundary", subject, b.mode, stack.Len())
			return
		}
	}
	b.logRecovery("formatting end tag with no matching open element", subject, b.mode, stack.Len())
}
