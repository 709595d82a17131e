package sre

// Clone deep-copies n, including its Intervals, reassigning fresh RIDs via
// b so the clone's nodes remain unique within the owning parse (needed by
// counter-expansion, which clones a sub-tree n-m times).
func (b *Builder) Clone(n *Node) *Node {
	if n == nil {
		return nil
	}
	clone := &Node{
		Kind:     n.Kind,
		RID:      b.rid(),
		Ch:       n.Ch,
		Greedy:   n.Greedy,
		Min:      n.Min,
		Max:      n.Max,
		Positive: n.Positive,
		Idx:      n.Idx,
		RefIdx:   n.RefIdx,
	}
	if n.Intervals != nil {
		clone.Intervals = n.Intervals.Clone()
	}
	clone.L = b.Clone(n.L)
	clone.R = b.Clone(n.R)
	clone.Child = b.Clone(n.Child)
	return clone
}
