package node

// CopyNode deep-copies src, its value and self-flags, and every descendant
// in order, as a new child of newParent. If newName is nil the copy keeps
// src's name. This mirrors bsDuplicate's walk, where each callback creates
// a child of the feedback node (here, the recursion's own return value)
// with the source node's name, value and self-flags.
func (d *Dict) CopyNode(src, newParent *Node, newName []byte) (*Node, error) {
	if err := d.writable(); err != nil {
		return nil, err
	}
	if src == nil || newParent == nil {
		return nil, ErrNotFound
	}
	if newParent.dict != d {
		return nil, ErrWrongDict
	}
	name := newName
	if name == nil {
		name = append([]byte{}, src.name...)
	}
	return d.copySubtree(src, newParent, name)
}

// copySubtree is the recursive creation primitive shared by CopyNode and
// Dict.Duplicate. It skips the read-only check so Duplicate can populate a
// brand-new dictionary before the caller decides whether to Freeze it.
func (d *Dict) copySubtree(src, newParent *Node, name []byte) (*Node, error) {
	var value []byte
	if src.value != nil {
		value = append([]byte{}, src.value...)
	}

	dst, err := d.createNode(newParent, src.typ, name, value)
	if err != nil {
		return nil, err
	}
	// self flags (QuotedName, QuotedValue, Modified, Indexed) travel with
	// the copy; inheritable flags were already derived from newParent by
	// createNode and must not be overwritten here.
	dst.flags |= src.flags &^ inheritableMask

	for _, c := range src.children {
		if _, err := d.copySubtree(c, dst, append([]byte{}, c.name...)); err != nil {
			return nil, err
		}
	}
	return dst, nil
}

// Duplicate builds a brand-new dictionary named newName containing a deep
// copy of every top-level node in d, restoring barser.c's bsDuplicate.
// The new dictionary is unfrozen even if flags carries ReadOnly, so the
// caller can still adjust it before calling Freeze.
func (d *Dict) Duplicate(newName string, flags DictFlags) *Dict {
	nd := New(newName, flags)
	for _, c := range d.root.children {
		nd.copySubtree(c, nd.root, append([]byte{}, c.name...))
	}
	return nd
}
