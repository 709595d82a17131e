package threadmgr

// WriteByte appends b to the thread's path-encoding buffer (the `write`
// opcode's effect). Write0/Write1 are simply WriteByte(0)/WriteByte(1).
func (t *Thread) WriteByte(b byte) {
	t.WriteBuf = append(t.WriteBuf, b)
}

// Bytes returns the accumulated path encoding.
func (t *Thread) Bytes() []byte { return t.WriteBuf }
