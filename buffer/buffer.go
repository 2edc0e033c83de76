package buffer

import "github.com/biox/ad/dot"

// diffOp records one replace(from, to, text) call: enough to invert it
// (restore old in place of the range the replacement now occupies).
type diffOp struct {
	at  dot.Dot // the range that was replaced, in pre-op coordinates
	old string  // text removed from at
	new string  // text inserted in its place
}

// transaction is the unit the undo log pops: every diffOp recorded between
// one BeginEditTransaction/EndEditTransaction pair.
type transaction struct {
	ops []diffOp
}

// Buffer layers a current selection and an undo log on top of a GapBuffer,
// matching spec.md 4.7's "full buffer": CurrentDot returns the buffer's own
// selection, and insert/remove route through the undo system so
// begin/end_edit_transaction produce user-visible transaction boundaries.
type Buffer struct {
	*GapBuffer
	dot     dot.Dot
	undo    []transaction
	pending []diffOp
}

// NewBuffer returns a Buffer over the given initial text, with an empty
// selection and an empty undo log.
func NewBuffer(s string) *Buffer {
	return &Buffer{GapBuffer: NewGapBuffer(s)}
}

// CurrentDot overrides GapBuffer's: a Buffer has a real selection.
func (b *Buffer) CurrentDot() dot.Dot { return b.dot }

// SetDot sets the buffer's selection, e.g. to the dot an Execute call
// returned, so the next command's implicit "." picks up where it left off.
func (b *Buffer) SetDot(d dot.Dot) { b.dot = d }

// Insert overrides GapBuffer's Insert to also record an undo entry.
func (b *Buffer) Insert(idx int, s string) { b.replace(idx, idx, s) }

// Remove overrides GapBuffer's Remove to also record an undo entry.
func (b *Buffer) Remove(from, to int) { b.replace(from, to, "") }

func (b *Buffer) replace(from, to int, text string) {
	old := b.GapBuffer.Substr(from, to)
	b.GapBuffer.Remove(from, to)
	b.GapBuffer.Insert(from, text)
	b.pending = append(b.pending, diffOp{at: dot.Dot{From: from, To: to}, old: old, new: text})
}

// BeginEditTransaction starts collecting a fresh batch of diffOps.
func (b *Buffer) BeginEditTransaction() { b.pending = nil }

// EndEditTransaction closes the current batch onto the undo log. A pair
// with no edits in between records nothing, so Undo only ever replays
// transactions that actually changed the buffer.
func (b *Buffer) EndEditTransaction() {
	if len(b.pending) == 0 {
		return
	}
	b.undo = append(b.undo, transaction{ops: b.pending})
	b.pending = nil
}

// Undo reverts the most recent transaction, replaying its diffOps in
// reverse order directly against the GapBuffer (bypassing Buffer's own
// Insert/Remove, so undoing is itself not undoable). Reports whether there
// was anything to undo.
func (b *Buffer) Undo() bool {
	if len(b.undo) == 0 {
		return false
	}
	txn := b.undo[len(b.undo)-1]
	b.undo = b.undo[:len(b.undo)-1]
	for i := len(txn.ops) - 1; i >= 0; i-- {
		op := txn.ops[i]
		newTo := op.at.From + charCount(op.new)
		b.GapBuffer.Remove(op.at.From, newTo)
		b.GapBuffer.Insert(op.at.From, op.old)
	}
	return true
}

func charCount(s string) int { return len([]rune(s)) }
