package hal

import (
	"boardhal-go/errcode"
	"boardhal-go/types"
)

// BoardNamespaceCapacity bounds the generated namespace arena.
const BoardNamespaceCapacity = 64

// BoardEntry is one ordered name→object pair in the board namespace.
type BoardEntry struct {
	Name   string
	Object types.Object
}

// boardNamespace is a fixed-capacity ordered arena, generated at most once
// per activation.
type boardNamespace struct {
	entries   [BoardNamespaceCapacity]BoardEntry
	used      int
	generated bool
}

func (b *boardNamespace) reset() {
	b.used = 0
	b.generated = false
}

func (b *boardNamespace) append(name string, obj types.Object) error {
	if b.used >= len(b.entries) {
		return &errcode.E{C: errcode.TableExhausted, Op: "BoardNamespace", Msg: name}
	}
	b.entries[b.used] = BoardEntry{Name: name, Object: obj}
	b.used++
	return nil
}

// BoardNamespace returns the interpreter-visible name→object mapping for the
// active provider, generating it on first access per activation.
//
// Metadata entries come first, then every generic board pin present in the
// pin registry, in the canonical defining order. Generic pins the provider
// does not implement are skipped; not every backend has every pin. Exceeding
// capacity fails closed: generation stops, nothing is overwritten, and the
// error is returned on this and every later access until reactivation.
//
// The result is cached until Deactivate resets the generated flag; repeated
// access returns the identical namespace without rebuilding.
func (h *HAL) BoardNamespace() ([]BoardEntry, error) {
	if h.active == nil {
		return nil, errcode.NoActiveProvider
	}
	if h.board.generated {
		return h.board.entries[:h.board.used], nil
	}

	h.board.used = 0
	boardID := h.opts.BoardID
	if boardID == "" {
		boardID = h.active.Name()
	}
	if err := h.board.append("__name__", "board"); err != nil {
		h.board.used = 0
		return nil, err
	}
	if err := h.board.append("board_id", boardID); err != nil {
		h.board.used = 0
		return nil, err
	}
	for _, d := range h.opts.Descriptors {
		p, ok := h.pins.byName[d.Name]
		if !ok {
			continue
		}
		if err := h.board.append(d.Name, p); err != nil {
			h.board.used = 0
			return nil, err
		}
	}
	h.board.generated = true
	return h.board.entries[:h.board.used], nil
}
