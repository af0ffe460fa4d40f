package mcts

// Table maps position hashes to nodes, positions reached through different
// move orders share a single node. Not safe for concurrent use.
type Table[T MoveLike] struct {
	nodes map[uint64]*Node[T]
}

func NewTable[T MoveLike]() *Table[T] {
	return &Table[T]{nodes: make(map[uint64]*Node[T], 1024)}
}

// Get the node of the position, creating an unvisited one if it is not there yet
func (t *Table[T]) GetOrCreate(pos Keyed) *Node[T] {
	key := pos.Hash()
	if node, ok := t.nodes[key]; ok {
		return node
	}

	node := &Node[T]{Key: key, Terminal: pos.IsTerminal()}
	t.nodes[key] = node
	return node
}

func (t *Table[T]) Lookup(key uint64) (*Node[T], bool) {
	node, ok := t.nodes[key]
	return node, ok
}

// Number of stored positions
func (t *Table[T]) Len() int {
	return len(t.nodes)
}

func (t *Table[T]) Clear() {
	clear(t.nodes)
}
