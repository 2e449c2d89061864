package cache

// node is a single entity of the recency list. It is owned
// exclusively by the cache and never escapes to callers.
type node[K comparable, V any] struct {
	key   K
	value V
	left  *node[K, V]
	right *node[K, V]
}

// recencyList is a doubly linked list that encodes the recency order
// of the cache.
//
// The head of the list is always the most recently used entry and the
// tail is always the least recently used one. This order is maintained
// by the operating functions:
// * All insertions occur at the head, which is the MRU position.
// * After every access, the accessed node is moved back to the head.
// * Evictions always unlink the tail, which is therefore the LRU.
type recencyList[K comparable, V any] struct {
	head *node[K, V]
	tail *node[K, V]
}

// pushHead links the node in at the MRU position.
func (l *recencyList[K, V]) pushHead(n *node[K, V]) {
	n.left = nil
	n.right = l.head
	if l.head != nil {
		l.head.left = n
	}
	l.head = n
	if l.tail == nil {
		l.tail = n
	}
}

// unlink removes the node from the list. The node must be resident.
func (l *recencyList[K, V]) unlink(n *node[K, V]) {
	if n.left != nil {
		n.left.right = n.right
	} else {
		l.head = n.right
	}
	if n.right != nil {
		n.right.left = n.left
	} else {
		l.tail = n.left
	}
	n.left = nil
	n.right = nil
}

// moveToHead bumps the node to the MRU position.
func (l *recencyList[K, V]) moveToHead(n *node[K, V]) {
	if l.head == n {
		return
	}
	l.unlink(n)
	l.pushHead(n)
}

// reset drops every node from the list.
func (l *recencyList[K, V]) reset() {
	l.head = nil
	l.tail = nil
}
