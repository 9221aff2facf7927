package app

import "sync"

// Navigator is a stack of screens. The root is never popped.
type Navigator struct {
	mu    sync.Mutex
	stack []Screen
}

// NewNavigator creates a Navigator with root at the bottom of the stack.
func NewNavigator(root Screen) *Navigator {
	return &Navigator{stack: []Screen{root}}
}

// Root returns the bottom screen.
func (n *Navigator) Root() Screen {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.stack[0]
}

// Top returns the visible screen.
func (n *Navigator) Top() Screen {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.stack[len(n.stack)-1]
}

// Push makes s the visible screen.
func (n *Navigator) Push(s Screen) {
	n.mu.Lock()
	n.stack = append(n.stack, s)
	n.mu.Unlock()
}

// Pop removes the top screen and returns it, or nil when only the root is left.
func (n *Navigator) Pop() Screen {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.stack) == 1 {
		return nil
	}
	top := n.stack[len(n.stack)-1]
	n.stack = n.stack[:len(n.stack)-1]
	return top
}

// Depth returns the number of stacked screens, root included.
func (n *Navigator) Depth() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.stack)
}
