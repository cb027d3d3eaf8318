package router

import (
	"github.com/halvard/quizdrill/internal/screen"

	tea "charm.land/bubbletea/v2"
)

// PushMsg requests the router to push a new screen onto the stack.
type PushMsg struct {
	Screen screen.Screen
}

// PopMsg requests the router to pop the current screen off the stack.
type PopMsg struct{}

// SwapMsg requests the router to replace the current screen in place, so
// popping the new screen skips the old one. Used when a flow finishes and
// must not be re-entered, like study ending on a summary.
type SwapMsg struct {
	Screen screen.Screen
}

// HomeMsg requests a return to a freshly built home screen. The router does
// not handle it; the app root intercepts it, since only the app can
// construct the home screen.
type HomeMsg struct{}

// Router manages a stack of screens.
type Router struct {
	stack []screen.Screen
}

// New creates a new Router with the given initial screen.
func New(initial screen.Screen) *Router {
	return &Router{
		stack: []screen.Screen{initial},
	}
}

// Push adds a screen on top of the stack and calls its Init().
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop removes the top screen. No-op if stack depth would become 0.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	r.stack = r.stack[:len(r.stack)-1]
	return nil
}

// Swap replaces the top screen and calls the new screen's Init().
func (r *Router) Swap(s screen.Screen) tea.Cmd {
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

// Reset discards the whole stack and installs a new root screen.
func (r *Router) Reset(s screen.Screen) tea.Cmd {
	r.stack = r.stack[:0]
	r.stack = append(r.stack, s)
	return s.Init()
}

// Active returns the top screen on the stack.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of screens on the stack.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update forwards a message to the active screen and handles navigation
// messages.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushMsg:
		return r.Push(msg.Screen)
	case PopMsg:
		return r.Pop()
	case SwapMsg:
		return r.Swap(msg.Screen)
	}

	active := r.Active()
	if active == nil {
		return nil
	}

	updated, cmd := active.Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	active := r.Active()
	if active == nil {
		return ""
	}
	return active.View(width, height)
}
