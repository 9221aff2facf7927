package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/samirrijal/clustermap/internal/core/domain"
)

// Window hosts the root navigator.
type Window struct {
	mu      sync.Mutex
	root    *Navigator
	visible bool
}

// SetRoot replaces the root navigator.
func (w *Window) SetRoot(n *Navigator) {
	w.mu.Lock()
	w.root = n
	w.mu.Unlock()
}

// Root returns the root navigator, or nil before SetRoot.
func (w *Window) Root() *Navigator {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.root
}

// Visible reports whether MakeKeyAndVisible has run.
func (w *Window) Visible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.visible
}

// MakeKeyAndVisible shows the window and loads its top screen. A window
// already visible is left alone.
func (w *Window) MakeKeyAndVisible(ctx context.Context) error {
	w.mu.Lock()
	if w.visible {
		w.mu.Unlock()
		return nil
	}
	w.visible = true
	root := w.root
	w.mu.Unlock()

	if root == nil {
		return fmt.Errorf("window has no root")
	}
	return root.Top().Load(ctx)
}

// ScreenFactory builds the root screen at launch.
type ScreenFactory func() (Screen, error)

// Shell is the application entry point.
type Shell struct {
	Window  *Window
	factory ScreenFactory
	logger  *slog.Logger
}

// NewShell creates a Shell that builds its root screen with factory.
// A nil logger falls back to slog.Default.
func NewShell(factory ScreenFactory, logger *slog.Logger) *Shell {
	if logger == nil {
		logger = slog.Default()
	}
	return &Shell{Window: &Window{}, factory: factory, logger: logger}
}

// Launch builds the root screen, wraps it in a navigator and makes the
// window visible. It returns true whatever the options; failures are
// logged.
func (s *Shell) Launch(ctx context.Context, opts domain.LaunchOptions) bool {
	screen, err := s.factory()
	if err != nil {
		s.logger.ErrorContext(ctx, "build root screen", "error", err)
		return true
	}

	s.Window.SetRoot(NewNavigator(screen))
	if err := s.Window.MakeKeyAndVisible(ctx); err != nil {
		s.logger.ErrorContext(ctx, "load root screen", "screen", screen.Title(), "error", err)
		return true
	}

	s.logger.InfoContext(ctx, "launched", "screen", screen.Title(), "options", len(opts))
	return true
}
