// Package terminal adapts real terminals to the engine's Output and Viewport.
//
// Two backends:
//   - Screen wraps a tcell.Screen; tcell owns raw mode, input and diffing
//   - ANSI writes cursor-addressed escape sequences straight to an io.Writer,
//     with golang.org/x/term for raw mode and size on a real tty
//
// Both advance the write cursor by display width (go-runewidth), so wide
// glyphs land in the same cells the engine's footprint math assumes.
package terminal
