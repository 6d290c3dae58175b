package engine

import "github.com/lixenwraith/termsprite/surface"

// Hooks are the per-sprite behavior points the engine calls
// Embed NopHooks and override only what is needed
type Hooks interface {
	// OnPlaced runs once, after the sprite joined its scene and declared group
	OnPlaced(s *Sprite)

	// Update runs from Group.Update and Scene.Update, once per tick
	Update(s *Sprite)

	// NewSurface builds the sprite's appearance; nil keeps the current surface
	NewSurface(s *Sprite) *surface.Surface
}

// NopHooks implements Hooks with no-ops
type NopHooks struct{}

func (NopHooks) OnPlaced(*Sprite)                     {}
func (NopHooks) Update(*Sprite)                       {}
func (NopHooks) NewSurface(*Sprite) *surface.Surface { return nil }

// UpdateFunc adapts a plain function to Hooks.Update
type UpdateFunc func(s *Sprite)

func (UpdateFunc) OnPlaced(*Sprite)                     {}
func (f UpdateFunc) Update(s *Sprite)                   { f(s) }
func (UpdateFunc) NewSurface(*Sprite) *surface.Surface { return nil }
