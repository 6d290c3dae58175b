package engine

// Entity is a stable handle to a sprite slot owned by a Scene
// Low 32 bits index the slot, high 32 bits carry the slot generation so a
// handle to a detached sprite never resolves to the slot's next occupant
type Entity uint64

// NoEntity is never issued
const NoEntity Entity = 0

func makeEntity(index, gen uint32) Entity {
	return Entity(uint64(gen)<<32 | uint64(index))
}

func (e Entity) index() uint32 { return uint32(e) }
func (e Entity) gen() uint32   { return uint32(e >> 32) }

type slot struct {
	sprite *Sprite
	gen    uint32
}

// arena owns sprite slots with a free list; lookups are O(1)
type arena struct {
	slots []slot
	free  []uint32
	live  int
}

func (a *arena) alloc(s *Sprite) Entity {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.slots))
		// Generation starts at 1 so no handle equals NoEntity
		a.slots = append(a.slots, slot{gen: 1})
	}
	a.slots[idx].sprite = s
	a.live++
	return makeEntity(idx, a.slots[idx].gen)
}

func (a *arena) release(e Entity) {
	idx := e.index()
	if int(idx) >= len(a.slots) || a.slots[idx].gen != e.gen() {
		return
	}
	a.slots[idx].sprite = nil
	a.slots[idx].gen++
	a.free = append(a.free, idx)
	a.live--
}

func (a *arena) get(e Entity) (*Sprite, bool) {
	idx := e.index()
	if e == NoEntity || int(idx) >= len(a.slots) {
		return nil, false
	}
	sl := a.slots[idx]
	if sl.gen != e.gen() || sl.sprite == nil {
		return nil, false
	}
	return sl.sprite, true
}
