package pixed

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pixelkit/pixed/utils"
)

// Brush size limits.
const (
	MinBrushSize = 1
	MaxBrushSize = 64
)

// maskEpsilon keeps boundary pixels of circular brushes inside the footprint.
const maskEpsilon = 1e-6

// Shape is the footprint shape of a brush.
type Shape int

const (
	Circle Shape = iota
	Square
)

func (s Shape) String() string {
	switch s {
	case Circle:
		return "circle"
	case Square:
		return "square"
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// ParseShape returns the shape named by s.
func ParseShape(s string) (Shape, error) {
	switch strings.ToLower(s) {
	case "circle", "round":
		return Circle, nil
	case "square":
		return Square, nil
	}
	return 0, fmt.Errorf("unknown brush shape %q", s)
}

// Offset is a pixel position relative to the brush center.
type Offset struct {
	DX, DY int
}

// Mask is the immutable footprint of a brush: the set of offsets stamped
// around the brush center, sorted row by row.
type Mask struct {
	offsets []Offset
}

// Len returns the number of offsets in the mask.
func (m Mask) Len() int { return len(m.offsets) }

// Offsets returns a copy of the mask offsets.
func (m Mask) Offsets() []Offset {
	out := make([]Offset, len(m.offsets))
	copy(out, m.offsets)
	return out
}

// Contains reports whether the offset (dx, dy) belongs to the mask.
func (m Mask) Contains(dx, dy int) bool {
	i := sort.Search(len(m.offsets), func(i int) bool {
		o := m.offsets[i]
		return o.DY > dy || (o.DY == dy && o.DX >= dx)
	})
	return i < len(m.offsets) && m.offsets[i] == Offset{dx, dy}
}

// ComputeMask builds the footprint of a brush of the given size and shape.
//
// Odd sizes are centered on a single pixel. Even sizes have no center pixel:
// offsets span [-size/2, size/2-1] and circles are measured from the
// half-pixel shifted center so the footprint stays symmetric.
func ComputeMask(size int, shape Shape) Mask {
	if size <= 1 {
		return Mask{offsets: []Offset{{0, 0}}}
	}

	lo, hi := -size/2, size/2
	if size%2 == 0 {
		hi--
	}

	offsets := make([]Offset, 0, size*size)
	for dy := lo; dy <= hi; dy++ {
		for dx := lo; dx <= hi; dx++ {
			if shape == Circle && !inCircle(dx, dy, size) {
				continue
			}
			offsets = append(offsets, Offset{dx, dy})
		}
	}
	return Mask{offsets: offsets}
}

func inCircle(dx, dy, size int) bool {
	if size%2 == 1 {
		r := float64(size / 2)
		return float64(dx*dx+dy*dy) <= r*r+maskEpsilon
	}
	fx, fy := float64(dx)+0.5, float64(dy)+0.5
	r := float64(size) / 2
	return fx*fx+fy*fy <= r*r+maskEpsilon
}

type maskKey struct {
	size  int
	shape Shape
}

// MaskCache memoizes brush masks per (size, shape) with a bounded
// least-recently-used eviction policy. It is not safe for concurrent use;
// each Editor owns its own cache.
type MaskCache struct {
	capacity int
	entries  map[maskKey]*maskEntry
	lru      *lruList[maskKey]
}

type maskEntry struct {
	mask Mask
	node *lruNode[maskKey]
}

// DefaultMaskCacheSize covers every (size, shape) pair a user is likely to
// alternate between during a session.
const DefaultMaskCacheSize = 64

// NewMaskCache creates a cache holding at most capacity masks.
// A non-positive capacity selects DefaultMaskCacheSize.
func NewMaskCache(capacity int) *MaskCache {
	if capacity <= 0 {
		capacity = DefaultMaskCacheSize
	}
	return &MaskCache{
		capacity: capacity,
		entries:  make(map[maskKey]*maskEntry, capacity),
		lru:      newLRUList[maskKey](),
	}
}

// MaskFor returns the mask of the given brush, computing it on first use.
// The size is clamped to [MinBrushSize, MaxBrushSize].
func (c *MaskCache) MaskFor(size int, shape Shape) Mask {
	key := maskKey{size: utils.Clamp(size, MinBrushSize, MaxBrushSize), shape: shape}
	if key.size == 1 {
		// Both shapes share the single pixel footprint.
		key.shape = Circle
	}

	if e, ok := c.entries[key]; ok {
		c.lru.MoveToFront(e.node)
		return e.mask
	}

	for c.lru.Len() >= c.capacity {
		oldest, ok := c.lru.RemoveOldest()
		if !ok {
			break
		}
		delete(c.entries, oldest)
	}

	m := ComputeMask(key.size, key.shape)
	c.entries[key] = &maskEntry{mask: m, node: c.lru.PushFront(key)}
	return m
}

// Len returns the number of cached masks.
func (c *MaskCache) Len() int {
	return c.lru.Len()
}

// lruNode is a node in a doubly-linked LRU list.
type lruNode[K comparable] struct {
	key  K
	prev *lruNode[K]
	next *lruNode[K]
}

// lruList is a doubly-linked list ordered from most (head) to least (tail)
// recently used.
type lruList[K comparable] struct {
	head *lruNode[K]
	tail *lruNode[K]
	len  int
}

func newLRUList[K comparable]() *lruList[K] {
	return &lruList[K]{}
}

func (l *lruList[K]) Len() int {
	return l.len
}

// PushFront adds a new node at the front and returns it.
func (l *lruList[K]) PushFront(key K) *lruNode[K] {
	node := &lruNode[K]{key: key}
	l.linkFront(node)
	return node
}

// MoveToFront marks an existing node as most recently used.
func (l *lruList[K]) MoveToFront(node *lruNode[K]) {
	if node == nil || node == l.head {
		return
	}
	l.unlink(node)
	l.linkFront(node)
}

// RemoveOldest removes and returns the key of the least recently used node.
func (l *lruList[K]) RemoveOldest() (K, bool) {
	if l.tail == nil {
		var zero K
		return zero, false
	}
	node := l.tail
	l.unlink(node)
	return node.key, true
}

func (l *lruList[K]) linkFront(node *lruNode[K]) {
	node.prev = nil
	node.next = l.head
	if l.head != nil {
		l.head.prev = node
	}
	l.head = node
	if l.tail == nil {
		l.tail = node
	}
	l.len++
}

func (l *lruList[K]) unlink(node *lruNode[K]) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		l.head = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.tail = node.prev
	}
	node.prev = nil
	node.next = nil
	l.len--
}
