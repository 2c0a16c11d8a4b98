package Trees

import (
	"cmp"
	"fmt"

	"github.com/emirpasic/gods/trees/redblacktree"
)

// RefTree adapts gods' red-black tree to the Tree interface. Values are
// boxed into interface keys, so it allocates per element and compares
// through indirections; it exists as an independently implemented oracle to
// differential-test the arena variants against, not to be fast.
//
// gods nodes carry no generation, so RefTree iterators cannot detect
// invalidation: using one after removing its element is undefined instead
// of ErrInvalidated.
type RefTree[T any] struct {
	t    *redblacktree.Tree
	less LessFunc[T]
}

// NewRef makes an empty RefTree ordering values of T naturally.
func NewRef[T cmp.Ordered]() *RefTree[T] {
	return NewRefFunc(Less[T]())
}

// NewRefFunc makes an empty RefTree ordered by less.
func NewRefFunc[T any](less LessFunc[T]) *RefTree[T] {
	return &RefTree[T]{redblacktree.NewWith(func(a, b interface{}) int {
		x, y := a.(T), b.(T)
		if less(x, y) {
			return -1
		}
		if less(y, x) {
			return 1
		}
		return 0
	}), less}
}

// [Tree.Insert]. Time: O(log n); Space: O(1)
func (u *RefTree[T]) Insert(v T) bool {
	if _, found := u.t.Get(v); found {
		return false
	}
	u.t.Put(v, nil)
	return true
}

// [Tree.Remove]. Time: O(log n); Space: O(1)
func (u *RefTree[T]) Remove(v T) bool {
	if _, found := u.t.Get(v); !found {
		return false
	}
	u.t.Remove(v)
	return true
}

// [Tree.Has].
func (u *RefTree[T]) Has(v T) bool {
	_, found := u.t.Get(v)
	return found
}

func (u *RefTree[T]) Size() uint {
	return uint(u.t.Size())
}

func (u *RefTree[T]) Empty() bool {
	return u.t.Empty()
}

// [Tree.Clear]. Outstanding iterators are left dangling, not stale.
func (u *RefTree[T]) Clear() {
	u.t.Clear()
}

// [Tree.Find].
func (u *RefTree[T]) Find(v T) Iterator[T] {
	n := u.t.GetNode(v)
	if n == nil {
		return u.End()
	}
	return &refIter[T]{u.t.IteratorAt(n), true}
}

// [Tree.LowerBound].
func (u *RefTree[T]) LowerBound(v T) Iterator[T] {
	n, found := u.t.Ceiling(v)
	if !found {
		return u.End()
	}
	return &refIter[T]{u.t.IteratorAt(n), true}
}

// [Tree.Begin].
func (u *RefTree[T]) Begin() Iterator[T] {
	it := u.t.Iterator()
	return &refIter[T]{it, it.Next()}
}

// [Tree.End].
func (u *RefTree[T]) End() Iterator[T] {
	it := u.t.Iterator()
	it.End()
	return &refIter[T]{it, false}
}

// [Tree.Minimum].
func (u *RefTree[T]) Minimum() (v T, ok bool) {
	if n := u.t.Left(); n != nil {
		v, ok = n.Key.(T), true
	}
	return
}

// [Tree.Maximum].
func (u *RefTree[T]) Maximum() (v T, ok bool) {
	if n := u.t.Right(); n != nil {
		v, ok = n.Key.(T), true
	}
	return
}

// [Tree.Predecessor].
func (u *RefTree[T]) Predecessor(v T) (p T, ok bool) {
	n, found := u.t.Floor(v)
	if !found {
		return
	}
	if k := n.Key.(T); u.less(k, v) {
		return k, true
	}
	it := u.t.IteratorAt(n)
	if !it.Prev() {
		return
	}
	return it.Key().(T), true
}

// [Tree.Successor].
func (u *RefTree[T]) Successor(v T) (s T, ok bool) {
	n, found := u.t.Ceiling(v)
	if !found {
		return
	}
	if k := n.Key.(T); u.less(v, k) {
		return k, true
	}
	it := u.t.IteratorAt(n)
	if !it.Next() {
		return
	}
	return it.Key().(T), true
}

// [Tree.InOrder].
func (u *RefTree[T]) InOrder() func() (T, bool) {
	it := u.t.Iterator()
	return func() (v T, ok bool) {
		if !it.Next() {
			return
		}
		return it.Key().(T), true
	}
}

// Clone returns an independent deep copy built by reinserting every element
// in ascending order.
func (u *RefTree[T]) Clone() *RefTree[T] {
	c := &RefTree[T]{redblacktree.NewWith(u.t.Comparator), u.less}
	for f := u.InOrder(); ; {
		v, ok := f()
		if !ok {
			break
		}
		c.t.Put(v, nil)
	}
	return c
}

// Move returns a tree owning the receiver's contents and leaves the
// receiver valid and empty.
func (u *RefTree[T]) Move() *RefTree[T] {
	m := &RefTree[T]{u.t, u.less}
	u.t = redblacktree.NewWith(m.t.Comparator)
	return m
}

// Verify walks the tree checking strict ascending order and that the walk
// length matches Size; the balancing bookkeeping is gods' own. Read-only.
// Time: O(n); Space: O(1)
func (u *RefTree[T]) Verify() error {
	var n int
	var prev T
	for f, first := u.InOrder(), true; ; first = false {
		v, ok := f()
		if !ok {
			break
		}
		if n++; !first && !u.less(prev, v) {
			return fmt.Errorf("%w: order inverted after %d elements", ErrCorrupt, n-1)
		}
		prev = v
	}
	if n != u.t.Size() {
		return fmt.Errorf("%w: walk found %d elements, Size is %d", ErrCorrupt, n, u.t.Size())
	}
	return nil
}

// [Tree.Corrupt].
func (u *RefTree[T]) Corrupt() bool {
	return u.Verify() != nil
}

// refIter adapts gods' iterator. ok tracks whether it rests on an element;
// gods reports begin, element and end positions only through the return
// values of its moves.
type refIter[T any] struct {
	it redblacktree.Iterator
	ok bool
}

// [Iterator.Valid].
func (it *refIter[T]) Valid() bool {
	return it.ok
}

// [Iterator.Get].
func (it *refIter[T]) Get() (v T, err error) {
	if !it.ok {
		return v, ErrOutOfRange
	}
	return it.it.Key().(T), nil
}

// [Iterator.Next].
func (it *refIter[T]) Next() error {
	if !it.ok {
		return ErrOutOfRange
	}
	it.ok = it.it.Next()
	return nil
}

// [Iterator.Prev].
func (it *refIter[T]) Prev() error {
	if !it.it.Prev() {
		if it.ok {
			// it was at the first element; step back onto it
			it.it.Next()
		} else {
			it.it.End()
		}
		return ErrOutOfRange
	}
	it.ok = true
	return nil
}

// [Iterator.Clone].
func (it *refIter[T]) Clone() Iterator[T] {
	c := *it
	return &c
}
