package Trees

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// A node in the index arena. The zero value is meaningful: it is the shared
// nil slot at index 0, which every absent child and absent parent points to.
// l doubles as the next link while a slot sits on the free list.
type info[S constraints.Unsigned] struct {
	l, r, p S
}

// base is the storage every binary-search-tree implementation here embeds.
// Nodes live in the ifs array and reference each other by index; index 0 is
// the shared nil slot, so the zero value of every link means "absent" and the
// end position of iterators is simply index 0. vs[i-1] holds the value of
// ifs[i]. Indexes are stable across rotations, which keeps live iterators
// valid through rebalancing; gens counts how many times a slot was freed so
// that iterators can detect that their element is gone instead of reading a
// reused slot. beg caches the index of the minimum.
type base[T any, S constraints.Unsigned] struct {
	less LessFunc[T]
	ifs  []info[S]
	vs   []T
	gens []uint32
	root, beg, free, n S
}

func makeBase[T any, S constraints.Unsigned](less LessFunc[T], hint S) base[T, S] {
	return base[T, S]{
		less: less,
		ifs:  make([]info[S], 1, hint+1),
		vs:   make([]T, 0, hint),
		gens: make([]uint32, 1, hint+1),
	}
}

// addFree index once. Bumps the slot's generation so iterators at it turn stale.
func (u *base[T, S]) addFree(i S) {
	u.gens[i]++
	u.ifs[i].l = u.free
	u.free = i
}

// popFree index once. Returns 0 when there's no free index.
func (u *base[T, S]) popFree() S {
	i := u.free
	u.free = u.ifs[i].l
	return i
}

// alloc a slot holding v with all links nil. gens survives slot reuse and
// Clear, so a slot's generation only ever grows.
func (u *base[T, S]) alloc(v T) S {
	if i := u.popFree(); i != 0 {
		u.ifs[i] = info[S]{}
		u.vs[i-1] = v
		return i
	}
	u.ifs = append(u.ifs, info[S]{})
	u.vs = append(u.vs, v)
	if len(u.gens) < len(u.ifs) {
		u.gens = append(u.gens, 0)
	}
	return S(len(u.ifs) - 1)
}

// rotateLeft around i. i's right child takes i's place; parent links and the
// root are maintained. i must have a right child.
// Time: O(1); Space: O(1)
func (u *base[T, S]) rotateLeft(i S) {
	r := u.ifs[i].r
	u.ifs[i].r = u.ifs[r].l
	if u.ifs[r].l != 0 {
		u.ifs[u.ifs[r].l].p = i
	}
	u.ifs[r].p = u.ifs[i].p
	if p := u.ifs[i].p; p == 0 {
		u.root = r
	} else if u.ifs[p].l == i {
		u.ifs[p].l = r
	} else {
		u.ifs[p].r = r
	}
	u.ifs[r].l = i
	u.ifs[i].p = r
}

// rotateRight around i. Mirror of rotateLeft; i must have a left child.
// Time: O(1); Space: O(1)
func (u *base[T, S]) rotateRight(i S) {
	l := u.ifs[i].l
	u.ifs[i].l = u.ifs[l].r
	if u.ifs[l].r != 0 {
		u.ifs[u.ifs[l].r].p = i
	}
	u.ifs[l].p = u.ifs[i].p
	if p := u.ifs[i].p; p == 0 {
		u.root = l
	} else if u.ifs[p].l == i {
		u.ifs[p].l = l
	} else {
		u.ifs[p].r = l
	}
	u.ifs[l].r = i
	u.ifs[i].p = l
}

func (u *base[T, S]) minOf(i S) S {
	for u.ifs[i].l != 0 {
		i = u.ifs[i].l
	}
	return i
}

func (u *base[T, S]) maxOf(i S) S {
	for u.ifs[i].r != 0 {
		i = u.ifs[i].r
	}
	return i
}

// succ of i in-order: leftmost of the right subtree, else the first ancestor
// reached from a left child. Returns 0 past the maximum.
// Time: O(D); Space: O(1)
func (u *base[T, S]) succ(i S) S {
	if r := u.ifs[i].r; r != 0 {
		return u.minOf(r)
	}
	p := u.ifs[i].p
	for p != 0 && u.ifs[p].r == i {
		i, p = p, u.ifs[p].p
	}
	return p
}

// pred of i in-order. Returns 0 before the minimum.
// Time: O(D); Space: O(1)
func (u *base[T, S]) pred(i S) S {
	if l := u.ifs[i].l; l != 0 {
		return u.maxOf(l)
	}
	p := u.ifs[i].p
	for p != 0 && u.ifs[p].l == i {
		i, p = p, u.ifs[p].p
	}
	return p
}

// locate the index holding v, or 0.
// Time: O(D); Space: O(1)
func (u *base[T, S]) locate(v T) S {
	for i := u.root; i != 0; {
		if u.less(v, u.vs[i-1]) {
			i = u.ifs[i].l
		} else if u.less(u.vs[i-1], v) {
			i = u.ifs[i].r
		} else {
			return i
		}
	}
	return 0
}

// lowerBound returns the index of the first element not less than v, or 0.
// Time: O(D); Space: O(1)
func (u *base[T, S]) lowerBound(v T) S {
	var lb S
	for i := u.root; i != 0; {
		if u.less(u.vs[i-1], v) {
			i = u.ifs[i].r
		} else {
			lb = i
			i = u.ifs[i].l
		}
	}
	return lb
}

func (u *base[T, S]) Size() uint {
	return uint(u.n)
}

func (u *base[T, S]) Empty() bool {
	return u.n == 0
}

func (u *base[T, S]) Has(v T) bool {
	return u.locate(v) != 0
}

func (u *base[T, S]) Minimum() (v T, ok bool) {
	if u.beg != 0 {
		v, ok = u.vs[u.beg-1], true
	}
	return
}

func (u *base[T, S]) Maximum() (v T, ok bool) {
	if u.root != 0 {
		v, ok = u.vs[u.maxOf(u.root)-1], true
	}
	return
}

func (u *base[T, S]) Predecessor(v T) (p T, ok bool) {
	for i := u.root; i != 0; {
		if u.less(u.vs[i-1], v) {
			p, ok = u.vs[i-1], true
			i = u.ifs[i].r
		} else {
			i = u.ifs[i].l
		}
	}
	return
}

func (u *base[T, S]) Successor(v T) (s T, ok bool) {
	for i := u.root; i != 0; {
		if u.less(v, u.vs[i-1]) {
			s, ok = u.vs[i-1], true
			i = u.ifs[i].l
		} else {
			i = u.ifs[i].r
		}
	}
	return
}

func (u *base[T, S]) Find(v T) Iterator[T] {
	i := u.locate(v)
	return &treeIter[T, S]{u, i, u.gens[i]}
}

func (u *base[T, S]) LowerBound(v T) Iterator[T] {
	i := u.lowerBound(v)
	return &treeIter[T, S]{u, i, u.gens[i]}
}

func (u *base[T, S]) Begin() Iterator[T] {
	return &treeIter[T, S]{u, u.beg, u.gens[u.beg]}
}

func (u *base[T, S]) End() Iterator[T] {
	return &treeIter[T, S]{u, 0, 0}
}

// InOrder returns A closure iterator over the elements in ascending order.
// The tree must not be modified during the iteration.
func (u *base[T, S]) InOrder() func() (T, bool) {
	i := u.beg
	return func() (v T, ok bool) {
		if i == 0 {
			return
		}
		v, ok = u.vs[i-1], true
		i = u.succ(i)
		return
	}
}

// Clear the tree. Keeps the allocated arrays; every slot's generation is
// bumped so outstanding iterators fail with ErrInvalidated instead of seeing
// reused slots.
func (u *base[T, S]) Clear() {
	for i := range u.gens[1:] {
		u.gens[i+1]++
	}
	u.ifs = u.ifs[:1]
	u.vs = u.vs[:0]
	u.root, u.beg, u.free, u.n = 0, 0, 0, 0
}

// move returns the receiver's whole state and leaves it empty, keeping only
// the ordering. Iterators into the old state turn stale.
func (u *base[T, S]) move() base[T, S] {
	m := *u
	*u = makeBase[T, S](u.less, 0)
	return m
}

// verify the properties every variant shares: parent links mirror child
// links, in-order values strictly ascend, the size counter and the cached
// minimum agree with the structure. The walk is capped by the size counter so
// a corrupted cycle reports instead of hanging.
// Time: O(n); Space: O(1)
func (u *base[T, S]) verify() error {
	if u.root != 0 && u.ifs[u.root].p != 0 {
		return fmt.Errorf("%w: root %d has parent %d", ErrCorrupt, u.root, u.ifs[u.root].p)
	}
	var n, prev S
	for i := u.minOf(u.root); i != 0; i = u.succ(i) {
		if n++; n > u.n {
			return fmt.Errorf("%w: walk exceeds size %d", ErrCorrupt, u.n)
		}
		if l := u.ifs[i].l; l != 0 && u.ifs[l].p != i {
			return fmt.Errorf("%w: %d.l=%d but %d.p=%d", ErrCorrupt, i, l, l, u.ifs[l].p)
		}
		if r := u.ifs[i].r; r != 0 && u.ifs[r].p != i {
			return fmt.Errorf("%w: %d.r=%d but %d.p=%d", ErrCorrupt, i, r, r, u.ifs[r].p)
		}
		if prev != 0 && !u.less(u.vs[prev-1], u.vs[i-1]) {
			return fmt.Errorf("%w: order inverted at %d", ErrCorrupt, i)
		}
		prev = i
	}
	if n != u.n {
		return fmt.Errorf("%w: size is %d, walk found %d", ErrCorrupt, u.n, n)
	}
	if u.beg != u.minOf(u.root) {
		return fmt.Errorf("%w: begin is %d, minimum is %d", ErrCorrupt, u.beg, u.minOf(u.root))
	}
	return nil
}

// treeIter is the bidirectional Iterator shared by every variant embedding
// base. It is a (slot, generation) pair; slot 0 is the end position.
type treeIter[T any, S constraints.Unsigned] struct {
	t   *base[T, S]
	i   S
	gen uint32
}

func (it *treeIter[T, S]) stale() bool {
	return int(it.i) >= len(it.t.gens) || it.t.gens[it.i] != it.gen
}

func (it *treeIter[T, S]) Valid() bool {
	return it.i != 0 && !it.stale()
}

func (it *treeIter[T, S]) Get() (v T, err error) {
	if it.stale() {
		return v, ErrInvalidated
	}
	if it.i == 0 {
		return v, ErrOutOfRange
	}
	return it.t.vs[it.i-1], nil
}

func (it *treeIter[T, S]) Next() error {
	if it.stale() {
		return ErrInvalidated
	}
	if it.i == 0 {
		return ErrOutOfRange
	}
	it.i = it.t.succ(it.i)
	it.gen = it.t.gens[it.i]
	return nil
}

func (it *treeIter[T, S]) Prev() error {
	if it.stale() {
		return ErrInvalidated
	}
	var to S
	if it.i == 0 {
		to = it.t.maxOf(it.t.root)
	} else {
		to = it.t.pred(it.i)
	}
	if to == 0 {
		return ErrOutOfRange
	}
	it.i = to
	it.gen = it.t.gens[to]
	return nil
}

func (it *treeIter[T, S]) Clone() Iterator[T] {
	c := *it
	return &c
}
