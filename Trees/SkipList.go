package Trees

import (
	"cmp"
	"fmt"
	"math"
	"math/bits"
	"math/rand/v2"

	Ordered "github.com/g-m-twostay/ordered"
	"golang.org/x/exp/constraints"
)

type sklNode[S constraints.Unsigned] struct {
	nxt []S
	prv S
}

// SkipList is an ordered list with index levels above it: slot towers of
// geometric height drawn from src let searches skip ahead, giving expected
// O(log n) lookups without any rebalancing. The bottom level is doubly
// linked, so iterators walk both ways in O(1) per step. Slot 0 is the head;
// the length of its tower is the current level count.
// T is the type of values it will hold, S is the type used for slot indexes;
// S must not overflow the number of elements the list will hold.
type SkipList[T any, S constraints.Unsigned] struct {
	less LessFunc[T]
	ns   []sklNode[S]
	vs   []T
	gens []uint32
	scr  []S
	src  rand.Source
	free S
	tail S
	n    S
	thr  uint64
}

// sklConf carries the tunables of a SkipList.
type sklConf struct {
	maxLevel int
	thr      uint64
	src      rand.Source
}

type SkipListOption func(*sklConf)

// WithMaxLevel caps towers at l levels, at least 1. 2^l should be
// comfortably above the number of elements the list will hold.
func WithMaxLevel(l int) SkipListOption {
	return func(c *sklConf) { c.maxLevel = max(l, 1) }
}

// WithP sets the probability of extending a fresh tower by one more level.
// The default is 1/2.
func WithP(p float64) SkipListOption {
	return func(c *sklConf) {
		if p >= 1 {
			c.thr = math.MaxUint64
		} else if p <= 0 {
			c.thr = 0
		} else {
			c.thr = uint64(p * float64(math.MaxUint64))
		}
	}
}

// WithSource draws tower heights from src instead of the runtime's random
// source. Two SkipLists fed the same operations and sources yielding the
// same values have identical towers.
func WithSource(src rand.Source) SkipListOption {
	return func(c *sklConf) { c.src = src }
}

// NewSkipList makes an empty SkipList ordering values of T naturally, with
// enough room for hint elements before regrowing.
func NewSkipList[T cmp.Ordered, S constraints.Unsigned](hint S, opts ...SkipListOption) *SkipList[T, S] {
	return NewSkipListFunc[T, S](Less[T](), hint, opts...)
}

// NewSkipListFunc makes an empty SkipList ordered by less.
func NewSkipListFunc[T any, S constraints.Unsigned](less LessFunc[T], hint S, opts ...SkipListOption) *SkipList[T, S] {
	c := sklConf{24, 1 << 63, Ordered.Runtime{}}
	for _, o := range opts {
		o(&c)
	}
	return &SkipList[T, S]{
		less: less,
		ns:   make([]sklNode[S], 1, hint+1),
		vs:   make([]T, 0, hint),
		gens: make([]uint32, 1, hint+1),
		scr:  make([]S, c.maxLevel),
		src:  c.src,
		thr:  c.thr,
	}
}

func (u *SkipList[T, S]) addFree(i S) {
	u.gens[i]++
	u.ns[i].prv = u.free
	u.free = i
}

// alloc a slot holding v with an h level tower, reusing a freed slot and its
// tower's capacity when possible. gens survives slot reuse and Clear, so a
// slot's generation only ever grows.
func (u *SkipList[T, S]) alloc(v T, h int) S {
	if i := u.free; i != 0 {
		u.free = u.ns[i].prv
		t := u.ns[i].nxt
		if cap(t) < h {
			t = make([]S, h)
		}
		u.ns[i] = sklNode[S]{nxt: t[:h]}
		u.vs[i-1] = v
		return i
	}
	u.ns = append(u.ns, sklNode[S]{nxt: make([]S, h)})
	u.vs = append(u.vs, v)
	if len(u.gens) < len(u.ns) {
		u.gens = append(u.gens, 0)
	}
	return S(len(u.ns) - 1)
}

// level draws a fresh tower height, geometric with parameter thr/2^64 and
// capped at the level limit. The default 1/2 counts trailing zero bits of a
// single draw instead of looping.
func (u *SkipList[T, S]) level() int {
	if u.thr == 1<<63 {
		if h := bits.TrailingZeros64(u.src.Uint64()) + 1; h < len(u.scr) {
			return h
		}
		return len(u.scr)
	}
	h := 1
	for h < len(u.scr) && u.src.Uint64() < u.thr {
		h++
	}
	return h
}

func (u *SkipList[T, S]) first() S {
	if len(u.ns[0].nxt) == 0 {
		return 0
	}
	return u.ns[0].nxt[0]
}

// follow returns the rightmost slot sorting before v, descending one level
// whenever the next slot doesn't. When upd, the slot where the search left
// each level is recorded in scr.
// Time: expected O(log n); Space: O(1)
func (u *SkipList[T, S]) follow(v T, upd bool) S {
	var i S
	for l := len(u.ns[0].nxt) - 1; l >= 0; l-- {
		for nx := u.ns[i].nxt[l]; nx != 0 && u.less(u.vs[nx-1], v); nx = u.ns[i].nxt[l] {
			i = nx
		}
		if upd {
			u.scr[l] = i
		}
	}
	return i
}

// bound is the slot after i at the bottom level, 0 at the right edge.
func (u *SkipList[T, S]) bound(i S) S {
	if i == 0 && len(u.ns[0].nxt) == 0 {
		return 0
	}
	return u.ns[i].nxt[0]
}

func (u *SkipList[T, S]) Size() uint {
	return uint(u.n)
}

func (u *SkipList[T, S]) Empty() bool {
	return u.n == 0
}

// [Tree.Insert]. The fresh tower is linked in after the recorded search
// path, extending the level count when it overtops it.
// Time: expected O(log n); Space: O(1)
func (u *SkipList[T, S]) Insert(v T) bool {
	i := u.follow(v, true)
	if c := u.bound(i); c != 0 && !u.less(v, u.vs[c-1]) {
		return false
	}
	h := u.level()
	for len(u.ns[0].nxt) < h {
		u.scr[len(u.ns[0].nxt)] = 0
		u.ns[0].nxt = append(u.ns[0].nxt, 0)
	}
	j := u.alloc(v, h)
	for l := 0; l < h; l++ {
		p := u.scr[l]
		u.ns[j].nxt[l] = u.ns[p].nxt[l]
		u.ns[p].nxt[l] = j
	}
	u.ns[j].prv = u.scr[0]
	if nx := u.ns[j].nxt[0]; nx != 0 {
		u.ns[nx].prv = j
	} else {
		u.tail = j
	}
	u.n++
	return true
}

// [Tree.Remove]. The tower is unlinked at every level it reaches; empty top
// levels are dropped.
// Time: expected O(log n); Space: O(1)
func (u *SkipList[T, S]) Remove(v T) bool {
	i := u.follow(v, true)
	t := u.bound(i)
	if t == 0 || u.less(v, u.vs[t-1]) {
		return false
	}
	for l := range u.ns[t].nxt {
		u.ns[u.scr[l]].nxt[l] = u.ns[t].nxt[l]
	}
	if nx := u.ns[t].nxt[0]; nx != 0 {
		u.ns[nx].prv = u.ns[t].prv
	} else {
		u.tail = u.ns[t].prv
	}
	h := len(u.ns[0].nxt)
	for h > 0 && u.ns[0].nxt[h-1] == 0 {
		h--
	}
	u.ns[0].nxt = u.ns[0].nxt[:h]
	u.addFree(t)
	u.n--
	return true
}

// [Tree.Has].
func (u *SkipList[T, S]) Has(v T) bool {
	c := u.bound(u.follow(v, false))
	return c != 0 && !u.less(v, u.vs[c-1])
}

// [Tree.Find].
func (u *SkipList[T, S]) Find(v T) Iterator[T] {
	if c := u.bound(u.follow(v, false)); c != 0 && !u.less(v, u.vs[c-1]) {
		return &sklIter[T, S]{u, c, u.gens[c]}
	}
	return u.End()
}

// [Tree.LowerBound].
func (u *SkipList[T, S]) LowerBound(v T) Iterator[T] {
	c := u.bound(u.follow(v, false))
	return &sklIter[T, S]{u, c, u.gens[c]}
}

// [Tree.Begin].
func (u *SkipList[T, S]) Begin() Iterator[T] {
	f := u.first()
	return &sklIter[T, S]{u, f, u.gens[f]}
}

// [Tree.End].
func (u *SkipList[T, S]) End() Iterator[T] {
	return &sklIter[T, S]{u, 0, 0}
}

// [Tree.Minimum].
func (u *SkipList[T, S]) Minimum() (v T, ok bool) {
	if f := u.first(); f != 0 {
		v, ok = u.vs[f-1], true
	}
	return
}

// [Tree.Maximum].
func (u *SkipList[T, S]) Maximum() (v T, ok bool) {
	if u.tail != 0 {
		v, ok = u.vs[u.tail-1], true
	}
	return
}

// [Tree.Predecessor].
func (u *SkipList[T, S]) Predecessor(v T) (p T, ok bool) {
	if i := u.follow(v, false); i != 0 {
		p, ok = u.vs[i-1], true
	}
	return
}

// [Tree.Successor].
func (u *SkipList[T, S]) Successor(v T) (s T, ok bool) {
	var i S
	for l := len(u.ns[0].nxt) - 1; l >= 0; l-- {
		for nx := u.ns[i].nxt[l]; nx != 0 && !u.less(v, u.vs[nx-1]); nx = u.ns[i].nxt[l] {
			i = nx
		}
	}
	if c := u.bound(i); c != 0 {
		s, ok = u.vs[c-1], true
	}
	return
}

// [Tree.InOrder].
func (u *SkipList[T, S]) InOrder() func() (T, bool) {
	i := u.first()
	return func() (v T, ok bool) {
		if i != 0 {
			v, ok = u.vs[i-1], true
			i = u.ns[i].nxt[0]
		}
		return
	}
}

// [Tree.Clear]. Outstanding iterators turn stale.
func (u *SkipList[T, S]) Clear() {
	for i := range u.gens[1:] {
		u.gens[i+1]++
	}
	u.ns = u.ns[:1]
	u.ns[0].nxt = u.ns[0].nxt[:0]
	u.vs = u.vs[:0]
	u.free, u.tail, u.n = 0, 0, 0
}

// Clone returns an independent deep copy built by reinserting every element
// in ascending order. The copy shares src, so its towers are drawn fresh.
// Time: expected O(n*log n); Space: O(n)
func (u *SkipList[T, S]) Clone() *SkipList[T, S] {
	c := NewSkipListFunc[T, S](u.less, u.n, WithMaxLevel(len(u.scr)), WithSource(u.src))
	c.thr = u.thr
	for f := u.InOrder(); ; {
		v, ok := f()
		if !ok {
			break
		}
		c.Insert(v)
	}
	return c
}

// Move returns a list owning the receiver's contents and leaves the
// receiver valid and empty. Iterators into the receiver turn stale.
// Time: O(1); Space: O(1)
func (u *SkipList[T, S]) Move() *SkipList[T, S] {
	m := &SkipList[T, S]{u.less, u.ns, u.vs, u.gens, u.scr, u.src, u.free, u.tail, u.n, u.thr}
	u.ns = make([]sklNode[S], 1)
	u.vs = nil
	u.gens = make([]uint32, 1)
	u.scr = make([]S, len(m.scr))
	u.free, u.tail, u.n = 0, 0, 0
	return m
}

// Verify checks the level structure: the bottom level holds exactly Size
// strictly ascending values with mirrored back links and tail at its end,
// and every index level is strictly ascending over slots whose towers reach
// it. Read-only.
// Time: O(n); Space: O(1)
func (u *SkipList[T, S]) Verify() error {
	lv := len(u.ns[0].nxt)
	if lv > len(u.scr) {
		return fmt.Errorf("%w: %d levels above the cap %d", ErrCorrupt, lv, len(u.scr))
	}
	if lv == 0 {
		if u.n != 0 || u.tail != 0 {
			return fmt.Errorf("%w: no levels but %d elements", ErrCorrupt, u.n)
		}
		return nil
	}
	if u.ns[0].nxt[lv-1] == 0 {
		return fmt.Errorf("%w: empty top level %d", ErrCorrupt, lv)
	}
	var cnt S
	var last S
	for i := u.ns[0].nxt[0]; i != 0; i = u.ns[i].nxt[0] {
		if cnt++; cnt > u.n {
			return fmt.Errorf("%w: bottom level runs past %d elements", ErrCorrupt, u.n)
		}
		if u.ns[i].prv != last {
			return fmt.Errorf("%w: %d linked back to %d, not %d", ErrCorrupt, i, u.ns[i].prv, last)
		}
		if last != 0 && !u.less(u.vs[last-1], u.vs[i-1]) {
			return fmt.Errorf("%w: %d and %d out of order", ErrCorrupt, last, i)
		}
		last = i
	}
	if cnt != u.n {
		return fmt.Errorf("%w: %d elements at the bottom level, Size is %d", ErrCorrupt, cnt, u.n)
	}
	if last != u.tail {
		return fmt.Errorf("%w: bottom level ends at %d, tail is %d", ErrCorrupt, last, u.tail)
	}
	for l := 1; l < lv; l++ {
		last = 0
		for i, steps := u.ns[0].nxt[l], S(0); i != 0; i = u.ns[i].nxt[l] {
			if steps++; steps > cnt {
				return fmt.Errorf("%w: level %d runs past the bottom level", ErrCorrupt, l)
			}
			if len(u.ns[i].nxt) <= l {
				return fmt.Errorf("%w: tower %d of height %d linked at level %d", ErrCorrupt, i, len(u.ns[i].nxt), l)
			}
			if last != 0 && !u.less(u.vs[last-1], u.vs[i-1]) {
				return fmt.Errorf("%w: %d and %d out of order at level %d", ErrCorrupt, last, i, l)
			}
			last = i
		}
	}
	return nil
}

// [Tree.Corrupt].
func (u *SkipList[T, S]) Corrupt() bool {
	return u.Verify() != nil
}

type sklIter[T any, S constraints.Unsigned] struct {
	u   *SkipList[T, S]
	i   S
	gen uint32
}

func (it *sklIter[T, S]) stale() bool {
	return int(it.i) >= len(it.u.gens) || it.u.gens[it.i] != it.gen
}

// [Iterator.Valid].
func (it *sklIter[T, S]) Valid() bool {
	return it.i != 0 && !it.stale()
}

// [Iterator.Get].
func (it *sklIter[T, S]) Get() (v T, err error) {
	if it.stale() {
		err = ErrInvalidated
	} else if it.i == 0 {
		err = ErrOutOfRange
	} else {
		v = it.u.vs[it.i-1]
	}
	return
}

// [Iterator.Next].
func (it *sklIter[T, S]) Next() error {
	if it.stale() {
		return ErrInvalidated
	}
	if it.i == 0 {
		return ErrOutOfRange
	}
	it.i = it.u.ns[it.i].nxt[0]
	it.gen = it.u.gens[it.i]
	return nil
}

// [Iterator.Prev].
func (it *sklIter[T, S]) Prev() error {
	if it.stale() {
		return ErrInvalidated
	}
	j := it.u.tail
	if it.i != 0 {
		j = it.u.ns[it.i].prv
	}
	if j == 0 {
		return ErrOutOfRange
	}
	it.i = j
	it.gen = it.u.gens[j]
	return nil
}

// [Iterator.Clone].
func (it *sklIter[T, S]) Clone() Iterator[T] {
	c := *it
	return &c
}
