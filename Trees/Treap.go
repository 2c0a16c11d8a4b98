package Trees

import (
	"cmp"
	"fmt"
	"math/rand/v2"

	Ordered "github.com/g-m-twostay/ordered"
	"golang.org/x/exp/constraints"
)

// Treap is a randomized binary search tree: slots are in symmetric order by
// value and in max-heap order by priorities drawn from src, which keeps the
// expected depth D at O(log n) regardless of insertion order. All mutations
// reduce to split and merge, so the shape after any operation is the one
// canonically determined by the surviving (value, priority) pairs.
// T is the type of values it will hold, S is the type used for slot indexes;
// S must not overflow the number of elements the tree will hold.
type Treap[T any, S constraints.Unsigned] struct {
	base[T, S]
	prs []uint64
	src rand.Source
}

// NewTreap makes an empty Treap ordering values of T naturally, drawing
// priorities from the runtime's random source, with enough room for hint
// elements before regrowing.
func NewTreap[T cmp.Ordered, S constraints.Unsigned](hint S) *Treap[T, S] {
	return NewTreapFunc[T, S](Less[T](), Ordered.Runtime{}, hint)
}

// NewTreapFunc makes an empty Treap ordered by less with priorities drawn
// from src. Two Treaps fed the same operations and sources yielding the same
// values have identical shapes.
func NewTreapFunc[T any, S constraints.Unsigned](less LessFunc[T], src rand.Source, hint S) *Treap[T, S] {
	return &Treap[T, S]{makeBase[T, S](less, hint), make([]uint64, 1, hint+1), src}
}

func (u *Treap[T, S]) node(v T) S {
	i := u.alloc(v)
	pr := u.src.Uint64()
	if int(i) == len(u.prs) {
		u.prs = append(u.prs, pr)
	} else {
		u.prs[i] = pr
	}
	return i
}

// split cuts the subtree at i into two trees (a, b), a holding the values
// less than v and b the rest. Recursive.
func (u *Treap[T, S]) split(i S, v T) (S, S) {
	if i == 0 {
		return 0, 0
	}
	if u.less(u.vs[i-1], v) {
		a, b := u.split(u.ifs[i].r, v)
		u.ifs[i].r = a
		if a != 0 {
			u.ifs[a].p = i
		}
		return i, b
	}
	a, b := u.split(u.ifs[i].l, v)
	u.ifs[i].l = b
	if b != 0 {
		u.ifs[b].p = i
	}
	return a, i
}

// merge joins trees a and b, every value in a less than every value in b,
// keeping the larger priority on top. Ties keep a above b. Recursive.
func (u *Treap[T, S]) merge(a, b S) S {
	if a == 0 {
		return b
	}
	if b == 0 {
		return a
	}
	if u.prs[a] >= u.prs[b] {
		r := u.merge(u.ifs[a].r, b)
		u.ifs[a].r = r
		u.ifs[r].p = a
		return a
	}
	l := u.merge(a, u.ifs[b].l)
	u.ifs[b].l = l
	u.ifs[l].p = b
	return b
}

// [Tree.Insert]. Splits at v, refuses when the right part already starts
// with v, otherwise merges a fresh slot in between. Recursive.
// Time: expected O(log n); Space: expected O(log n)
func (u *Treap[T, S]) Insert(v T) bool {
	a, b := u.split(u.root, v)
	if b != 0 {
		if m := u.minOf(b); !u.less(v, u.vs[m-1]) {
			u.root = u.merge(a, b)
			u.ifs[u.root].p = 0
			return false
		}
	}
	j := u.node(v)
	u.root = u.merge(u.merge(a, j), b)
	u.ifs[u.root].p = 0
	u.n++
	if u.beg == 0 || u.less(v, u.vs[u.beg-1]) {
		u.beg = j
	}
	return true
}

// [Tree.Remove]. The slot holding v is replaced by the merge of its
// subtrees. Recursive.
// Time: expected O(log n); Space: expected O(log n)
func (u *Treap[T, S]) Remove(v T) bool {
	i := u.locate(v)
	if i == 0 {
		return false
	}
	if u.beg == i {
		u.beg = u.succ(i)
	}
	m := u.merge(u.ifs[i].l, u.ifs[i].r)
	p := u.ifs[i].p
	if m != 0 {
		u.ifs[m].p = p
	}
	if p == 0 {
		u.root = m
	} else if u.ifs[p].l == i {
		u.ifs[p].l = m
	} else {
		u.ifs[p].r = m
	}
	u.addFree(i)
	u.n--
	return true
}

// Clone returns an independent deep copy built by reinserting every element
// in ascending order. The copy shares src, so its slots draw fresh
// priorities and its shape is its own.
// Time: expected O(n*log n); Space: O(n)
func (u *Treap[T, S]) Clone() *Treap[T, S] {
	c := NewTreapFunc[T, S](u.less, u.src, u.n)
	for f := u.InOrder(); ; {
		v, ok := f()
		if !ok {
			break
		}
		c.Insert(v)
	}
	return c
}

// Move returns a tree owning the receiver's contents and leaves the receiver
// valid and empty. Iterators into the receiver turn stale.
// Time: O(1); Space: O(1)
func (u *Treap[T, S]) Move() *Treap[T, S] {
	m := &Treap[T, S]{u.base.move(), u.prs, u.src}
	u.prs = make([]uint64, 1)
	return m
}

// Verify checks the shared search-tree properties and then that no slot has
// a priority above its parent's. Read-only. Recursive.
// Time: O(n); Space: expected O(log n)
func (u *Treap[T, S]) Verify() error {
	if err := u.verify(); err != nil {
		return err
	}
	return u.heap(u.root)
}

func (u *Treap[T, S]) heap(i S) error {
	if i == 0 {
		return nil
	}
	for _, c := range [2]S{u.ifs[i].l, u.ifs[i].r} {
		if c == 0 {
			continue
		}
		if u.prs[c] > u.prs[i] {
			return fmt.Errorf("%w: priority %d at %d above its parent %d", ErrCorrupt, u.prs[c], c, i)
		}
		if err := u.heap(c); err != nil {
			return err
		}
	}
	return nil
}

// [Tree.Corrupt].
func (u *Treap[T, S]) Corrupt() bool {
	return u.Verify() != nil
}
