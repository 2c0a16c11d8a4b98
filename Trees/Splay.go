package Trees

import (
	"cmp"

	"golang.org/x/exp/constraints"
)

// SplayTree is a self-adjusting binary search tree: every hit is rotated to
// the root by zig, zig-zig and zig-zag steps, so recently and frequently
// accessed values sit near the top. Individual operations can take O(n), but
// any m of them amortize to O(m*log n). Find, Has and LowerBound adjust the
// tree on a hit and are therefore mutating despite their read-only
// signatures; misses leave the shape alone.
// T is the type of values it will hold, S is the type used for slot indexes;
// S must not overflow the number of elements the tree will hold.
type SplayTree[T any, S constraints.Unsigned] struct {
	base[T, S]
}

// NewSplay makes an empty SplayTree ordering values of T naturally, with
// enough room for hint elements before regrowing.
func NewSplay[T cmp.Ordered, S constraints.Unsigned](hint S) *SplayTree[T, S] {
	return NewSplayFunc[T, S](Less[T](), hint)
}

// NewSplayFunc makes an empty SplayTree ordered by less.
func NewSplayFunc[T any, S constraints.Unsigned](less LessFunc[T], hint S) *SplayTree[T, S] {
	return &SplayTree[T, S]{makeBase[T, S](less, hint)}
}

// lift rotates i above its parent.
func (u *SplayTree[T, S]) lift(i S) {
	if p := u.ifs[i].p; u.ifs[p].l == i {
		u.rotateRight(p)
	} else {
		u.rotateLeft(p)
	}
}

// splay rotates i to the root, two levels per step when a grandparent
// exists: parent first on a straight path (zig-zig), i twice on a bent one
// (zig-zag).
// Time: amortized O(log n); Space: O(1)
func (u *SplayTree[T, S]) splay(i S) {
	for {
		p := u.ifs[i].p
		if p == 0 {
			return
		}
		if g := u.ifs[p].p; g == 0 {
			u.lift(i)
		} else if (u.ifs[g].l == p) == (u.ifs[p].l == i) {
			u.lift(p)
			u.lift(i)
		} else {
			u.lift(i)
			u.lift(i)
		}
	}
}

// [Tree.Insert]. The new slot, or the old one on refusal, is splayed to the
// root.
// Time: amortized O(log n); Space: O(1)
func (u *SplayTree[T, S]) Insert(v T) bool {
	var p S
	var left bool
	for i := u.root; i != 0; {
		p = i
		if u.less(v, u.vs[i-1]) {
			i = u.ifs[i].l
			left = true
		} else if u.less(u.vs[i-1], v) {
			i = u.ifs[i].r
			left = false
		} else {
			u.splay(i)
			return false
		}
	}
	j := u.alloc(v)
	u.ifs[j].p = p
	if p == 0 {
		u.root = j
	} else if left {
		u.ifs[p].l = j
	} else {
		u.ifs[p].r = j
	}
	if u.beg == 0 || u.less(v, u.vs[u.beg-1]) {
		u.beg = j
	}
	u.n++
	u.splay(j)
	return true
}

// [Tree.Remove]. The slot holding v is splayed to the root and its subtrees
// joined: the left maximum is splayed up and adopts the right subtree.
// Time: amortized O(log n); Space: O(1)
func (u *SplayTree[T, S]) Remove(v T) bool {
	z := u.locate(v)
	if z == 0 {
		return false
	}
	u.splay(z)
	if u.beg == z {
		u.beg = u.succ(z)
	}
	l, r := u.ifs[z].l, u.ifs[z].r
	if l != 0 {
		u.ifs[l].p = 0
	}
	if r != 0 {
		u.ifs[r].p = 0
	}
	if l == 0 {
		u.root = r
	} else {
		u.root = l
		m := u.maxOf(l)
		u.splay(m)
		u.ifs[m].r = r
		if r != 0 {
			u.ifs[r].p = m
		}
	}
	u.addFree(z)
	u.n--
	return true
}

// [Tree.Has], splaying v's slot on a hit.
func (u *SplayTree[T, S]) Has(v T) bool {
	i := u.locate(v)
	if i == 0 {
		return false
	}
	u.splay(i)
	return true
}

// [Tree.Find], splaying v's slot on a hit.
func (u *SplayTree[T, S]) Find(v T) Iterator[T] {
	i := u.locate(v)
	if i != 0 {
		u.splay(i)
	}
	return &treeIter[T, S]{&u.base, i, u.gens[i]}
}

// [Tree.LowerBound], splaying the bound's slot when one exists.
func (u *SplayTree[T, S]) LowerBound(v T) Iterator[T] {
	i := u.lowerBound(v)
	if i != 0 {
		u.splay(i)
	}
	return &treeIter[T, S]{&u.base, i, u.gens[i]}
}

// Clone returns an independent deep copy built by reinserting every element
// in ascending order.
// Time: amortized O(n); Space: O(n)
func (u *SplayTree[T, S]) Clone() *SplayTree[T, S] {
	c := NewSplayFunc[T, S](u.less, u.n)
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
func (u *SplayTree[T, S]) Move() *SplayTree[T, S] {
	return &SplayTree[T, S]{u.base.move()}
}

// Verify checks the shared search-tree properties; a SplayTree keeps no
// structural bookkeeping beyond them. Read-only.
// Time: O(n); Space: O(1)
func (u *SplayTree[T, S]) Verify() error {
	return u.verify()
}

// [Tree.Corrupt].
func (u *SplayTree[T, S]) Corrupt() bool {
	return u.Verify() != nil
}
