package Trees

import (
	"cmp"
	"fmt"

	"golang.org/x/exp/constraints"
)

type color bool

const (
	red, black color = true, false
)

// RBTree is a red-black tree: a binary search tree where every slot carries
// one color bit and the coloring rules (red slots have black children, every
// root-to-nil path crosses the same number of black slots, the root is black)
// bound the height D to 2*log2(n+1). Insert and Remove repair the coloring
// with at most three rotations, so all operations are worst-case O(log n).
// The nil slot 0 counts as black, which lets the repair loops read an absent
// child's or uncle's color without branching on absence.
// T is the type of values it will hold, S is the type used for slot indexes;
// S must not overflow the number of elements the tree will hold.
type RBTree[T any, S constraints.Unsigned] struct {
	base[T, S]
	cls []color
}

// NewRB makes an empty RBTree ordering values of T naturally, with enough
// room for hint elements before regrowing.
func NewRB[T cmp.Ordered, S constraints.Unsigned](hint S) *RBTree[T, S] {
	return NewRBFunc[T, S](Less[T](), hint)
}

// NewRBFunc makes an empty RBTree ordered by less.
func NewRBFunc[T any, S constraints.Unsigned](less LessFunc[T], hint S) *RBTree[T, S] {
	return &RBTree[T, S]{makeBase[T, S](less, hint), make([]color, 1, hint+1)}
}

func (u *RBTree[T, S]) paint(i S, c color) {
	if int(i) == len(u.cls) {
		u.cls = append(u.cls, c)
	} else {
		u.cls[i] = c
	}
}

// Insert v as a red leaf by ordinary descent, then repair upward: a red
// uncle means recolor and retry from the grandparent, a black uncle means
// one or two rotations and the loop ends.
// [Tree.Insert]. Time: O(D); Space: O(1)
func (u *RBTree[T, S]) Insert(v T) bool {
	var p S
	left := false
	for i := u.root; i != 0; {
		p = i
		if u.less(v, u.vs[i-1]) {
			i, left = u.ifs[i].l, true
		} else if u.less(u.vs[i-1], v) {
			i, left = u.ifs[i].r, false
		} else {
			return false
		}
	}
	i := u.alloc(v)
	u.paint(i, red)
	u.ifs[i].p = p
	if p == 0 {
		u.root = i
	} else if left {
		u.ifs[p].l = i
	} else {
		u.ifs[p].r = i
	}
	if u.beg == 0 || u.less(v, u.vs[u.beg-1]) {
		u.beg = i
	}
	u.n++
	u.fixInsert(i)
	return true
}

func (u *RBTree[T, S]) fixInsert(x S) {
	for u.cls[u.ifs[x].p] == red {
		p := u.ifs[x].p
		g := u.ifs[p].p
		if p == u.ifs[g].l {
			if y := u.ifs[g].r; u.cls[y] == red {
				u.cls[p], u.cls[y], u.cls[g] = black, black, red
				x = g
			} else {
				if x == u.ifs[p].r {
					x = p
					u.rotateLeft(x)
					p = u.ifs[x].p
				}
				u.cls[p], u.cls[g] = black, red
				u.rotateRight(g)
			}
		} else {
			if y := u.ifs[g].l; u.cls[y] == red {
				u.cls[p], u.cls[y], u.cls[g] = black, black, red
				x = g
			} else {
				if x == u.ifs[p].l {
					x = p
					u.rotateRight(x)
					p = u.ifs[x].p
				}
				u.cls[p], u.cls[g] = black, red
				u.rotateLeft(g)
			}
		}
	}
	u.cls[u.root] = black
}

// transplant the subtree at b into a's place. b may be the nil slot, whose
// p field is written like any other's and scrubbed when Remove finishes.
func (u *RBTree[T, S]) transplant(a, b S) {
	if p := u.ifs[a].p; p == 0 {
		u.root = b
	} else if u.ifs[p].l == a {
		u.ifs[p].l = b
	} else {
		u.ifs[p].r = b
	}
	u.ifs[b].p = u.ifs[a].p
}

// Remove the element equal to v. A two-child victim is spliced with its
// in-order successor first; when the physically detached slot was black the
// repair loop restores the lost black height by recoloring or up to three
// rotations per level.
// [Tree.Remove]. Time: O(D); Space: O(1)
func (u *RBTree[T, S]) Remove(v T) bool {
	z := u.locate(v)
	if z == 0 {
		return false
	}
	if z == u.beg {
		u.beg = u.succ(z)
	}
	y := z
	yc := u.cls[y]
	var x S
	if u.ifs[z].l == 0 {
		x = u.ifs[z].r
		u.transplant(z, x)
	} else if u.ifs[z].r == 0 {
		x = u.ifs[z].l
		u.transplant(z, x)
	} else {
		y = u.minOf(u.ifs[z].r)
		yc = u.cls[y]
		x = u.ifs[y].r
		if u.ifs[y].p == z {
			u.ifs[x].p = y
		} else {
			u.transplant(y, x)
			u.ifs[y].r = u.ifs[z].r
			u.ifs[u.ifs[y].r].p = y
		}
		u.transplant(z, y)
		u.ifs[y].l = u.ifs[z].l
		u.ifs[u.ifs[y].l].p = y
		u.cls[y] = u.cls[z]
	}
	u.addFree(z)
	u.n--
	if yc == black {
		u.fixDelete(x)
	}
	u.ifs[0] = info[S]{}
	return true
}

func (u *RBTree[T, S]) fixDelete(x S) {
	for x != u.root && u.cls[x] == black {
		p := u.ifs[x].p
		if x == u.ifs[p].l {
			w := u.ifs[p].r
			if u.cls[w] == red {
				u.cls[w], u.cls[p] = black, red
				u.rotateLeft(p)
				w = u.ifs[p].r
			}
			if u.cls[u.ifs[w].l] == black && u.cls[u.ifs[w].r] == black {
				u.cls[w] = red
				x = p
			} else {
				if u.cls[u.ifs[w].r] == black {
					u.cls[u.ifs[w].l], u.cls[w] = black, red
					u.rotateRight(w)
					w = u.ifs[p].r
				}
				u.cls[w], u.cls[p] = u.cls[p], black
				u.cls[u.ifs[w].r] = black
				u.rotateLeft(p)
				x = u.root
			}
		} else {
			w := u.ifs[p].l
			if u.cls[w] == red {
				u.cls[w], u.cls[p] = black, red
				u.rotateRight(p)
				w = u.ifs[p].l
			}
			if u.cls[u.ifs[w].l] == black && u.cls[u.ifs[w].r] == black {
				u.cls[w] = red
				x = p
			} else {
				if u.cls[u.ifs[w].l] == black {
					u.cls[u.ifs[w].r], u.cls[w] = black, red
					u.rotateLeft(w)
					w = u.ifs[p].l
				}
				u.cls[w], u.cls[p] = u.cls[p], black
				u.cls[u.ifs[w].l] = black
				u.rotateRight(p)
				x = u.root
			}
		}
	}
	u.cls[x] = black
}

// Clone returns an independent deep copy built by reinserting every element
// in ascending order. No slots are shared with the receiver.
// Time: O(n*log n); Space: O(n)
func (u *RBTree[T, S]) Clone() *RBTree[T, S] {
	c := NewRBFunc[T, S](u.less, u.n)
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
func (u *RBTree[T, S]) Move() *RBTree[T, S] {
	m := &RBTree[T, S]{u.base.move(), u.cls}
	u.cls = make([]color, 1)
	return m
}

// Verify checks the shared search-tree properties and then the coloring: a
// black root, no red slot with a red child, and an equal count of black
// slots on every root-to-nil path. A nil error means the structure is
// sound; anything else wraps ErrCorrupt. Read-only. Recursive.
// Time: O(n); Space: O(D)
func (u *RBTree[T, S]) Verify() error {
	if err := u.verify(); err != nil {
		return err
	}
	if u.cls[u.root] == red {
		return fmt.Errorf("%w: red root %d", ErrCorrupt, u.root)
	}
	_, err := u.blackHeight(u.root)
	return err
}

func (u *RBTree[T, S]) blackHeight(i S) (int, error) {
	if i == 0 {
		return 1, nil
	}
	if u.cls[i] == red && (u.cls[u.ifs[i].l] == red || u.cls[u.ifs[i].r] == red) {
		return 0, fmt.Errorf("%w: red %d has a red child", ErrCorrupt, i)
	}
	lh, err := u.blackHeight(u.ifs[i].l)
	if err != nil {
		return 0, err
	}
	rh, err := u.blackHeight(u.ifs[i].r)
	if err != nil {
		return 0, err
	}
	if lh != rh {
		return 0, fmt.Errorf("%w: black heights %d and %d under %d", ErrCorrupt, lh, rh, i)
	}
	if u.cls[i] == black {
		lh++
	}
	return lh, nil
}

// [Tree.Corrupt].
func (u *RBTree[T, S]) Corrupt() bool {
	return u.Verify() != nil
}
