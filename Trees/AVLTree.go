package Trees

import (
	"cmp"
	"fmt"

	"golang.org/x/exp/constraints"
)

// AVLTree is a height-balanced binary search tree: every slot stores the
// height difference between its right and left subtrees, kept in {-1,0,+1}
// by single and double rotations, so the height D never exceeds
// 1.44*log2(n+2). Insert and Remove propagate a "height changed" flag up the
// recursion and stop rebalancing as soon as the subtree height is restored;
// removals may rebalance every level up to the root.
// T is the type of values it will hold, S is the type used for slot indexes;
// S must not overflow the number of elements the tree will hold.
type AVLTree[T any, S constraints.Unsigned] struct {
	base[T, S]
	bls []int8
}

// NewAVL makes an empty AVLTree ordering values of T naturally, with enough
// room for hint elements before regrowing.
func NewAVL[T cmp.Ordered, S constraints.Unsigned](hint S) *AVLTree[T, S] {
	return NewAVLFunc[T, S](Less[T](), hint)
}

// NewAVLFunc makes an empty AVLTree ordered by less.
func NewAVLFunc[T any, S constraints.Unsigned](less LessFunc[T], hint S) *AVLTree[T, S] {
	return &AVLTree[T, S]{makeBase[T, S](less, hint), make([]int8, 1, hint+1)}
}

func (u *AVLTree[T, S]) node(v T) S {
	i := u.alloc(v)
	if int(i) == len(u.bls) {
		u.bls = append(u.bls, 0)
	} else {
		u.bls[i] = 0
	}
	return i
}

// [Tree.Insert]. Recursive. Time: O(D); Space: O(D)
func (u *AVLTree[T, S]) Insert(v T) bool {
	r, added, _ := u.insert(u.root, v)
	u.root = r
	u.ifs[r].p = 0
	if added {
		u.n++
		u.beg = u.minOf(u.root)
	}
	return added
}

// insert v under subtree i. Returns the new subtree root, whether a node was
// added, and whether the subtree grew taller.
func (u *AVLTree[T, S]) insert(i S, v T) (S, bool, bool) {
	if i == 0 {
		j := u.node(v)
		return j, true, true
	}
	var added, h bool
	if u.less(v, u.vs[i-1]) {
		var l S
		l, added, h = u.insert(u.ifs[i].l, v)
		u.ifs[i].l = l
		u.ifs[l].p = i
		if h {
			// left branch has grown
			switch u.bls[i] {
			case 1:
				u.bls[i] = 0
				h = false
			case 0:
				u.bls[i] = -1
			default:
				p1 := u.ifs[i].l
				if u.bls[p1] == -1 {
					// single LL rotation
					u.ifs[i].l = u.ifs[p1].r
					u.ifs[p1].r = i
					u.bls[i] = 0
					u.ifs[p1].p = u.ifs[i].p
					u.ifs[i].p = p1
					if l := u.ifs[i].l; l != 0 {
						u.ifs[l].p = i
					}
					i = p1
				} else {
					// double LR rotation
					p2 := u.ifs[p1].r
					u.ifs[p1].r = u.ifs[p2].l
					u.ifs[p2].l = p1
					u.ifs[i].l = u.ifs[p2].r
					u.ifs[p2].r = i
					u.bls[i], u.bls[p1] = 0, 0
					if u.bls[p2] == -1 {
						u.bls[i] = 1
					} else if u.bls[p2] == 1 {
						u.bls[p1] = -1
					}
					if l := u.ifs[i].l; l != 0 {
						u.ifs[l].p = i
					}
					if r := u.ifs[p1].r; r != 0 {
						u.ifs[r].p = p1
					}
					u.ifs[p2].p = u.ifs[i].p
					u.ifs[i].p = p2
					u.ifs[p1].p = p2
					i = p2
				}
				u.bls[i] = 0
				h = false
			}
		}
	} else if u.less(u.vs[i-1], v) {
		var r S
		r, added, h = u.insert(u.ifs[i].r, v)
		u.ifs[i].r = r
		u.ifs[r].p = i
		if h {
			// right branch has grown
			switch u.bls[i] {
			case -1:
				u.bls[i] = 0
				h = false
			case 0:
				u.bls[i] = 1
			default:
				p1 := u.ifs[i].r
				if u.bls[p1] == 1 {
					// single RR rotation
					u.ifs[i].r = u.ifs[p1].l
					u.ifs[p1].l = i
					u.bls[i] = 0
					u.ifs[p1].p = u.ifs[i].p
					u.ifs[i].p = p1
					if r := u.ifs[i].r; r != 0 {
						u.ifs[r].p = i
					}
					i = p1
				} else {
					// double RL rotation
					p2 := u.ifs[p1].l
					u.ifs[p1].l = u.ifs[p2].r
					u.ifs[p2].r = p1
					u.ifs[i].r = u.ifs[p2].l
					u.ifs[p2].l = i
					u.bls[i], u.bls[p1] = 0, 0
					if u.bls[p2] == 1 {
						u.bls[i] = -1
					} else if u.bls[p2] == -1 {
						u.bls[p1] = 1
					}
					if r := u.ifs[i].r; r != 0 {
						u.ifs[r].p = i
					}
					if l := u.ifs[p1].l; l != 0 {
						u.ifs[l].p = p1
					}
					u.ifs[p2].p = u.ifs[i].p
					u.ifs[i].p = p2
					u.ifs[p1].p = p2
					i = p2
				}
				u.bls[i] = 0
				h = false
			}
		}
	}
	return i, added, h
}

// balanceLeft rebalances *pp after its left branch has shrunk. Returns
// whether the subtree height shrank too.
func (u *AVLTree[T, S]) balanceLeft(pp *S) bool {
	h := true
	p := *pp
	switch u.bls[p] {
	case -1:
		u.bls[p] = 0
	case 0:
		u.bls[p] = 1
		h = false
	default:
		p1 := u.ifs[p].r
		if u.bls[p1] >= 0 {
			// single RR rotation
			u.ifs[p].r = u.ifs[p1].l
			u.ifs[p1].l = p
			if u.bls[p1] == 0 {
				u.bls[p], u.bls[p1] = 1, -1
				h = false
			} else {
				u.bls[p], u.bls[p1] = 0, 0
			}
			u.ifs[p1].p = u.ifs[p].p
			u.ifs[p].p = p1
			if r := u.ifs[p].r; r != 0 {
				u.ifs[r].p = p
			}
			*pp = p1
		} else {
			// double RL rotation
			p2 := u.ifs[p1].l
			u.ifs[p1].l = u.ifs[p2].r
			u.ifs[p2].r = p1
			u.ifs[p].r = u.ifs[p2].l
			u.ifs[p2].l = p
			u.bls[p], u.bls[p1] = 0, 0
			if u.bls[p2] == 1 {
				u.bls[p] = -1
			} else if u.bls[p2] == -1 {
				u.bls[p1] = 1
			}
			u.bls[p2] = 0
			u.ifs[p2].p = u.ifs[p].p
			if r := u.ifs[p].r; r != 0 {
				u.ifs[r].p = p
			}
			if l := u.ifs[p1].l; l != 0 {
				u.ifs[l].p = p1
			}
			u.ifs[p].p = p2
			u.ifs[p1].p = p2
			*pp = p2
		}
	}
	return h
}

// balanceRight rebalances *pp after its right branch has shrunk.
func (u *AVLTree[T, S]) balanceRight(pp *S) bool {
	h := true
	p := *pp
	switch u.bls[p] {
	case 1:
		u.bls[p] = 0
	case 0:
		u.bls[p] = -1
		h = false
	default:
		p1 := u.ifs[p].l
		if u.bls[p1] <= 0 {
			// single LL rotation
			u.ifs[p].l = u.ifs[p1].r
			u.ifs[p1].r = p
			if u.bls[p1] == 0 {
				u.bls[p], u.bls[p1] = -1, 1
				h = false
			} else {
				u.bls[p], u.bls[p1] = 0, 0
			}
			u.ifs[p1].p = u.ifs[p].p
			u.ifs[p].p = p1
			if l := u.ifs[p].l; l != 0 {
				u.ifs[l].p = p
			}
			*pp = p1
		} else {
			// double LR rotation
			p2 := u.ifs[p1].r
			u.ifs[p1].r = u.ifs[p2].l
			u.ifs[p2].l = p1
			u.ifs[p].l = u.ifs[p2].r
			u.ifs[p2].r = p
			u.bls[p], u.bls[p1] = 0, 0
			if u.bls[p2] == -1 {
				u.bls[p] = 1
			} else if u.bls[p2] == 1 {
				u.bls[p1] = -1
			}
			u.bls[p2] = 0
			u.ifs[p2].p = u.ifs[p].p
			if l := u.ifs[p].l; l != 0 {
				u.ifs[l].p = p
			}
			if r := u.ifs[p1].r; r != 0 {
				u.ifs[r].p = p1
			}
			u.ifs[p].p = p2
			u.ifs[p1].p = p2
			*pp = p2
		}
	}
	return h
}

// del splices the leftmost node under *rr into q's position, freeing no
// slots itself. Mirrors the insert bookkeeping on the way back up.
func (u *AVLTree[T, S]) del(qq *S, rr *S, q S) bool {
	if u.ifs[*rr].l != 0 {
		h := u.del(qq, &u.ifs[*rr].l, q)
		if l := u.ifs[*rr].l; l != 0 {
			u.ifs[l].p = *rr
		}
		if h {
			h = u.balanceLeft(rr)
		}
		return h
	}
	r := *rr
	rc := u.ifs[r].r
	if rc != 0 {
		u.ifs[rc].p = u.ifs[r].p
	}
	if r != u.ifs[q].r {
		u.ifs[r].r = u.ifs[q].r
	}
	u.ifs[r].l = u.ifs[q].l
	u.ifs[r].p = u.ifs[q].p
	u.bls[r] = u.bls[q]
	if l := u.ifs[r].l; l != 0 {
		u.ifs[l].p = r
	}
	if rt := u.ifs[r].r; rt != 0 {
		u.ifs[rt].p = r
	}
	*qq = r
	// rr stays the live link cell for the chain above, through q's own right
	// field when the chain is one long; remove copies it back afterwards.
	*rr = rc
	return true
}

// [Tree.Remove]. Recursive. Time: O(D); Space: O(D)
func (u *AVLTree[T, S]) Remove(v T) bool {
	removed, _ := u.remove(&u.root, v)
	if removed {
		if r := u.root; r != 0 {
			u.ifs[r].p = 0
		}
		u.n--
		u.beg = u.minOf(u.root)
	}
	return removed
}

// remove v from the subtree whose root link is *pp. A two-child victim is
// replaced by its in-order successor, relinked rather than copied so that
// iterators at the successor stay valid.
func (u *AVLTree[T, S]) remove(pp *S, v T) (bool, bool) {
	i := *pp
	if i == 0 {
		return false, false
	}
	var removed, h bool
	if u.less(v, u.vs[i-1]) {
		removed, h = u.remove(&u.ifs[i].l, v)
		if l := u.ifs[i].l; l != 0 {
			u.ifs[l].p = i
		}
		if h {
			h = u.balanceLeft(pp)
		}
	} else if u.less(u.vs[i-1], v) {
		removed, h = u.remove(&u.ifs[i].r, v)
		if r := u.ifs[i].r; r != 0 {
			u.ifs[r].p = i
		}
		if h {
			h = u.balanceRight(pp)
		}
	} else {
		q := i
		if u.ifs[q].r == 0 {
			if l := u.ifs[q].l; l != 0 {
				u.ifs[l].p = u.ifs[q].p
			}
			*pp = u.ifs[q].l
			h = true
		} else if u.ifs[q].l == 0 {
			u.ifs[u.ifs[q].r].p = u.ifs[q].p
			*pp = u.ifs[q].r
			h = true
		} else {
			h = u.del(pp, &u.ifs[q].r, q)
			// the chain's top link cell was q's right field
			u.ifs[*pp].r = u.ifs[q].r
			if h {
				h = u.balanceRight(pp)
			}
		}
		u.addFree(q)
		removed = true
	}
	return removed, h
}

// Clone returns an independent deep copy built by reinserting every element
// in ascending order.
// Time: O(n*log n); Space: O(n)
func (u *AVLTree[T, S]) Clone() *AVLTree[T, S] {
	c := NewAVLFunc[T, S](u.less, u.n)
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
func (u *AVLTree[T, S]) Move() *AVLTree[T, S] {
	m := &AVLTree[T, S]{u.base.move(), u.bls}
	u.bls = make([]int8, 1)
	return m
}

// Verify checks the shared search-tree properties and then recomputes every
// subtree height, failing when heights differ by more than one or a stored
// balance factor disagrees with the actual difference. Read-only. Recursive.
// Time: O(n); Space: O(D)
func (u *AVLTree[T, S]) Verify() error {
	if err := u.verify(); err != nil {
		return err
	}
	_, err := u.height(u.root)
	return err
}

func (u *AVLTree[T, S]) height(i S) (int, error) {
	if i == 0 {
		return 0, nil
	}
	lh, err := u.height(u.ifs[i].l)
	if err != nil {
		return 0, err
	}
	rh, err := u.height(u.ifs[i].r)
	if err != nil {
		return 0, err
	}
	d := rh - lh
	if d < -1 || d > 1 {
		return 0, fmt.Errorf("%w: balance %d at %d", ErrCorrupt, d, i)
	}
	if int(u.bls[i]) != d {
		return 0, fmt.Errorf("%w: stored balance %d at %d, actual %d", ErrCorrupt, u.bls[i], i, d)
	}
	return max(lh, rh) + 1, nil
}

// [Tree.Corrupt].
func (u *AVLTree[T, S]) Corrupt() bool {
	return u.Verify() != nil
}
