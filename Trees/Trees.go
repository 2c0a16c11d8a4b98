package Trees

import (
	"cmp"
	"errors"
)

var (
	// ErrOutOfRange reports iterator navigation past either boundary:
	// advancing or dereferencing the end position, or retreating from the
	// first element. The iterator is left where it was.
	ErrOutOfRange = errors.New("iterator out of range")
	// ErrInvalidated reports use of an iterator whose element has since been
	// removed, or whose tree has been cleared or moved away.
	ErrInvalidated = errors.New("iterator invalidated")
	// ErrCorrupt is wrapped by the Verify methods when a structural property
	// of the specific implementation no longer holds.
	ErrCorrupt = errors.New("corrupt structure")
)

// LessFunc determines how to order values of type T. It must define a strict
// weak ordering; two values a, b are treated as equal when neither
// less(a, b) nor less(b, a) holds.
type LessFunc[T any] func(a, b T) bool

// Less returns the natural order of T as a LessFunc.
func Less[T cmp.Ordered]() LessFunc[T] {
	return func(a, b T) bool { return a < b }
}

// Tree represents an ordered set of unique values. All implementations here
// keep their elements sorted by a LessFunc and stay balanced across any
// sequence of Insert and Remove, so lookups and mutations cost O(log n),
// worst-case or expected depending on the implementation.
// If an implementation didn't specify anything special, then the implemented
// receivers follow the behaviors defined here. Methods implemented recursively
// are noted, otherwise functions are implemented iteratively.
type Tree[T any] interface {
	//Insert v into the Tree. Returns false and does nothing when an equal
	//value is already present.
	Insert(v T) bool
	//Remove v from the Tree. Returns false and does nothing when no equal
	//value is present.
	Remove(v T) bool
	//Has reports whether an element equal to v exists.
	Has(v T) bool
	//Size of the tree. O(1).
	Size() uint
	//Empty reports Size()==0. O(1).
	Empty() bool
	//Clear removes all elements. Iterators into the tree are invalidated.
	Clear()
	//Find returns an iterator at the element equal to v, or the end
	//iterator when v is absent. Lookups don't restructure the tree, except
	//for self-adjusting implementations that document doing so.
	Find(v T) Iterator[T]
	//LowerBound returns an iterator at the first element not less than v,
	//or the end iterator when every element is less than v.
	LowerBound(v T) Iterator[T]
	//Begin returns an iterator at the minimum, equal in position to End()
	//when the tree is empty.
	Begin() Iterator[T]
	//End returns the iterator one past the maximum. It stays valid across
	//mutations and its Prev lands on the current maximum.
	End() Iterator[T]
	//Minimum element of the tree.
	Minimum() (T, bool)
	//Maximum element of the tree.
	Maximum() (T, bool)
	//Predecessor returns the greatest element less than v.
	Predecessor(v T) (T, bool)
	//Successor returns the smallest element greater than v.
	Successor(v T) (T, bool)
	//InOrder returns A closure function f acting like an iterator. f
	//gives elements in ascending order.
	//Calling f is like calling "Next()" of iterators: val, valid=f()
	//val is meaningful only if valid is true. When valid==false,
	//then f is exhausted. valid can't turn true after it first became false.
	//The tree must not be modified during the iteration of f.
	InOrder() func() (T, bool)
	//Corrupt returns whether the tree has corrupt structures, when the value
	//at some node violates the properties of that specific implementation.
	//The concrete types expose Verify for a detailed report.
	Corrupt() bool
}

// Iterator is a position in a Tree: either at an element, or at the
// one-past-maximum end position. Iterators are cheap dependent views; they
// never own the tree. A live iterator stays usable across mutations that
// don't remove the element it sits on; using one whose element was removed
// fails with ErrInvalidated rather than reading reused memory.
//
// The end position compares unequal to every element position. Two
// iterators of the same tree are at the same position exactly when both are
// at end (!Valid()) or both Get the same value.
type Iterator[T any] interface {
	//Valid reports whether the iterator is at an element. It is false at
	//the end position and after the element was removed.
	Valid() bool
	//Get the value at the current position. Fails with ErrOutOfRange at
	//the end position and ErrInvalidated on removed elements.
	Get() (T, error)
	//Next moves to the in-order successor. At the last element it moves to
	//the end position; at the end position it fails with ErrOutOfRange.
	Next() error
	//Prev moves to the in-order predecessor. At the end position it moves
	//to the maximum; at the minimum it fails with ErrOutOfRange and stays.
	Prev() error
	//Clone returns an independent iterator at the same position.
	Clone() Iterator[T]
}

var (
	_ Tree[int] = (*RBTree[int, uint32])(nil)
	_ Tree[int] = (*AVLTree[int, uint32])(nil)
	_ Tree[int] = (*Treap[int, uint32])(nil)
	_ Tree[int] = (*SplayTree[int, uint32])(nil)
	_ Tree[int] = (*SkipList[int, uint32])(nil)
	_ Tree[int] = (*RefTree[int])(nil)
)
