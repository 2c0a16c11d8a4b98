package Trees

import (
	"testing"
)

var (
	bAddN uint32 = 1000000
)

var sideEff bool

func makers() []struct {
	name string
	mk   func(hint uint32) Tree[int]
} {
	return []struct {
		name string
		mk   func(hint uint32) Tree[int]
	}{
		{"rb", func(h uint32) Tree[int] { return NewRB[int, uint32](h) }},
		{"avl", func(h uint32) Tree[int] { return NewAVL[int, uint32](h) }},
		{"treap", func(h uint32) Tree[int] { return NewTreap[int, uint32](h) }},
		{"splay", func(h uint32) Tree[int] { return NewSplay[int, uint32](h) }},
		{"skl", func(h uint32) Tree[int] { return NewSkipList[int, uint32](h) }},
		{"ref", func(uint32) Tree[int] { return NewRef[int]() }},
	}
}

func benchSeries(n int) []struct {
	name string
	vals []int
} {
	ps := patterns(n)
	sparse := make([]int, n)
	dense := make([]int, n)
	for i := range sparse {
		sparse[i] = rg.Int()
		dense[i] = rg.Intn(n / 8)
	}
	return []struct {
		name string
		vals []int
	}{
		{"increasing", ps["increasing"]},
		{"decreasing", ps["decreasing"]},
		{"converging", ps["converging"]},
		{"diverging", ps["diverging"]},
		{"randomSparse", sparse},
		{"randomDense", dense},
	}
}

func BenchmarkInsert(b *testing.B) {
	for _, sr := range benchSeries(int(bAddN)) {
		for _, mkr := range makers() {
			b.Run(mkr.name+"/"+sr.name, func(b *testing.B) {
				for range b.N {
					tree := mkr.mk(0)
					for _, v := range sr.vals {
						tree.Insert(v)
					}
				}
			})
		}
	}
}

func BenchmarkInsertHinted(b *testing.B) {
	vals := benchSeries(int(bAddN))[5].vals
	for _, mkr := range makers() {
		b.Run(mkr.name, func(b *testing.B) {
			for range b.N {
				tree := mkr.mk(bAddN)
				for _, v := range vals {
					tree.Insert(v)
				}
			}
		})
	}
}

func BenchmarkRemove(b *testing.B) {
	for _, sr := range benchSeries(int(bAddN)) {
		for _, mkr := range makers() {
			b.Run(mkr.name+"/"+sr.name, func(b *testing.B) {
				for range b.N {
					b.StopTimer()
					tree := mkr.mk(bAddN)
					for _, v := range sr.vals {
						tree.Insert(v)
					}
					b.StartTimer()
					for _, v := range sr.vals {
						tree.Remove(v)
					}
				}
			})
		}
	}
}

func BenchmarkHas(b *testing.B) {
	vals := make([]int, bAddN)
	for i := range vals {
		vals[i] = rg.Int()
	}
	for _, mkr := range makers() {
		b.Run(mkr.name, func(b *testing.B) {
			tree := mkr.mk(bAddN)
			for _, v := range vals {
				tree.Insert(v)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if i&1 == 0 {
					sideEff = tree.Has(vals[(i>>1)%len(vals)])
				} else {
					sideEff = tree.Has(rg.Int())
				}
			}
		})
	}
}

func BenchmarkInOrder(b *testing.B) {
	for _, mkr := range makers() {
		b.Run(mkr.name, func(b *testing.B) {
			tree := mkr.mk(bAddN)
			for range bAddN {
				tree.Insert(rg.Int())
			}
			b.ResetTimer()
			for range b.N {
				for f := tree.InOrder(); ; {
					if _, ok := f(); !ok {
						break
					}
				}
			}
		})
	}
}
