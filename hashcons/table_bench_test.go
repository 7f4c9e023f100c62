package hashcons_test

import (
	"fmt"
	"testing"

	"github.com/karan9123/hash-cons/hashcons"
)

// naiveExpr is the uncompressed counterpart of boolExpr: children are
// plain pointers, so equal subtrees are rebuilt and compared deeply.
type naiveExpr struct {
	op       string
	val      bool
	lhs, rhs *naiveExpr
}

func naiveTree(depth int) *naiveExpr {
	if depth == 0 {
		return &naiveExpr{op: "const", val: true}
	}
	return &naiveExpr{
		op:  "and",
		lhs: naiveTree(depth - 1),
		rhs: &naiveExpr{op: "or", lhs: naiveTree(depth - 1), rhs: naiveTree(depth - 1)},
	}
}

func naiveEqual(a, b *naiveExpr) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.op == b.op && a.val == b.val &&
		naiveEqual(a.lhs, b.lhs) && naiveEqual(a.rhs, b.rhs)
}

func consedTree(table *hashcons.Table[boolExpr], depth int) hashcons.Hc[boolExpr] {
	if depth == 0 {
		return table.Hashcons(constOf(true))
	}
	sub := consedTree(table, depth-1)
	return table.Hashcons(andOf(
		sub.Clone(),
		table.Hashcons(orOf(sub.Clone(), sub)),
	))
}

func BenchmarkNaiveTreeEquality(b *testing.B) {
	const depth = 10
	t1 := naiveTree(depth)
	t2 := naiveTree(depth)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !naiveEqual(t1, t2) {
			b.Fatal("trees should be equal")
		}
	}
}

func BenchmarkConsedTreeEquality(b *testing.B) {
	const depth = 10
	table := newBoolExprTable(hashcons.Config{})
	t1 := consedTree(table, depth)
	t2 := consedTree(table, depth)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if t1 != t2 {
			b.Fatal("trees should share one entry")
		}
	}
}

func BenchmarkHashconsRepeated(b *testing.B) {
	table := hashcons.New[string](hashcons.Strings{}, hashcons.Config{})
	keep := table.Hashcons("repeated")
	defer keep.Release()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		table.Hashcons("repeated").Release()
	}
}

func BenchmarkHashconsDistinct(b *testing.B) {
	table := hashcons.New[string](hashcons.Strings{}, hashcons.Config{})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		table.Hashcons(fmt.Sprintf("distinct-%d", i)).Release()
	}
}

func BenchmarkSharedHashconsRepeated(b *testing.B) {
	table := hashcons.New[string](hashcons.Strings{},
		hashcons.NewConfig(hashcons.Shared, hashcons.Eager))
	keep := table.Hashcons("repeated")
	defer keep.Release()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			table.Hashcons("repeated").Release()
		}
	})
}
