package clone_test

import (
	"testing"

	"github.com/hasbyte1/go-value-utils/clone"
	"github.com/hasbyte1/go-value-utils/object"
)

func wideGraph(n int) *object.Object {
	root := object.NewPlainObject()
	list := object.NewArray(0)
	for i := range n {
		item := object.NewPlainObject()
		_ = item.Set(object.Key("id"), float64(i))
		_ = item.Set(object.Key("root"), root)
		_ = list.Set(object.IndexKey(i), item)
	}
	_ = root.Set(object.Key("items"), list)
	return root
}

func BenchmarkClone(b *testing.B) {
	src := wideGraph(1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := clone.Clone(src); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkNative(b *testing.B) {
	type row struct {
		ID   int
		Tags []string
	}
	src := make([]*row, 1000)
	for i := range src {
		src[i] = &row{ID: i, Tags: []string{"x", "y"}}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := clone.Native(src); err != nil {
			b.Fatal(err)
		}
	}
}
