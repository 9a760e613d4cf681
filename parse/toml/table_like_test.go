package toml

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/smartystreets/goconvey/convey"
)

func itemKeys(t TableLike) []string {
	var keys []string
	for k := range t.IterItems() {
		keys = append(keys, k)
	}
	return keys
}

func TestTableLike(t *testing.T) {
	tables := map[string]func() TableLike{
		"inline":   func() TableLike { return NewInlineTable() },
		"standard": func() TableLike { return NewTable() },
	}

	for name, newTable := range tables {
		convey.Convey("common operations on a "+name+" table", t, func() {
			tbl := newTable()
			tbl.InsertItem("b", ValueItem(IntegerValue(2)))
			tbl.InsertItem("a", ValueItem(IntegerValue(1)))
			convey.So(tbl.Len(), convey.ShouldEqual, 2)
			convey.So(tbl.ContainsKey("a"), convey.ShouldBeTrue)

			item, ok := tbl.GetItem("a")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(item.IsValue(), convey.ShouldBeTrue)

			key, _, ok := tbl.GetKeyItem("b")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(key.Get(), convey.ShouldEqual, "b")

			tbl.SortValues()
			convey.So(cmp.Diff([]string{"a", "b"}, itemKeys(tbl)), convey.ShouldBeEmpty)

			got := tbl.ItemEntry("c").OrInsert(ValueItem(BoolValue(true)))
			convey.So(got.IsValue(), convey.ShouldBeTrue)
			convey.So(tbl.Len(), convey.ShouldEqual, 3)

			removed, ok := tbl.RemoveItem("a")
			convey.So(ok, convey.ShouldBeTrue)
			v, _ := removed.AsValue()
			i, _ := v.AsInteger()
			convey.So(i, convey.ShouldEqual, 1)

			d, ok := tbl.KeyDecor("b")
			convey.So(ok, convey.ShouldBeTrue)
			*d = NewDecor("", "")

			tbl.SetDotted(true)
			convey.So(tbl.IsDotted(), convey.ShouldBeTrue)

			convey.So(len(tbl.GetValues()), convey.ShouldEqual, 2)

			for k, it := range tbl.IterItemsMut() {
				k.Fmt()
				it.AsValue()
			}
			tbl.Fmt()

			tbl.Clear()
			convey.So(tbl.IsEmpty(), convey.ShouldBeTrue)
		})
	}

	convey.Convey("item-level access sees slots the value API hides", t, func() {
		tbl := NewInlineTable()
		tbl.Insert("a", IntegerValue(1))
		withTombstone(tbl, "ghost")
		var like TableLike = tbl

		convey.So(itemKeys(like), convey.ShouldResemble, []string{"a", "ghost"})
		convey.So(keysOf(tbl), convey.ShouldResemble, []string{"a"})

		item, ok := like.GetItem("ghost")
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(item.IsNone(), convey.ShouldBeTrue)
		_, ok = tbl.Get("ghost")
		convey.So(ok, convey.ShouldBeFalse)
		convey.So(like.ContainsKey("ghost"), convey.ShouldBeFalse)
	})

	convey.Convey("inline tables refuse non-value items", t, func() {
		var like TableLike = NewInlineTable()
		convey.So(func() { like.InsertItem("t", TableItem(NewTable())) }, convey.ShouldPanic)
		convey.So(func() { like.InsertItem("n", Item{}) }, convey.ShouldPanic)
	})

	convey.Convey("item entry on an inline table coerces a hidden slot", t, func() {
		tbl := NewInlineTable()
		withTombstone(tbl, "k")
		var like TableLike = tbl
		occ, ok := like.ItemEntry("k").(*OccupiedEntry)
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(occ.Get().IsValue(), convey.ShouldBeTrue)
		convey.So(tbl.ContainsKey("k"), convey.ShouldBeTrue)
	})

	convey.Convey("item entry format keeps the key formatting", t, func() {
		tbl := NewTable()
		k := NewKey("k")
		*k.LeafDecor() = NewDecor("", "")
		var like TableLike = tbl
		like.ItemEntryFormat(&k).OrInsert(ValueItem(IntegerValue(1)))
		convey.So(tbl.String(), convey.ShouldEqual, "k= 1\n")
	})
}

func TestStandardTable(t *testing.T) {
	convey.Convey("into inline table converts nested tables", t, func() {
		inner := NewTable()
		inner.Insert("x", ValueItem(IntegerValue(1)))
		outer := NewTable()
		outer.Insert("a", ValueItem(StringValue("s")))
		outer.Insert("inner", TableItem(inner))

		it := outer.IntoInlineTable()
		convey.So(outer.IsEmpty(), convey.ShouldBeTrue)
		convey.So(it.String(), convey.ShouldEqual, `{ a = "s", inner = { x = 1 } }`)
	})

	convey.Convey("standard tables render sections for child tables", t, func() {
		child := NewTable()
		child.Insert("x", ValueItem(IntegerValue(1)))
		root := NewTable()
		root.Insert("name", ValueItem(StringValue("aq")))
		root.Insert("child", TableItem(child))
		convey.So(root.String(), convey.ShouldEqual, "name = \"aq\"\n\n[child]\nx = 1\n")
	})

	convey.Convey("implicit tables without values have no header", t, func() {
		leaf := NewTable()
		leaf.Insert("v", ValueItem(BoolValue(true)))
		mid := NewTable()
		mid.SetImplicit(true)
		mid.Insert("leaf", TableItem(leaf))
		root := NewTable()
		root.Insert("mid", TableItem(mid))
		convey.So(root.String(), convey.ShouldEqual, "[mid.leaf]\nv = true\n")
	})

	convey.Convey("occupied and vacant entries", t, func() {
		tbl := NewTable()
		vac, ok := tbl.Entry("a").(*VacantEntry)
		convey.So(ok, convey.ShouldBeTrue)
		vac.Insert(ValueItem(IntegerValue(1)))

		occ, ok := tbl.Entry("a").(*OccupiedEntry)
		convey.So(ok, convey.ShouldBeTrue)
		old := occ.Insert(ValueItem(IntegerValue(2)))
		convey.So(old.IsValue(), convey.ShouldBeTrue)
		occ.Remove()
		convey.So(tbl.IsEmpty(), convey.ShouldBeTrue)
	})
}
