package toml

import (
	"slices"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestValueKinds(t *testing.T) {
	convey.Convey("type names", t, func() {
		convey.So(IntegerValue(5).TypeName(), convey.ShouldEqual, "integer")
		convey.So(StringValue("s").TypeName(), convey.ShouldEqual, "string")
		convey.So(FloatValue(1).TypeName(), convey.ShouldEqual, "float")
		convey.So(BoolValue(true).TypeName(), convey.ShouldEqual, "boolean")
		convey.So(DateValue(Date{Year: 2024, Month: 1, Day: 2}).TypeName(), convey.ShouldEqual, "datetime")
		convey.So(ArrayValue(NewArray()).TypeName(), convey.ShouldEqual, "array")
		convey.So(InlineTableValue(NewInlineTable()).TypeName(), convey.ShouldEqual, "inline table")
		var zero Value
		convey.So(zero.TypeName(), convey.ShouldEqual, "none")
	})

	convey.Convey("accessors never coerce across kinds", t, func() {
		v := IntegerValue(5)
		_, ok := v.AsStr()
		convey.So(ok, convey.ShouldBeFalse)
		_, ok = v.AsFloat()
		convey.So(ok, convey.ShouldBeFalse)
		_, ok = v.AsInlineTable()
		convey.So(ok, convey.ShouldBeFalse)
		convey.So(v.IsInteger(), convey.ShouldBeTrue)
		convey.So(v.IsStr(), convey.ShouldBeFalse)
		convey.So(v.Kind(), convey.ShouldEqual, KindInteger)

		s := StringValue("5")
		_, ok = s.AsInteger()
		convey.So(ok, convey.ShouldBeFalse)
		convey.So(s.IsStr(), convey.ShouldBeTrue)
	})

	convey.Convey("zero value panics on decor access", t, func() {
		var zero Value
		convey.So(func() { zero.Decor() }, convey.ShouldPanic)
	})
}

func TestValueDecor(t *testing.T) {
	convey.Convey("fresh values carry no decor", t, func() {
		v := IntegerValue(1)
		convey.So(v.Decor().IsEmpty(), convey.ShouldBeTrue)
		_, ok := v.Span()
		convey.So(ok, convey.ShouldBeFalse)
		convey.So(v.String(), convey.ShouldEqual, "1")
	})

	convey.Convey("decorate replaces the decor", t, func() {
		v := StringValue("x").Decorated(" ", " # note")
		convey.So(v.String(), convey.ShouldEqual, ` "x" # note`)
		v.Decorate("", "")
		convey.So(v.String(), convey.ShouldEqual, `"x"`)

		arr := ArrayValue(NewArray())
		arr.Decorate("  ", "")
		convey.So(arr.String(), convey.ShouldEqual, "  []")
	})

	convey.Convey("decorated leaves the receiver alone", t, func() {
		v := IntegerValue(7)
		d := v.Decorated(" ", " ")
		convey.So(d.String(), convey.ShouldEqual, " 7 ")
		convey.So(v.String(), convey.ShouldEqual, "7")

		tbl := NewInlineTable()
		tbl.Insert("a", v.Clone())
		tbl.Insert("b", v.Clone())
		a, _ := tbl.Get("a")
		a.Decorate("  ", "  ")
		convey.So(tbl.String(), convey.ShouldEqual, "{ a =  7  , b = 7 }")
	})

	convey.Convey("canonical renderings", t, func() {
		convey.So(StringValue(`a"b`).String(), convey.ShouldEqual, `'a"b'`)
		convey.So(StringValue("line\nbreak").String(), convey.ShouldEqual, `"line\nbreak"`)
		convey.So(FloatValue(2).String(), convey.ShouldEqual, "2.0")
		convey.So(FloatValue(1e300).String(), convey.ShouldEqual, "1e+300")
		convey.So(FloatValue(-2.5e-7).String(), convey.ShouldEqual, "-2.5e-07")
		for _, f := range []float64{1e300, -2.5e-7, 1e21} {
			back, ok := mustParse(FloatValue(f).String()).AsFloat()
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(back, convey.ShouldEqual, f)
		}
		convey.So(BoolValue(false).String(), convey.ShouldEqual, "false")
		convey.So(TimeValue(Time{Hour: 7, Minute: 32}).String(), convey.ShouldEqual, "07:32:00")
	})

	convey.Convey("fmt on a formatted scalar drops the source spelling", t, func() {
		v := mustParse("0x1F")
		convey.So(v.String(), convey.ShouldEqual, "0x1F")
		f, ok := v.FormattedInteger()
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(f.Value(), convey.ShouldEqual, int64(31))
		f.Fmt()
		convey.So(v.String(), convey.ShouldEqual, "31")
	})
}

func TestValueCollect(t *testing.T) {
	convey.Convey("collect into an array", t, func() {
		v := CollectArray(slices.Values([]Value{IntegerValue(1), StringValue("a")}))
		arr, ok := v.AsArray()
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(arr.Len(), convey.ShouldEqual, 2)
		convey.So(v.String(), convey.ShouldEqual, `[1, "a"]`)
	})

	convey.Convey("collect into an inline table", t, func() {
		v := CollectInlineTable(func(yield func(string, Value) bool) {
			_ = yield("k", IntegerValue(1)) && yield("j", BoolValue(true))
		})
		convey.So(v.String(), convey.ShouldEqual, `{ k = 1, j = true }`)
	})

	convey.Convey("clone is deep", t, func() {
		v := mustParse(`{ a = [1, 2]}`)
		c := v.Clone()
		tbl, _ := c.AsInlineTable()
		tbl.Insert("b", IntegerValue(3))
		convey.So(v.String(), convey.ShouldEqual, `{ a = [1, 2]}`)
		convey.So(c.String(), convey.ShouldEqual, `{ a = [1, 2], b = 3 }`)
	})
}
