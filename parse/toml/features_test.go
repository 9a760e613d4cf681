package toml

import (
	"math"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func mustParse(src string) Value {
	v, err := ParseValue(src)
	if err != nil {
		panic(err)
	}
	return v
}

func TestParseStrings(t *testing.T) {
	convey.Convey("basic and literal strings", t, func() {
		v := mustParse(`"tab\there \u00e9 \U0001F600 \"q\""`)
		s, ok := v.AsStr()
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(s, convey.ShouldEqual, "tab\there é 😀 \"q\"")
		convey.So(v.String(), convey.ShouldEqual, `"tab\there \u00e9 \U0001F600 \"q\""`)

		lit := mustParse(`'C:\Users\nodejs'`)
		s, _ = lit.AsStr()
		convey.So(s, convey.ShouldEqual, `C:\Users\nodejs`)
	})

	convey.Convey("multi-line basic string", t, func() {
		src := "\"\"\"\nfirst\nsecond \\\n    third\"\"\""
		v := mustParse(src)
		s, _ := v.AsStr()
		convey.So(s, convey.ShouldEqual, "first\nsecond third")
		convey.So(v.String(), convey.ShouldEqual, src)
	})

	convey.Convey("multi-line strings may end with extra quotes", t, func() {
		v := mustParse(`"""say "hi"""""`)
		s, _ := v.AsStr()
		convey.So(s, convey.ShouldEqual, `say "hi""`)

		lit := mustParse("'''\nraw \\n ''text'''''")
		s, _ = lit.AsStr()
		convey.So(s, convey.ShouldEqual, `raw \n ''text''`)
	})

	convey.Convey("bad strings are rejected", t, func() {
		for _, src := range []string{`"open`, `"bad \q"`, "\"line\nbreak\"", `"""six""""""`, "'\x01'"} {
			_, err := ParseValue(src)
			convey.So(err, convey.ShouldNotBeNil)
		}
	})

	convey.Convey("strings must be valid UTF-8", t, func() {
		for _, src := range []string{"\"a\xffb\"", "\"\"\"a\xffb\"\"\"", "{ \"k\xff\" = 1 }", "'a\xffb'"} {
			_, err := ParseValue(src)
			convey.So(err, convey.ShouldNotBeNil)
		}
	})
}

func TestParseNumbers(t *testing.T) {
	convey.Convey("integers with underscores and bases", t, func() {
		cases := map[string]int64{
			"1_000":      1000,
			"+99":        99,
			"-17":        -17,
			"0":          0,
			"0xDEADBEEF": 0xDEADBEEF,
			"0o755":      0o755,
			"0b1010":     10,
			"0x_ff":      -1,
		}
		for src, want := range cases {
			v, err := ParseValue(src)
			if want == -1 {
				convey.So(err, convey.ShouldNotBeNil)
				continue
			}
			convey.So(err, convey.ShouldBeNil)
			i, ok := v.AsInteger()
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(i, convey.ShouldEqual, want)
			convey.So(v.String(), convey.ShouldEqual, src)
		}
	})

	convey.Convey("malformed integers", t, func() {
		for _, src := range []string{"01", "1__0", "_1", "1_", "+0x10", "9223372036854775808"} {
			_, err := ParseValue(src)
			convey.So(err, convey.ShouldNotBeNil)
		}
	})

	convey.Convey("floats and special floats", t, func() {
		f1, _ := mustParse("+inf").AsFloat()
		convey.So(f1, convey.ShouldEqual, math.Inf(+1))
		f2, _ := mustParse("-inf").AsFloat()
		convey.So(f2, convey.ShouldEqual, math.Inf(-1))
		f3, _ := mustParse("nan").AsFloat()
		convey.So(math.IsNaN(f3), convey.ShouldBeTrue)
		f4, _ := mustParse("6.626e-34").AsFloat()
		convey.So(f4, convey.ShouldEqual, 6.626e-34)
		f5, _ := mustParse("224_617.445_991").AsFloat()
		convey.So(f5, convey.ShouldEqual, 224617.445991)

		for _, src := range []string{".7", "7.", "3.e+20", "1e", "01.5"} {
			_, err := ParseValue(src)
			convey.So(err, convey.ShouldNotBeNil)
		}
	})

	convey.Convey("booleans", t, func() {
		b, ok := mustParse("true").AsBool()
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(b, convey.ShouldBeTrue)
		_, err := ParseValue("True")
		convey.So(err, convey.ShouldNotBeNil)
	})
}

func TestParseDatetimes(t *testing.T) {
	convey.Convey("all four date-time forms", t, func() {
		odt, _ := mustParse("1979-05-27T07:32:00Z").AsDatetime()
		convey.So(odt.Offset, convey.ShouldNotBeNil)
		convey.So(odt.Offset.Z, convey.ShouldBeTrue)

		spaced := mustParse("1979-05-27 07:32:00-07:00")
		dt, _ := spaced.AsDatetime()
		convey.So(dt.Offset.Minutes, convey.ShouldEqual, int16(-420))
		convey.So(spaced.String(), convey.ShouldEqual, "1979-05-27 07:32:00-07:00")

		ldt, _ := mustParse("1979-05-27t07:32:00.999999").AsDatetime()
		convey.So(ldt.Offset, convey.ShouldBeNil)
		convey.So(ldt.Time.Nanosecond, convey.ShouldEqual, uint32(999999000))

		ld, _ := mustParse("1979-05-27").AsDatetime()
		convey.So(ld.Time, convey.ShouldBeNil)
		convey.So(ld.String(), convey.ShouldEqual, "1979-05-27")

		lt, _ := mustParse("00:32:00").AsDatetime()
		convey.So(lt.Date, convey.ShouldBeNil)
	})

	convey.Convey("invalid dates", t, func() {
		for _, src := range []string{"1979-02-30", "1979-05-27T25:00:00", "07:32:00Z"} {
			_, err := ParseValue(src)
			convey.So(err, convey.ShouldNotBeNil)
		}
	})
}

func TestParseArrays(t *testing.T) {
	convey.Convey("multi-line array with comments and trailing comma", t, func() {
		src := "[\n  8001, # first\n  8002,\n]"
		v := mustParse(src)
		arr, ok := v.AsArray()
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(arr.Len(), convey.ShouldEqual, 2)
		convey.So(arr.TrailingComma(), convey.ShouldBeTrue)
		second, _ := arr.Get(1)
		i, _ := second.AsInteger()
		convey.So(i, convey.ShouldEqual, 8002)
		convey.So(v.String(), convey.ShouldEqual, src)
	})

	convey.Convey("mixed and nested arrays", t, func() {
		v := mustParse(`[ [1, 2], ["a", 'b'], { x = 1 } ]`)
		arr, _ := v.AsArray()
		convey.So(arr.Len(), convey.ShouldEqual, 3)
		last, _ := arr.Get(2)
		convey.So(last.IsInlineTable(), convey.ShouldBeTrue)
	})

	convey.Convey("empty array keeps its inner whitespace", t, func() {
		convey.So(mustParse("[ ]").String(), convey.ShouldEqual, "[ ]")
	})
}

func TestParseInlineTables(t *testing.T) {
	convey.Convey("keys keep their order and spelling", t, func() {
		src := `{ name = "Tom", "dob" = 1979-05-27T07:32:00Z, 'x y' = 1 }`
		v := mustParse(src)
		tbl, ok := v.AsInlineTable()
		convey.So(ok, convey.ShouldBeTrue)
		var keys []string
		for k := range tbl.Iter() {
			keys = append(keys, k)
		}
		convey.So(keys, convey.ShouldResemble, []string{"name", "dob", "x y"})
		convey.So(v.String(), convey.ShouldEqual, src)
	})

	convey.Convey("dotted keys build dotted child tables", t, func() {
		v := mustParse(`{a.b = 1, a.c = 2, d = 3}`)
		tbl, _ := v.AsInlineTable()
		child, ok := tbl.Get("a")
		convey.So(ok, convey.ShouldBeTrue)
		a, _ := child.AsInlineTable()
		convey.So(a.IsDotted(), convey.ShouldBeTrue)
		convey.So(a.Len(), convey.ShouldEqual, 2)
		convey.So(v.String(), convey.ShouldEqual, `{a.b = 1, a.c = 2, d = 3}`)
	})

	convey.Convey("duplicate keys fail", t, func() {
		for _, src := range []string{
			`{ a = 1, a = 2 }`,
			`{ a = { b = 1 }, a.c = 2 }`,
			`{ a.b = 1, a = 2 }`,
			`{ a = 1, a.b = 2 }`,
		} {
			_, err := ParseValue(src)
			convey.So(err, convey.ShouldNotBeNil)
		}
	})

	convey.Convey("inline tables do not allow newlines or trailing commas", t, func() {
		for _, src := range []string{"{ a = 1,\n b = 2 }", `{ a = 1, }`, `{ a }`} {
			_, err := ParseValue(src)
			convey.So(err, convey.ShouldNotBeNil)
		}
	})

	convey.Convey("empty table keeps its preamble", t, func() {
		v := mustParse(`{   }`)
		tbl, _ := v.AsInlineTable()
		convey.So(tbl.IsEmpty(), convey.ShouldBeTrue)
		convey.So(v.String(), convey.ShouldEqual, `{   }`)
	})
}

func TestParseErrors(t *testing.T) {
	convey.Convey("errors carry a position", t, func() {
		_, err := ParseValue("[\n  1,\n  @]")
		convey.So(err, convey.ShouldNotBeNil)
		perr, ok := err.(*ParseError)
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(perr.Line, convey.ShouldEqual, 3)
		convey.So(perr.Column, convey.ShouldEqual, 3)
		convey.So(perr.Error(), convey.ShouldStartWith, "toml:3:3: ")
		convey.So(perr.Snippet(), convey.ShouldEqual, "  @]\n  ^")
	})

	convey.Convey("trailing content after the value", t, func() {
		_, err := ParseValue(`1 2`)
		convey.So(err, convey.ShouldNotBeNil)
		convey.So(err.Error(), convey.ShouldContainSubstring, "after value")
	})

	convey.Convey("surrounding whitespace is dropped", t, func() {
		v := mustParse("  \n 42  # answer\n")
		convey.So(v.String(), convey.ShouldEqual, "42")
	})

	convey.Convey("deep nesting is refused", t, func() {
		_, err := ParseValue(strings.Repeat("[", 81) + strings.Repeat("]", 81))
		convey.So(err, convey.ShouldNotBeNil)
		_, err = ParseValue(strings.Repeat("[", 80) + strings.Repeat("]", 80))
		convey.So(err, convey.ShouldBeNil)
	})

	convey.Convey("empty input", t, func() {
		_, err := ParseValue("   ")
		convey.So(err, convey.ShouldNotBeNil)
	})
}
