package parse

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dzjyyds666/aq/parse/toml"
	"github.com/pkg/errors"
	"github.com/smartystreets/goconvey/convey"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func mustTable(src string) *toml.InlineTable {
	v, err := ParseText(src)
	if err != nil {
		panic(err)
	}
	t, ok := v.AsInlineTable()
	if !ok {
		panic("not an inline table: " + src)
	}
	return t
}

func TestRead(t *testing.T) {
	convey.Convey("read from a stream", t, func() {
		v, err := ReadValue(strings.NewReader("{ a = 1 }\n"))
		convey.So(err, convey.ShouldBeNil)
		convey.So(v.String(), convey.ShouldEqual, "{ a = 1 }")
	})

	convey.Convey("read from a file", t, func() {
		path := filepath.Join(t.TempDir(), "value.toml")
		convey.So(os.WriteFile(path, []byte(`[1, 2]`), 0o644), convey.ShouldBeNil)
		v, err := ReadValueFile(path)
		convey.So(err, convey.ShouldBeNil)
		convey.So(v.IsArray(), convey.ShouldBeTrue)

		_, err = ReadValueFile(filepath.Join(t.TempDir(), "missing.toml"))
		convey.So(err, convey.ShouldNotBeNil)
	})

	convey.Convey("parse errors keep their cause", t, func() {
		_, err := ReadValue(strings.NewReader("{ a = }"))
		convey.So(err, convey.ShouldNotBeNil)
		var perr *toml.ParseError
		convey.So(errors.As(err, &perr), convey.ShouldBeTrue)
		convey.So(perr.Line, convey.ShouldEqual, 1)
	})

	convey.Convey("parsing is logged", t, func() {
		core, logs := observer.New(zap.DebugLevel)
		SetLogger(zap.New(core))
		defer SetLogger(zap.NewNop())
		_, err := ParseText(`{ a = 1 }`)
		convey.So(err, convey.ShouldBeNil)
		convey.So(logs.FilterMessage("toml parsed").Len(), convey.ShouldEqual, 1)
	})
}

func TestPathEdits(t *testing.T) {
	convey.Convey("lookup walks dotted paths", t, func() {
		root := mustTable(`{ server.host = "localhost", server.ports = [80, 443], "a.b" = 1 }`)
		v, err := Lookup(root, "server.ports")
		convey.So(err, convey.ShouldBeNil)
		convey.So(v.String(), convey.ShouldEqual, " [80, 443]")

		v, err = Lookup(root, `"a.b"`)
		convey.So(err, convey.ShouldBeNil)
		i, _ := v.AsInteger()
		convey.So(i, convey.ShouldEqual, 1)

		_, err = Lookup(root, "server.missing")
		convey.So(err, convey.ShouldNotBeNil)
		_, err = Lookup(root, "server.host.x")
		convey.So(err, convey.ShouldNotBeNil)
		_, err = Lookup(root, "bad key")
		convey.So(err, convey.ShouldNotBeNil)
	})

	convey.Convey("set replaces in place and keeps decor", t, func() {
		root := mustTable(`{a=1,  b = 2}`)
		convey.So(Set(root, "a", toml.IntegerValue(10)), convey.ShouldBeNil)
		convey.So(root.String(), convey.ShouldEqual, `{a=10,  b = 2}`)
	})

	convey.Convey("set creates dotted tables", t, func() {
		root := mustTable(`{ a = 1 }`)
		convey.So(Set(root, "b.c", toml.StringValue("x")), convey.ShouldBeNil)
		convey.So(root.String(), convey.ShouldEqual, `{ a = 1 , b.c = "x" }`)

		convey.So(Set(root, "a.x", toml.IntegerValue(1)), convey.ShouldNotBeNil)
	})

	convey.Convey("remove drops emptied dotted tables", t, func() {
		root := mustTable(`{ a = 1, b.c = 2 }`)
		old, err := Remove(root, "b.c")
		convey.So(err, convey.ShouldBeNil)
		i, _ := old.AsInteger()
		convey.So(i, convey.ShouldEqual, 2)
		convey.So(root.ContainsKey("b"), convey.ShouldBeFalse)
		convey.So(root.Len(), convey.ShouldEqual, 1)

		_, err = Remove(root, "nope")
		convey.So(err, convey.ShouldNotBeNil)
	})

	convey.Convey("remove keeps non-dotted tables even when empty", t, func() {
		root := mustTable(`{ t = { x = 1 } }`)
		_, err := Remove(root, "t.x")
		convey.So(err, convey.ShouldBeNil)
		convey.So(root.ContainsKey("t"), convey.ShouldBeTrue)
	})
}
