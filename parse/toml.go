// Package parse reads TOML values from files or streams and applies
// path-based edits to them while keeping their original formatting.
package parse

import (
	"io"
	"strings"

	"github.com/dzjyyds666/aq/parse/toml"
	"github.com/dzjyyds666/aq/pkg"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// =========================
// Reading
// =========================

// ReadValue parses the whole of r as a single TOML value.
func ReadValue(r io.Reader) (toml.Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return toml.Value{}, errors.Wrap(err, "read toml input")
	}
	return ParseText(string(data))
}

// ReadValueFile parses the file at path as a single TOML value.
func ReadValueFile(path string) (toml.Value, error) {
	exist, err := pkg.CheckFileExist(path)
	if err != nil {
		return toml.Value{}, errors.Wrapf(err, "check %s", path)
	}
	if !exist {
		return toml.Value{}, errors.Errorf("input file %s does not exist", path)
	}
	text, err := pkg.ReadFileText(path)
	if err != nil {
		return toml.Value{}, err
	}
	v, err := ParseText(text)
	if err != nil {
		return toml.Value{}, errors.Wrapf(err, "parse %s", path)
	}
	return v, nil
}

// ParseText parses text as a single TOML value. The underlying
// *toml.ParseError is kept as the cause.
func ParseText(text string) (toml.Value, error) {
	v, err := toml.ParseValue(text)
	if err != nil {
		Logger().Debug("toml parse failed", zap.Error(err))
		return toml.Value{}, errors.WithStack(err)
	}
	Logger().Debug("toml parsed", zap.String("type", v.TypeName()), zap.Int("bytes", len(text)))
	return v, nil
}

// =========================
// Path edits
// =========================

func splitPath(path string) ([]toml.Key, error) {
	keys, err := toml.ParseKeyPath(path)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid key path %q", path)
	}
	return keys, nil
}

// Lookup returns the value at a dotted path such as `server.ports`.
func Lookup(root *toml.InlineTable, path string) (*toml.Value, error) {
	keys, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	table := root
	for i, key := range keys {
		v, ok := table.Get(key.Get())
		if !ok {
			return nil, errors.Errorf("key %s not found", joinPath(keys[:i+1]))
		}
		if i == len(keys)-1 {
			return v, nil
		}
		child, ok := v.AsInlineTable()
		if !ok {
			return nil, errors.Errorf("key %s is a %s, not a table", joinPath(keys[:i+1]), v.TypeName())
		}
		table = child
	}
	return nil, errors.New("empty key path")
}

// Set stores v at a dotted path. Missing intermediate tables are created
// as dotted tables. An existing key keeps its position and its value's
// decor.
func Set(root *toml.InlineTable, path string, v toml.Value) error {
	keys, err := splitPath(path)
	if err != nil {
		return err
	}
	table := root
	for i, key := range keys[:len(keys)-1] {
		slot := table.Entry(key.Get()).OrInsertWith(func() toml.Value {
			child := toml.NewInlineTable()
			child.SetDotted(true)
			return toml.InlineTableValue(child)
		})
		child, ok := slot.AsInlineTable()
		if !ok {
			return errors.Errorf("cannot descend into %s: it is a %s", joinPath(keys[:i+1]), slot.TypeName())
		}
		table = child
	}

	leaf := keys[len(keys)-1].Get()
	switch e := table.Entry(leaf).(type) {
	case *toml.InlineOccupiedEntry:
		*v.Decor() = *e.Get().Decor()
		e.Insert(v)
		Logger().Debug("toml value replaced", zap.String("path", path), zap.String("type", v.TypeName()))
	case *toml.InlineVacantEntry:
		e.Insert(v)
		Logger().Debug("toml value added", zap.String("path", path), zap.String("type", v.TypeName()))
	}
	return nil
}

// Remove deletes the value at a dotted path and returns it. Dotted tables
// left empty by the removal are removed too.
func Remove(root *toml.InlineTable, path string) (toml.Value, error) {
	keys, err := splitPath(path)
	if err != nil {
		return toml.Value{}, err
	}
	return removeAt(root, keys, path)
}

func removeAt(table *toml.InlineTable, keys []toml.Key, path string) (toml.Value, error) {
	key := keys[0].Get()
	if len(keys) == 1 {
		old, ok := table.Remove(key)
		if !ok {
			return toml.Value{}, errors.Errorf("key %s not found", path)
		}
		Logger().Debug("toml value removed", zap.String("path", path))
		return old, nil
	}
	v, ok := table.Get(key)
	if !ok {
		return toml.Value{}, errors.Errorf("key %s not found", path)
	}
	child, ok := v.AsInlineTable()
	if !ok {
		return toml.Value{}, errors.Errorf("key %s not found", path)
	}
	old, err := removeAt(child, keys[1:], path)
	if err != nil {
		return toml.Value{}, err
	}
	if child.IsDotted() && child.IsEmpty() {
		table.Remove(key)
	}
	return old, nil
}

func joinPath(keys []toml.Key) string {
	parts := make([]string, len(keys))
	for i := range keys {
		parts[i] = keys[i].String()
	}
	return strings.Join(parts, ".")
}
