package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dzjyyds666/aq/parse"
	"github.com/dzjyyds666/aq/parse/toml"
	"github.com/dzjyyds666/aq/pkg"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type TomlParams struct {
	Find      string   `json:"find"`       // 查找的key
	Input     string   `json:"input"`      // 输入文件路径
	Output    string   `json:"output"`     // 输出文件地址
	Set       []string `json:"set"`        // 设置的 key=value
	Remove    []string `json:"remove"`     // 删除的key
	Sort      bool     `json:"sort"`       // 按key排序
	Fmt       bool     `json:"fmt"`        // 统一格式
	IntoTable bool     `json:"into_table"` // 以标准表的形式输出
	Diff      bool     `json:"diff"`       // 输出修改前后的差异
}

var params *TomlParams

var tomlCmd = &cobra.Command{
	Use:   "toml",
	Short: "toml edit tools",
	Long: `Edit a single TOML value, usually an inline table such as { a = 1, b.c = "x" }.
Keys, comments and whitespace that are not touched by an edit are written back unchanged.`,
	Args: cobra.NoArgs,
	RunE: tomlRun,
}

func init() {
	params = &TomlParams{}
	tomlCmd.Flags().StringVarP(&params.Find, "find", "f", "", "print the value at a dotted key")
	tomlCmd.Flags().StringVarP(&params.Input, "input", "i", "", "input file path, stdin when empty")
	tomlCmd.Flags().StringVarP(&params.Output, "output", "o", "", "output path, stdout when empty")
	tomlCmd.Flags().StringArrayVarP(&params.Set, "set", "s", nil, "set key=value, may be repeated")
	tomlCmd.Flags().StringArrayVarP(&params.Remove, "remove", "r", nil, "remove a key, may be repeated")
	tomlCmd.Flags().BoolVar(&params.Sort, "sort", false, "sort keys")
	tomlCmd.Flags().BoolVar(&params.Fmt, "fmt", false, "reset whitespace to the canonical layout")
	tomlCmd.Flags().BoolVar(&params.IntoTable, "into-table", false, "write the result as a standard table body")
	tomlCmd.Flags().BoolVar(&params.Diff, "diff", false, "print a line diff of input and result")
}

func tomlRun(cmd *cobra.Command, args []string) error {
	return runToml(params, cmd.InOrStdin(), cmd.OutOrStdout())
}

func runToml(p *TomlParams, stdin io.Reader, stdout io.Writer) error {
	text, err := readInput(p.Input, stdin)
	if err != nil {
		return err
	}
	v, err := parse.ParseText(text)
	if err != nil {
		return describeParseError(err)
	}

	if p.Find != "" {
		root, err := requireTable(&v)
		if err != nil {
			return err
		}
		found, err := parse.Lookup(root, p.Find)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, found.Decorated("", "").String())
		return err
	}

	if err := applyEdits(p, &v); err != nil {
		return err
	}
	result, err := render(p, &v)
	if err != nil {
		return err
	}

	if p.Output != "" {
		if err := pkg.WriteFileText(p.Output, result); err != nil {
			return err
		}
	}
	if p.Diff {
		return printDiff(stdout, text, result)
	}
	if p.Output == "" {
		_, err = io.WriteString(stdout, result)
		return err
	}
	return nil
}

func readInput(path string, stdin io.Reader) (string, error) {
	if path == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", errors.Wrap(err, "read stdin")
		}
		return string(data), nil
	}
	exist, err := pkg.CheckFileExist(path)
	if err != nil {
		return "", err
	}
	if !exist {
		return "", errors.Errorf("input file %s not exist", path)
	}
	return pkg.ReadFileText(path)
}

// describeParseError 附带出错行，便于定位
func describeParseError(err error) error {
	var perr *toml.ParseError
	if errors.As(err, &perr) {
		return errors.Errorf("%s\n%s", perr.Error(), perr.Snippet())
	}
	return err
}

func requireTable(v *toml.Value) (*toml.InlineTable, error) {
	root, ok := v.AsInlineTable()
	if !ok {
		return nil, errors.Errorf("input is a %s, not an inline table", v.TypeName())
	}
	return root, nil
}

func applyEdits(p *TomlParams, v *toml.Value) error {
	needsTable := len(p.Set) > 0 || len(p.Remove) > 0 || p.Sort || p.IntoTable
	if !needsTable {
		if p.Fmt {
			formatValue(v)
		}
		return nil
	}
	root, err := requireTable(v)
	if err != nil {
		return err
	}
	for _, assignment := range p.Set {
		key, raw, ok := splitAssignment(assignment)
		if !ok {
			return errors.Errorf("invalid --set %q, want key=value", assignment)
		}
		value, err := parse.ParseText(raw)
		if err != nil {
			return errors.Wrapf(describeParseError(err), "value of --set %s", key)
		}
		if err := parse.Set(root, key, value); err != nil {
			return err
		}
	}
	for _, key := range p.Remove {
		if _, err := parse.Remove(root, key); err != nil {
			return err
		}
	}
	if p.Sort {
		root.SortValues()
	}
	if p.Fmt {
		root.Fmt()
	}
	return nil
}

func formatValue(v *toml.Value) {
	switch {
	case v.IsArray():
		a, _ := v.AsArray()
		a.Fmt()
	case v.IsInlineTable():
		t, _ := v.AsInlineTable()
		t.Fmt()
	}
}

// splitAssignment splits at the first `=` outside a quoted key.
func splitAssignment(s string) (key, value string, ok bool) {
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '=':
			key = strings.TrimSpace(s[:i])
			return key, s[i+1:], key != ""
		}
	}
	return "", "", false
}

func render(p *TomlParams, v *toml.Value) (string, error) {
	if p.IntoTable {
		root, err := requireTable(v)
		if err != nil {
			return "", err
		}
		return root.Clone().IntoTable().String(), nil
	}
	return v.String() + "\n", nil
}

func printDiff(w io.Writer, from, to string) error {
	removed := color.New(color.FgRed)
	added := color.New(color.FgGreen)
	if f, ok := w.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		removed.DisableColor()
		added.DisableColor()
	}
	lines := pkg.LineDiff(from, to)
	if !pkg.Changed(lines) {
		return nil
	}
	for _, l := range lines {
		var err error
		switch l.Op {
		case pkg.DiffDelete:
			_, err = removed.Fprintln(w, "-"+l.Text)
		case pkg.DiffInsert:
			_, err = added.Fprintln(w, "+"+l.Text)
		default:
			_, err = fmt.Fprintln(w, " "+l.Text)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
