package cmd

import (
	"fmt"
	"os"

	"github.com/dzjyyds666/aq/parse"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "aq",
	Short: "Aq is a tool for processing various types of data.",
	Long:  "Aq is a tool for processing various types of data. It reads a value, edits it in place and writes it back without disturbing its formatting.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogger(verbose)
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// setupLogger 根据 verbose 选择日志输出
func setupLogger(verbose bool) error {
	if !verbose {
		parse.SetLogger(zap.NewNop())
		return nil
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	parse.SetLogger(l)
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Aq",
	Long:  `All software has versions. This is Aq's`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "Aq v0.1 -- HEAD")
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log parsing and edits to stderr")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(tomlCmd)
}
