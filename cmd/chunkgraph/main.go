// Command chunkgraph builds a whole-program dependency and chunk graph for
// a JavaScript/Closure-namespace source tree and prints the load-order
// flags a bundler driver needs.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "chunkgraph",
	Short: "Build a whole-program chunk graph",
	Long:  `chunkgraph discovers dependencies across a source tree and emits the per-chunk load order and parent flags a bundler driver needs.`,
}

func init() {
	rootCmd.PersistentFlags().String("base-dir", ".", "Base directory that relative paths in --goog-deps files resolve against (entry points and module specifiers are not resolved against it)")
	rootCmd.PersistentFlags().String("goog-base", "", "Path to the legacy base.js providing goog.require/goog.addDependency")
	rootCmd.PersistentFlags().StringSlice("goog-deps", nil, "Legacy goog.addDependency deps files to parse (repeatable)")
	rootCmd.PersistentFlags().StringSlice("entry-fields", nil, "package.json entry field priority order (default: browser,module,main)")

	_ = viper.BindPFlag("base-dir", rootCmd.PersistentFlags().Lookup("base-dir"))
	_ = viper.BindPFlag("goog-base", rootCmd.PersistentFlags().Lookup("goog-base"))
	_ = viper.BindPFlag("goog-deps", rootCmd.PersistentFlags().Lookup("goog-deps"))
	_ = viper.BindPFlag("entry-fields", rootCmd.PersistentFlags().Lookup("entry-fields"))

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
