package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tain335/chunkgraph/pkg/api"
)

var buildCmd = &cobra.Command{
	Use:   "build ENTRY[=FILE,FILE...]...",
	Short: "Run a single build and print the chunk flags",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().String("naming", "entrypoint", "Chunk naming style: entrypoint or numbered")
	buildCmd.Flags().Bool("json", false, "Print the result as JSON (chunk/js fields, plus diagnostics)")
	_ = viper.BindPFlag("naming", buildCmd.Flags().Lookup("naming"))
}

func runBuild(cmd *cobra.Command, args []string) error {
	// The watch command binds the same "naming" key; point it back at this
	// command's flag.
	_ = viper.BindPFlag("naming", cmd.Flags().Lookup("naming"))
	opts, err := buildOptions(args)
	if err != nil {
		return err
	}
	result, err := api.Build(opts)
	if err != nil {
		return err
	}

	for _, msg := range result.Log.Msgs() {
		fmt.Fprintln(os.Stderr, msg.String())
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(struct {
			Chunk       []string `json:"chunk"`
			JS          []string `json:"js"`
			Diagnostics []string `json:"diagnostics,omitempty"`
		}{
			Chunk: result.Flags,
			JS:    result.SourceList,
			Diagnostics: func() []string {
				var out []string
				for _, d := range result.Diagnostics {
					out = append(out, d.Error())
				}
				return out
			}(),
		}); err != nil {
			return err
		}
	} else {
		for _, flag := range result.Flags {
			fmt.Println(flag)
		}
	}

	if len(result.Diagnostics) > 0 || result.Log.HasErrors() {
		os.Exit(1)
	}
	return nil
}
