package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/tain335/chunkgraph/internal/chunker"
	"github.com/tain335/chunkgraph/internal/resolver"
	"github.com/tain335/chunkgraph/pkg/api"
)

// entrySpecs parses "name=file1,file2" arguments into EntryPoints. The
// first argument becomes the primary entry. Each argument may also be a
// doublestar glob pattern (containing "*"); every match becomes its own
// entry point named after itself, in sorted order, so a workspace-wide
// build can be kicked off with a single "./src/pages/**/*.js" argument.
func entrySpecs(args []string) ([]chunker.EntryPoint, error) {
	var eps []chunker.EntryPoint
	for _, arg := range args {
		if strings.Contains(arg, "*") {
			matches, err := resolver.ExpandGlob(arg)
			if err != nil {
				return nil, fmt.Errorf("expanding entry glob %q: %w", arg, err)
			}
			for _, m := range matches {
				eps = append(eps, chunker.EntryPoint{Name: m, Files: []string{m}})
			}
			continue
		}
		name, files, ok := strings.Cut(arg, "=")
		if !ok {
			name, files = arg, arg
		}
		eps = append(eps, chunker.EntryPoint{
			Name:  strings.TrimSpace(name),
			Files: strings.Split(files, ","),
		})
	}
	return eps, nil
}

func buildOptions(args []string) (api.Options, error) {
	naming := api.EntrypointNaming
	if viper.GetString("naming") == "numbered" {
		naming = api.NumberedNaming
	}
	eps, err := entrySpecs(args)
	if err != nil {
		return api.Options{}, err
	}
	return api.Options{
		EntryPoints:     eps,
		BaseDirectory:   viper.GetString("base-dir"),
		EntryFieldOrder: viper.GetStringSlice("entry-fields"),
		GoogDepsFiles:   viper.GetStringSlice("goog-deps"),
		GoogBasePath:    viper.GetString("goog-base"),
		Naming:          naming,
	}, nil
}
