package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tain335/chunkgraph/pkg/api"
)

var watchCmd = &cobra.Command{
	Use:   "watch ENTRY[=FILE,FILE...]...",
	Short: "Rebuild on source changes and optionally push results over websocket",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().String("naming", "entrypoint", "Chunk naming style: entrypoint or numbered")
	watchCmd.Flags().String("serve", "", "Address to serve rebuild notifications on, e.g. :8787")
	_ = viper.BindPFlag("naming", watchCmd.Flags().Lookup("naming"))
}

func runWatch(cmd *cobra.Command, args []string) error {
	serveAddr, _ := cmd.Flags().GetString("serve")

	opts, err := buildOptions(args)
	if err != nil {
		return err
	}

	stop, err := api.Watch(api.WatchOptions{
		Options:   opts,
		ServeAddr: serveAddr,
		OnResult: func(result *api.Result, buildErr error) {
			if buildErr != nil {
				fmt.Fprintln(os.Stderr, "build failed:", buildErr)
				return
			}
			for _, msg := range result.Log.Msgs() {
				fmt.Fprintln(os.Stderr, msg.String())
			}
			for _, flag := range result.Flags {
				fmt.Println(flag)
			}
		},
	})
	if err != nil {
		return err
	}
	defer stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return nil
}
