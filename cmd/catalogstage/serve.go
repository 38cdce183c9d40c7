package main

import (
	"github.com/spf13/cobra"

	"github.com/tsawler/catalogstage/server"
)

func newServeCmd(g *globalFlags) *cobra.Command {
	var dir, addr, staging string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve an output directory for review",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := g.load(cmd)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck
			if cmd.Flags().Changed("dir") {
				cfg.Serve.Dir = dir
			}
			if cmd.Flags().Changed("addr") {
				cfg.Serve.Addr = addr
			}
			return server.New(cfg.Serve.Dir, staging, log).ListenAndServe(cfg.Serve.Addr)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "output directory written by extract")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address")
	cmd.Flags().StringVar(&staging, "staging", "", "staging CSV name inside the directory")
	return cmd
}
