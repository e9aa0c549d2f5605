package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/hotel-warehouse/internal/application/mirror"
)

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Push to or pull from the remote mirror",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "push",
			Short: "Send the local snapshot to the remote mirror",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMirror(cmd.Context(), func(ctx context.Context, m *mirror.Mirror) error {
					n, err := m.PushNow(ctx)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "pushed %d items\n", n)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "pull",
			Short: "Replace the local store with the remote snapshot",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMirror(cmd.Context(), func(ctx context.Context, m *mirror.Mirror) error {
					n, err := m.Pull(ctx)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "restored %d items\n", n)
					return nil
				})
			},
		},
	)
	return cmd
}

func withMirror(ctx context.Context, fn func(context.Context, *mirror.Mirror) error) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := newApplication(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a.mirror)
}
