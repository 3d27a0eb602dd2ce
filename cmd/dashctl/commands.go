package main

import (
	"context"
	"fmt"
	"io"

	"dash_go/internal/config"
	"dash_go/internal/logger"
	"dash_go/models"
	"dash_go/pkg/codec"
	"dash_go/pkg/storage"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

// storeOpener открывает хранилище; в тестах подменяется
type storeOpener func(ctx context.Context) (storage.Store, func() error, error)

func openConfiguredStore(ctx context.Context) (storage.Store, func() error, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return storage.New(ctx, cfg, zl)
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(openConfiguredStore)
}

func newRootCmdWith(open storeOpener) *cobra.Command {
	root := &cobra.Command{
		Use:          "dashctl",
		Short:        "Maintenance commands for the link dashboard storage",
		SilenceUsage: true,
	}
	root.AddCommand(
		newInitCmd(open),
		newStatsCmd(open),
		newCompactCmd(open),
		newExportCmd(open),
	)
	return root
}

// withStore открывает хранилище, загружает документ и передаёт его в fn
func withStore(cmd *cobra.Command, open storeOpener, fn func(ctx context.Context, s storage.Store, d models.Dashboard) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, closeStore, err := open(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	d, err := s.Load(ctx)
	if err != nil {
		return err
	}
	return fn(ctx, s, d)
}

func newInitCmd(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the storage and seed it with the default dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, open, func(_ context.Context, _ storage.Store, d models.Dashboard) error {
				fmt.Fprintf(cmd.OutOrStdout(), "storage ready: %d categories\n", len(d.Categories))
				return nil
			})
		},
	}
}

func newStatsCmd(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show how much the compact form saves",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, open, func(_ context.Context, _ storage.Store, d models.Dashboard) error {
				printStats(cmd.OutOrStdout(), codec.Stats(d))
				return nil
			})
		},
	}
}

func newCompactCmd(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "compact",
		Short: "Rewrite the stored document in compact form",
		Long:  "Loads the document (including one saved before compaction existed) and saves it back in compact form.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, open, func(ctx context.Context, s storage.Store, d models.Dashboard) error {
				if err := s.Save(ctx, d); err != nil {
					return err
				}
				printStats(cmd.OutOrStdout(), codec.Stats(d))
				return nil
			})
		},
	}
}

func newExportCmd(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the expanded document as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, open, func(_ context.Context, _ storage.Store, d models.Dashboard) error {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetEscapeHTML(false)
				enc.SetIndent("", "  ")
				return enc.Encode(d)
			})
		},
	}
}

func printStats(w io.Writer, s codec.CompressionStats) {
	fmt.Fprintf(w, "original:   %d bytes\n", s.Original)
	fmt.Fprintf(w, "compressed: %d bytes\n", s.Compressed)
	fmt.Fprintf(w, "ratio:      %s\n", s.RatioPercent)
	fmt.Fprintf(w, "saved:      %d bytes\n", s.Saved)
}

