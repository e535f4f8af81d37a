package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Riyasinha-01/Voyage/internal/api/images"
	"github.com/Riyasinha-01/Voyage/internal/container"
	"github.com/Riyasinha-01/Voyage/internal/types"
)

var imagesCmd = &cobra.Command{
	Use:   "images NAME...",
	Short: "Resolve encyclopedia images for destination names",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, resolver := container.NewResolver(cfg.Wiki, logger, nil)

		out := make([]types.ResolvedDestination, len(args))
		g, ctx := errgroup.WithContext(cmd.Context())
		limit := cfg.Strips.MaxConcurrent
		if limit <= 0 {
			limit = images.DefaultMaxConcurrent
		}
		g.SetLimit(limit)
		for i, name := range args {
			g.Go(func() error {
				urls := resolver.Resolve(ctx, name)
				status := types.StatusReady
				if len(urls) == 0 {
					status = types.StatusError
				}
				out[i] = types.ResolvedDestination{Name: name, Images: urls, Status: status}
				logger.Debug("Resolved images", slog.String("name", name), slog.Int("count", len(urls)))
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), out)
	},
}

func init() {
	rootCmd.AddCommand(imagesCmd)
}
