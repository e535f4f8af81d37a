package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Riyasinha-01/Voyage/internal/api/destinations"
	"github.com/Riyasinha-01/Voyage/internal/container"
)

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "List the destinations a reply mentions, best first",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		extractor := container.NewExtractor(cfg.Extractor)
		candidates := extractor.Candidates(text)
		names := make([]string, 0, len(candidates))
		for _, c := range candidates {
			names = append(names, c.Name)
		}
		return writeJSON(cmd.OutOrStdout(), destinations.ExtractResponse{
			Destinations: names,
			Candidates:   candidates,
		})
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
