package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Riyasinha-01/Voyage/internal/api/structurer"
)

var renderHTML bool

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Structure an assistant reply into display blocks",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		blocks := structurer.Structure(text)
		if renderHTML {
			_, err = fmt.Fprintln(cmd.OutOrStdout(), structurer.RenderHTML(blocks))
			return err
		}
		return writeJSON(cmd.OutOrStdout(), structurer.RenderResponse{
			Blocks: blocks,
			HTML:   structurer.RenderHTML(blocks),
		})
	},
}

func init() {
	renderCmd.Flags().BoolVar(&renderHTML, "html", false, "print only the HTML rendering")
	rootCmd.AddCommand(renderCmd)
}
