// Package cli provides the command-line interface for the capsule engine.
package cli

import (
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "1.0.0"

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "capsule",
		Short: "Compose outfit capsules around a marketplace product",
		Long: `capsule runs the wardrobe capsule engine from the terminal.

It can compose full capsules against the live catalog search, or show how a
product name is classified and which search queries would be issued.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newComposeCmd())
	root.AddCommand(newClassifyCmd())
	root.AddCommand(newPlanCmd())
	return root
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// hintFlags holds the four optional attribute overrides
type hintFlags struct {
	gender   string
	ageGroup string
	season   string
	style    string
}

func (h *hintFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&h.gender, "gender", "", "gender: male, female or unisex")
	cmd.Flags().StringVar(&h.ageGroup, "age", "", "age group: adult or child")
	cmd.Flags().StringVar(&h.season, "season", "", "season: winter, summer, spring, autumn or all-season")
	cmd.Flags().StringVar(&h.style, "style", "", "style: casual, sport, office, streetwear, elegant or other")
}
