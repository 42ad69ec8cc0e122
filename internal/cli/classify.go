package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/wardrobelens/backend/internal/domain"
	"github.com/wardrobelens/backend/internal/usecase"
)

type classification struct {
	Name        string                `json:"name"`
	Features    domain.AnchorFeatures `json:"features"`
	Complements []domain.Category     `json:"complements"`
}

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <name>",
		Short: "Show the heuristic features of a product name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			features := usecase.InferFeatures(name)
			return printJSON(cmd.OutOrStdout(), classification{
				Name:        name,
				Features:    features,
				Complements: usecase.NeededCategories(features.Category, features.Category == domain.CategoryDress),
			})
		},
	}
}
