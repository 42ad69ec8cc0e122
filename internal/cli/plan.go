package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wardrobelens/backend/internal/domain"
	"github.com/wardrobelens/backend/internal/usecase"
)

func newPlanCmd() *cobra.Command {
	var (
		hints hintFlags
		query string
		seed  uint64
	)

	cmd := &cobra.Command{
		Use:   "plan <category>",
		Short: "Print the search queries issued for a complement category",
		Long: `Plan prints the ordered queries the collector would issue for one category.
Unset attributes take their defaults; --seed fixes the shuffle order.

Examples:
  capsule plan footwear --gender male --season winter
  capsule plan bottoms --style sport --age child --seed 1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, ok := domain.ParseCategory(args[0])
			if !ok {
				return fmt.Errorf("unknown category %q", args[0])
			}

			features := featuresFromFlags(hints)
			out := cmd.OutOrStdout()

			if query != "" {
				fmt.Fprintf(out, "# anchor search: %s\n", usecase.ShortQuery(query))
			}

			planner := usecase.NewQueryPlanner(seed)
			for _, q := range planner.BuildQueries(category, features.Gender, features.Season, features.Style, features.AgeGroup) {
				fmt.Fprintln(out, q)
			}
			return nil
		},
	}

	hints.register(cmd)
	cmd.Flags().StringVar(&query, "query", "", "anchor query to preview (first four words are used)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "shuffle seed, 0 seeds from the clock")
	return cmd
}

// featuresFromFlags keeps valid flag values and defaults the rest
func featuresFromFlags(h hintFlags) domain.AnchorFeatures {
	var f domain.AnchorFeatures
	if g, ok := domain.ParseGender(h.gender); ok {
		f.Gender = g
	}
	if a, ok := domain.ParseAgeGroup(h.ageGroup); ok {
		f.AgeGroup = a
	}
	if s, ok := domain.ParseSeason(h.season); ok {
		f.Season = s
	}
	if s, ok := domain.ParseStyle(h.style); ok {
		f.Style = s
	}
	return f.WithDefaults()
}
