package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wardrobelens/backend/config"
	"github.com/wardrobelens/backend/internal/bootstrap"
	"github.com/wardrobelens/backend/internal/domain"
)

func newComposeCmd() *cobra.Command {
	var (
		productName string
		productID   uint64
		hints       hintFlags
	)

	cmd := &cobra.Command{
		Use:   "compose <query>",
		Short: "Compose capsules for a product query",
		Long: `Compose runs the full engine against the live catalog search and prints
the capsules as JSON. Configuration is read the same way as the server.

Examples:
  capsule compose "ботинки зимние мужские"
  capsule compose "платье летнее" --product-id 123456789 --season summer`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			bootstrap.InitLogging(cfg)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			app, err := bootstrap.New(ctx, cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			request := &domain.CapsuleRequest{
				Query:       strings.Join(args, " "),
				ProductName: productName,
				Hints: domain.QueryHintOverrides{
					Gender:   hints.gender,
					AgeGroup: hints.ageGroup,
					Season:   hints.season,
					Style:    hints.style,
				},
			}
			if productID != 0 {
				request.ProductID = &productID
			}

			capsules, err := app.Capsules.CreateCapsules(ctx, request)
			if err != nil {
				return fmt.Errorf("compose: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), capsules)
		},
	}

	cmd.Flags().StringVar(&productName, "product-name", "", "display name of the anchor product (defaults to the query)")
	cmd.Flags().Uint64Var(&productID, "product-id", 0, "catalog id of the anchor product")
	hints.register(cmd)
	return cmd
}
