package main

import (
	"github.com/spf13/cobra"

	"github.com/aristath/fundadvisor/internal/domain"
	"github.com/aristath/fundadvisor/internal/modules/recommendation"
)

func newTopCmd(opts *rootOptions) *cobra.Command {
	var (
		category string
		topN     int
	)

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Rank the best funds in a category",
		Long: `Rank funds by score within a category. An unknown category ranks the
whole dataset.`,
		Example: `  fundctl top --category mid_cap --n 3
  fundctl top --dataset s3://funds/latest.msgpack`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.withTimeout(cmd)
			defer cancel()

			container, err := opts.container(ctx)
			if err != nil {
				return err
			}

			top, err := container.AdvisorService.TopFunds(category, topN)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), top)
		},
	}

	cmd.Flags().StringVar(&category, "category", domain.CategoryLargeCap, "Fund category")
	cmd.Flags().IntVar(&topN, "n", 5, "Number of funds to return")

	return cmd
}

func newFundCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "fund <id>",
		Short: "Show one fund with its score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.withTimeout(cmd)
			defer cancel()

			container, err := opts.container(ctx)
			if err != nil {
				return err
			}

			fund, err := container.AdvisorService.Fund(args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), fund)
		},
	}
}

func newCategoriesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List dataset categories with summary statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.withTimeout(cmd)
			defer cancel()

			container, err := opts.container(ctx)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), container.AdvisorService.Categories())
		},
	}
}

func newRecommendCmd(opts *rootOptions) *cobra.Command {
	var (
		risk    string
		horizon string
		goal    string
		amount  float64
		topN    int
		narrate bool
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Plan an allocation and pick funds for an investor profile",
		Long: `Build a category allocation for the given profile and rank the top funds in
each category. With --narrate the full analysis is produced, including the
generated narrative (or its fallback when no OpenAI key is configured).`,
		Example: `  fundctl recommend --risk low --horizon 1-3 --amount 100000
  fundctl recommend --risk high --goal tax_saving --amount 50000 --narrate`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.withTimeout(cmd)
			defer cancel()

			container, err := opts.container(ctx)
			if err != nil {
				return err
			}

			profile := domain.ProfileRequest{
				RiskTolerance:     risk,
				InvestmentHorizon: horizon,
				InvestmentGoal:    goal,
				InvestmentAmount:  domain.FlexFloat{Value: amount, Valid: true},
			}.Resolve()

			if narrate {
				analysis, err := container.AdvisorService.Analyze(ctx, profile)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), analysis)
			}

			result, err := container.Engine.Recommend(profile, topN)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&risk, "risk", string(domain.RiskModerate), "Risk tolerance: low, moderate or high")
	cmd.Flags().StringVar(&horizon, "horizon", domain.Horizon5To10, "Investment horizon: 1-3, 3-5, 5-10 or 10+")
	cmd.Flags().StringVar(&goal, "goal", domain.GoalWealthCreation, "Investment goal")
	cmd.Flags().Float64Var(&amount, "amount", 0, "Amount to invest")
	cmd.Flags().IntVar(&topN, "n", recommendation.DefaultTopN, "Funds per category (ignored with --narrate)")
	cmd.Flags().BoolVar(&narrate, "narrate", false, "Include the generated narrative")

	return cmd
}
