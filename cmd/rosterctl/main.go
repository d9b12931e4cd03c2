package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/outpost-tools/rostering-service/internal/models"
	"github.com/outpost-tools/rostering-service/internal/rules"
	"github.com/outpost-tools/rostering-service/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// rosterctl generates shift plans offline from a catalog snapshot and a
// ruleset document, without the service's database or cache.
func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "rosterctl",
		Short:        "Offline shift-plan generation from a ruleset and an operator catalog",
		SilenceUsage: true,
	}

	cmd.AddCommand(newGenerateCommand())
	cmd.AddCommand(newRulesCommand())

	return cmd
}

type generateOptions struct {
	rulesPath   string
	catalogPath string
	requestPath string
	outputPath  string

	tradingStations       int
	manufacturingStations int
	boost                 bool
	verbose               bool
}

func newGenerateCommand() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a three-shift plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts)
		},
	}

	cmd.Flags().StringVar(&opts.rulesPath, "rules", "configs/rules.json", "path to the ruleset document")
	cmd.Flags().StringVar(&opts.catalogPath, "catalog", "", "path to the operator catalog JSON (array of operators)")
	cmd.Flags().StringVar(&opts.requestPath, "request", "", "path to a full plan request JSON; overrides station flags")
	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", "write the plan to this file instead of stdout")
	cmd.Flags().IntVar(&opts.tradingStations, "trading", 2, "number of trading stations")
	cmd.Flags().IntVar(&opts.manufacturingStations, "manufacturing", 4, "number of manufacturing stations")
	cmd.Flags().BoolVar(&opts.boost, "boost", false, "enable the quota-boost mechanic")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log allocator decisions")

	cmd.MarkFlagRequired("catalog")

	return cmd
}

func runGenerate(opts *generateOptions) error {
	ruleset, err := rules.Load(opts.rulesPath)
	if err != nil {
		return err
	}

	catalog, err := loadCatalog(opts.catalogPath)
	if err != nil {
		return err
	}

	req := models.GeneratePlanRequest{
		TradingStations:       opts.tradingStations,
		ManufacturingStations: opts.manufacturingStations,
		Boost:                 models.BoostRequest{Enabled: opts.boost},
	}
	if opts.requestPath != "" {
		raw, err := os.ReadFile(opts.requestPath)
		if err != nil {
			return fmt.Errorf("failed to read request file: %w", err)
		}
		if err := json.Unmarshal(raw, &req); err != nil {
			return fmt.Errorf("failed to parse request file: %w", err)
		}
	}

	logger := zap.NewNop()
	if opts.verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		defer logger.Sync()
	}

	scheduler := service.NewCycleScheduler(ruleset, catalog, logger)
	plan := scheduler.BuildPlan(service.RunConfig{
		TradingStations:       req.TradingStations,
		ManufacturingStations: req.ManufacturingStations,
		TradingProducts:       req.Products.Trading,
		ManufacturingProducts: req.Products.Manufacturing,
		BoostEnabled:          req.Boost.Enabled,
		BoostPreference:       ruleset.BoostPreference(),
	})

	encoded, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}
	encoded = append(encoded, '\n')

	if opts.outputPath != "" {
		if err := os.WriteFile(opts.outputPath, encoded, 0o644); err != nil {
			return fmt.Errorf("failed to write plan: %w", err)
		}
		return nil
	}

	_, err = os.Stdout.Write(encoded)
	return err
}

func newRulesCommand() *cobra.Command {
	var rulesPath string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the compiled rule table in allocation order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ruleset, err := rules.Load(rulesPath)
			if err != nil {
				return err
			}

			for _, rule := range ruleset.Summaries() {
				kind := "combo"
				if rule.ApplyEach {
					kind = "each"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %-6s prio=%-3d synergy=%-6.1f %s\n",
					rule.Category, kind, rule.Priority, rule.Synergy, rule.Description)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&rulesPath, "rules", "configs/rules.json", "path to the ruleset document")

	return cmd
}

func loadCatalog(path string) (*models.Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var operators []models.Operator
	if err := json.Unmarshal(raw, &operators); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	return models.NewCatalog(operators), nil
}
