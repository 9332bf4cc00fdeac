package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/logisticsnet/logisticsnet/internal/auth"
	"github.com/logisticsnet/logisticsnet/internal/carrier"
	"github.com/logisticsnet/logisticsnet/internal/classifier"
	"github.com/logisticsnet/logisticsnet/internal/planner"
	"github.com/logisticsnet/logisticsnet/internal/refdata"
	"github.com/logisticsnet/logisticsnet/internal/synth"
)

// cli carries the global flags and the output streams shared by subcommands.
type cli struct {
	refdataPath string
	profileSeed uint64
	verbose     bool

	stdout io.Writer
	stderr io.Writer
	log    zerolog.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	c := &cli{stdout: stdout, stderr: stderr, log: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:           "logictl",
		Short:         "Logistics Net offline tool",
		Long:          `Rank carriers, plan intra-city routes and synthesize training datasets from a reference catalog`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.InfoLevel
			if c.verbose {
				level = zerolog.DebugLevel
			}
			c.log = zerolog.New(zerolog.ConsoleWriter{Out: c.stderr, TimeFormat: time.Kitchen}).
				Level(level).
				With().
				Timestamp().
				Logger()
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.refdataPath, "refdata", os.Getenv("REFDATA_PATH"), "reference catalog YAML (default: built-in catalog)")
	flags.Uint64Var(&c.profileSeed, "profile-seed", 0, "seed of the synthetic carrier profiles (default: 42)")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "debug logging on stderr")

	rootCmd.AddCommand(c.rankCmd())
	rootCmd.AddCommand(c.planCmd())
	rootCmd.AddCommand(c.carrierCmd())
	rootCmd.AddCommand(c.datasetCmd())
	rootCmd.AddCommand(c.trainCmd())
	rootCmd.AddCommand(c.tokenCmd())

	return rootCmd
}

func (c *cli) catalog() (*refdata.Catalog, error) {
	catalog, err := refdata.Load(c.refdataPath)
	if err != nil {
		return nil, fmt.Errorf("load reference data: %w", err)
	}
	return catalog, nil
}

// carrierService ranks over freshly generated in-memory profiles.
func (c *cli) carrierService(catalog *refdata.Catalog) *carrier.Service {
	gen := carrier.NewGenerator(carrier.GeneratorConfig{Seed: c.profileSeed})
	return carrier.NewService(carrier.ServiceConfig{
		Repository: carrier.NewInMemoryRepository(gen.Generate(catalog)),
		Catalog:    catalog,
		Logger:     c.log,
	})
}

func (c *cli) synthesizer(catalog *refdata.Catalog) (*synth.Synthesizer, error) {
	return synth.New(synth.Config{
		Planner:   planner.New(catalog),
		Locations: catalog.LocationNames(),
		Logger:    c.log,
	})
}

func (c *cli) printJSON(v any) error {
	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *cli) printError(message string) error {
	return c.printJSON(map[string]string{"error": message})
}

// create opens path for writing, or returns stdout for "" and "-".
func (c *cli) create(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return c.stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func (c *cli) rankCmd() *cobra.Command {
	var priorities []string
	var fragility string
	var explain bool

	cmd := &cobra.Command{
		Use:   "rank <origin> <destination>",
		Short: "Recommend carriers for a route",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := c.catalog()
			if err != nil {
				return err
			}

			q, err := carrier.NewQuery(args[0], args[1], priorities, fragility)
			if err != nil {
				return describeValidation(err)
			}

			rec, err := c.carrierService(catalog).Recommend(cmd.Context(), q)
			if errors.Is(err, carrier.ErrNoRouteData) {
				return c.printError(fmt.Sprintf("No data available for the route %s to %s.", q.Origin, q.Destination))
			}
			if err != nil {
				return err
			}

			if !explain {
				rec.Ranking = nil
			}
			return c.printJSON(rec)
		},
	}

	cmd.Flags().StringSliceVarP(&priorities, "priorities", "p", nil, "comma separated priorities: cost, speed, safety, warehouse")
	cmd.Flags().StringVarP(&fragility, "fragility", "f", string(carrier.FragilityMedium), "cargo fragility: Low, Medium or High")
	cmd.Flags().BoolVar(&explain, "explain", false, "include the full scored ranking")
	_ = cmd.MarkFlagRequired("priorities")

	return cmd
}

func describeValidation(err error) error {
	var verr *carrier.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	problems := make([]string, 0, len(verr.Errors))
	for _, fe := range verr.Errors {
		problems = append(problems, fe.Field+" "+fe.Message)
	}
	return fmt.Errorf("invalid query: %s", strings.Join(problems, "; "))
}

// planOutput mirrors the API plan response.
type planOutput struct {
	Order     []string `json:"order"`
	Cost      float64  `json:"cost"`
	FirstStop string   `json:"firstStop"`
}

func (c *cli) planCmd() *cobra.Command {
	var cargo planner.Cargo
	var product string

	cmd := &cobra.Command{
		Use:   "plan <stop>...",
		Short: "Find the cheapest visiting order of intra-city stops",
		Args:  cobra.RangeArgs(planner.MinWaypoints, planner.MaxWaypoints),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := c.catalog()
			if err != nil {
				return err
			}
			cargo.ProductType = planner.ProductType(product)

			plan, err := planner.New(catalog).PlanRoute(args, cargo)
			if err != nil {
				return fmt.Errorf("plan route: %w", err)
			}

			c.log.Debug().Strs("waypoints", args).Float64("cost", plan.Cost).Msg("planned route")
			return c.printJSON(planOutput{
				Order:     plan.Order,
				Cost:      plan.Cost,
				FirstStop: plan.FirstStop(),
			})
		},
	}

	cmd.Flags().BoolVar(&cargo.Fragile, "fragile", false, "cargo is fragile")
	cmd.Flags().BoolVar(&cargo.NeedsColdStorage, "cold", false, "cargo needs cold storage")
	cmd.Flags().StringVar(&product, "product", string(planner.ProductDocuments), "product type: Documents, Food or Electronics")

	return cmd
}

func (c *cli) carrierCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "carrier <name>",
		Short: "Show the reference details of a carrier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := c.catalog()
			if err != nil {
				return err
			}

			details, err := catalog.Carrier(args[0])
			if errors.Is(err, refdata.ErrMissingReferenceData) {
				return c.printError("Company details not found.")
			}
			if err != nil {
				return err
			}
			return c.printJSON(details)
		},
	}
}

func (c *cli) datasetCmd() *cobra.Command {
	datasetCmd := &cobra.Command{
		Use:   "dataset",
		Short: "Synthesize training datasets as CSV",
	}

	datasetCmd.AddCommand(c.intracityCmd())
	datasetCmd.AddCommand(c.carriersCmd())

	return datasetCmd
}

func (c *cli) intracityCmd() *cobra.Command {
	var opts synth.Options
	var out string

	cmd := &cobra.Command{
		Use:   "intracity",
		Short: "Synthesize the intra-city next-stop dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := c.generate(cmd.Context(), opts)
			if err != nil {
				return err
			}

			w, closeFn, err := c.create(out)
			if err != nil {
				return err
			}
			if err := synth.WriteCSV(w, ds.Rows); err != nil {
				_ = closeFn()
				return fmt.Errorf("write dataset: %w", err)
			}
			return closeFn()
		},
	}

	cmd.Flags().IntVarP(&opts.Iterations, "iterations", "n", synth.DefaultIterations, "number of samples to draw")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "concurrent planners (default: GOMAXPROCS)")
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file, - for stdout")

	return cmd
}

func (c *cli) generate(ctx context.Context, opts synth.Options) (*synth.Dataset, error) {
	catalog, err := c.catalog()
	if err != nil {
		return nil, err
	}
	s, err := c.synthesizer(catalog)
	if err != nil {
		return nil, err
	}

	ds, err := s.Generate(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("synthesize: %w", err)
	}

	c.log.Info().
		Int("requested", ds.Requested).
		Int("rows", ds.Produced()).
		Int("dropped", ds.Dropped).
		Dur("duration", ds.Duration).
		Msg("dataset synthesized")
	return ds, nil
}

func (c *cli) carriersCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "carriers",
		Short: "Synthesize the carrier top-choice dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := c.catalog()
			if err != nil {
				return err
			}
			svc := c.carrierService(catalog)

			routes, err := svc.Routes(cmd.Context())
			if err != nil {
				return err
			}
			rows, err := synth.CarrierExamples(cmd.Context(), svc, routes)
			if err != nil {
				return fmt.Errorf("rank carriers: %w", err)
			}

			w, closeFn, err := c.create(out)
			if err != nil {
				return err
			}
			if err := synth.WriteCarrierCSV(w, rows); err != nil {
				_ = closeFn()
				return fmt.Errorf("write dataset: %w", err)
			}

			c.log.Info().Int("routes", len(routes)).Int("rows", len(rows)).Msg("carrier dataset written")
			return closeFn()
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file, - for stdout")

	return cmd
}

func (c *cli) trainCmd() *cobra.Command {
	var opts synth.Options

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Fit the frequency classifier on a synthesized dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := c.generate(cmd.Context(), opts)
			if err != nil {
				return err
			}

			trainer := classifier.NewTrainer(classifier.NewFrequencyClassifier(), c.log)
			report, err := trainer.Train(cmd.Context(), ds.Rows)
			if err != nil {
				return fmt.Errorf("train: %w", err)
			}
			return c.printJSON(report)
		},
	}

	cmd.Flags().IntVarP(&opts.Iterations, "iterations", "n", 2000, "number of samples to draw")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed")

	return cmd
}

// tokenOutput is printed by the token command.
type tokenOutput struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

func (c *cli) tokenCmd() *cobra.Command {
	var cfg auth.JWTConfig
	var role string

	cmd := &cobra.Command{
		Use:   "token <subject>",
		Short: "Issue an admin or operator access token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := auth.ParseRole(role)
			if err != nil {
				return err
			}
			svc, err := auth.NewJWTService(cfg)
			if err != nil {
				return err
			}

			token, expiresAt, err := svc.GenerateAccessToken(args[0], r)
			if err != nil {
				return fmt.Errorf("generate token: %w", err)
			}
			return c.printJSON(tokenOutput{AccessToken: token, ExpiresAt: expiresAt})
		},
	}

	cmd.Flags().StringVar(&role, "role", string(auth.RoleOperator), "token role: operator or admin")
	cmd.Flags().StringVar(&cfg.SigningKey, "key", os.Getenv("JWT_SIGNING_KEY"), "signing key (default: $JWT_SIGNING_KEY)")
	cmd.Flags().StringVar(&cfg.Issuer, "issuer", envOrDefault("JWT_ISSUER", "https://api.logisticsnet.in"), "issuer claim")
	cmd.Flags().StringVar(&cfg.Audience, "audience", envOrDefault("JWT_AUDIENCE", "logisticsnet-api"), "audience claim")
	cmd.Flags().DurationVar(&cfg.Expiry, "expiry", auth.DefaultTokenExpiry, "token lifetime")

	return cmd
}

func envOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
