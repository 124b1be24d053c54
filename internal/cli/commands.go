package cli

import (
	"github.com/alaingilbert/seedrand"
	"github.com/alaingilbert/seedrand/internal/stats"
	"github.com/alaingilbert/seedrand/workers"
	"github.com/spf13/cobra"
)

func newIntsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ints",
		Short: "Draw raw values in [0, 2^31-1]",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g := a.generator()
			values := make([]int64, a.count())
			for i := range values {
				values[i] = int64(g.NextInt())
			}
			return a.write(cmd, Report{Kind: "ints", Seed: g.Seed(), Values: values})
		},
	}
}

func newLongsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "longs",
		Short: "Draw 64-bit values, two raw draws each",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g := a.generator()
			values := make([]int64, a.count())
			for i := range values {
				values[i] = g.NextLong()
			}
			return a.write(cmd, Report{Kind: "longs", Seed: g.Seed(), Values: values})
		},
	}
}

func newBoundedCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bounded",
		Short: "Draw values uniformly distributed in [0, bound)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bound := a.v.GetInt32("bound")
			g := a.generator()
			values := make([]int64, a.count())
			for i := range values {
				v, err := g.NextIntN(bound)
				if err != nil {
					return err
				}
				values[i] = int64(v)
			}
			return a.write(cmd, Report{Kind: "bounded", Seed: g.Seed(), Bound: bound, Values: values})
		},
	}
	cmd.Flags().Int32P("bound", "b", 100, "exclusive upper bound")
	return cmd
}

func newUniformityCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uniformity",
		Short: "Check bounded draws with a chi-square test",
		Long: `Draw --samples bounded values, count them per bucket and compare the
chi-square statistic against mean + 5 standard deviations. For example:
  seedrand uniformity --bound 7 --samples 100000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bound := a.v.GetInt32("bound")
			g := a.generator()
			counts, err := stats.Histogram(bound, a.v.GetInt("samples"), g.NextIntN)
			if err != nil {
				return err
			}
			uniform := stats.Uniform(counts)
			return a.write(cmd, Report{
				Kind:      "uniformity",
				Seed:      g.Seed(),
				Bound:     bound,
				Counts:    counts,
				ChiSquare: stats.ChiSquare(counts),
				Threshold: stats.Threshold(len(counts), 5),
				Uniform:   &uniform,
			})
		},
	}
	flags := cmd.Flags()
	flags.Int32P("bound", "b", 16, "number of buckets")
	flags.Int("samples", 100_000, "number of draws")
	return cmd
}

func newWorkersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workers",
		Short: "Draw from several goroutines at once",
		Long: `Start --workers goroutines, worker i seeded with i*12345, each drawing --count
values. With --shared all workers reseed and draw from a single locked
generator, so their outputs interleave. For example:
  seedrand workers --workers 5 --count 3 --shared`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := []workers.Option{workers.WithLogger(a.logger)}
			if a.v.GetBool("shared") {
				opts = append(opts, workers.WithShared(seedrand.NewLocked(seedrand.WithClock(a.clock))))
			}
			pool := workers.New(opts...)
			results, err := workers.Run(cmd.Context(), pool, a.v.GetInt("workers"),
				workers.Draw(a.count(), func(r seedrand.Random) int32 { return r.NextInt() }))
			if err != nil {
				return err
			}
			report := Report{Kind: "workers"}
			for _, r := range results {
				wr := WorkerReport{Index: r.Index, Seed: r.Seed, Values: make([]int64, len(r.Value))}
				for i, v := range r.Value {
					wr.Values[i] = int64(v)
				}
				report.Workers = append(report.Workers, wr)
			}
			return a.write(cmd, report)
		},
	}
	flags := cmd.Flags()
	flags.IntP("workers", "w", 5, "number of workers")
	flags.Bool("shared", false, "share one locked generator between workers")
	return cmd
}
