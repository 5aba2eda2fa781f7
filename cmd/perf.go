package cmd

import (
	"fmt"
	"time"

	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/valderique/kvgo/cmd/util"
)

var perfCmd = &cobra.Command{
	Use:   "perf",
	Short: "Runs a local write/read benchmark against the store",
	Long: `Runs a local write/read benchmark against the store.

Note: this writes benchmark keys (prefix "kvs-perf-") into the store and
its write-ahead log. Point --dir at a scratch directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := util.OpenStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ops := viper.GetInt("ops")
		if ops <= 0 {
			return fmt.Errorf("ops must be positive, got %d", ops)
		}

		registry := gometrics.NewRegistry()
		setTimer := gometrics.NewRegisteredTimer("set", registry)
		getTimer := gometrics.NewRegisteredTimer("get", registry)

		for i := 0; i < ops; i++ {
			key := fmt.Sprintf("kvs-perf-%d", i)
			start := time.Now()
			if err := s.Set(key, "benchmark-value"); err != nil {
				return err
			}
			setTimer.UpdateSince(start)
		}

		for i := 0; i < ops; i++ {
			key := fmt.Sprintf("kvs-perf-%d", i)
			start := time.Now()
			if _, err := s.Get(key); err != nil {
				return err
			}
			getTimer.UpdateSince(start)
		}

		printTimer("set (append+apply)", setTimer)
		printTimer("get (index only)", getTimer)
		return nil
	},
}

func printTimer(name string, timer gometrics.Timer) {
	ps := timer.Percentiles([]float64{0.5, 0.9, 0.99})
	fmt.Printf("%s\n", name)
	fmt.Printf("  %-12s: %d\n", "ops", timer.Count())
	fmt.Printf("  %-12s: %.0f ops/sec\n", "throughput", timer.RateMean())
	fmt.Printf("  %-12s: %s\n", "mean", time.Duration(int64(timer.Mean())))
	fmt.Printf("  %-12s: %s\n", "p50", time.Duration(int64(ps[0])))
	fmt.Printf("  %-12s: %s\n", "p90", time.Duration(int64(ps[1])))
	fmt.Printf("  %-12s: %s\n", "p99", time.Duration(int64(ps[2])))
}

func init() {
	perfCmd.Flags().Int("ops", 10000, "number of set/get operations to run")
}
