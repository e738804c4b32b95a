package cmd

import (
	"fmt"
	"strings"
	"time"

	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

var (
	benchCmd = &cobra.Command{
		Use:               "bench",
		Short:             "Benchmarking tool for zcached servers",
		PersistentPreRunE: setupClient,
		RunE:              runBench,
	}
)

func init() {
	setupClientFlags(benchCmd)

	key := "requests"
	benchCmd.Flags().Int(key, 10000, wrapString("Total number of requests to send"))
	key = "workers"
	benchCmd.Flags().Int(key, 10, wrapString("Number of concurrent workers"))
	key = "value-size"
	benchCmd.Flags().Int(key, 64, wrapString("Size of the value payload in bytes"))
	key = "keys"
	benchCmd.Flags().Int(key, 100, wrapString("How many different keys to spread the requests over"))
}

func runBench(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	requests := viper.GetInt("requests")
	workers := viper.GetInt("workers")
	valueSize := viper.GetInt("value-size")
	keySpread := viper.GetInt("keys")

	fmt.Println("Benchmarking tool for zcached servers")
	fmt.Println()
	fmt.Println("Configuration:")
	config := getClientConfig()
	fmt.Println(config.String())
	fmt.Printf("Requests: %d, Workers: %d, Value Size: %d bytes\n", requests, workers, valueSize)
	fmt.Println()

	value := strings.Repeat("x", valueSize)

	setTimer := gometrics.NewTimer()
	getTimer := gometrics.NewTimer()

	perWorker := requests / workers
	start := time.Now()

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		worker := w
		g.Go(func() error {
			for i := 0; i < perWorker; i++ {
				key := fmt.Sprintf("__bench:%d", (worker*perWorker+i)%keySpread)

				setStart := time.Now()
				if result := cli.Set(key, value); result.Failure() {
					return result.Err()
				}
				setTimer.UpdateSince(setStart)

				getStart := time.Now()
				if result := cli.Get(key); result.Failure() {
					return result.Err()
				}
				getTimer.UpdateSince(getStart)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	printTimer("SET", setTimer)
	printTimer("GET", getTimer)
	fmt.Printf("\nTotal: %d requests in %s (%.0f req/s)\n",
		2*workers*perWorker, elapsed.Round(time.Millisecond),
		float64(2*workers*perWorker)/elapsed.Seconds())

	return nil
}

// printTimer prints count, mean and tail latencies of a benchmark timer
func printTimer(name string, timer gometrics.Timer) {
	ps := timer.Percentiles([]float64{0.5, 0.95, 0.99})
	fmt.Printf("%-4s  count=%-8d mean=%-10s p50=%-10s p95=%-10s p99=%s\n",
		name,
		timer.Count(),
		time.Duration(int64(timer.Mean())).Round(time.Microsecond),
		time.Duration(int64(ps[0])).Round(time.Microsecond),
		time.Duration(int64(ps[1])).Round(time.Microsecond),
		time.Duration(int64(ps[2])).Round(time.Microsecond),
	)
}
