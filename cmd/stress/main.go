package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/nvrthles/river-pod/pod"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

type stressConfig struct {
	name       string
	instances  int   // live family instances per round
	rounds     int64 // churn rounds
	writeEvery int   // rounds between state writes per instance
	overrideAt int   // rounds between override swaps, 0 disables
}

type stressResult struct {
	notifications int64
	flushes       uint64
	elements      int
	duration      time.Duration
}

const repeatsKey = "repeats"

func main() {
	cmd := &cli.Command{
		Name:  "stress",
		Usage: "Soak the provider graph with family churn, writes and overrides",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  repeatsKey,
				Usage: "Repeats per scenario, best run is reported",
				Value: 3,
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfgs := []stressConfig{
		{
			name:       "churn small",
			instances:  10,
			rounds:     10_000,
			writeEvery: 1,
		},
		{
			name:       "churn wide",
			instances:  500,
			rounds:     500,
			writeEvery: 1,
		},
		{
			name:       "churn with overrides",
			instances:  100,
			rounds:     2_000,
			writeEvery: 2,
			overrideAt: 10,
		},
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{
		"scenario", "instances", "rounds", "notifications",
		"flushes", "elements left", "heap", "time", "notify rate/ms",
	})

	repeats := int(cmd.Uint(repeatsKey))
	for _, cfg := range cfgs {
		log.Printf("Running '%s' scenario", cfg.name)

		best := stressResult{duration: time.Hour}
		for i := 0; i < repeats; i++ {
			log.Printf("Running '%s' scenario, repeat %d/%d", cfg.name, i+1, repeats)
			res := runScenario(cfg)
			if res.duration < best.duration {
				best = res
			}
		}

		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		rate := float64(best.notifications) / (float64(best.duration) / float64(time.Millisecond))
		table.Append([]string{
			cfg.name,
			fmt.Sprint(cfg.instances),
			humanize.Comma(cfg.rounds),
			humanize.Comma(best.notifications),
			humanize.Comma(int64(best.flushes)),
			fmt.Sprint(best.elements),
			humanize.Bytes(m.HeapAlloc),
			fmt.Sprint(best.duration),
			humanize.Comma(int64(rate)),
		})
	}
	table.Render()
	return nil
}

// Each round subscribes a derived provider per family instance, writes
// the backing states, flushes, then closes every subscription so the
// whole cohort is disposed before the next round.
func runScenario(cfg stressConfig) stressResult {
	counters := pod.NewStateFamily(func(arg int) int { return arg })
	doubled := pod.NewFamily(func(r *pod.Ref, arg int) (int, error) {
		v, err := counters.Of(arg).Watch(r)
		if err != nil {
			return 0, err
		}
		return v * 2, nil
	})

	c := pod.NewContainer(pod.WithOnError(func(err error) {
		log.Panic(err)
	}))
	defer c.Dispose()

	var notifications int64
	start := time.Now()

	for round := int64(0); round < cfg.rounds; round++ {
		subs := make([]*pod.Subscription, 0, cfg.instances)
		for i := 0; i < cfg.instances; i++ {
			_, sub, err := pod.Listen(c, doubled.Of(i), func(int) {
				notifications++
			})
			if err != nil {
				log.Panic(err)
			}
			subs = append(subs, sub)
		}

		if cfg.writeEvery > 0 && round%int64(cfg.writeEvery) == 0 {
			for i := 0; i < cfg.instances; i++ {
				if err := pod.Set(c, counters.Of(i), int(round)+i); err != nil {
					log.Panic(err)
				}
			}
		}

		if cfg.overrideAt > 0 && round%int64(cfg.overrideAt) == 0 {
			if err := c.UpdateOverrides(
				pod.OverrideArg(counters, 0, int(round)*10),
			); err != nil {
				log.Panic(err)
			}
		}

		c.Flush()

		for _, sub := range subs {
			sub.Close()
		}
	}

	stats := c.Stats()
	return stressResult{
		notifications: notifications,
		flushes:       stats.Flushes,
		elements:      stats.Elements,
		duration:      time.Since(start),
	}
}
