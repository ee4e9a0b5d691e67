package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/nvrthles/river-pod/pod"
)

func main() {
	flag.Parse()

	f, err := os.Create("default.pgo")
	if err != nil {
		log.Fatal(err)
	}
	pprof.StartCPUProfile(f)
	defer pprof.StopCPUProfile()

	log.Printf("warming up")

	benchmarkPropagate(true)
	benchmarkDirect(true)
}

var (
	ww    = []int{1, 10, 100, 1_000}
	hh    = []int{1, 10, 100, 1_000}
	iters = 100
)

func addOne(v int) int {
	return v + 1
}

// w independent chains of h derived providers hanging off one state,
// each chain terminated by a subscription. One Set + Flush per sample.
func benchmarkPropagate(shouldRender bool) {
	tbl := table.NewWriter()
	tbl.SetTitle("Deferred Propagation")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			c := pod.NewContainer(pod.WithOnError(func(err error) {
				log.Panic(err)
			}))
			src := pod.NewState(1)
			for i := 0; i < w; i++ {
				last := pod.Combine1(src, addOne)
				for j := 1; j < h; j++ {
					last = pod.Combine1(last, addOne)
				}
				pod.Listen(c, last, func(int) {})
			}
			c.Flush()

			for i := 0; i < iters; i++ {
				start := time.Now()
				pod.Update(c, src, addOne)
				c.Flush()
				tach.AddTime(time.Since(start))
			}

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("propagate: %d * %d", w, h),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
				},
			})
			c.Dispose()
		}
	}

	if shouldRender {
		tbl.Render()
	}
}

// w listeners on a single state, synchronous delivery per Set.
func benchmarkDirect(shouldRender bool) {
	tbl := table.NewWriter()
	tbl.SetTitle("Direct Notification")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, w := range ww {
		tach := tachymeter.New(&tachymeter.Config{Size: iters})

		c := pod.NewContainer(pod.WithOnError(func(err error) {
			log.Panic(err)
		}))
		src := pod.NewState(1)
		sink := 0
		for i := 0; i < w; i++ {
			pod.Listen(c, src, func(v int) { sink += v })
		}

		for i := 0; i < iters; i++ {
			start := time.Now()
			pod.Update(c, src, addOne)
			tach.AddTime(time.Since(start))
		}

		calc := tach.Calc()
		tbl.AppendRows([]table.Row{
			{
				fmt.Sprintf("notify: %d listeners", w),
				calc.Time.Avg,
				calc.Time.Min,
				calc.Time.P75,
				calc.Time.P99,
				calc.Time.Max,
			},
		})
		c.Dispose()
	}

	if shouldRender {
		tbl.Render()
	}
}
