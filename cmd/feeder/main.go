// Feeder writes synthetic telemetry frames to a serial device (or any
// writable path, e.g. one end of a socat pty pair) so the pipeline can be
// exercised without factory hardware.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"
)

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))

func main() {
	device := flag.String("device", "/dev/ttyUSB1", "path to write frames to")
	machines := flag.Int("machines", 8, "number of machine codes to simulate")
	interval := flag.Duration("interval", time.Second, "delay between frame batches")
	flag.Parse()

	out, err := os.OpenFile(*device, os.O_WRONLY, 0)
	if err != nil {
		log.Fatalf("failed to open %s: %v", *device, err)
	}
	defer out.Close()

	counts := make([]int, *machines)
	fmt.Printf("feeding %v machines to %s every %v\n", *machines, *device, *interval)

	for {
		for i := 0; i < *machines; i++ {
			counts[i] += rnd.Intn(3)
			frame := buildFrame(101+i, counts[i])
			if _, err := fmt.Fprintln(out, frame); err != nil {
				log.Fatalf("write failed: %v", err)
			}
		}
		time.Sleep(*interval)
	}
}

func buildFrame(machineCode, count int) string {
	status := 1
	if rnd.Intn(10) == 0 {
		status = 0
	}
	cycle := rndFloat64(4.0, 12.0)
	avgCycle := rndFloat64(5.0, 10.0)
	downtime := rndFloat64(0, 1800)
	uptime := rndFloat64(1800, 7200)
	downPct := int(100 * downtime / (downtime + uptime))

	return fmt.Sprintf("%d,%d,%d,%.2f,%.2f,%d,%.1f,%.1f,%d,%d",
		machineCode, status, count, cycle, avgCycle, count/60,
		downtime, uptime, downPct, 100-downPct)
}

func rndFloat64(min, max float64) float64 {
	return min + rnd.Float64()*(max-min)
}
