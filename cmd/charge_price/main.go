package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/askov/ladepris-go/clock"
	"github.com/askov/ladepris-go/config"
	"github.com/askov/ladepris-go/energidata"
	"github.com/askov/ladepris-go/series"
	"github.com/lmittmann/tint"
)

func main() {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stdout, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.RFC3339Nano,
		}),
	))

	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cnfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	cs := clock.NewSystem(cnfg.Time.OffsetHours).Sample()
	provider := energidata.New(cnfg.EnergyPrice.GetArea())

	ctx, cancel := context.WithTimeout(context.Background(), cnfg.EnergyPrice.GetFetchTimeout())
	defer cancel()

	points, err := provider.GetSpotPrices(ctx, cs.Date, cs.DateTomorrow)
	if err != nil {
		panic(err)
	}

	s, err := series.Build(points, cnfg.Fees.Schedule(), cs.Month, cnfg.Station.GetSurcharge())
	if err != nil {
		panic(err)
	}

	printDay(cs.Date, s.Today)
	if s.Tomorrow.IsValid() {
		printDay(cs.DateTomorrow, s.Tomorrow.Value())
	} else {
		fmt.Println("no prices for tomorrow yet")
	}
}

func printDay(date string, prices []series.ChargePrice) {
	fmt.Printf("Charging prices for %s (DKK/kWh):\n", date)
	for _, cp := range prices {
		if cp.Price.IsValid() {
			fmt.Printf("  %02d:00  %.2f\n", cp.Hour, cp.Price.Value())
		} else {
			fmt.Printf("  %02d:00  -\n", cp.Hour)
		}
	}
}
