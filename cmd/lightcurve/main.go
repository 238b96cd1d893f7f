package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"ps1-lightcurve-service/internal/adapters/resolver"
	"ps1-lightcurve-service/internal/adapters/tap"
	"ps1-lightcurve-service/internal/config"
	"ps1-lightcurve-service/internal/domain"
	"ps1-lightcurve-service/internal/platform/logger"
	"ps1-lightcurve-service/internal/services"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"
)

// lightcurve resolves an object name and prints its PS1 DR2 light curve.
//
//	lightcurve [-radius arcsec] [-resolve-only] NAME...
func main() {
	radius := flag.Float64("radius", 2, "cone search radius in arcseconds")
	resolveOnly := flag.Bool("resolve-only", false, "print coordinates without querying PS1")
	flag.Parse()

	_ = godotenv.Load()
	log := logger.Setup()

	name := strings.Join(flag.Args(), " ")
	if strings.TrimSpace(name) == "" {
		fmt.Fprintln(os.Stderr, "usage: lightcurve [-radius arcsec] [-resolve-only] NAME")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", "err", err)
		os.Exit(1)
	}

	mast, err := resolver.NewMastResolver(resolver.Config{
		BaseURL:     cfg.MastBaseURL,
		UserAgent:   cfg.MastUserAgent,
		Timeout:     cfg.MastTimeout,
		MaxAttempts: cfg.MastMaxAttempts,
	})
	if err != nil {
		log.Error("build resolver", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	svc := &services.LightCurveService{
		Resolver:      services.NewCachedResolver(mast, nil),
		Catalog:       tap.NewClient(cfg.TAPBaseURL, cfg.TAPTimeout),
		MinDetections: 1,
	}

	if *resolveOnly {
		res, err := svc.Resolver.Resolve(ctx, name)
		if err != nil {
			exitOnResolveError(err)
		}
		printTarget(res)
		return
	}

	res, obj, lc, err := svc.LightCurveForName(ctx, name, *radius/3600)
	if err != nil {
		exitOnResolveError(err)
	}

	printTarget(res)
	fmt.Printf("objID %d  sep %.2f\"  nDetections %d\n\n", obj.ObjID, obj.SeparationArcsec, obj.NDetections)

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "filter\tMJD\tmag\terr")
	for _, f := range domain.Filters {
		for _, p := range lc.Bands[f] {
			magErr := "-"
			if !math.IsNaN(p.MagErr) {
				magErr = fmt.Sprintf("%.3f", p.MagErr)
			}
			fmt.Fprintf(tw, "%s\t%.5f\t%.3f\t%s\n", f, p.MJD, p.Mag, magErr)
		}
	}
	tw.Flush()
}

func printTarget(res domain.Resolution) {
	ra, dec := res.Coordinate.Sexagesimal()
	fmt.Printf("%s  RA %.6f (%s)  Dec %.6f (%s)\n", res.Name, res.Coordinate.RA, ra, res.Coordinate.Dec, dec)
}

func exitOnResolveError(err error) {
	var unknown *domain.UnknownObjectError
	if errors.As(err, &unknown) {
		fmt.Fprintln(os.Stderr, unknown.Error())
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
