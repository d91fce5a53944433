// Command quadtree talks to a running quadtree-srv:
//
//	quadtree -addr localhost:8787 collect 1 1 2.5 3
//	quadtree locate 75 75
//	quadtree contains 1 1
//	quadtree regions "leaves=true"
//	quadtree stats
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-sod/quadtree/internal/geom"
	"github.com/go-sod/quadtree/internal/integration"
	"github.com/go-sod/quadtree/internal/logging"
	"github.com/go-sod/quadtree/internal/shutdown"
)

func main() {
	addr := flag.String("addr", "localhost:8787", "address of quadtree-srv")
	timeout := flag.Duration("timeout", 10*time.Second, "request timeout")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] collect|contains|locate|regions|stats|health [args]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	ctx, done := shutdown.New()
	defer done()
	logger := logging.FromContext(ctx)

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()
	if err := run(ctx, integration.NewClient(*addr), flag.Args()); err != nil {
		cancel()
		done()
		logger.Fatal(err)
	}
}

func run(ctx context.Context, client *integration.Client, args []string) error {
	if len(args) == 0 {
		flag.Usage()
		return fmt.Errorf("command is required")
	}
	var (
		out interface{}
		err error
	)
	switch cmd, rest := args[0], args[1:]; cmd {
	case "collect", "contains", "locate":
		points, perr := parsePoints(rest)
		if perr != nil {
			return perr
		}
		switch cmd {
		case "collect":
			out, err = client.Collect(ctx, points...)
		case "contains":
			out, err = client.Contains(ctx, points...)
		default:
			out, err = client.Locate(ctx, points...)
		}
	case "regions":
		query := ""
		if len(rest) > 0 {
			query = rest[0]
		}
		out, err = client.Regions(ctx, query)
	case "stats":
		out, err = client.Stats(ctx)
	case "health":
		if err = client.Health(ctx); err == nil {
			out = map[string]string{"status": "ok"}
		}
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// parsePoints reads "x1 y1 x2 y2 ..." pairs.
func parsePoints(args []string) ([]geom.Point, error) {
	if len(args) == 0 || len(args)%2 != 0 {
		return nil, fmt.Errorf("expected x y pairs, got %d value(s)", len(args))
	}
	points := make([]geom.Point, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		x, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return nil, fmt.Errorf("x of point %d: %w", i/2, err)
		}
		y, err := strconv.ParseFloat(args[i+1], 64)
		if err != nil {
			return nil, fmt.Errorf("y of point %d: %w", i/2, err)
		}
		points = append(points, geom.NewPoint(x, y))
	}
	return points, nil
}
