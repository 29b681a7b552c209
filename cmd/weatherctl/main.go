package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"weatherapp/internal/client"
	"weatherapp/internal/view"
	"weatherapp/pkg/observe"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "base URL of the weather service")
	timeout := flag.Duration("timeout", 10*time.Second, "request timeout")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: weatherctl [-url <base>] <location>")
		os.Exit(2)
	}
	location := flag.Arg(0)

	// Keep log output away from the rendered report.
	l := observe.NewZapLogger("weatherctl", io.Discard)

	c := client.New(*baseURL, l, nil)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	report, err := c.Lookup(ctx, location)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to retrieve weather: %s\n", err)
		os.Exit(1)
	}

	for _, line := range view.RenderCurrent(report, nil) {
		fmt.Println(line)
	}

	fmt.Println("\nHourly:")
	for _, line := range view.RenderHourly(report.Hourly, nil) {
		fmt.Println("  " + line)
	}

	fmt.Println("\nDaily:")
	for _, line := range view.RenderDaily(report.Daily) {
		fmt.Println("  " + line)
	}
}
