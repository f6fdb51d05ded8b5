package main

import (
	"flag"
	"fmt"
	"os"

	"checkup/process/report"
)

func main() {
	reporter := flag.String("reporter", "", "print history for one reporter instead of the summary table")
	flag.Parse()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		fmt.Fprintln(os.Stderr, "DB_DSN not set; export DB_DSN and retry")
		os.Exit(2)
	}

	report.Run(*reporter)
}
