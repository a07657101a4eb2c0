package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"aqso/process/dbenv"
	"aqso/process/report"
)

func main() {
	month := flag.String("month", time.Now().Format("2006-01"), "month to report (YYYY-MM)")
	list := flag.Bool("list", false, "list matching rows")
	flag.Parse()

	gdb, err := dbenv.Open()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	rows, err := report.Load(context.Background(), gdb, *month)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	s, err := report.Summarize(*month, rows)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	report.Print(os.Stdout, s, *list)
}
