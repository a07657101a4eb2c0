package main

import (
	"fmt"
	"os"

	"aqso/process/sanitize"
)

func main() {
	if err := sanitize.Run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
