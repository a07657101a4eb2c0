package main

import (
	"context"
	"flag"
	"log"
	"os"

	"aqso/process/dbenv"
	"aqso/process/legacy"
)

// Loads the legacy JSON data files into the database. Dry-run by default.
func main() {
	dir := flag.String("dir", "backend", "directory holding users.json, profiles.json, transactions.json, customers.json")
	dry := flag.Bool("dry-run", true, "dry-run: don't write to DB")
	flag.Parse()

	data, err := legacy.Load(*dir)
	if err != nil {
		log.Fatalf("load: %v", err)
	}
	db, err := dbenv.Open()
	if err != nil && !*dry {
		log.Fatal(err)
	}
	if err := legacy.Apply(context.Background(), db, data, *dry, os.Stdout); err != nil {
		log.Fatalf("import: %v", err)
	}
}
