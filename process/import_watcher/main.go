package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"aqso/process/dbenv"
	"aqso/process/watcher"
	"aqso/service"
	"aqso/store"

	"go.uber.org/zap"
)

// Imports .xlsx transaction workbooks from a directory, optionally watching for new ones.
func main() {
	dir := flag.String("dir", "imports", "directory to scan for .xlsx workbooks")
	watch := flag.Bool("watch", false, "keep watching the directory for new files")
	workers := flag.Int("workers", 1, "files imported in parallel")
	flag.Parse()

	log, _ := zap.NewDevelopment()
	defer log.Sync()

	gdb, err := dbenv.Open()
	if err != nil {
		log.Fatal("open db", zap.Error(err))
	}
	svc := service.NewTransactionService(store.NewTransactions(gdb), log.Named("transactions"))
	w := watcher.New(*dir, svc, log, *workers)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	failed := 0
	for _, o := range w.Scan(ctx) {
		fmt.Printf("%s: created=%d problems=%d\n", o.File, o.Created, len(o.Errors))
		for _, p := range o.Errors {
			fmt.Printf("  %s\n", p)
		}
		if o.Err != nil {
			failed++
			fmt.Printf("  failed: %v\n", o.Err)
		}
	}
	if *watch {
		if err := w.Watch(ctx); err != nil {
			log.Fatal("watch failed", zap.Error(err))
		}
		return
	}
	if failed > 0 {
		os.Exit(1)
	}
}
