// Package watcher imports transaction workbooks dropped into a directory.
// Each file is read, created through the transaction service and then moved
// to processed/ or failed/ next to it.
package watcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"aqso/pkg/spreadsheet"
	"aqso/service"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const (
	ProcessedDir = "processed"
	FailedDir    = "failed"

	settleDelay  = 300 * time.Millisecond
	tickInterval = 250 * time.Millisecond
)

// Importer is the part of the transaction service the watcher needs.
type Importer interface {
	Import(ctx context.Context, rows []service.ImportRow) (service.ImportResult, error)
}

type Watcher struct {
	dir     string
	imp     Importer
	log     *zap.Logger
	workers int
}

// New returns a watcher for dir. workers below 1 means one worker, which
// keeps receipt numbers in file name order.
func New(dir string, imp Importer, log *zap.Logger, workers int) *Watcher {
	if log == nil {
		log = zap.NewNop()
	}
	if workers < 1 {
		workers = 1
	}
	return &Watcher{dir: dir, imp: imp, log: log, workers: workers}
}

// Outcome is the result of one file.
type Outcome struct {
	File    string
	Created int
	Errors  []string
	Err     error
}

// Scan imports every workbook currently in the directory.
func (w *Watcher) Scan(ctx context.Context) []Outcome {
	files := listWorkbooks(w.dir)
	w.log.Info("scanning", zap.String("dir", w.dir), zap.Int("files", len(files)), zap.Int("workers", w.workers))
	ch := make(chan string, len(files))
	for _, f := range files {
		ch <- f
	}
	close(ch)
	return w.run(ctx, ch)
}

// Watch imports workbooks as they appear until ctx is done. A file is
// picked up once it has not changed for a short settle delay.
func (w *Watcher) Watch(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()
	if err := fw.Add(w.dir); err != nil {
		return err
	}
	w.log.Info("watching", zap.String("dir", w.dir))

	fileCh := make(chan string, 256)
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.run(ctx, fileCh)
	}()

	pending := map[string]time.Time{}
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			close(fileCh)
			<-done
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				close(fileCh)
				<-done
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			name := filepath.Base(ev.Name)
			if isWorkbook(name) {
				pending[name] = time.Now()
			}
		case <-ticker.C:
			now := time.Now()
			for name, t := range pending {
				if now.Sub(t) > settleDelay {
					fileCh <- name
					delete(pending, name)
				}
			}
		case err, ok := <-fw.Errors:
			if !ok {
				close(fileCh)
				<-done
				return nil
			}
			w.log.Warn("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) run(ctx context.Context, files <-chan string) []Outcome {
	var (
		mu  sync.Mutex
		out []Outcome
		wg  sync.WaitGroup
	)
	for i := 0; i < w.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range files {
				o := w.ProcessFile(ctx, name)
				mu.Lock()
				out = append(out, o)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	sort.Slice(out, func(i, j int) bool { return out[i].File < out[j].File })
	return out
}

// ProcessFile imports one workbook from the directory and moves it away.
func (w *Watcher) ProcessFile(ctx context.Context, name string) Outcome {
	o := Outcome{File: name}
	src := filepath.Join(w.dir, name)
	o.Err = w.importFile(ctx, src, &o)

	dest := ProcessedDir
	if o.Err != nil {
		dest = FailedDir
		w.log.Error("import failed", zap.String("file", name), zap.Error(o.Err))
	} else {
		w.log.Info("imported", zap.String("file", name), zap.Int("created", o.Created), zap.Strings("errors", o.Errors))
	}
	if err := moveInto(src, filepath.Join(w.dir, dest)); err != nil {
		w.log.Warn("move failed", zap.String("file", name), zap.String("dest", dest), zap.Error(err))
	}
	return o
}

func (w *Watcher) importFile(ctx context.Context, path string, o *Outcome) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	rows, problems, err := spreadsheet.ReadTransactions(f)
	if err != nil {
		return err
	}
	res, err := w.imp.Import(ctx, rows)
	o.Created = len(res.Created)
	o.Errors = append(problems, res.Errors...)
	if err != nil {
		return fmt.Errorf("import stopped after %d rows: %w", o.Created, err)
	}
	return nil
}

func listWorkbooks(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() && isWorkbook(e.Name()) {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out
}

func isWorkbook(name string) bool {
	// ~$ files are Excel lock files
	if strings.HasPrefix(name, "~$") {
		return false
	}
	return strings.EqualFold(filepath.Ext(name), ".xlsx")
}

// moveInto moves src into dir, trying rename first and falling back to copy+remove.
func moveInto(src, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	dst := filepath.Join(dir, filepath.Base(src))
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	return copyRemove(src, dst)
}

func copyRemove(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
