// Package sanitize truncates the application tables, guarded by --dry-run and --yes.
package sanitize

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"aqso/models"
	"aqso/process/dbenv"
	"aqso/store"

	"gorm.io/gorm"
)

const DefaultTables = "refresh_tokens,profiles,users,roles,transactions,customers"

var nameRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Run executes the db_sanitize CLI with args (without the program name).
func Run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("db_sanitize", flag.ContinueOnError)
	var (
		dryRun = fs.Bool("dry-run", true, "Don't perform destructive actions; show what would be done")
		yes    = fs.Bool("yes", false, "Confirm destructive action (required to actually truncate)")
		reseed = fs.Bool("reseed", false, "After truncation, reseed roles and the admin user/profile")
		tables = fs.String("tables", DefaultTables, "Comma-separated list of tables to truncate")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	wanted, skipped := ParseTables(*tables)
	for _, s := range skipped {
		fmt.Fprintf(out, "warning: skipping invalid table name '%s'\n", s)
	}

	gdb, err := dbenv.Open()
	if err != nil {
		return err
	}
	existing := make([]string, 0, len(wanted))
	for _, t := range wanted {
		var cnt int64
		if err := gdb.Raw("SELECT count(*) FROM pg_tables WHERE schemaname = 'public' AND tablename = ?", t).Scan(&cnt).Error; err != nil {
			return fmt.Errorf("query pg_tables for %s: %w", t, err)
		}
		if cnt > 0 {
			existing = append(existing, t)
		} else {
			fmt.Fprintf(out, "info: table %s not found, skipping\n", t)
		}
	}
	if len(existing) == 0 {
		fmt.Fprintln(out, "no requested tables present in the database; nothing to do")
		return nil
	}

	fmt.Fprintln(out, "Tables considered for truncation:")
	for _, t := range existing {
		fmt.Fprintf(out, " - %s\n", t)
	}
	if *dryRun {
		fmt.Fprintln(out, "dry-run enabled; no changes will be made. Use --dry-run=false --yes to execute.")
		return nil
	}
	if !*yes {
		fmt.Fprintln(out, "Destructive operation. Pass --yes to confirm execution. Aborting.")
		return nil
	}

	stmt := TruncateStatement(existing)
	fmt.Fprintf(out, "Executing: %s\n", stmt)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := gdb.WithContext(ctx).Exec(stmt).Error; err != nil {
		return fmt.Errorf("truncate failed: %w", err)
	}
	fmt.Fprintln(out, "Truncate completed.")

	if *reseed {
		if err := reseedRolesAndAdmin(gdb); err != nil {
			return fmt.Errorf("reseed failed: %w", err)
		}
		fmt.Fprintln(out, "Reseeded roles and admin@aqso.local.")
	}
	return nil
}

// ParseTables splits a comma list into valid identifiers and rejected entries.
func ParseTables(csv string) (valid, skipped []string) {
	for _, p := range strings.Split(csv, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !nameRe.MatchString(p) {
			skipped = append(skipped, p)
			continue
		}
		valid = append(valid, p)
	}
	return valid, skipped
}

// TruncateStatement quotes already validated table names.
func TruncateStatement(tables []string) string {
	quoted := make([]string, 0, len(tables))
	for _, t := range tables {
		quoted = append(quoted, fmt.Sprintf("%q", t))
	}
	return fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", strings.Join(quoted, ", "))
}

func reseedRolesAndAdmin(gdb *gorm.DB) error {
	if err := store.SeedRoles(gdb); err != nil {
		return err
	}
	hashed, err := store.HashPassword("admin123")
	if err != nil {
		return err
	}
	if _, err := store.CreateUser(gdb, "admin@aqso.local", hashed, models.RoleAdmin, "Administrator"); err != nil && !errors.Is(err, store.ErrEmailTaken) {
		return fmt.Errorf("create admin user: %w", err)
	}
	return nil
}
