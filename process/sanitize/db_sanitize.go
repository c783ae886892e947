package sanitize

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/so637/personal-budget-tracker-backend/auth"
	"github.com/so637/personal-budget-tracker-backend/pkg/database"

	"gorm.io/gorm"
)

// DefaultTables lists every application table, children first.
const DefaultTables = "refresh_tokens,transactions,budgets,categories,users"

var nameRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ParseTables splits a comma separated list, dropping blanks and anything that
// is not a plain identifier.
func ParseTables(list string) (valid, rejected []string) {
	for _, p := range strings.Split(list, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !nameRe.MatchString(p) {
			rejected = append(rejected, p)
			continue
		}
		valid = append(valid, p)
	}
	return valid, rejected
}

// TruncateStatement builds the TRUNCATE for already validated table names.
func TruncateStatement(tables []string) string {
	quoted := make([]string, 0, len(tables))
	for _, t := range tables {
		quoted = append(quoted, fmt.Sprintf("%q", t))
	}
	return fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", strings.Join(quoted, ", "))
}

// Run executes the db_sanitize CLI behavior. Exported so a small cmd/main can call it.
func Run() {
	var (
		dryRun = flag.Bool("dry-run", true, "Don't perform destructive actions; show what would be done")
		yes    = flag.Bool("yes", false, "Confirm destructive action (required to actually truncate)")
		reseed = flag.String("reseed", "", "After truncation, create this user (username:password)")
		tables = flag.String("tables", DefaultTables, "Comma-separated list of tables to truncate")
	)
	flag.Parse()

	dsn, err := database.DSNFromEnv()
	if err != nil {
		log.Fatal(err)
	}
	gdb, err := database.Open(dsn, slog.Default(), false)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	wanted, rejected := ParseTables(*tables)
	for _, p := range rejected {
		log.Printf("warning: skipping invalid table name '%s'", p)
	}
	existing, err := presentTables(gdb, wanted)
	if err != nil {
		log.Fatal(err)
	}
	if len(existing) == 0 {
		log.Println("no requested tables present in the database; nothing to do")
		return
	}

	fmt.Println("Tables considered for truncation:")
	for _, t := range existing {
		fmt.Printf(" - %s\n", t)
	}
	if *dryRun {
		fmt.Println("dry-run enabled; no changes will be made. Use --dry-run=false --yes to execute.")
		return
	}
	if !*yes {
		fmt.Println("Destructive operation. Pass --yes to confirm execution. Aborting.")
		return
	}

	stmt := TruncateStatement(existing)
	log.Printf("Executing: %s", stmt)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := gdb.WithContext(ctx).Exec(stmt).Error; err != nil {
		log.Fatalf("truncate failed: %v", err)
	}
	log.Println("Truncate completed.")

	if *reseed != "" {
		username, password, ok := strings.Cut(*reseed, ":")
		if !ok {
			log.Fatal("--reseed expects username:password")
		}
		user, err := auth.NewService(gdb, auth.Config{}).RegisterUser(ctx, username, password)
		if err != nil {
			log.Fatalf("reseed failed: %v", err)
		}
		log.Printf("created user %s id=%d", user.Username, user.ID)
	}
}

// presentTables keeps the names that exist in the public schema. Each name is
// checked with a bound parameter.
func presentTables(gdb *gorm.DB, wanted []string) ([]string, error) {
	existing := []string{}
	for _, t := range wanted {
		var cnt int64
		if err := gdb.Raw("SELECT count(*) FROM pg_tables WHERE schemaname = 'public' AND tablename = ?", t).Scan(&cnt).Error; err != nil {
			return nil, fmt.Errorf("failed to query pg_tables for %s: %w", t, err)
		}
		if cnt > 0 {
			existing = append(existing, t)
		} else {
			log.Printf("info: table %s not found, skipping", t)
		}
	}
	return existing, nil
}
