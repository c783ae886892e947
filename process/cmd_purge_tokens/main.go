package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"

	"github.com/so637/personal-budget-tracker-backend/pkg/database"

	_ "github.com/lib/pq"
)

// Deletes refresh tokens that can no longer be exchanged. Runs as plain SQL so
// it can be scheduled from cron without the application stack.
func main() {
	dryRun := flag.Bool("dry-run", false, "only count what would be deleted")
	flag.Parse()

	dsn, err := database.DSNFromEnv()
	if err != nil {
		log.Fatal(err)
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	const where = `WHERE revoked_at IS NOT NULL OR expires_at < now()`
	if *dryRun {
		var n int64
		if err := db.QueryRow(`SELECT count(*) FROM refresh_tokens ` + where).Scan(&n); err != nil {
			log.Fatalf("count refresh tokens: %v", err)
		}
		fmt.Printf("dry-run: %d refresh tokens would be deleted\n", n)
		return
	}
	res, err := db.Exec(`DELETE FROM refresh_tokens ` + where)
	if err != nil {
		log.Fatalf("delete refresh tokens: %v", err)
	}
	n, _ := res.RowsAffected()
	fmt.Printf("purge done: refresh tokens deleted=%d\n", n)
}
