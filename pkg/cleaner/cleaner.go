package cleaner

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Clean drops unapproved listings that sat in the moderation queue for
// more than 90 days, together with their saved references and reviews
// (cascaded by the schema).
func Clean(pool *pgxpool.Pool) {
	command, err := pool.Exec(context.Background(),
		`DELETE FROM listing WHERE approved = FALSE AND created_at < NOW() - INTERVAL '90 DAYS'`)
	if err != nil {
		log.Printf("ERROR|cleaner.Clean:%s", err.Error())
		return
	}
	if command.RowsAffected() > 0 {
		log.Printf("cleaner.Clean: removed %d stale unapproved listings", command.RowsAffected())
	}
}
