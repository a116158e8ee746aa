package database

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/jask/showcase/internal/database/repository"
)

// DemoEmail is the account seeded on first start so sign-in works out of the box.
const DemoEmail = "demo@showcase.local"

// UserID derives a stable id from an email address.
func UserID(email string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("user:"+strings.ToLower(strings.TrimSpace(email)))).String()
}

// SeedDefaults ensures the demo user exists. It is idempotent and safe to run
// on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	users := repository.NewUserRepo(db)
	existing, err := users.ByEmail(ctx, DemoEmail)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	return users.Upsert(ctx, repository.User{ID: UserID(DemoEmail), Email: DemoEmail, DisplayName: "Demo"})
}
