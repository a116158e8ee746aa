package repository_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/showcase/internal/database"
	"github.com/jask/showcase/internal/database/repository"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	migrations, err := filepath.Abs("../migrations")
	require.NoError(t, err)
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(db, migrations))
	return db
}

func seedUser(t *testing.T, db *sql.DB, id, email string) {
	t.Helper()
	require.NoError(t, repository.NewUserRepo(db).Upsert(context.Background(), repository.User{ID: id, Email: email, DisplayName: email}))
}

func TestBookmarkRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	db := openTestDB(t)
	seedUser(t, db, "u1", "ada@example.com")
	repo := repository.NewBookmarkRepo(db)

	got, err := repo.FindOne(ctx, "u1", "linear")
	require.NoError(t, err)
	require.Nil(t, got)

	b, err := repo.Insert(ctx, "u1", "linear")
	require.NoError(t, err)
	require.Equal(t, "u1", b.UserID)
	require.Equal(t, "linear", b.WebsiteSlug)
	require.NotEmpty(t, b.ID)

	again, err := repo.Insert(ctx, "u1", "linear")
	require.NoError(t, err)
	require.Equal(t, b.ID, again.ID, "duplicate insert keeps the stored row")

	got, err = repo.FindOne(ctx, "u1", "linear")
	require.NoError(t, err)
	require.NotNil(t, got)

	require.NoError(t, repo.Delete(ctx, "u1", "linear"))
	require.NoError(t, repo.Delete(ctx, "u1", "linear"))
	got, err = repo.FindOne(ctx, "u1", "linear")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestBookmarksAreScopedToOwner(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	seedUser(t, db, "u1", "ada@example.com")
	seedUser(t, db, "u2", "grace@example.com")
	repo := repository.NewBookmarkRepo(db)

	_, err := repo.Insert(ctx, "u1", "linear")
	require.NoError(t, err)
	_, err = repo.Insert(ctx, "u1", "vercel")
	require.NoError(t, err)
	_, err = repo.Insert(ctx, "u2", "linear")
	require.NoError(t, err)

	mine, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	slugs := []string{mine[0].WebsiteSlug, mine[1].WebsiteSlug}
	require.ElementsMatch(t, []string{"linear", "vercel"}, slugs)

	theirs, err := repo.FindOne(ctx, "u2", "vercel")
	require.NoError(t, err)
	require.Nil(t, theirs)
}

func TestBookmarkRequiresKnownUser(t *testing.T) {
	db := openTestDB(t)
	_, err := repository.NewBookmarkRepo(db).Insert(context.Background(), "ghost", "linear")
	require.Error(t, err)
}

func TestUserLookups(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	users := repository.NewUserRepo(db)
	seedUser(t, db, "u1", "ada@example.com")

	u, err := users.ByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, "u1", u.ID)

	u, err = users.ByID(ctx, "missing")
	require.NoError(t, err)
	require.Nil(t, u)

	require.NoError(t, users.Upsert(ctx, repository.User{ID: "u1", Email: "ada@example.com", DisplayName: "Ada"}))
	u, err = users.ByID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "Ada", u.DisplayName)
}

func TestSessionStartReplacesActive(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	seedUser(t, db, "u1", "ada@example.com")
	seedUser(t, db, "u2", "grace@example.com")
	sessions := repository.NewSessionRepo(db)

	s, err := sessions.Active(ctx)
	require.NoError(t, err)
	require.Nil(t, s)

	require.NoError(t, sessions.Start(ctx, "s1", "u1"))
	require.NoError(t, sessions.Start(ctx, "s2", "u2"))

	s, err = sessions.Active(ctx)
	require.NoError(t, err)
	require.NotNil(t, s)
	require.Equal(t, "s2", s.ID)
	require.Equal(t, "u2", s.UserID)
	require.Nil(t, s.EndedAt)

	var active int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions WHERE ended_at IS NULL`).Scan(&active))
	require.Equal(t, 1, active)

	require.NoError(t, sessions.EndAll(ctx))
	s, err = sessions.Active(ctx)
	require.NoError(t, err)
	require.Nil(t, s)
}
