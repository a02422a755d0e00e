//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"immoview/internal/pkg/password"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// TestUserPassword is the plaintext behind every fixture user's hash.
const TestUserPassword = "password123"

var (
	hashOnce       sync.Once
	cachedPassword string
)

// bcrypt is slow, so hash the shared test password once per process.
func testPasswordHash(t *testing.T) string {
	t.Helper()
	hashOnce.Do(func() {
		hash, err := password.HashPassword(TestUserPassword)
		require.NoError(t, err)
		cachedPassword = hash
	})
	return cachedPassword
}

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO users (id, email, password_hash, role, is_active) VALUES ($1, $2, $3, $4, true) ON CONFLICT (email) DO NOTHING",
		userID, email, testPasswordHash(t), role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		// Already exists; fetch the existing id to keep deterministic behavior
		err = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
		require.NoError(t, err)
	}

	return userID
}

func CreateTestProperty(t *testing.T, db DBLike, ownerID uuid.UUID, title string) uuid.UUID {
	t.Helper()

	propertyID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO properties (id, owner_id, title, status) VALUES ($1, $2, $3, 'active')",
		propertyID, ownerID, title)
	require.NoError(t, err)

	return propertyID
}

func CreateTestBuyerProfile(t *testing.T, db DBLike, userID uuid.UUID) uuid.UUID {
	t.Helper()

	profileID := uuid.New()
	_, err := db.Exec(context.Background(), `
		INSERT INTO buyer_profiles (id, user_id, equity_band, timeline, purpose, household_size, schufa_available, financing_verified)
		VALUES ($1, $2, '100k-250k', '3-6 months', 'own use', 2, true, true)`,
		profileID, userID)
	require.NoError(t, err)

	return profileID
}

// CreateTestBuyerProfileSparse leaves every optional qualification column
// NULL, the state of a profile the buyer never finished filling in.
func CreateTestBuyerProfileSparse(t *testing.T, db DBLike, userID uuid.UUID) uuid.UUID {
	t.Helper()

	profileID := uuid.New()
	_, err := db.Exec(context.Background(), `
		INSERT INTO buyer_profiles (id, user_id, schufa_available, financing_verified)
		VALUES ($1, $2, true, false)`,
		profileID, userID)
	require.NoError(t, err)

	return profileID
}

func CreateTestWindow(t *testing.T, db DBLike, ownerID uuid.UUID, date time.Time, startTime, endTime string, slotDuration int) uuid.UUID {
	t.Helper()

	windowID := uuid.New()
	_, err := db.Exec(context.Background(), `
		INSERT INTO owner_availability_windows (id, owner_id, date, start_time, end_time, slot_duration, is_active, timezone)
		VALUES ($1, $2, $3, $4, $5, $6, true, 'Europe/Berlin')`,
		windowID, ownerID, date, startTime, endTime, slotDuration)
	require.NoError(t, err)

	return windowID
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables between tests
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
