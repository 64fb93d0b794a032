package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func prepareRequest(method, path string, body io.Reader, headers map[string]string, cookies []*http.Cookie) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	t.Helper()

	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore nondeterministic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		return k == "timestamp" || k == "requestId" || k == "createdAt"
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func executeSQLFile(t testing.TB, db *pgxpool.Pool, path string) {
	t.Helper()

	script, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = db.Exec(context.Background(), string(script))
	require.NoError(t, err)
}

func seedCatalog(t testing.TB, app *TestApp) {
	t.Helper()

	executeSQLFile(t, app.DB, "testdata/catalog_down.sql")
	executeSQLFile(t, app.DB, "testdata/catalog_up.sql")
}

// insertTickets sells the given (row, seat) pairs of a session directly in
// the database, bypassing the API.
func insertTickets(t testing.TB, app *TestApp, sessionId int, seats [][2]int) {
	insertOrderWithTickets(t, app, OtherUserId, "0", sessionId, seats)
}

func insertOrderWithTickets(t testing.TB, app *TestApp, userId int, totalPrice string, sessionId int, seats [][2]int) {
	t.Helper()

	ctx := context.Background()

	var orderId int
	err := app.DB.QueryRow(ctx,
		"INSERT INTO orders (user_id, total_price) VALUES ($1, $2) RETURNING id",
		userId, totalPrice).Scan(&orderId)
	require.NoError(t, err)

	for _, seat := range seats {
		_, err := app.DB.Exec(ctx,
			"INSERT INTO tickets (order_id, movie_session_id, seat_row, seat_num) VALUES ($1, $2, $3, $4)",
			orderId, sessionId, seat[0], seat[1])
		require.NoError(t, err)
	}
}

func countRows(t testing.TB, db *pgxpool.Pool, query string, args ...any) int {
	t.Helper()

	var count int
	err := db.QueryRow(context.Background(), query, args...).Scan(&count)
	require.NoError(t, err)

	return count
}
