package integration_test

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/ozanyld/cinema-reservation-api/internal/app"
	"github.com/ozanyld/cinema-reservation-api/internal/events"
	"github.com/ozanyld/cinema-reservation-api/internal/mailer"
	"github.com/ozanyld/cinema-reservation-api/internal/repository"
	appvalidator "github.com/ozanyld/cinema-reservation-api/internal/validator"
)

type TestApp struct {
	App    *app.Application
	DB     *pgxpool.Pool
	Mailer *mailer.MockMailer
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	validator := appvalidator.NewValidator()
	mockMailer := mailer.NewMockMailer()

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	sessionManager := app.NewSessionManager(redisClient)

	movieRepo := repository.NewPostgresMovieRepository(db)
	sessionRepo := repository.NewPostgresSessionRepository(db)
	orderRepo := repository.NewPostgresOrderRepository(db)

	application := app.NewApp(
		cfg,
		logger,
		db,
		redisClient,
		validator,
		mockMailer,
		sessionManager,
		events.NoopPublisher{},
		movieRepo,
		sessionRepo,
		orderRepo,
	)

	return &TestApp{
		App:    application,
		DB:     db,
		Mailer: mockMailer,
	}, nil
}

// authenticatedUserCookies mints a session cookie for the default test user,
// the same way the identity provider would before handing the session over.
func (a *TestApp) authenticatedUserCookies(t testing.TB) []*http.Cookie {
	return a.userCookies(t, TestUserId, TestUserEmail)
}

func (a *TestApp) userCookies(t testing.TB, userId int, email string) []*http.Cookie {
	t.Helper()

	sm := a.App.SessionManager()

	ctx, err := sm.Load(context.Background(), "")
	require.NoError(t, err)

	sm.Put(ctx, app.SessionKeyUserId.String(), userId)
	if email != "" {
		sm.Put(ctx, app.SessionKeyUserEmail.String(), email)
	}

	token, _, err := sm.Commit(ctx)
	require.NoError(t, err)

	return []*http.Cookie{{Name: sm.Cookie.Name, Value: token}}
}
