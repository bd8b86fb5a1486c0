// Package identity deletes accounts from the Firebase Authentication
// project that issues the marketplace's sign-ins.
package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"

	"estate_hub/internal/adapters/observability"
	"estate_hub/internal/domain"
)

const service = "firebase"

// ErrNotConfigured is returned by NewFirebase when no credential bundle is set.
var ErrNotConfigured = errors.New("identity: no firebase credentials configured")

// AuthClient is the subset of *auth.Client the gateway calls.
type AuthClient interface {
	GetUserByEmail(ctx context.Context, email string) (*auth.UserRecord, error)
	DeleteUser(ctx context.Context, uid string) error
}

type Gateway struct {
	c  AuthClient
	rl *rate.Limiter
}

func New(c AuthClient, rps int) *Gateway {
	if rps <= 0 {
		rps = 5
	}
	return &Gateway{c: c, rl: rate.NewLimiter(rate.Limit(rps), rps)}
}

// NewFirebase builds the admin SDK client from a service-account bundle,
// given inline (credJSON) or as a file path (credFile).
func NewFirebase(ctx context.Context, projectID, credFile, credJSON string, rps int) (*Gateway, error) {
	var opts []option.ClientOption
	switch {
	case credJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(credJSON)))
	case credFile != "":
		opts = append(opts, option.WithCredentialsFile(credFile))
	default:
		return nil, ErrNotConfigured
	}
	var cfg *firebase.Config
	if projectID != "" {
		cfg = &firebase.Config{ProjectID: projectID}
	}
	app, err := firebase.NewApp(ctx, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth: %w", err)
	}
	return New(client, rps), nil
}

// LookupUIDByEmail returns the provider uid; domain.ErrNotFound when the
// project has no account for email.
func (g *Gateway) LookupUIDByEmail(ctx context.Context, email string) (string, error) {
	if err := g.rl.Wait(ctx); err != nil {
		return "", err
	}
	start := time.Now()
	u, err := g.c.GetUserByEmail(ctx, email)
	if err != nil {
		if auth.IsUserNotFound(err) {
			observability.ObserveExternal(service, "getUserByEmail", "not_found", time.Since(start))
			return "", fmt.Errorf("identity account %q: %w", email, domain.ErrNotFound)
		}
		observability.ObserveExternal(service, "getUserByEmail", "error", time.Since(start))
		return "", err
	}
	observability.ObserveExternal(service, "getUserByEmail", "ok", time.Since(start))
	if u == nil || u.UserInfo == nil {
		return "", fmt.Errorf("identity account %q: %w", email, domain.ErrNotFound)
	}
	return u.UID, nil
}

func (g *Gateway) DeleteAccount(ctx context.Context, uid string) error {
	if err := g.rl.Wait(ctx); err != nil {
		return err
	}
	start := time.Now()
	err := g.c.DeleteUser(ctx, uid)
	switch {
	case err == nil:
		observability.ObserveExternal(service, "deleteUser", "ok", time.Since(start))
	case auth.IsUserNotFound(err):
		observability.ObserveExternal(service, "deleteUser", "not_found", time.Since(start))
		return fmt.Errorf("identity uid %q: %w", uid, domain.ErrNotFound)
	default:
		observability.ObserveExternal(service, "deleteUser", "error", time.Since(start))
	}
	return err
}
