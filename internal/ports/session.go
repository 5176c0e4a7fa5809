package ports

import "context"

type SessionClient interface {
	IsSignedIn(ctx context.Context) (bool, error)
}

type TokenProvider interface {
	AccessToken(ctx context.Context) (string, error)
}
