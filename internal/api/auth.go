package api

import "context"

// Auth and stats calls are pass-throughs over the backend contract. Token
// handling is a plain bearer convention; expired tokens surface as ordinary
// transport errors and the caller decides when to clear stored credentials.

// Signup registers a new account and returns its session.
func (c *Client) Signup(ctx context.Context, creds Credentials) (Session, error) {
	var session Session
	if err := c.postJSON(ctx, "/auth/signup", creds, &session); err != nil {
		return Session{}, err
	}
	return session, nil
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, creds Credentials) (Session, error) {
	var session Session
	if err := c.postJSON(ctx, "/auth/login", creds, &session); err != nil {
		return Session{}, err
	}
	return session, nil
}

// CurrentUser resolves the account behind the installed bearer token.
func (c *Client) CurrentUser(ctx context.Context) (Account, error) {
	var account Account
	if err := c.get(ctx, "/auth/me", &account); err != nil {
		return Account{}, err
	}
	return account, nil
}

// Logout invalidates the installed bearer token server-side.
func (c *Client) Logout(ctx context.Context) error {
	return c.postJSON(ctx, "/auth/logout", struct{}{}, nil)
}

// FetchIndexStats reports the size of the backend's document index.
func (c *Client) FetchIndexStats(ctx context.Context) (IndexStats, error) {
	var stats IndexStats
	if err := c.get(ctx, "/index-stats", &stats); err != nil {
		return IndexStats{}, err
	}
	return stats, nil
}
