// internal/vault/vault.go
//
// Minimal Vault client for secret-valued config entries.
//
// Context
// -------
// Config values may carry a `vault:` URI instead of a literal, e.g.
//
//	password: vault:secret/data/atlas#db_password
//
// ResolveValue recognises the prefix, splits mount, relative path, and key,
// and reads the secret through the KV-v2 API.  Literal values pass through
// untouched, so development boxes can run without a Vault server.
//
// A background renew loop keeps the token fresh for long-lived processes.
//
// Environment expectations
// ------------------------
// • VAULT_ADDR   – scheme and host of the Vault server.
// • VAULT_TOKEN  – initial token (falls back to ~/.vault-token).
package vault

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	vault "github.com/hashicorp/vault/api"
	"go.uber.org/zap"
)

const uriPrefix = "vault:"

// Client is safe for concurrent use.  Create once at startup.  Zero value
// is invalid.
type Client struct {
	api *vault.Client
}

// New constructs a Vault client from the standard environment and starts a
// token-renewal loop tied to ctx.
func New(ctx context.Context) (*Client, error) {
	cfg := vault.DefaultConfig()
	if err := cfg.ReadEnvironment(); err != nil {
		return nil, fmt.Errorf("vault env cfg: %w", err)
	}

	apiCli, err := vault.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("vault api: %w", err)
	}
	if tok := os.Getenv("VAULT_TOKEN"); tok != "" {
		apiCli.SetToken(tok)
	}

	c := &Client{api: apiCli}
	go c.renewLoop(ctx)
	return c, nil
}

// IsURI reports whether s carries the vault: prefix.
func IsURI(s string) bool { return strings.HasPrefix(s, uriPrefix) }

// ResolveValue returns s unchanged unless it is a `vault:` URI, in which
// case the referenced KV-v2 secret key is fetched and returned.
func (c *Client) ResolveValue(ctx context.Context, s string) (string, error) {
	if !IsURI(s) {
		return s, nil
	}

	ref := strings.TrimPrefix(s, uriPrefix)
	path, key, ok := strings.Cut(ref, "#")
	if !ok || path == "" || key == "" {
		return "", fmt.Errorf("malformed vault URI %q (want vault:<path>#<key>)", s)
	}

	mount, rel := splitMount(path)
	sec, err := c.api.KVv2(mount).Get(ctx, rel)
	if err != nil {
		return "", fmt.Errorf("vault get %s: %w", path, err)
	}

	raw, ok := sec.Data[key]
	if !ok {
		return "", fmt.Errorf("key %q not found in secret %q", key, path)
	}
	val, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("value at %s#%s is not a string", path, key)
	}
	return val, nil
}

// splitMount separates "secret/data/atlas" into mount "secret" and relative
// path "atlas".  The conventional "data/" segment of KV-v2 URIs is dropped
// because the SDK re-adds it.
func splitMount(p string) (mount, rel string) {
	parts := strings.SplitN(strings.Trim(p, "/"), "/", 2)
	mount = parts[0]
	if len(parts) == 2 {
		rel = strings.TrimPrefix(parts[1], "data/")
	}
	return mount, rel
}

// renewLoop renews the client token at a fixed cadence until ctx is done.
// Renewal failures are logged and retried on the next tick; a revoked token
// surfaces as request errors soon enough.
func (c *Client) renewLoop(ctx context.Context) {
	tick := time.NewTicker(15 * time.Minute)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			_, err := c.api.Auth().Token().RenewSelfWithContext(ctx, 0)
			if err != nil && !errors.Is(err, context.Canceled) {
				zap.S().Warnw("vault token renew failed", "err", err)
			}
		}
	}
}
