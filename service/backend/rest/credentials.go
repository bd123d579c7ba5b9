package rest

import (
	"context"
	"fmt"

	"github.com/viant/scy"
	"github.com/viant/scy/cred"
)

// CredentialsOption loads a secret with scy and turns it into an auth option.
// kind "basic" expects username/password credentials and yields HTTP basic
// auth; "" or "raw" sends the secret content as a bearer token.
func CredentialsOption(ctx context.Context, secrets *scy.Service, URL, key, kind string) (Option, error) {
	if secrets == nil {
		secrets = scy.New()
	}
	var target interface{}
	if kind != "" && kind != "raw" {
		targetType, err := cred.TargetType(kind)
		if err != nil {
			return nil, fmt.Errorf("invalid credentials kind %q: %w", kind, err)
		}
		target = targetType
	}
	secret, err := secrets.Load(ctx, scy.NewResource(target, URL, key))
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials from %s: %w", URL, err)
	}
	if basic, ok := secret.Target.(*cred.Basic); ok {
		return WithBasicAuth(basic.Username, basic.Password), nil
	}
	return WithBearerToken(secret.String()), nil
}
