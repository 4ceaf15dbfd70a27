package commands

import (
	"context"
	"fmt"
	"io"

	validation "github.com/jellydator/validation"

	"github.com/allisson/fieldcrypt/internal/app"
	"github.com/allisson/fieldcrypt/internal/config"
	appvalidation "github.com/allisson/fieldcrypt/internal/validation"
)

// RunCheckConfig validates the deployed key material without touching any data.
//
// It checks the MASTER_KEY encoding, loads (and, in KMS mode, unwraps) the
// master key, and derives the key pair for every listed dataset, reporting
// per-dataset status. Intended as a deploy-time gate: a non-zero exit means
// the engine would fail at first use.
func RunCheckConfig(ctx context.Context, datasets []string, w io.Writer) error {
	cfg := config.Load()

	// Surface encoding problems before key derivation. In KMS mode the value
	// is wrapped ciphertext of arbitrary length, so only the base64 rule applies.
	rules := []validation.Rule{validation.Required, appvalidation.Base64}
	if cfg.KMSKeyURI == "" {
		rules = append(rules, appvalidation.Key256)
	}
	if err := validation.Validate(cfg.MasterKey, rules...); err != nil {
		fmt.Fprintf(w, "master key: INVALID (%v)\n", err)
		return appvalidation.WrapValidationError(err)
	}

	container := app.NewContainer(cfg)
	logger := container.Logger()
	defer closeContainer(container, logger)

	if _, err := container.MasterKey(ctx); err != nil {
		fmt.Fprintf(w, "master key: INVALID (%v)\n", err)
		return err
	}
	fmt.Fprintln(w, "master key: OK")

	keyCache, err := container.KeyCache(ctx)
	if err != nil {
		return err
	}

	var firstErr error
	for _, dataset := range datasets {
		if _, err := keyCache.Keys(dataset); err != nil {
			fmt.Fprintf(w, "dataset %q: INVALID (%v)\n", dataset, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		fmt.Fprintf(w, "dataset %q: OK\n", dataset)
	}

	return firstErr
}
