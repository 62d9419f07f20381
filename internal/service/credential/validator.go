package credential

import (
	"context"
	"time"

	apperrors "github.com/ytscout/ytscout/internal/errors"
	"github.com/ytscout/ytscout/internal/model"
	"github.com/ytscout/ytscout/internal/service/youtube"
)

// validationDelay spaces out probe calls so bulk validation does not itself
// trigger rate limiting.
const validationDelay = 300 * time.Millisecond

// Validator probes API keys against the search endpoint
type Validator struct {
	client youtube.Client
	delay  time.Duration
}

// NewValidator creates a validator with the default inter-probe delay
func NewValidator(client youtube.Client) *Validator {
	return &Validator{
		client: client,
		delay:  validationDelay,
	}
}

// NewValidatorWithDelay creates a validator with a custom delay (for testing)
func NewValidatorWithDelay(client youtube.Client, delay time.Duration) *Validator {
	return &Validator{
		client: client,
		delay:  delay,
	}
}

// Validate issues a minimal probe search against the key. Any API-reported
// error marks the key invalid with a translated reason; transport failures
// are reported invalid the same way.
func (v *Validator) Validate(ctx context.Context, key string) model.ValidityResult {
	_, err := v.client.Search(ctx, key, youtube.SearchRequest{
		Keyword:    "test",
		MaxResults: 1,
	})
	if err != nil {
		return model.ValidityResult{
			Valid:  false,
			Reason: apperrors.TranslateError(err),
		}
	}
	return model.ValidityResult{Valid: true}
}

// ValidateAll probes every key in the pool sequentially, recording each
// outcome in the pool's validity cache. A failing key never aborts the
// remaining validations; bulk validation itself cannot fail, only the
// context can cancel it.
func (v *Validator) ValidateAll(ctx context.Context, pool *Pool) error {
	keys := pool.Keys()
	for i, key := range keys {
		pool.SetValidity(key, v.Validate(ctx, key))

		if i < len(keys)-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(v.delay):
			}
		}
	}
	return nil
}
