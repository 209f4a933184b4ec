package urlsign

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestSignOptionsResolve tests defaulting of method and expiration
func TestSignOptionsResolve(t *testing.T) {
	now := time.Unix(1700000000, 0)

	t.Run("DefaultMethodIsGet", func(t *testing.T) {
		resolved := SignOptions{}.resolve(now)
		assert.Equal(t, "GET", resolved.Method)
	})

	t.Run("ExplicitMethodKept", func(t *testing.T) {
		resolved := SignOptions{Method: "PUT"}.resolve(now)
		assert.Equal(t, "PUT", resolved.Method)
	})

	t.Run("DefaultExpiryIs300Seconds", func(t *testing.T) {
		resolved := SignOptions{}.resolve(now)
		assert.Equal(t, now.Add(300*time.Second), resolved.Expires)
	})

	t.Run("ExpiresInDerivesAbsoluteExpiry", func(t *testing.T) {
		resolved := SignOptions{ExpiresIn: time.Minute}.resolve(now)
		assert.Equal(t, now.Add(time.Minute), resolved.Expires)
	})

	t.Run("ResolveIsIdempotent", func(t *testing.T) {
		first := SignOptions{ExpiresIn: time.Minute}.resolve(now)
		later := first.resolve(now.Add(time.Hour))
		assert.Equal(t, first.Expires, later.Expires)
		assert.Equal(t, first, later)
	})

	t.Run("CallerOptionsNotMutated", func(t *testing.T) {
		original := SignOptions{}
		_ = original.resolve(now)
		assert.True(t, original.Expires.IsZero())
		assert.Empty(t, original.Method)
	})
}

// TestSignOptionsIssuer tests explicit issuer priority
func TestSignOptionsIssuer(t *testing.T) {
	tests := []struct {
		name string
		opts SignOptions
		want string
	}{
		{
			name: "GoogleAccessID wins over ClientEmail",
			opts: SignOptions{GoogleAccessID: "a@example.com", ClientEmail: "b@example.com"},
			want: "a@example.com",
		},
		{
			name: "ClientEmail used when GoogleAccessID empty",
			opts: SignOptions{ClientEmail: "b@example.com"},
			want: "b@example.com",
		},
		{
			name: "both empty",
			opts: SignOptions{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.opts.issuer())
		})
	}
}
