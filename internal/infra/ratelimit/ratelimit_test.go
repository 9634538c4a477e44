package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{}) {}

func TestAllow_WindowThreshold(t *testing.T) {
	l := NewMemory(5, time.Hour, nopLogger{})
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		assert.True(t, l.Allow(ctx, "jane@example.com"), "request %d must pass", i)
	}
	assert.False(t, l.Allow(ctx, "jane@example.com"), "request over the window limit must be denied")
}

func TestAllow_KeysAreIndependent(t *testing.T) {
	l := NewMemory(1, time.Hour, nopLogger{})
	ctx := context.Background()

	assert.True(t, l.Allow(ctx, "jane@example.com"))
	assert.False(t, l.Allow(ctx, "jane@example.com"))

	// Исчерпанное окно одного клиента не трогает другого
	assert.True(t, l.Allow(ctx, "bob@example.com"))
}

func TestAllow_KeyNormalization(t *testing.T) {
	l := NewMemory(1, time.Hour, nopLogger{})
	ctx := context.Background()

	assert.True(t, l.Allow(ctx, "Jane@Example.COM"))

	// Регистр и пробелы не открывают второе окно
	assert.False(t, l.Allow(ctx, "  jane@example.com  "))
}
