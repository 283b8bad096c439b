package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveDirective(t *testing.T) {
	t.Run("Should pick the first matching label in order", func(t *testing.T) {
		directive := ResolveDirective([]string{"semver:minor", "semver:major"})
		assert.Equal(t, BumpMinor, directive)
	})
	t.Run("Should skip unrelated labels", func(t *testing.T) {
		directive := ResolveDirective([]string{"bug", "semver:patch"})
		assert.Equal(t, BumpPatch, directive)
	})
	t.Run("Should default to timestamp when nothing matches", func(t *testing.T) {
		assert.Equal(t, BumpTimestamp, ResolveDirective([]string{"unrelated"}))
	})
	t.Run("Should default to timestamp for empty label set", func(t *testing.T) {
		assert.Equal(t, BumpTimestamp, ResolveDirective(nil))
	})
}
