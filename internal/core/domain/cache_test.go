package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheEntry_IsFresh(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		entry *CacheEntry
		want  bool
	}{
		{"nil entry", nil, false},
		{"never updated", &CacheEntry{}, false},
		{"just updated", &CacheEntry{LastUpdated: now}, true},
		{"inside window", &CacheEntry{LastUpdated: now.Add(-29 * time.Minute)}, true},
		{"on the boundary", &CacheEntry{LastUpdated: now.Add(-StalenessWindow)}, true},
		{"past the window", &CacheEntry{LastUpdated: now.Add(-StalenessWindow - time.Millisecond)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.IsFresh(now))
		})
	}
}
