package profilepeek_test

import (
	"testing"

	"github.com/profilepeek/profilepeek"
	"github.com/stretchr/testify/assert"
)

func TestFormatCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want string
	}{
		{"1200", "1,200"},
		{"987", "987"},
		{"3.4K", "3,400"},
		{"1.5M", "1,500,000"},
		{"2B", "2,000,000,000"},
		{"12k", "12,000"},
		{"", "Unknown"},
		{"abcK", "abcK"},   // malformed coefficient stays as-is
		{"1,234", "1,234"}, // already grouped, no suffix
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, profilepeek.FormatCount(tt.raw))
		})
	}
}

func TestCountValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want int64
	}{
		{"1200", 1200},
		{"3.4K", 3400},
		{"1.5M", 1500000},
		{"", 0},
		{"abcK", 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, profilepeek.CountValue(tt.raw))
		})
	}
}

func TestNewFollowerCount(t *testing.T) {
	t.Parallel()

	t.Run("derives all forms from a suffixed value", func(t *testing.T) {
		t.Parallel()

		c := profilepeek.NewFollowerCount("3.4K")

		assert.Equal(t, "3.4K", c.Raw)
		assert.Equal(t, "3,400", c.Formatted)
		assert.Equal(t, int64(3400), c.Numeric)
	})

	t.Run("absent value formats to the sentinel", func(t *testing.T) {
		t.Parallel()

		c := profilepeek.NewFollowerCount("")

		assert.Equal(t, profilepeek.UnknownCount, c.Formatted)
		assert.Zero(t, c.Numeric)
	})
}

func TestIsRawCount(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"1200", "1,234", "3.4K", "1.5M", "12k"} {
		assert.True(t, profilepeek.IsRawCount(valid), "input %q", valid)
	}
	for _, invalid := range []string{"", "Followers", "1 200", "12F", "-5"} {
		assert.False(t, profilepeek.IsRawCount(invalid), "input %q", invalid)
	}
}
