package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeText_SizeLimit(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"Under Limit", MaxTextSize - 1, false},
		{"Exact Limit", MaxTextSize, false},
		{"Over Limit", MaxTextSize + 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SanitizeText(strings.Repeat("a", tt.size))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidValue)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSanitizeText_ControlChars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Normal Text", "^spoiler$", "^spoiler$"},
		{"Safe Controls", "a\nb\tc", "a\nb\tc"},
		{"ANSI Code", "\x1b[31mRed\x1b[0m", "[31mRed[0m"},
		{"Null Byte", "Null\x00Byte", "NullByte"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeText(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSanitizeText_InvalidUTF8(t *testing.T) {
	_, err := SanitizeText("bad\xff")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestApply_SanitizesStrings(t *testing.T) {
	s, err := Apply(DefaultSettings(), NewChange("content_warnings.filter", String("cw\x07")))
	require.NoError(t, err)
	assert.Equal(t, "cw", s.ContentWarnings.Filter)

	_, err = Apply(DefaultSettings(), NewChange("home.regex.body", String(strings.Repeat("x", MaxTextSize+1))))
	assert.ErrorIs(t, err, ErrInvalidValue)
}
