package styles

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "", Truncate("Chrono Trigger", 0))
	assert.Equal(t, "Ch", Truncate("Chrono Trigger", 2))
	assert.Equal(t, "Chrono ...", Truncate("Chrono Trigger", 10))
	assert.Equal(t, "Chrono Trigger", Truncate("Chrono Trigger", 14))
	assert.Equal(t, "short", Truncate("short", 40))
}

func TestTruncateCountsRunes(t *testing.T) {
	// Japanese titles must never split mid-rune.
	title := "ファイナルファンタジーVI"

	got := Truncate(title, 8)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "ファイナル...", got)

	got = Truncate(title, 3)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "ファイ", got)
}

func TestPadCountsRunes(t *testing.T) {
	assert.Equal(t, "abc  ", Pad("abc", 5))
	assert.Equal(t, "ゼルダ  ", Pad("ゼルダ", 5))

	got := Pad("ゼルダの伝説", 4)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "ゼルダの", got)
}
