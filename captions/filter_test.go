package captions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterExample(t *testing.T) {
	raw := "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nHello world\n\n00:00:02.000 --> 00:00:03.000\nBye now"

	text, lines := Filter(raw)

	assert.Equal(t, "Hello world Bye now", text)
	assert.Equal(t, 2, lines)
}

func TestFilterHeaderWithoutBlankLine(t *testing.T) {
	raw := "WEBVTT\n00:00:01.000 --> 00:00:02.000\nHello world\n\n00:00:02.000 --> 00:00:03.000\nBye now"

	text, lines := Filter(raw)

	assert.Equal(t, "Hello world Bye now", text)
	assert.Equal(t, 2, lines)
}

func TestFilterHeaderFieldsThenCues(t *testing.T) {
	raw := "WEBVTT\nKind: captions\nLanguage: en\n00:00:01.000 --> 00:00:02.000\nHello world\n"

	text, lines := Filter(raw)

	assert.Equal(t, "Hello world", text)
	assert.Equal(t, 1, lines)
}

func TestFilterDropsMarkup(t *testing.T) {
	raw := "WEBVTT\r\n" +
		"Kind: captions\r\n" +
		"Language: en\r\n" +
		"\r\n" +
		"NOTE generated by a machine\r\n" +
		"\r\n" +
		"1\r\n" +
		"00:00:00.000 --> 00:00:01.500 align:start position:0%\r\n" +
		"first spoken line\r\n" +
		"<c>inline markup</c>\r\n" +
		"\r\n" +
		"2\r\n" +
		"00:00:01.500\r\n" +
		"  second spoken line  \r\n" +
		"\r\n" +
		"third line with 42 numbers\r\n"

	text, lines := Filter(raw)

	assert.Equal(t, "first spoken line second spoken line third line with 42 numbers", text)
	assert.Equal(t, 3, lines)
}

func TestFilterPreservesOrderAndDuplicates(t *testing.T) {
	raw := "b\na\nb\n"

	text, lines := Filter(raw)

	assert.Equal(t, "b a b", text)
	assert.Equal(t, 3, lines)
}

func TestFilterEmpty(t *testing.T) {
	text, lines := Filter("WEBVTT\n\n00:00:01.000 --> 00:00:02.000\n\n")

	assert.Equal(t, "", text)
	assert.Equal(t, 0, lines)
}

func TestIsDigits(t *testing.T) {
	assert.True(t, isDigits("0123"))
	assert.False(t, isDigits(""))
	assert.False(t, isDigits("12a"))
	assert.False(t, isDigits("1.5"))
}
