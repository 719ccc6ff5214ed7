package qrcode_test

import (
	"bytes"
	"testing"

	"tarion/internal/qrcode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePNG(t *testing.T) {
	png, err := qrcode.Generate("https://tarion.example/activate")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")), "output should be a PNG")
}

func TestTerminal(t *testing.T) {
	s, err := qrcode.Terminal("https://tarion.example/activate")
	require.NoError(t, err)
	assert.NotEmpty(t, s)
	assert.Contains(t, s, "\n")
}
