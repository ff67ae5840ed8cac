package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServeCmd_Use(t *testing.T) {
	assert.Equal(t, "serve", serveCmd.Use)
}

func TestServeCmd_RequiresOrigin(t *testing.T) {
	cleanup := setupConfigTest(t)
	defer cleanup()

	_, err := execute(t, "serve")
	assert.ErrorContains(t, err, "origin required")
}

func TestServeCmd_RejectsInvalidOrigin(t *testing.T) {
	cleanup := setupConfigTest(t)
	defer cleanup()
	defer func() { serveOrigin = "" }()

	_, err := execute(t, "serve", "--origin", "not a url")
	assert.ErrorContains(t, err, "invalid origin")
}
