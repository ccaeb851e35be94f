package utils_test

import (
	"bytes"
	"testing"
	"time"

	"memarya/config"
	"memarya/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCertificatePDF(t *testing.T) {
	config.LoadConfig()

	pdf, err := utils.RenderCertificatePDF("Ada Lovelace", "Go Fundamentals", "MEM-2026-AB12CD34", time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")), "output should start with a PDF header")
	assert.Greater(t, len(pdf), 1000, "a rendered certificate should not be trivially small")
}

func TestGenerateCertificateNumber(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		number := utils.GenerateCertificateNumber()
		assert.Regexp(t, `^MEM-\d{4}-[0-9a-fA-F]{8}$`, number)
		assert.False(t, seen[number], "certificate numbers must not repeat")
		seen[number] = true
	}
}
