package app

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDumpRedactsSecrets(t *testing.T) {
	t.Setenv("CATALOG_OIDC_CLIENTSECRET", "s3cret")

	etc, err := filepath.Abs("../etc")
	require.NoError(t, err)

	var out bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"config", "dump", "--json", "--config", etc + string(filepath.Separator)})

	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "Offering Catalog API")
	assert.NotContains(t, out.String(), "s3cret")
	assert.NotContains(t, out.String(), "+mSEMLJ3IL7UegR6rrWbaJl8iG1rvYAQhmAoUazeFpE=")
	assert.Contains(t, out.String(), "********")
}
