package params

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	p := New()
	assert.Equal(t, DefaultController, p.Controller)
	assert.Equal(t, 443, p.Port)
	assert.Equal(t, "u-", p.HostnamePrefix)
	assert.Equal(t, "-a01a", p.SuffixA)
	assert.Equal(t, "-a01b", p.SuffixB)
	assert.Equal(t, Version, p.Version.String())
}

func TestParseEnv(t *testing.T) {
	p := New()
	err := p.ParseEnv([]string{
		"BRANCHCHECK_CONTROLLER=vmanage.example.net",
		"BRANCHCHECK_PORT=8443",
		"BRANCHCHECK_USERNAME=admin",
		"BRANCHCHECK_PASSWORD_SSM_PARAMETER=/netops/vmanage",
		"BRANCHCHECK_TIMEOUT=5s",
		"USERNAME=ignored",
	})
	require.NoError(t, err)

	assert.Equal(t, "vmanage.example.net", p.Controller)
	assert.Equal(t, 8443, p.Port)
	assert.Equal(t, "admin", p.Username)
	assert.Equal(t, "/netops/vmanage", p.PasswordSSMParam)
	assert.Equal(t, 5*time.Second, p.Timeout)
	assert.Equal(t, DefaultSuffixA, p.SuffixA)
}
