package params

import (
	goflag "flag"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoFlags(t *testing.T) {
	gofs := goflag.NewFlagSet("TestGoFlags", goflag.ContinueOnError)
	stringFlag := gofs.String("string-flag", "stringFlag", "string")
	boolFlag := gofs.Bool("bool-flag", false, "bool")
	fs := FlagSetFromGoFlagSet(gofs)
	err := fs.Parse([]string{"--string-flag=bob", "--bool-flag"})
	require.NoError(t, err)
	assert.Equal(t, "bob", *stringFlag)
	assert.True(t, *boolFlag)
}

func TestGoFlagsEnviron(t *testing.T) {
	gofs := goflag.NewFlagSet("TestGoFlagsEnviron", goflag.ContinueOnError)
	stringFlag := gofs.String("string-flag", "stringFlag", "string")
	durationFlag := gofs.Duration("duration-flag", time.Second, "duration")
	fs := FlagSetFromGoFlagSet(gofs)
	err := fs.ParseEnv([]string{"STRING_FLAG=bob", "DURATION_FLAG=90s"})
	require.NoError(t, err)
	assert.Equal(t, "bob", *stringFlag)
	assert.Equal(t, 90*time.Second, *durationFlag)
}

func TestPrefixedEnv(t *testing.T) {
	env := prefixedEnv([]string{
		"HOME=/root",
		"BRANCHCHECK_USERNAME=admin",
		"BRANCHCHECKER_PORT=1",
		"BRANCHCHECK_SUFFIX_A=-edge1",
	})
	assert.Equal(t, []string{"USERNAME=admin", "SUFFIX_A=-edge1"}, env)
}
