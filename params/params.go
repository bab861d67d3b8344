package params

import (
	goflag "flag"
	"os"
	"strings"
	"time"

	"github.com/blang/semver"
)

const (
	Version = "0.3.0"

	EnvPrefix = "BRANCHCHECK"

	DefaultController     = "10.10.20.90"
	DefaultPort           = 443
	DefaultHostnamePrefix = "u-"
	DefaultSuffixA        = "-a01a"
	DefaultSuffixB        = "-a01b"
	DefaultTimeout        = 30 * time.Second
	DefaultLogLevel       = "info"
)

var (
	params = New()
)

// Params are the environment-provided defaults for the command line flags.
type Params struct {
	Controller       string
	Port             int
	Username         string
	Password         string
	PasswordSSMParam string
	AWSRegion        string
	HostnamePrefix   string
	SuffixA          string
	SuffixB          string
	Proxy            string
	Timeout          time.Duration
	LogLevel         string
	Version          semver.Version
}

func New() *Params {
	return &Params{
		Controller:     DefaultController,
		Port:           DefaultPort,
		HostnamePrefix: DefaultHostnamePrefix,
		SuffixA:        DefaultSuffixA,
		SuffixB:        DefaultSuffixB,
		Timeout:        DefaultTimeout,
		LogLevel:       DefaultLogLevel,
		Version:        semver.MustParse(Version),
	}
}

// FlagSet registers every parameter on a Go flag set bound to p.
func (p *Params) FlagSet(name string) *goflag.FlagSet {
	fs := goflag.NewFlagSet(name, goflag.ContinueOnError)
	fs.StringVar(&p.Controller, "controller", p.Controller, "controller address")
	fs.IntVar(&p.Port, "port", p.Port, "controller https port")
	fs.StringVar(&p.Username, "username", p.Username, "controller username")
	fs.StringVar(&p.Password, "password", p.Password, "controller password")
	fs.StringVar(&p.PasswordSSMParam, "password-ssm-parameter", p.PasswordSSMParam, "AWS SSM parameter holding the controller password")
	fs.StringVar(&p.AWSRegion, "aws-region", p.AWSRegion, "AWS region for the SSM parameter")
	fs.StringVar(&p.HostnamePrefix, "hostname-prefix", p.HostnamePrefix, "node hostname prefix")
	fs.StringVar(&p.SuffixA, "suffix-a", p.SuffixA, "node a hostname suffix")
	fs.StringVar(&p.SuffixB, "suffix-b", p.SuffixB, "node b hostname suffix")
	fs.StringVar(&p.Proxy, "proxy", p.Proxy, "https proxy address")
	fs.DurationVar(&p.Timeout, "timeout", p.Timeout, "per request timeout")
	fs.StringVar(&p.LogLevel, "log-level", p.LogLevel, "log level")
	return fs
}

// ParseEnv fills p from environ, reading BRANCHCHECK_<FLAG_NAME> variables.
func (p *Params) ParseEnv(environ []string) error {
	fs := FlagSetFromGoFlagSet(p.FlagSet(EnvPrefix))
	return fs.ParseEnv(prefixedEnv(environ))
}

func Get() *Params {
	return params
}

func Parse() error {
	return params.ParseEnv(os.Environ())
}

func prefixedEnv(environ []string) []string {
	prefix := EnvPrefix + "_"
	env := make([]string, 0, len(environ))
	for _, kv := range environ {
		if strings.HasPrefix(kv, prefix) {
			env = append(env, strings.TrimPrefix(kv, prefix))
		}
	}
	return env
}
