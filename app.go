package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/replicatedcom/branchcheck/branch"
	"github.com/replicatedcom/branchcheck/checker"
	"github.com/replicatedcom/branchcheck/controller"
	"github.com/replicatedcom/branchcheck/creds"
	"github.com/replicatedcom/branchcheck/health"
	"github.com/replicatedcom/branchcheck/log"
	"github.com/replicatedcom/branchcheck/params"
	"github.com/replicatedcom/branchcheck/requests"

	"github.com/urfave/cli"
)

func main() {
	if err := params.Parse(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	p := params.Get()

	app := cli.NewApp()
	app.Name = "branchcheck"
	app.Usage = "Health check both edge nodes of a branch through the controller API."
	app.Version = p.Version.String()

	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "log-level", Value: p.LogLevel, Usage: "debug, info, warning or error"},
	}
	app.Before = func(c *cli.Context) error {
		log.SetLevel(c.GlobalString("log-level"))
		return nil
	}

	app.Commands = []cli.Command{
		{
			Name:      "check",
			Usage:     "report system, hardware, BFD, app-route and interface health of a branch",
			ArgsUsage: "<branch-id>",
			Action:    handlerCheck,
			Flags: []cli.Flag{
				cli.StringFlag{Name: "controller", Value: p.Controller},
				cli.IntFlag{Name: "port", Value: p.Port},
				cli.StringFlag{Name: "username", Value: p.Username},
				cli.StringFlag{Name: "password", Usage: "controller password (or " + params.EnvPrefix + "_PASSWORD)"},
				cli.StringFlag{Name: "password-ssm-parameter", Value: p.PasswordSSMParam},
				cli.StringFlag{Name: "aws-region", Value: p.AWSRegion},
				cli.StringFlag{Name: "hostname-prefix", Value: p.HostnamePrefix},
				cli.StringFlag{Name: "suffix-a", Value: p.SuffixA},
				cli.StringFlag{Name: "suffix-b", Value: p.SuffixB},
				cli.StringFlag{Name: "proxy", Value: p.Proxy},
				cli.DurationFlag{Name: "timeout", Value: p.Timeout},
				cli.StringFlag{Name: "only", Usage: "comma separated subset of " + strings.Join(health.Names(), ",")},
				cli.BoolFlag{Name: "fail-fast", Usage: "stop at the first failed query"},
				cli.BoolFlag{Name: "legacy-params", Usage: "append the empty filler parameters older controllers expect"},
			},
		},
	}

	app.Run(os.Args)
}

func handlerCheck(c *cli.Context) error {
	opts := checkOptions{
		BranchID:   c.Args().First(),
		Controller: c.String("controller"),
		Port:       c.Int("port"),
		Username:   c.String("username"),
		Only:       splitList(c.String("only")),
		FailFast:   c.Bool("fail-fast"),
		Legacy:     c.Bool("legacy-params"),
	}

	sources, err := passwordSources(c)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	opts.Passwords = sources

	client, err := requests.NewHttpClient("", c.String("proxy"), c.Duration("timeout"))
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	resolver := branch.NewResolver(branch.Naming{
		Prefix:  c.String("hostname-prefix"),
		SuffixA: c.String("suffix-a"),
		SuffixB: c.String("suffix-b"),
	})

	return runCheck(opts, resolver, client, os.Stdout)
}

type checkOptions struct {
	BranchID   string
	Controller string
	Port       int
	Username   string
	Passwords  []creds.Source
	Only       []string
	FailFast   bool
	Legacy     bool
}

// runCheck resolves the branch, logs in and reports every node. Errors are
// cli.ExitCoder values: 1 when nothing could be checked, 2 when checks failed.
func runCheck(opts checkOptions, resolver *branch.Resolver, client *requests.HttpClient, out io.Writer) error {
	if opts.BranchID == "" {
		return cli.NewExitError("a branch id is required", 1)
	}
	log.Debugf("Checking branch %q", opts.BranchID)

	queries, err := health.Select(opts.Only)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	endpoint, err := controller.ParseEndpoint(opts.Controller, opts.Port)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	b, err := resolver.Resolve(opts.BranchID)
	if err != nil {
		if errors.Cause(err) == branch.ErrInvalidBranch {
			return cli.NewExitError(branch.ErrInvalidBranch.Error(), 1)
		}
		return cli.NewExitError(err.Error(), 1)
	}

	if opts.Username == "" {
		return cli.NewExitError("a controller username is required", 1)
	}

	password, err := creds.First(opts.Passwords...)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	session, err := controller.Login(client, endpoint, opts.Username, password)
	if err != nil {
		if err == controller.ErrLoginFailed {
			return cli.NewExitError(controller.ErrLoginFailed.Error(), 1)
		}
		return cli.NewExitError(err.Error(), 1)
	}

	chk := checker.New(session, resolver)
	chk.Out = out
	chk.Queries = queries
	chk.FailFast = opts.FailFast
	chk.Legacy = opts.Legacy

	result, err := chk.CheckBranch(b)
	if err != nil {
		return cli.NewExitError(err.Error(), 2)
	}
	if n := result.Failed(); n > 0 {
		return cli.NewExitError(fmt.Sprintf("%d of %d checks failed", n, len(result.Reports)), 2)
	}
	return nil
}

func passwordSources(c *cli.Context) ([]creds.Source, error) {
	sources := []creds.Source{
		creds.Static(c.String("password")),
		creds.Static(params.Get().Password),
	}
	if name := c.String("password-ssm-parameter"); name != "" {
		src, err := creds.NewSSMParameter(name, c.String("aws-region"))
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return append(sources, creds.NewPrompt()), nil
}

func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
