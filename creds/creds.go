// Package creds finds the controller password: from a flag or the
// environment, an AWS SSM parameter, or a terminal prompt.
package creds

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ssm"
	"github.com/aws/aws-sdk-go/service/ssm/ssmiface"
	"github.com/pkg/errors"
	"github.com/replicatedcom/branchcheck/log"
	"golang.org/x/crypto/ssh/terminal"
)

var ErrNoPassword = errors.New("no controller password available")

type Source interface {
	Password() (string, error)
}

// Static is a password given on the command line or in the environment.
type Static string

func (s Static) Password() (string, error) {
	return string(s), nil
}

// SSMParameter reads a SecureString parameter.
type SSMParameter struct {
	Name   string
	Client ssmiface.SSMAPI
}

func NewSSMParameter(name, region string) (*SSMParameter, error) {
	cfg := aws.NewConfig()
	if region != "" {
		cfg = cfg.WithRegion(region)
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create aws session")
	}
	return &SSMParameter{
		Name:   name,
		Client: ssm.New(sess),
	}, nil
}

func (p *SSMParameter) Password() (string, error) {
	out, err := p.Client.GetParameter(&ssm.GetParameterInput{
		Name:           aws.String(p.Name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		err = errors.Wrapf(err, "failed to read ssm parameter %s", p.Name)
		log.Error(err)
		return "", err
	}
	if out.Parameter == nil {
		return "", errors.Errorf("ssm parameter %s has no value", p.Name)
	}
	return aws.StringValue(out.Parameter.Value), nil
}

// Prompt asks on the terminal without echo. When In is not a terminal the
// password is read as a line instead.
type Prompt struct {
	In     *os.File
	Out    io.Writer
	Prompt string
}

func NewPrompt() *Prompt {
	return &Prompt{In: os.Stdin, Out: os.Stderr, Prompt: "Password: "}
}

func (p *Prompt) Password() (string, error) {
	fmt.Fprint(p.Out, p.Prompt)

	fd := int(p.In.Fd())
	if terminal.IsTerminal(fd) {
		b, err := terminal.ReadPassword(fd)
		fmt.Fprintln(p.Out)
		if err != nil {
			return "", errors.Wrap(err, "failed to read password")
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", errors.Wrap(err, "failed to read password")
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// First returns the first non-empty password from sources, in order.
func First(sources ...Source) (string, error) {
	for _, src := range sources {
		if src == nil {
			continue
		}
		password, err := src.Password()
		if err != nil {
			return "", err
		}
		if password != "" {
			return password, nil
		}
	}
	return "", ErrNoPassword
}
