package checker

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/replicatedcom/branchcheck/branch"
	"github.com/replicatedcom/branchcheck/health"
	"github.com/replicatedcom/branchcheck/log"
	"github.com/replicatedcom/branchcheck/report"
)

// Querier issues an authenticated dataservice GET. *controller.Session
// implements it.
type Querier interface {
	Get(mountPoint string, v interface{}) error
}

// BranchResolver is implemented by *branch.Resolver.
type BranchResolver interface {
	Resolve(id string) (*branch.Branch, error)
}

type Checker struct {
	Querier  Querier
	Resolver BranchResolver
	Queries  []health.Query
	Out      io.Writer

	// FailFast aborts the run on the first failed query instead of reporting
	// it and moving on.
	FailFast bool

	// Legacy sends the trailing filler parameters old controllers expect.
	Legacy bool
}

// NodeReport is the outcome of one query against one node.
type NodeReport struct {
	Node  branch.Node
	Query health.Query
	Rows  []health.Row
	Err   error
}

type Result struct {
	Branch  *branch.Branch
	Reports []NodeReport
}

// Failed counts the reports that carry an error.
func (r *Result) Failed() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, rep := range r.Reports {
		if rep.Err != nil {
			n++
		}
	}
	return n
}

func New(querier Querier, resolver BranchResolver) *Checker {
	return &Checker{
		Querier:  querier,
		Resolver: resolver,
		Queries:  health.Catalog(),
		Out:      os.Stdout,
	}
}

// Run resolves branchID and checks both of its nodes. A branch that does not
// resolve returns before any query is sent.
func (c *Checker) Run(branchID string) (*Result, error) {
	b, err := c.Resolver.Resolve(branchID)
	if err != nil {
		return nil, err
	}
	return c.CheckBranch(b)
}

// CheckBranch runs every query against node a, then node b, printing each
// report as soon as it is complete.
func (c *Checker) CheckBranch(b *branch.Branch) (*Result, error) {
	result := &Result{Branch: b}

	fmt.Fprintf(c.out(), "\nBranch ID: %s\n", b.ID)
	fmt.Fprintf(c.out(), "Branch Subnet: %s\n", b.Subnet())

	for _, node := range b.Nodes {
		fmt.Fprintf(c.out(), "\n\nNODE %s STATUS (%s %s)\n", strings.ToUpper(node.Role), node.Hostname, node.IP)

		for _, q := range c.Queries {
			rep := c.checkNode(node, q)
			result.Reports = append(result.Reports, rep)
			if rep.Err == nil {
				continue
			}

			if c.FailFast {
				return result, errors.Wrapf(rep.Err, "node %s %s", node.Role, q.Name)
			}
			log.Warningf("node %s (%s) %s failed: %v", node.Role, node.IP, q.Name, rep.Err)
			fmt.Fprintf(c.out(), "\n%s: FAILED: %v\n", q.Title, rep.Err)
		}
	}

	return result, nil
}

func (c *Checker) checkNode(node branch.Node, q health.Query) NodeReport {
	rep := NodeReport{Node: node, Query: q}

	var resp health.Response
	if err := c.Querier.Get(q.MountPoint(node.IP, c.Legacy), &resp); err != nil {
		rep.Err = err
		return rep
	}

	rows, err := q.Extract(resp)
	if err != nil {
		rep.Err = err
		return rep
	}
	rep.Rows = rows

	table := report.Table{
		Title:  q.Title,
		Header: q.Headers(),
		Rows:   make([][]string, 0, len(rows)),
	}
	for _, row := range rows {
		table.Rows = append(table.Rows, row)
	}

	fmt.Fprintln(c.out())
	if err := report.Render(c.out(), table); err != nil {
		rep.Err = err
	}
	return rep
}

func (c *Checker) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}
