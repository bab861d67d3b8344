package branch

import (
	"context"
	"net"
	"strings"

	"github.com/pkg/errors"
	"github.com/replicatedcom/branchcheck/log"
)

const (
	RoleA = "a"
	RoleB = "b"
)

var (
	ErrInvalidBranch = errors.New("That branch ID is invalid.")
)

// HostResolver turns a hostname into its addresses.
type HostResolver interface {
	LookupHost(host string) ([]string, error)
}

// SystemResolver asks the system resolver and keeps IPv4 addresses only.
type SystemResolver struct{}

func (SystemResolver) LookupHost(host string) ([]string, error) {
	ips, err := net.DefaultResolver.LookupIP(context.Background(), "ip4", host)
	if err != nil {
		return nil, err
	}
	addrs := make([]string, 0, len(ips))
	for _, ip := range ips {
		if v4 := ip.To4(); v4 != nil {
			addrs = append(addrs, v4.String())
		}
	}
	return addrs, nil
}

// Naming builds node hostnames as Prefix + branch id + role suffix.
type Naming struct {
	Prefix  string
	SuffixA string
	SuffixB string
}

var DefaultNaming = Naming{
	Prefix:  "u-",
	SuffixA: "-a01a",
	SuffixB: "-a01b",
}

func (n Naming) Hostname(id, role string) string {
	suffix := n.SuffixA
	if role == RoleB {
		suffix = n.SuffixB
	}
	return n.Prefix + id + suffix
}

type Node struct {
	Role     string
	Hostname string
	IP       string
}

type Branch struct {
	ID    string
	Nodes []Node
}

// Subnet is the /24 of node a, for display only.
func (b *Branch) Subnet() string {
	if b == nil || len(b.Nodes) == 0 {
		return ""
	}
	ip := net.ParseIP(b.Nodes[0].IP).To4()
	if ip == nil {
		return ""
	}
	return net.IPv4(ip[0], ip[1], ip[2], 0).String()
}

type Resolver struct {
	Hosts  HostResolver
	Naming Naming
}

func NewResolver(naming Naming) *Resolver {
	return &Resolver{
		Hosts:  SystemResolver{},
		Naming: naming,
	}
}

// Resolve maps a branch id to its node pair. Only node a is validated: if it
// does not resolve the branch is invalid. Node b is assumed to exist alongside.
func (r *Resolver) Resolve(id string) (*Branch, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.Wrap(ErrInvalidBranch, "empty branch id")
	}

	hostA := r.Naming.Hostname(id, RoleA)
	ipA, err := r.first(hostA)
	if err != nil {
		log.Warningf("branch %s: %s does not resolve: %v", id, hostA, err)
		return nil, errors.Wrapf(ErrInvalidBranch, "%s does not resolve", hostA)
	}

	hostB := r.Naming.Hostname(id, RoleB)
	ipB, err := r.first(hostB)
	if err != nil {
		err = errors.Wrapf(err, "failed to resolve %s", hostB)
		log.Error(err)
		return nil, err
	}

	b := &Branch{
		ID: id,
		Nodes: []Node{
			{Role: RoleA, Hostname: hostA, IP: ipA},
			{Role: RoleB, Hostname: hostB, IP: ipB},
		},
	}
	log.Debugf("branch %s resolved: %s=%s %s=%s", id, hostA, ipA, hostB, ipB)
	return b, nil
}

func (r *Resolver) first(host string) (string, error) {
	hosts := r.Hosts
	if hosts == nil {
		hosts = SystemResolver{}
	}
	addrs, err := hosts.LookupHost(host)
	if err != nil {
		return "", err
	}
	if len(addrs) == 0 {
		return "", errors.Errorf("no addresses for %s", host)
	}
	return addrs[0], nil
}
