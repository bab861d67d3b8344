// Package health holds the catalog of device health queries and turns their
// dataservice responses into report rows.
package health

import (
	"net/url"
	"strings"
)

const legacyFiller = "&&&"

// Field maps one key of a response item to one report column.
type Field struct {
	Key    string
	Header string
}

// Query describes one health dimension of a device.
type Query struct {
	Name     string
	Title    string
	Endpoint string
	Fields   []Field

	// Filler marks endpoints that older controller releases only accepted
	// with trailing empty parameters.
	Filler bool
}

// Response is the envelope every device endpoint answers with. Data is nil
// when the controller left it out, e.g. in an error envelope.
type Response struct {
	Data *[]map[string]interface{} `json:"data"`
}

// Row is one response item rendered as strings, in field order.
type Row []string

var (
	SystemStatus = Query{
		Name:     "system-status",
		Title:    "System Status",
		Endpoint: "device/system/status",
		Fields: []Field{
			{Key: "config_date/date-time-string", Header: "CLOCK"},
			{Key: "uptime", Header: "UPTIME"},
		},
	}

	HardwareEnvironment = Query{
		Name:     "hardware-environment",
		Title:    "Hardware Status",
		Endpoint: "device/hardware/environment",
		Fields: []Field{
			{Key: "hw-item", Header: "HARDWARE"},
			{Key: "hw-dev-index", Header: "NUMBER"},
			{Key: "status", Header: "STATUS"},
		},
	}

	BFDSessions = Query{
		Name:     "bfd-sessions",
		Title:    "BFD Session Status",
		Endpoint: "device/bfd/sessions",
		Fields: []Field{
			{Key: "state", Header: "STATE"},
			{Key: "local-color", Header: "COLOR"},
			{Key: "uptime", Header: "UPTIME"},
		},
		Filler: true,
	}

	AppRouteStatistics = Query{
		Name:     "app-route-statistics",
		Title:    "App Route Stats",
		Endpoint: "device/app-route/statistics",
		Fields: []Field{
			{Key: "local-color", Header: "TLOC COLOR"},
			{Key: "loss", Header: "LOSS"},
			{Key: "average-latency", Header: "LATENCY"},
			{Key: "average-jitter", Header: "JITTER"},
		},
		Filler: true,
	}

	InterfaceDescription = Query{
		Name:     "interface",
		Title:    "Interface Descriptions",
		Endpoint: "device/interface",
		Fields: []Field{
			{Key: "ifname", Header: "INTERFACE"},
			{Key: "if-oper-status", Header: "STATUS"},
		},
		Filler: true,
	}
)

// Catalog returns every query in report order.
func Catalog() []Query {
	return []Query{
		SystemStatus,
		HardwareEnvironment,
		BFDSessions,
		AppRouteStatistics,
		InterfaceDescription,
	}
}

func Names() []string {
	catalog := Catalog()
	names := make([]string, 0, len(catalog))
	for _, q := range catalog {
		names = append(names, q.Name)
	}
	return names
}

func ByName(name string) (Query, bool) {
	for _, q := range Catalog() {
		if q.Name == name {
			return q, true
		}
	}
	return Query{}, false
}

// Select keeps the catalog order and returns the named queries, or the whole
// catalog when names is empty.
func Select(names []string) ([]Query, error) {
	if len(names) == 0 {
		return Catalog(), nil
	}

	want := make(map[string]bool, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if _, ok := ByName(name); !ok {
			return nil, &UnknownQueryError{Name: name}
		}
		want[name] = true
	}

	var queries []Query
	for _, q := range Catalog() {
		if want[q.Name] {
			queries = append(queries, q)
		}
	}
	return queries, nil
}

func (q Query) Headers() []string {
	headers := make([]string, 0, len(q.Fields))
	for _, f := range q.Fields {
		headers = append(headers, f.Header)
	}
	return headers
}

// MountPoint is the dataservice path for deviceID. With legacy set, filler
// queries get the trailing empty parameters old controllers expected.
func (q Query) MountPoint(deviceID string, legacy bool) string {
	v := url.Values{}
	v.Set("deviceId", deviceID)
	mountPoint := q.Endpoint + "?" + v.Encode()
	if legacy && q.Filler {
		mountPoint += legacyFiller
	}
	return mountPoint
}
