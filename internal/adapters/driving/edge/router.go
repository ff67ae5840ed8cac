// Package edge implements the request-time router that maps subdomain
// labels to generated region page paths on the origin.
package edge

import (
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/townpages/townpages-cli/internal/logger"
)

// DefaultReservedLabels are host labels never treated as region slugs.
var DefaultReservedLabels = []string{"www", "directory"}

// Decision is the routing outcome for one request host and path.
type Decision struct {
	// Passthrough means the request goes to the origin unchanged.
	Passthrough bool
	// Path is the origin path to request. Equals the original path
	// when Passthrough is set.
	Path string
}

// Table is the closed host-dispatch decision table: a reserved label
// or the bare base domain passes through; any other leftmost label is
// rewritten onto the region page path template.
type Table struct {
	baseDomain string
	reserved   map[string]struct{}
}

// NewTable builds a decision table. baseDomain is the apex host served
// without rewriting (may be empty); labels are treated
// case-insensitively.
func NewTable(baseDomain string, reservedLabels []string) *Table {
	reserved := make(map[string]struct{}, len(reservedLabels))
	for _, label := range reservedLabels {
		label = strings.ToLower(strings.TrimSpace(label))
		if label != "" {
			reserved[label] = struct{}{}
		}
	}
	return &Table{
		baseDomain: strings.ToLower(strings.TrimSpace(baseDomain)),
		reserved:   reserved,
	}
}

// Decide maps a request host and path to a routing decision. The host
// may carry a port; it is ignored. No existence check is performed on
// the label: unknown slugs fall through to the origin's own not-found
// handling.
func (t *Table) Decide(host, path string) Decision {
	hostname := strings.ToLower(stripPort(host))
	if path == "" {
		path = "/"
	}

	if t.baseDomain != "" && hostname == t.baseDomain {
		return Decision{Passthrough: true, Path: path}
	}

	label, _, found := strings.Cut(hostname, ".")
	if !found || label == "" {
		return Decision{Passthrough: true, Path: path}
	}
	if _, ok := t.reserved[label]; ok {
		return Decision{Passthrough: true, Path: path}
	}
	return Decision{Path: "/region/" + label + path}
}

// Router proxies edge requests to the origin, rewriting paths per the
// decision table. Origin responses flow back verbatim; only the
// request path is ever touched.
type Router struct {
	table *Table
	proxy *httputil.ReverseProxy
}

// NewRouter creates a router forwarding to the given origin base URL.
func NewRouter(origin *url.URL, table *Table) *Router {
	r := &Router{table: table}
	r.proxy = &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			decision := table.Decide(pr.In.Host, pr.In.URL.Path)
			pr.SetURL(origin)
			pr.Out.URL.Path = decision.Path
			pr.Out.URL.RawPath = ""
			pr.Out.Host = origin.Host
			pr.SetXForwarded()
			if !decision.Passthrough {
				logger.Debug("edge: %s%s -> %s", pr.In.Host, pr.In.URL.Path, decision.Path)
			}
		},
		ErrorHandler: func(w http.ResponseWriter, req *http.Request, err error) {
			logger.Warn("edge: origin request for %s failed: %v", req.Host, err)
			http.Error(w, "origin unavailable", http.StatusBadGateway)
		},
	}
	return r
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.proxy.ServeHTTP(w, req)
}

// stripPort drops a trailing :port from a host if present.
func stripPort(host string) string {
	if hostname, _, err := net.SplitHostPort(host); err == nil {
		return hostname
	}
	return host
}
