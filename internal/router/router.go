// Package router matches OSC address patterns against a small fixed table
// of path templates with named parameters.
package router

import (
	"fmt"
	"strings"
)

// Kind identifies the semantic command a route maps to.
type Kind int

const (
	KindColor Kind = iota
	KindReset
)

// Params holds the text bound to each named segment of a matched template.
type Params map[string]string

type segment struct {
	literal string
	param   string // set for {name} segments
}

type route struct {
	kind     Kind
	segments []segment
}

// Router is an ordered, immutable-after-construction route table. Matching
// tries routes in registration order, so register more specific templates
// first.
type Router struct {
	routes []route
}

func New() *Router { return &Router{} }

// Add registers a template like "/lights/{id}/{color}". A {name} segment
// matches any single non-empty path segment and binds its text to name.
func (r *Router) Add(template string, kind Kind) error {
	if !strings.HasPrefix(template, "/") {
		return fmt.Errorf("route template %q must start with /", template)
	}
	parts := strings.Split(template[1:], "/")
	segments := make([]segment, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			return fmt.Errorf("route template %q has an empty segment", template)
		}
		if strings.HasPrefix(p, "{") && strings.HasSuffix(p, "}") {
			name := p[1 : len(p)-1]
			if name == "" {
				return fmt.Errorf("route template %q has an unnamed parameter", template)
			}
			segments = append(segments, segment{param: name})
			continue
		}
		segments = append(segments, segment{literal: p})
	}
	r.routes = append(r.routes, route{kind: kind, segments: segments})
	return nil
}

// Match resolves an address against the table. It reports false when no
// route matches; the caller decides whether that is an error.
func (r *Router) Match(addr string) (Kind, Params, bool) {
	if !strings.HasPrefix(addr, "/") {
		return 0, nil, false
	}
	parts := strings.Split(addr[1:], "/")

	for _, rt := range r.routes {
		if len(rt.segments) != len(parts) {
			continue
		}
		params := make(Params)
		matched := true
		for i, seg := range rt.segments {
			if seg.param != "" {
				if parts[i] == "" {
					matched = false
					break
				}
				params[seg.param] = parts[i]
				continue
			}
			if seg.literal != parts[i] {
				matched = false
				break
			}
		}
		if matched {
			return rt.kind, params, true
		}
	}
	return 0, nil, false
}
