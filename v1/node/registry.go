package node

import (
	"context"
	"fmt"
	"net/http"
	"sort"
)

// Registry resolves nodes by name.
type Registry struct {
	nodes map[string]Node
}

// NewRegistry returns a registry holding nodes. A later node replaces an
// earlier one with the same name.
func NewRegistry(nodes ...Node) *Registry {
	r := &Registry{nodes: make(map[string]Node, len(nodes))}
	for _, n := range nodes {
		r.nodes[n.Name()] = n
	}
	return r
}

// Get returns the node registered under name.
func (r *Registry) Get(name string) (Node, bool) {
	n, ok := r.nodes[name]
	return n, ok
}

// Names lists registered nodes in lexical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.nodes))
	for name := range r.nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch runs the named node. An unknown name yields a 404 response.
func (r *Registry) Dispatch(ctx context.Context, name string, inputs map[string]any) Response {
	n, ok := r.nodes[name]
	if !ok {
		return Response{Error: &Error{
			Code:    http.StatusNotFound,
			Name:    name,
			Message: fmt.Sprintf("unknown node %q, available: %v", name, r.Names()),
			Kind:    "validation",
		}}
	}
	if inputs == nil {
		inputs = map[string]any{}
	}
	return n.Handle(ctx, inputs)
}
