// Package graphql expone los casos de uso como schema GraphQL (graph-gophers/graphql-go).
package graphql

import (
	_ "embed"

	graphqlgo "github.com/graph-gophers/graphql-go"
)

//go:embed schema.graphql
var schemaSDL string

const (
	maxDepth       = 10
	maxParallelism = 10
)

// NewSchema parsea el schema embebido contra el resolver raíz. Falla si algún campo
// del SDL no tiene método correspondiente.
func NewSchema(r *Resolver) (*graphqlgo.Schema, error) {
	return graphqlgo.ParseSchema(schemaSDL, r,
		graphqlgo.MaxDepth(maxDepth),
		graphqlgo.MaxParallelism(maxParallelism),
	)
}
