package observers

import (
	einocb "github.com/cloudwego/eino/callbacks"
)

// NewAllCallbacks aggregates all observer handlers into one callbacks.Handler.
func NewAllCallbacks() einocb.Handler {
	return newNodeHandler()
}
