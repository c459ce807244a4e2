package graph

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	"github.com/mindmate-ai/server/internal/agent/graph/nodes"
	"github.com/mindmate-ai/server/internal/agent/graph/observers"
	"github.com/mindmate-ai/server/internal/agent/model"
	"github.com/mindmate-ai/server/internal/crisis"
	"github.com/mindmate-ai/server/internal/mood"
	"github.com/mindmate-ai/server/internal/respond"
	"github.com/mindmate-ai/server/internal/session"
	logx "github.com/mindmate-ai/server/pkg/logger"
)

// Runner is a thin wrapper to execute the compiled graph with the public TurnInput.
type Runner interface {
	Invoke(ctx context.Context, in model.TurnInput) (*model.TurnResult, error)
}

// Config holds everything needed to compose the conversation graph
// end-to-end.
type Config struct {
	Detector  *mood.Detector
	Selector  *respond.Selector
	Sessions  *session.Manager
	Directory crisis.Directory
}

// GraphBuilder handles the construction of the conversation graph.
type GraphBuilder struct {
	config *Config
	graph  *compose.Graph[model.TurnInput, *model.TurnResult]
}

type graphRunner struct {
	runnable compose.Runnable[model.TurnInput, *model.TurnResult]
}

func (r *graphRunner) Invoke(ctx context.Context, in model.TurnInput) (*model.TurnResult, error) {
	return r.runnable.Invoke(ctx, in, compose.WithCallbacks(observers.NewAllCallbacks()))
}

// BuildConversationGraph constructs, compiles and wraps the turn-processing
// graph. The flow is: classify emotion and scan for crisis keywords, then
// branch to either the crisis responder or the normal personality/emotion
// responder. The caller sanitizes the message before invoking the graph.
func BuildConversationGraph(ctx context.Context, cfg Config) (Runner, error) {
	if cfg.Detector == nil {
		return nil, fmt.Errorf("detector is nil")
	}
	if cfg.Selector == nil {
		return nil, fmt.Errorf("selector is nil")
	}
	if cfg.Sessions == nil {
		return nil, fmt.Errorf("session manager is nil")
	}
	if len(cfg.Directory) == 0 {
		cfg.Directory = crisis.DefaultDirectory()
	}

	builder := &GraphBuilder{
		config: &cfg,
		graph: compose.NewGraph[model.TurnInput, *model.TurnResult](
			compose.WithGenLocalState(func(ctx context.Context) *model.AppState {
				return &model.AppState{}
			}),
		),
	}

	builder.addNodes()
	builder.addEdges()

	if err := builder.addBranches(); err != nil {
		return nil, err
	}

	runnable, err := builder.compile(ctx)
	if err != nil {
		return nil, err
	}

	logx.Debug().Msg("Conversation graph built successfully")
	return &graphRunner{runnable: runnable}, nil
}

// addNodes adds all processing nodes to the graph
func (b *GraphBuilder) addNodes() {
	b.graph.AddLambdaNode(nodes.NodeClassifier,
		nodes.NewClassifierNode(b.config.Detector),
		compose.WithStatePreHandler(nodes.NewClassifierPreHandler(b.config.Sessions)),
		compose.WithStatePostHandler(nodes.NewClassifierPostHandler()),
	)

	b.graph.AddLambdaNode(nodes.NodeResponder,
		nodes.NewResponderNode(b.config.Selector),
		compose.WithStatePostHandler(nodes.NewResponderPostHandler(b.config.Sessions)),
	)

	b.graph.AddLambdaNode(nodes.NodeCrisisResponder,
		nodes.NewCrisisResponderNode(b.config.Directory),
		compose.WithStatePostHandler(nodes.NewCrisisResponderPostHandler(b.config.Sessions)),
	)
}

// addEdges creates the main flow connections between nodes
func (b *GraphBuilder) addEdges() {
	edges := [][2]string{
		{compose.START, nodes.NodeClassifier},
		{nodes.NodeResponder, compose.END},
		{nodes.NodeCrisisResponder, compose.END},
	}

	for _, edge := range edges {
		b.graph.AddEdge(edge[0], edge[1])
	}
}

// addBranches creates conditional routing branches
func (b *GraphBuilder) addBranches() error {
	crisisBranch := compose.NewGraphBranch(
		nodes.NewCrisisCondition(),
		map[string]bool{
			nodes.NodeCrisisResponder: true,
			nodes.NodeResponder:       true,
		},
	)
	if err := b.graph.AddBranch(nodes.NodeClassifier, crisisBranch); err != nil {
		logx.Error().Err(err).Msg("Error adding crisis branch")
		return fmt.Errorf("error adding crisis branch: %w", err)
	}

	return nil
}

// compile finalizes and compiles the graph
func (b *GraphBuilder) compile(ctx context.Context) (compose.Runnable[model.TurnInput, *model.TurnResult], error) {
	runnable, err := b.graph.Compile(ctx, compose.WithMaxRunSteps(20))
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling graph")
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}

	logx.Debug().Msg("Graph compiled successfully")
	return runnable, nil
}
