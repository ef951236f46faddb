// Package graph implements the per-turn orchestration as an explicit finite
// state machine. Each user turn walks a short node chain; nodes return
// partial state updates and the driver applies them under a fixed per-field
// merge policy. Nodes never fail: every extractor absorbs its own model
// failures into a deterministic default, so a turn always produces an
// outward message.
package graph

import (
	"context"
	"fmt"

	"github.com/jonathan/interview-coach/internal/factcheck"
	"github.com/jonathan/interview-coach/internal/intake"
	"github.com/jonathan/interview-coach/internal/interviewer"
	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/types"
)

// Node identifies one step of the turn pipeline.
type Node string

const (
	NodeIntake    Node = "intake"
	NodeFactCheck Node = "factcheck"
	NodeInterview Node = "interview"
	NodeTerminal  Node = "terminal"
)

// Update is the partial state delta a node returns. Thoughts append to the
// accumulated sequence; every other field replaces the prior value, and a
// nil pointer means "key not returned, leave the state field alone".
type Update struct {
	Thoughts    []types.Thought
	Profile     *types.CandidateProfile
	History     []llm.Message
	SystemAlert *string
	AIMessage   *string
}

// Apply merges an update into state under the per-field policy.
func Apply(state *types.InterviewState, u Update) {
	state.Thoughts = append(state.Thoughts, u.Thoughts...)
	if u.Profile != nil {
		state.Profile = u.Profile
	}
	if u.History != nil {
		state.History = u.History
	}
	if u.SystemAlert != nil {
		state.SystemAlert = *u.SystemAlert
	}
	if u.AIMessage != nil {
		state.AIMessage = *u.AIMessage
	}
}

// EntryNode picks where the turn enters: intake until a profile with a name
// is established, fact-check afterwards.
func EntryNode(state *types.InterviewState) Node {
	if state.Profile == nil || !state.Profile.HasName() {
		return NodeIntake
	}
	return NodeFactCheck
}

// Transition returns the successor of a node. Edges are fixed: intake skips
// the fact-check (the very first turn carries no candidate claim to verify)
// and every turn ends after one interview step.
func Transition(node Node) Node {
	switch node {
	case NodeIntake:
		return NodeInterview
	case NodeFactCheck:
		return NodeInterview
	case NodeInterview:
		return NodeTerminal
	default:
		return NodeTerminal
	}
}

// Graph wires the three sub-agents into the turn pipeline.
type Graph struct {
	intake      *intake.Extractor
	checker     *factcheck.Checker
	interviewer *interviewer.Agent
}

// New builds the turn pipeline over a single shared gateway.
func New(gw *llm.Gateway) *Graph {
	return &Graph{
		intake:      intake.NewExtractor(gw),
		checker:     factcheck.NewChecker(gw),
		interviewer: interviewer.NewAgent(gw),
	}
}

// Invoke processes one user turn: it clears the turn-scoped fields, walks
// the node chain from the conditional entry point to the terminal node and
// merges each node's update into state. It never returns an error; a fully
// degraded backend still yields the default outward message.
func (g *Graph) Invoke(ctx context.Context, state *types.InterviewState) {
	state.SystemAlert = ""
	state.AIMessage = ""

	for node := EntryNode(state); node != NodeTerminal; node = Transition(node) {
		Apply(state, g.run(ctx, node, state))
	}
}

func (g *Graph) run(ctx context.Context, node Node, state *types.InterviewState) Update {
	switch node {
	case NodeIntake:
		return g.runIntake(ctx, state)
	case NodeFactCheck:
		return g.runFactCheck(ctx, state)
	case NodeInterview:
		return g.runInterview(ctx, state)
	}
	return Update{}
}

func (g *Graph) runIntake(ctx context.Context, state *types.InterviewState) Update {
	fmt.Println("[Intake]: Анализ профиля...")
	profile := g.intake.Extract(ctx, state.UserInput)

	return Update{
		Profile: profile,
		Thoughts: []types.Thought{{
			From:    types.AgentIntake,
			To:      types.AgentInterviewer,
			Content: fmt.Sprintf("Parsed Profile: %s %s", profile.GradeOr("?"), profile.RoleOr("?")),
		}},
	}
}

func (g *Graph) runFactCheck(ctx context.Context, state *types.InterviewState) Update {
	fmt.Println("FactChecker проверяет факты...")
	verdict := g.checker.Check(ctx, state.UserInput)

	alert := ""
	u := Update{SystemAlert: &alert}
	if verdict.Alert {
		alert = fmt.Sprintf("[SYSTEM ALERT: %s] ", verdict.Content)
		u.Thoughts = []types.Thought{{
			From:    types.AgentFactChecker,
			To:      types.AgentInterviewer,
			Content: verdict.Content,
		}}
	}
	return u
}

func (g *Graph) runInterview(ctx context.Context, state *types.InterviewState) Update {
	fmt.Println("Interviewer думает...")

	// The alert travels only through the prompt text; the recorded history
	// keeps the user's words as typed.
	userText := state.SystemAlert + state.UserInput
	base := state.History
	firstTurn := len(base) == 0
	if firstTurn {
		// Opening turn: the greeting becomes context and the agent is cued
		// to ask its first question.
		base = []llm.Message{{Role: llm.RoleUser, Content: state.UserInput}}
		userText = interviewer.FirstQuestionCue()
	}

	turn := g.interviewer.NextTurn(ctx, userText, base, state.Profile)

	history := make([]llm.Message, len(base), len(base)+2)
	copy(history, base)
	if !firstTurn {
		history = append(history, llm.Message{Role: llm.RoleUser, Content: state.UserInput})
	}
	history = append(history, llm.Message{Role: llm.RoleAssistant, Content: turn.Message})

	return Update{
		Thoughts: []types.Thought{{
			From:    types.AgentInterviewer,
			To:      types.AgentInterviewer,
			Content: turn.Thought,
		}},
		AIMessage: &turn.Message,
		History:   history,
	}
}
