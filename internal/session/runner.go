package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/interview-coach/internal/graph"
	"github.com/jonathan/interview-coach/internal/input"
	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/report"
	"github.com/jonathan/interview-coach/internal/types"
)

// Turn ceilings enforced by the runner, not the graph.
const (
	DefaultAskFinishAfter = 10
	DefaultHardMaxTurns   = 15
)

// defaultGreeting substitutes for an empty opening input.
const defaultGreeting = "Привет, я Python разработчик"

// finishReminder is appended to the outward message at the warning ceiling.
const finishReminder = "\n\n(Напишите 'Стоп' для получения фидбека)."

// timeUpMessage replaces the outward message at the hard ceiling.
const timeUpMessage = "Время вышло. Переходим к результатам."

// Limits are the runner's turn ceilings.
type Limits struct {
	AskFinishAfter int
	HardMaxTurns   int
}

// DefaultLimits returns the standard ceilings.
func DefaultLimits() Limits {
	return Limits{AskFinishAfter: DefaultAskFinishAfter, HardMaxTurns: DefaultHardMaxTurns}
}

// Store persists a finished session export. Persistence is best effort: the
// runner warns and continues when a store call fails.
type Store interface {
	SaveSession(ctx context.Context, participantName string, doc ExportDoc) error
}

// Config tunes a runner. Zero values fall back to defaults.
type Config struct {
	Limits    Limits
	OutputDir string
	Store     Store
}

// reporter synthesizes the final feedback text from the session log.
type reporter interface {
	Generate(ctx context.Context, logData any) (string, error)
}

// Runner drives one interview session end to end: intake and the opening
// question, the per-turn pipeline with ceilings and stop handling, then a
// single report synthesis and the ledger export.
type Runner struct {
	graph    *graph.Graph
	reporter reporter

	limits    Limits
	outputDir string
	store     Store

	state     *types.InterviewState
	ledger    *Ledger
	turnCount int
	finished  bool
	feedback  string
}

// NewRunner builds a runner over one shared gateway.
func NewRunner(gw *llm.Gateway, cfg Config) *Runner {
	limits := cfg.Limits
	if limits.AskFinishAfter <= 0 {
		limits.AskFinishAfter = DefaultAskFinishAfter
	}
	if limits.HardMaxTurns <= 0 {
		limits.HardMaxTurns = DefaultHardMaxTurns
	}
	outputDir := cfg.OutputDir
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}

	return &Runner{
		graph:     graph.New(gw),
		reporter:  report.NewGenerator(gw),
		limits:    limits,
		outputDir: outputDir,
		store:     cfg.Store,
	}
}

// Start processes the opening input: profile intake plus the first interview
// question. It opens the ledger under the extracted participant name and
// returns the agent's opening message.
func (r *Runner) Start(ctx context.Context, rawInput string) string {
	raw := strings.TrimSpace(rawInput)
	if raw == "" {
		raw = defaultGreeting
	}
	candidateText := input.NormalizeToText(raw, input.TryParseJSONLine(raw))

	state := &types.InterviewState{UserInput: candidateText}
	r.graph.Invoke(ctx, state)

	r.state = state
	r.ledger = NewLedger(state.Profile.DisplayName())
	r.ledger.RecordTurn(candidateText, state.Thoughts, state.AIMessage)

	return state.AIMessage
}

// Step processes one user turn. It returns the agent's outward message and
// whether the session is over (stop intent, hard ceiling, or an internal
// failure). Empty input is ignored. Any panic escaping the turn pipeline is
// recovered and ends the session; the ledger stays exportable.
func (r *Runner) Step(ctx context.Context, userText string) (reply string, done bool) {
	defer func() {
		if rec := recover(); rec != nil {
			fmt.Printf("Ошибка в цикле: %v\n", rec)
			r.end()
			reply, done = "", true
		}
	}()

	if r.finished {
		return "", true
	}

	text := strings.TrimSpace(userText)
	if text == "" {
		return "", false
	}
	if input.IsStopCommand(text) {
		r.end()
		return "", true
	}

	r.turnCount++

	mark := len(r.state.Thoughts)
	r.state.UserInput = text
	r.graph.Invoke(ctx, r.state)

	ai := r.state.AIMessage
	switch {
	case r.turnCount >= r.limits.HardMaxTurns:
		ai = timeUpMessage
	case r.turnCount == r.limits.AskFinishAfter:
		ai += finishReminder
	}
	// Later turns should see what the candidate actually saw.
	if ai != r.state.AIMessage && len(r.state.History) > 0 {
		r.state.History[len(r.state.History)-1].Content = ai
	}

	r.ledger.RecordTurn(text, r.state.Thoughts[mark:], ai)

	if r.turnCount >= r.limits.HardMaxTurns {
		r.end()
		return ai, true
	}
	return ai, false
}

// end seals the session. The state flag is monotonic: once set it never
// flips back.
func (r *Runner) end() {
	r.finished = true
	if r.state != nil {
		r.state.IsFinished = true
	}
}

// Finish synthesizes the report exactly once, seals the ledger and writes
// the export. Repeated calls return the cached feedback without another
// model call. Persistence failures are warned about, never fatal.
func (r *Runner) Finish(ctx context.Context) (feedback, path string, err error) {
	r.end()
	if r.feedback != "" {
		return r.feedback, "", nil
	}

	fmt.Println("[Reporter]: Генерация фидбека...")
	feedback, err = r.reporter.Generate(ctx, r.ledger)
	if err != nil {
		// The partial ledger is still exported so the session is not lost.
		path, _ = r.ledger.Save(r.outputDir)
		return "", path, fmt.Errorf("report generation failed: %w", err)
	}
	r.feedback = feedback
	r.ledger.SetFinalFeedback(feedback)

	path, err = r.ledger.Save(r.outputDir)
	if err != nil {
		return feedback, "", err
	}

	if r.store != nil {
		if dbErr := r.store.SaveSession(ctx, r.ledger.ParticipantName, r.ledger.Export()); dbErr != nil {
			fmt.Printf("Warning: failed to persist session: %v\n", dbErr)
		}
	}

	return feedback, path, nil
}

// Finished reports whether the session has ended.
func (r *Runner) Finished() bool { return r.finished }

// TurnCount returns the number of completed post-intake turns.
func (r *Runner) TurnCount() int { return r.turnCount }

// Profile returns the extracted candidate profile, nil before Start.
func (r *Runner) Profile() *types.CandidateProfile {
	if r.state == nil {
		return nil
	}
	return r.state.Profile
}

// Ledger exposes the session ledger, nil before Start.
func (r *Runner) Ledger() *Ledger { return r.ledger }
