package types

import "github.com/jonathan/interview-coach/internal/llm"

// InterviewState is the mutable session context threaded through every turn.
// The turn orchestrator exclusively owns and mutates it; extractors receive
// slices of it and return partial updates.
//
// Field lifetimes differ: History and Thoughts are append-only for the whole
// session, SystemAlert and AIMessage are turn-scoped (fully replaced each
// turn), IsFinished only ever flips false to true.
type InterviewState struct {
	History     []llm.Message
	Profile     *CandidateProfile
	UserInput   string
	Thoughts    []Thought
	SystemAlert string
	AIMessage   string
	IsFinished  bool
}
