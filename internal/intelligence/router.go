package intelligence

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/manifest/internal/domain"
)

// DefaultSimilarityThreshold is the confidence floor below which a
// routed query falls back to the general editor behavior.
const DefaultSimilarityThreshold = 0.45

// ackTokenLimit is the maximum whitespace-token count for the lexical
// acknowledgement fast path. Short affirmations are semantically
// ambiguous under embedding similarity, so a keyword check is used
// instead for this narrow, high-frequency case.
const ackTokenLimit = 3

// ErrorKind classifies routing failures.
type ErrorKind string

const (
	ErrKindPrecondition        ErrorKind = "precondition"
	ErrKindProviderUnavailable ErrorKind = "provider_unavailable"
	ErrKindMalformedResponse   ErrorKind = "malformed_response"
)

// RouteError is a typed routing failure. The message is user-facing
// guidance; Err carries the underlying provider error, if any.
type RouteError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *RouteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *RouteError) Unwrap() error { return e.Err }

// Resolution is the outcome of routing one refinement turn.
type Resolution struct {
	// Text is the transformed prompt, or the conversational reply for
	// acknowledgement turns. Empty when the style-blend first stage
	// failed; callers must not write empty text into the current prompt.
	Text string

	// StatusLabel is the human-readable label for what happened.
	StatusLabel string

	// Behavior is the finally-selected behavior. A successful style
	// blend reports editor, since the second stage is an editor pass.
	Behavior Behavior

	// Similarity is the winning similarity score; 1 for the lexical
	// acknowledgement fast path.
	Similarity float64
}

// Router selects a rewriting behavior for free-form user text and
// invokes the transformer with the behavior-specific payload.
type Router struct {
	embedder  Embedder
	refiner   Refiner
	index     *ReferenceIndex
	threshold float64
}

// NewRouter creates a Router. A non-positive threshold selects
// DefaultSimilarityThreshold.
func NewRouter(embedder Embedder, refiner Refiner, index *ReferenceIndex, threshold float64) *Router {
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}
	return &Router{
		embedder:  embedder,
		refiner:   refiner,
		index:     index,
		threshold: threshold,
	}
}

// Route decides which behavior applies to the query and returns the
// transformed result. Routing never runs against an uninitialized
// session: an empty current prompt is a precondition failure.
func (r *Router) Route(ctx context.Context, query, currentPrompt string, m domain.Manifest) (*Resolution, error) {
	if strings.TrimSpace(currentPrompt) == "" {
		return nil, &RouteError{
			Kind:    ErrKindPrecondition,
			Message: "Please generate an initial manifestation first using the form.",
		}
	}

	isAck := isShortAcknowledgement(query)

	// The fast path needs no query embedding; everything else does, and
	// there is no fallback routing without a vector.
	var best Behavior
	var maxSim float64
	if isAck {
		best = BehaviorAcknowledgement
		maxSim = 1.0
	} else {
		queryVec, err := r.embedder.Embed(ctx, query)
		if err != nil {
			return nil, &RouteError{
				Kind:    ErrKindProviderUnavailable,
				Message: "Failed to generate an embedding for your query.",
				Err:     err,
			}
		}
		best, maxSim = r.rank(queryVec)
	}

	status := StatusLabel(best)
	if !isAck && maxSim < r.threshold {
		// Low confidence defaults to the most general, least
		// destructive transformation.
		best = BehaviorEditor
		status = statusLowConfidence
	}

	if best == BehaviorStyleBlender {
		return r.blendAndApply(ctx, query, currentPrompt, maxSim)
	}

	payload := shapePayload(best, query, currentPrompt, m)
	text, err := r.refiner.Transform(ctx, payload)
	if err != nil {
		return nil, &RouteError{
			Kind:    ErrKindProviderUnavailable,
			Message: "The prompt transformer is unavailable.",
			Err:     err,
		}
	}

	return &Resolution{
		Text:        text,
		StatusLabel: status,
		Behavior:    best,
		Similarity:  maxSim,
	}, nil
}

// rank scores the query vector against every ranked behavior and
// returns the best match. The initial best is the editor at similarity
// -1, so an all-degenerate field still resolves deterministically.
func (r *Router) rank(queryVec []float64) (Behavior, float64) {
	best := BehaviorEditor
	maxSim := -1.0
	for _, b := range rankedBehaviors {
		sim := CosineSimilarity(queryVec, r.index.Vector(b))
		if sim > maxSim {
			maxSim = sim
			best = b
		}
	}
	return best, maxSim
}

// blendAndApply runs the two-stage style-blend pipeline: first compose
// a blended-style description as free text, then graft it into the
// existing prompt via an editor pass. A single-pass instruction
// conflates "describe a new style" with "apply it".
func (r *Router) blendAndApply(ctx context.Context, query, currentPrompt string, sim float64) (*Resolution, error) {
	description, err := r.refiner.Transform(ctx, StyleBlendRequest{UserChanges: query})
	if err != nil || strings.TrimSpace(description) == "" {
		// Stage-one failure falls back to the editor with a failure
		// status and leaves the prompt untouched.
		return &Resolution{
			Text:        "",
			StatusLabel: statusBlendFailed,
			Behavior:    BehaviorEditor,
			Similarity:  sim,
		}, nil
	}

	change := fmt.Sprintf("Integrate the blended style '%s' into the prompt's style section.", description)
	text, err := r.refiner.Transform(ctx, EditorRequest{
		OriginalPrompt: currentPrompt,
		UserChanges:    change,
	})
	if err != nil {
		return nil, &RouteError{
			Kind:    ErrKindProviderUnavailable,
			Message: "The prompt transformer is unavailable.",
			Err:     err,
		}
	}

	return &Resolution{
		Text:        text,
		StatusLabel: statusBlendApplied,
		Behavior:    BehaviorEditor,
		Similarity:  sim,
	}, nil
}

// shapePayload packages the inputs each behavior expects.
func shapePayload(b Behavior, query, currentPrompt string, m domain.Manifest) Payload {
	switch b {
	case BehaviorNextScene:
		return NextSceneRequest{PreviousPromptText: currentPrompt, UserRequest: query}
	case BehaviorRephrase:
		return RephraseRequest{PromptToRephrase: currentPrompt}
	case BehaviorAcknowledgement:
		return AcknowledgementRequest{UserFeedback: query}
	case BehaviorAlternativeStory:
		return AlternativeStoryRequest{
			CurrentCharacters:   m.Characters,
			CurrentSetting:      m.Setting,
			CurrentStyle:        m.Style,
			UserSpecificRequest: query,
		}
	default:
		return EditorRequest{OriginalPrompt: currentPrompt, UserChanges: query}
	}
}

// isShortAcknowledgement reports whether the query is short positive
// feedback: at most ackTokenLimit whitespace tokens and at least one
// acknowledgement keyword in the lowered text.
func isShortAcknowledgement(query string) bool {
	lowered := strings.ToLower(query)
	if len(strings.Fields(lowered)) > ackTokenLimit {
		return false
	}
	for _, keyword := range ackKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}
