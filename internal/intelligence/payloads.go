package intelligence

// Payload is the closed set of behavior-specific transformer request
// bodies. Each variant carries exactly the fields its behavior's system
// instruction expects; the refiner serializes the variant as the JSON
// user message.
type Payload interface {
	Behavior() Behavior
}

// EditorRequest asks the editor to integrate requested changes into an
// existing prompt.
type EditorRequest struct {
	OriginalPrompt string `json:"original_prompt"`
	UserChanges    string `json:"user_changes"`
}

func (EditorRequest) Behavior() Behavior { return BehaviorEditor }

// NextSceneRequest asks for a fresh prompt describing the next scene.
type NextSceneRequest struct {
	PreviousPromptText string `json:"previous_prompt_text"`
	UserRequest        string `json:"user_request"`
}

func (NextSceneRequest) Behavior() Behavior { return BehaviorNextScene }

// RephraseRequest asks for a reworded version of the current prompt.
type RephraseRequest struct {
	PromptToRephrase string `json:"prompt_to_rephrase"`
}

func (RephraseRequest) Behavior() Behavior { return BehaviorRephrase }

// AcknowledgementRequest asks for a conversational reply to positive
// feedback. It never produces a prompt.
type AcknowledgementRequest struct {
	UserFeedback string `json:"user_feedback"`
}

func (AcknowledgementRequest) Behavior() Behavior { return BehaviorAcknowledgement }

// AlternativeStoryRequest asks for a new story that keeps the current
// characters, setting and style.
type AlternativeStoryRequest struct {
	CurrentCharacters   string `json:"current_characters"`
	CurrentSetting      string `json:"current_setting"`
	CurrentStyle        string `json:"current_style"`
	UserSpecificRequest string `json:"user_specific_request"`
}

func (AlternativeStoryRequest) Behavior() Behavior { return BehaviorAlternativeStory }

// StyleBlendRequest asks for a free-text description of a blended art
// style. Stage one of the two-stage blend pipeline.
type StyleBlendRequest struct {
	UserChanges string `json:"user_changes"`
}

func (StyleBlendRequest) Behavior() Behavior { return BehaviorStyleBlender }
