package intelligence

// Behavior identifies one of the fixed prompt-rewriting behaviors a
// chat turn can be routed to.
type Behavior string

const (
	BehaviorEditor           Behavior = "editor"
	BehaviorNextScene        Behavior = "next_scene"
	BehaviorRephrase         Behavior = "rephrase"
	BehaviorAcknowledgement  Behavior = "acknowledgement"
	BehaviorAlternativeStory Behavior = "alternative_story"
	BehaviorStyleBlender     Behavior = "style_blender"
)

// rankedBehaviors is the fixed iteration order for similarity ranking.
// Acknowledgement is deliberately absent: it is reachable only through
// the lexical fast path, never through embedding similarity, to avoid
// false positives on longer text that happens to mention positive words.
// Ties resolve to the earliest behavior in this slice.
var rankedBehaviors = []Behavior{
	BehaviorEditor,
	BehaviorNextScene,
	BehaviorRephrase,
	BehaviorAlternativeStory,
	BehaviorStyleBlender,
}

// AllBehaviors returns every routed behavior in a stable order,
// acknowledgement last.
func AllBehaviors() []Behavior {
	out := make([]Behavior, 0, len(rankedBehaviors)+1)
	out = append(out, rankedBehaviors...)
	return append(out, BehaviorAcknowledgement)
}

// IsValidBehavior reports whether name is a known routed behavior.
func IsValidBehavior(name Behavior) bool {
	for _, b := range AllBehaviors() {
		if b == name {
			return true
		}
	}
	return false
}

// ackKeywords is the lexical fast-path vocabulary for short positive
// feedback. Multi-word entries match as substrings of the lowered query.
var ackKeywords = []string{
	"good", "nice", "perfect", "great", "excellent", "awesome",
	"love it", "superb", "fantastic", "thanks", "okay", "got it",
}

// referenceDescriptions is the per-behavior text embedded once at
// session start and ranked against each user query.
var referenceDescriptions = map[Behavior]string{
	BehaviorEditor: "edit, refine, modify, change, shorten, lengthen, simplify, expand, " +
		"adjust mood, alter lighting, alter textures, alter props, " +
		"alter setting, alter style, alter characters, alter story, " +
		"regenerate, replace, swap, remove, delete, make, turn, convert, " +
		"add, insert, update, revise, rework, tune, tweak, " +
		"change the character to, make the setting, add a, remove the, " +
		"replace the with, turn the into, change the time of day, " +
		"adjust the camera angle, add more detail, make it more descriptive, " +
		"change the mood to, make it more cinematic, make it more dramatic, " +
		"in the style of, " +
		"create a character, add a new protagonist, invent a sidekick, design a villain, " +
		"keep the character but change the setting, keep the setting but change the characters, " +
		"keep the style but change the subject, replace the main character, " +
		"change X but keep Y, replace X with Y, replace A with B, swap A for B",
	BehaviorNextScene: "next scene, what happens next, continue story, advance narrative, plot progression, " +
		"continue, next part of the story, aftermath of, jump forward, move on, next chapter, " +
		"show the next logical step, " +
		"next, advance, proceed, afterwards, then, finally, eventually, " +
		"cut to, dissolve, flash forward, transition",
	BehaviorRephrase: "rephrase, reword, paraphrase, rewrite, re-express, " +
		"summarize the story, provide a synopsis, create a summary, " +
		"put this in other words, rewrite in a humorous tone, give me a professional version, " +
		"simplify, clarify, explain this in simple terms, " +
		"make this more concise, condense this, what's the core message, " +
		"change the tone of this, make this sound more, " +
		"in a nutshell, what's the gist of this, what's the main takeaway",
	BehaviorAcknowledgement: "good, great, excellent, awesome, perfect, superb, fantastic, cool, wonderful, " +
		"love it, nailed it, spot on, exactly, that's it, that's the one, this works, " +
		"thanks, thank you, got it, okay, alright, sounds good, makes sense, " +
		"understood, affirmative, confirmed, " +
		"yes, yep, on point, that's right, " +
		"that's perfect, works for me, noted",
	BehaviorAlternativeStory: "alternative story, new story, different take, another plot, different scenario, different version, " +
		"make another with same characters, new plot with existing elements, " +
		"keep the characters but change the story, completely change the plot, " +
		"what if the story was different, reimagine the story, give them a new adventure, " +
		"change, remix, twist, reboot, spin, alternate, " +
		"what if the villain was the hero, " +
		"retell the tale from a different point of view, put the characters in a new genre",
	BehaviorStyleBlender: "blend styles, mix styles, combine art, fusion of styles, merge aesthetics, " +
		"blend A and B, mashup of, combine the styles of, in the style of, hybrid style, " +
		"Impressionism, Surrealism, Abstract, Pop Art, Futurism, Steampunk, Cyberpunk, " +
		"Watercolor, Oil painting, Charcoal sketch, Manga, Anime, Comic book art, " +
		"Art Deco, Bauhaus, Brutalism, Gothic, " +
		"collage, pastiche, homage, tribute, synthesize, hybridize, amalgamate, fuse, crossover, " +
		"retro, futuristic, noir, surreal, abstract, impressionistic, " +
		"photorealism, hyperrealism, rococo, dadaism, art nouveau, expressionist, romanticist, " +
		"street art, graffiti, mural, fresco, sketch, doodling, digital painting",
}

// composeInstruction drives the initial manifest-to-prompt composition.
// It is a task, not a routed behavior.
const composeInstruction = "You are an expert prompt engineer for an AI image generator. " +
	"Your task is to take a structured user manifestation (in JSON format) " +
	"and combine its components into a single, cohesive, and highly detailed " +
	"text prompt for an AI image model. The user will provide a JSON object " +
	"containing fields like 'characters', 'setting', 'story', 'style', " +
	"and potentially advanced details. " +
	"Your output must be only the refined prompt, without any extra commentary. " +
	"Ensure the final prompt flows naturally and integrates all elements."

// systemInstructions maps each behavior to the fixed system instruction
// sent with its payload.
var systemInstructions = map[Behavior]string{
	BehaviorEditor: "You are a prompt editor for an AI image generator. " +
		"You will receive an existing prompt in the 'original_prompt' key and user-requested changes in 'user_changes'. " +
		"Your task is to integrate these changes smoothly into the existing prompt, producing a new, refined prompt. " +
		"Your capabilities include general edits (adding, removing, or modifying elements), " +
		"stylistic changes (rephrasing to make it shorter, longer, simpler, or more descriptive), " +
		"detail expansion (elaborating on lighting, textures, minor objects, background elements, " +
		"character attire, and environmental subtleties), " +
		"mood adjustment (subtly modifying lighting, color, expressions, and environment to reflect a desired mood " +
		"while keeping the core subject and action), " +
		"and precise attribute changes to characters, setting, story, or style. " +
		"Crucially, ensure the final prompt flows naturally and integrates all elements. " +
		"Your output must be only the refined prompt, without any extra commentary or conversational filler. " +
		"Prioritize the user's changes while maintaining a cohesive and natural flow.",
	BehaviorNextScene: "You are a creative AI image prompt generator that helps continue a story. " +
		"You will receive the 'previous_prompt_text' (the previous image prompt as plain text). " +
		"Your task is to create a new, cohesive, and highly detailed text prompt " +
		"for an AI image model that logically describes the next scene in the narrative. " +
		"Crucially, do not just append to the previous prompt. Instead, generate a " +
		"completely fresh prompt that builds upon the implied conclusion or events " +
		"of the previous_prompt_text. Consider how characters, setting, and story " +
		"elements might evolve. The new prompt should be distinct from the previous one, " +
		"showing clear progression. Your output must be only the new refined prompt, " +
		"without any extra commentary.",
	BehaviorRephrase: "You are an AI image prompt assistant specializing in rephrasing existing prompts. " +
		"You will receive the 'prompt_to_rephrase' (the complete previous text prompt as plain text). " +
		"Your task is to generate a new, distinct text prompt that only rewords or restructures the language " +
		"of the prompt_to_rephrase. DO NOT change the core elements such as characters, " +
		"setting, story/action, art style, or any advanced details. Focus purely on synonyms, " +
		"sentence structure, and descriptive phrasing to offer a fresh linguistic take. " +
		"Your output must be only the new rephrased prompt, without any extra commentary.",
	BehaviorAcknowledgement: "You are a helpful and proactive AI assistant for an image manifestation app. " +
		"A user has just provided positive but unspecific feedback (e.g., 'good', 'nice', 'perfect'). " +
		"Your task is to acknowledge their positive feedback in a friendly way, " +
		"and then immediately offer specific next steps or ask a clarifying question to continue the creative process. " +
		"Suggest actions like 'Would you like to refine something specific?', 'Should we generate an image now?', " +
		"or 'Do you want to explore a next scene or an alternative story?'. " +
		"Keep the response concise and encouraging. Your output should be a conversational sentence or two, " +
		"without any extra commentary or prompt formatting.",
	BehaviorAlternativeStory: "You are a creative AI image prompt assistant for generating alternative stories. " +
		"You will receive the following components: 'current_characters', 'current_setting', 'current_style', " +
		"and a 'user_specific_request' (e.g., 'give me a new story', 'different take', " +
		"'keep characters the same but change the story'). " +
		"Your task is to generate a brand new, cohesive, and highly detailed text prompt " +
		"that creates a completely different story or action while explicitly leveraging the " +
		"'current_characters', 'current_setting', and 'current_style'. " +
		"Crucially, prioritize retaining the specified 'current_characters' unless the user's request " +
		"explicitly overrides them. Focus on a fresh narrative or a significant plot twist. " +
		"Your output must be only the new alternative prompt, without any extra commentary.",
	BehaviorStyleBlender: "You are an AI image prompt assistant specializing in blending art styles. " +
		"You will receive a dictionary with 'user_changes' (e.g., 'blend cyberpunk and impressionistic'). " +
		"Your task is to generate a cohesive and creative description of a new art style that intelligently " +
		"combines elements from the styles mentioned in 'user_changes', for an AI image model. " +
		"Ensure the blended style is unique yet harmonious. " +
		"Your output must be only the new blended style description, without any extra commentary.",
}

// Human-readable status labels surfaced alongside routed results.
const (
	statusEditor        = "Applied your changes and refined the prompt:"
	statusNextScene     = "Next scene generated!"
	statusRephrase      = "Prompt rephrased!"
	statusAck           = "Understood!"
	statusAltStory      = "Alternative story generated!"
	statusLowConfidence = "Using general editing for your request:"
	statusBlendApplied  = "Blended styles and applied to the prompt:"
	statusBlendFailed   = "Blending styles failed; no changes were applied."
)

// statusLabels maps each behavior to its default status label.
var statusLabels = map[Behavior]string{
	BehaviorEditor:           statusEditor,
	BehaviorNextScene:        statusNextScene,
	BehaviorRephrase:         statusRephrase,
	BehaviorAcknowledgement:  statusAck,
	BehaviorAlternativeStory: statusAltStory,
	// Style blending never surfaces its own label: success reports the
	// editor's blend-applied label, failure the blend-failed label.
}

// StatusLabel returns the default status label for a behavior.
func StatusLabel(b Behavior) string {
	if label, ok := statusLabels[b]; ok {
		return label
	}
	return statusEditor
}
