// Package prompt provides structured prompt templates for calshield's
// AI scheduling features.
//
// # Overview
//
// The package defines a set of [PromptType] constants, each representing a
// distinct scheduling task. Callers construct a [BuildOptions] value holding
// the sanitized event batch and call [Build] to receive a fully-formed
// []llm.Message slice that can be sent directly to any [llm.Provider].
//
// Every system prompt instructs the model to repeat pseudonyms (PERSON_1,
// CLIENT_FIRM_2, ...) exactly as written, so the anonymizer's reverse
// mapping can restore the real identities in the model's answer. The event
// payload embedded in the user turn is always the minimal safe projection;
// nothing else ever reaches the model.
//
// # Prompt types
//
//   - [TypeSuggestSlot]      — propose meeting slots that fit the calendar
//   - [TypeAvailability]     — summarize free/busy structure over the batch
//   - [TypeSchedulingQuery]  — answer a free-form scheduling question
//
// # Basic usage
//
//	opts := prompt.BuildOptions{
//	    Events:   minimalEvents,
//	    Question: "when can PERSON_1 and PERSON_2 meet for an hour?",
//	}
//	messages, err := prompt.Build(prompt.TypeSchedulingQuery, opts)
//	if err != nil {
//	    return err
//	}
//	// Pass messages directly to llm.Provider.ChatStream(ctx, messages, chatOpts)
package prompt
