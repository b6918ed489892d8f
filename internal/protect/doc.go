// Package protect is the top-level policy layer of the sanitization
// pipeline. An Orchestrator applies one of three named protection levels
// to a batch of calendar events, re-validates the output with the safety
// scanner, accumulates processing statistics, and maps pseudonyms in AI
// responses back to their originals.
//
//	anon := anonymize.New(domains)
//	o := protect.New(anon, protect.WithConfig(protect.Production()))
//	result, err := o.Process(events, protect.LevelStandard)
//
// In strict mode residual findings reject the batch with a *SafetyError;
// otherwise the batch succeeds with the findings recorded in the result.
// A returned error always means no output and no statistics mutation.
package protect
