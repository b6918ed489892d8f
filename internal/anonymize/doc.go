// Package anonymize provides deterministic, reversible pseudonymization
// of people, organizations, locations, and projects.
//
// The same original value always maps to the same pseudonym for the
// lifetime of an Anonymizer, pseudonyms are never reused for different
// originals, and MapBack restores every known pseudonym from any nesting
// depth of a decoded JSON value:
//
//	a := anonymize.New(anonymize.Domains{Internal: []string{"ourco.com"}})
//	p := a.Person("jane@client.example", "Jane Doe") // PERSON_1
//	restored := a.MapBack("PERSON_1 is free at 2pm") // "jane@client.example is free at 2pm"
//
// State lives only in process memory. Construct one Anonymizer per
// request or per session and pass it explicitly; there is no package
// level instance.
package anonymize
