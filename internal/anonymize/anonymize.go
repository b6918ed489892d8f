package anonymize

import (
	"fmt"
	"strings"
	"sync"
)

// Category identifies an anonymization table. Each category owns a
// monotonically increasing counter so pseudonyms are never reused.
type Category string

const (
	CategoryPerson       Category = "person"
	CategoryOrganization Category = "organization"
	CategoryLocation     Category = "location"
	CategoryProject      Category = "project"
)

// Organization classes minted by Organization. All classes share the
// organization counter.
const (
	OrgClient   = "CLIENT_FIRM"
	OrgInternal = "OUR_COMPANY"
	OrgVendor   = "VENDOR"
	OrgExternal = "EXTERNAL_ORG"
)

// Location classes minted by Location.
const (
	LocVirtual    = "VIRTUAL_MEETING"
	LocConference = "CONFERENCE_ROOM"
	LocOffice     = "OFFICE_LOCATION"
	LocDining     = "DINING_LOCATION"
	LocGeneral    = "GENERAL_LOCATION"
)

// Domains configures how organization domains are classified. Matching is
// by exact domain or dot-suffix, case-insensitive.
type Domains struct {
	Internal []string
	Client   []string
	Vendor   []string
}

// Anonymizer deterministically replaces identities with stable,
// reversible pseudonyms. The same original always yields the same
// pseudonym for the lifetime of the instance, and the reverse table makes
// MapBack a pure inverse.
//
// Anonymizer is safe for concurrent use; forward calls for all categories
// serialize on one mutex so counters stay unique per distinct input.
type Anonymizer struct {
	mu sync.Mutex

	people    map[string]string
	orgs      map[string]string
	locations map[string]string
	projects  map[string]string
	reverse   map[string]string
	counters  map[Category]int

	domains Domains
}

// New creates an empty Anonymizer with the given domain classification.
func New(domains Domains) *Anonymizer {
	a := &Anonymizer{domains: domains}
	a.clearLocked()
	return a
}

// Person returns the stable pseudonym for a person, keyed by email when
// present and display name otherwise. An empty identity returns "".
func (a *Anonymizer) Person(email, displayName string) string {
	key := email
	if key == "" {
		key = displayName
	}
	if key == "" {
		return ""
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mint(a.people, CategoryPerson, key, "PERSON")
}

// Organization returns the stable pseudonym for an email domain,
// classified as client, internal, vendor, or external. All classes share
// one counter so distinct domains never collide.
func (a *Anonymizer) Organization(domain string) string {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return ""
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mint(a.orgs, CategoryOrganization, domain, a.classifyDomain(domain))
}

// Location returns the stable pseudonym for a location string, classified
// by keyword into virtual, conference room, office, dining, or general.
func (a *Anonymizer) Location(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mint(a.locations, CategoryLocation, text, classifyLocation(text))
}

// Project returns the stable pseudonym for a project or initiative name.
func (a *Anonymizer) Project(name string) string {
	if strings.TrimSpace(name) == "" {
		return ""
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mint(a.projects, CategoryProject, name, "PROJECT")
}

// mint returns the cached pseudonym for key or assigns the next one in
// the category. Callers must hold the mutex.
func (a *Anonymizer) mint(table map[string]string, category Category, key, class string) string {
	if pseudonym, ok := table[key]; ok {
		return pseudonym
	}

	a.counters[category]++
	pseudonym := fmt.Sprintf("%s_%d", class, a.counters[category])
	table[key] = pseudonym
	a.reverse[pseudonym] = key
	return pseudonym
}

// Reset clears every table and counter. Stale pseudonyms become unknown
// to MapBack and pass through unchanged afterwards.
func (a *Anonymizer) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.clearLocked()
}

func (a *Anonymizer) clearLocked() {
	a.people = make(map[string]string)
	a.orgs = make(map[string]string)
	a.locations = make(map[string]string)
	a.projects = make(map[string]string)
	a.reverse = make(map[string]string)
	a.counters = make(map[Category]int)
}

// Count returns how many distinct originals the category has seen.
func (a *Anonymizer) Count(category Category) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch category {
	case CategoryPerson:
		return len(a.people)
	case CategoryOrganization:
		return len(a.orgs)
	case CategoryLocation:
		return len(a.locations)
	case CategoryProject:
		return len(a.projects)
	default:
		return 0
	}
}

// Mappings returns a copy of the reverse table (pseudonym to original).
// Useful for debugging; never ship it anywhere.
func (a *Anonymizer) Mappings() map[string]string {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make(map[string]string, len(a.reverse))
	for k, v := range a.reverse {
		out[k] = v
	}
	return out
}

// classifyDomain buckets a lowercased domain using the configured lists.
// Callers must hold the mutex (reads config only, but kept consistent).
func (a *Anonymizer) classifyDomain(domain string) string {
	switch {
	case matchDomain(domain, a.domains.Client):
		return OrgClient
	case matchDomain(domain, a.domains.Internal):
		return OrgInternal
	case matchDomain(domain, a.domains.Vendor):
		return OrgVendor
	default:
		return OrgExternal
	}
}

func matchDomain(domain string, list []string) bool {
	for _, d := range list {
		d = strings.ToLower(strings.TrimSpace(d))
		if d == "" {
			continue
		}
		if domain == d || strings.HasSuffix(domain, "."+d) {
			return true
		}
	}
	return false
}

var locationKeywords = []struct {
	class    string
	keywords []string
}{
	{LocVirtual, []string{"zoom", "meet", "teams", "webex", "virtual", "online", "video", "call", "hangout"}},
	{LocConference, []string{"conference room", "meeting room", "boardroom", "board room", "room", "huddle"}},
	{LocOffice, []string{"office", "hq", "headquarters", "building", "floor", "campus", "desk", "suite"}},
	{LocDining, []string{"restaurant", "cafe", "café", "coffee", "lunch", "dinner", "bar", "bistro", "deli"}},
}

// classifyLocation buckets a location string by keyword, first match
// wins, falling back to the general class.
func classifyLocation(text string) string {
	lower := strings.ToLower(text)
	for _, group := range locationKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.class
			}
		}
	}
	return LocGeneral
}
