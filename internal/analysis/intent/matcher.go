package intent

import (
	"regexp"
	"strings"
)

// Name identifies a message category.
type Name string

const (
	Greeting    Name = "greeting"
	Hours       Name = "hours"
	Pricing     Name = "pricing"
	Contact     Name = "contact"
	Goodbye     Name = "goodbye"
	ProductInfo Name = "product_info"
	Location    Name = "location"
)

type rule struct {
	name    Name
	pattern *regexp.Regexp
}

// rules are evaluated in order; the first hit wins, so the order is part of
// the behaviour.
var rules = []rule{
	{Greeting, regexp.MustCompile(`(hi|hello|hey|greetings|good (morning|afternoon|evening|night))`)},
	{Hours, regexp.MustCompile(`(hours|time|open|close|when)`)},
	{Pricing, regexp.MustCompile(`(price|cost|how much|expensive|cheap)`)},
	{Contact, regexp.MustCompile(`(contact|support|help|email|phone|call)`)},
	{Goodbye, regexp.MustCompile(`(bye|goodbye|thanks|see you|later)`)},
	{ProductInfo, regexp.MustCompile(`(product|service|what do you (sell|offer))`)},
	{Location, regexp.MustCompile(`(where|location|address|place)`)},
}

// Detect classifies message. The boolean is false when no rule matches.
func Detect(message string) (Name, bool) {
	normalized := Normalize(message)
	for _, r := range rules {
		if r.pattern.MatchString(normalized) {
			return r.name, true
		}
	}
	return "", false
}

// Normalize lower-cases and trims message the way Detect sees it.
func Normalize(message string) string {
	return strings.TrimSpace(strings.ToLower(message))
}

// Names lists the known intents in evaluation order.
func Names() []Name {
	names := make([]Name, len(rules))
	for i, r := range rules {
		names[i] = r.name
	}
	return names
}
