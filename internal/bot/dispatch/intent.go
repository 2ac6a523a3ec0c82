package dispatch

// Intent is the closed set of intents the code hook serves.
type Intent int

const (
	IntentGreeting Intent = iota
	IntentDiningSuggestion
	IntentThankYou

	numIntents
)

var intentNames = [numIntents]string{
	IntentGreeting:         "GreetingIntent",
	IntentDiningSuggestion: "DiningSuggestionIntent",
	IntentThankYou:         "ThankYouIntent",
}

func (i Intent) String() string {
	if i < 0 || i >= numIntents {
		return "UnknownIntent"
	}
	return intentNames[i]
}

// ParseIntent maps an engine intent name onto the enumeration. Matching is
// exact.
func ParseIntent(name string) (Intent, bool) {
	for i, n := range intentNames {
		if n == name {
			return Intent(i), true
		}
	}
	return 0, false
}
