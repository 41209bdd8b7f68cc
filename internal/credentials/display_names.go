package credentials

import (
	"crypto/rand"
	"math/big"
)

// Word lists for generating friendly learner display names
var adjectives = []string{
	"Curious", "Brave", "Cheerful", "Clever", "Eager", "Gentle", "Honest",
	"Jolly", "Kind", "Lively", "Merry", "Patient", "Quick", "Quiet",
	"Sincere", "Steady", "Sunny", "Thoughtful", "Warm", "Witty",
}

var animals = []string{
	"Otter", "Badger", "Heron", "Lynx", "Magpie", "Marmot", "Osprey",
	"Panda", "Puffin", "Raven", "Robin", "Seal", "Sparrow", "Swift",
	"Tern", "Vole", "Wombat", "Wren", "Ibex", "Kestrel",
}

// GenerateDisplayName generates a random display name in the format
// "Adjective Animal", offered to learners during profile setup
func GenerateDisplayName() (string, error) {
	adjective, err := randomElement(adjectives)
	if err != nil {
		return "", err
	}

	animal, err := randomElement(animals)
	if err != nil {
		return "", err
	}

	return adjective + " " + animal, nil
}

// SuggestDisplayNames returns up to n distinct display name suggestions
func SuggestDisplayNames(n int) ([]string, error) {
	seen := make(map[string]bool)
	var names []string

	// Bounded attempts so a small word pool can never loop forever
	for attempts := 0; len(names) < n && attempts < n*10; attempts++ {
		name, err := GenerateDisplayName()
		if err != nil {
			return nil, err
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}

	return names, nil
}

// randomElement picks a random element from a string slice
func randomElement(slice []string) (string, error) {
	if len(slice) == 0 {
		return "", nil
	}

	num, err := rand.Int(rand.Reader, big.NewInt(int64(len(slice))))
	if err != nil {
		return "", err
	}

	return slice[num.Int64()], nil
}
