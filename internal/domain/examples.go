package domain

import "math/rand"

// FantasyExample returns a pre-filled fantasy manifest for the form.
func FantasyExample() Manifest {
	return Manifest{
		Characters: "a wise old wizard with a long silver beard and a young apprentice",
		Setting:    "an ancient library tower filled with floating books and glowing runes",
		Story:      "the wizard reveals a forbidden spellbook to his apprentice",
		Style:      "detailed fantasy oil painting",
	}
}

// SciFiExample returns a pre-filled science-fiction manifest for the form.
func SciFiExample() Manifest {
	return Manifest{
		Characters: "a lone astronaut in a weathered exosuit",
		Setting:    "a derelict orbital station drifting above a storm-wracked gas giant",
		Story:      "the astronaut discovers a still-active alien terminal",
		Style:      "cinematic sci-fi concept art",
	}
}

var (
	randomCharacters = []string{
		"a clockwork fox with brass gears showing through its fur",
		"twin acrobats in mirrored costumes",
		"an elderly lighthouse keeper and her mechanical parrot",
		"a knight whose armor is overgrown with moss and wildflowers",
		"a street musician playing a glass violin",
	}
	randomSettings = []string{
		"a floating market above the clouds at dawn",
		"a subterranean city lit by bioluminescent fungi",
		"an abandoned opera house reclaimed by the sea",
		"a desert of black sand under two moons",
		"a train that travels between seasons",
	}
	randomStories = []string{
		"they find a door that was never there before",
		"a festival begins that happens once a century",
		"they trade a memory for safe passage",
		"the last light is about to go out",
		"an old rival returns asking for help",
	}
	randomStyles = []string{
		"watercolor illustration",
		"art nouveau poster",
		"moody chiaroscuro oil painting",
		"retro-futurist airbrush art",
		"ink wash with gold leaf accents",
	}
)

// RandomManifest returns a manifest assembled from curated fragments
// using the provided source, so callers control determinism.
func RandomManifest(rng *rand.Rand) Manifest {
	return Manifest{
		Characters: randomCharacters[rng.Intn(len(randomCharacters))],
		Setting:    randomSettings[rng.Intn(len(randomSettings))],
		Story:      randomStories[rng.Intn(len(randomStories))],
		Style:      randomStyles[rng.Intn(len(randomStyles))],
	}
}
