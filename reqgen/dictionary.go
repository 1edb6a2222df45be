package reqgen

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strings"
)

// built-in slug words, used when no dictionary file is given or it is missing
var fallbackWords = []string{
	"fast", "modern", "spicy", "vintage", "quiet", "bright", "rapid", "golden",
	"silver", "hidden", "lucky", "rusty", "frozen", "gentle", "bold", "tiny",
	"lantern", "scooter", "camera", "notebook", "chair", "kettle", "compass",
	"garden", "harbor", "rocket", "violin", "meadow", "pepper", "ribbon",
	"anchor", "candle", "falcon", "glacier", "island", "journal", "marble",
}

// Dictionary holds the words path slugs are built from
type Dictionary struct {
	words []string
}

// LoadDictionary loads words from a dictionary file, one per line. An empty
// path or a missing file yields the built-in list.
func LoadDictionary(path string) (*Dictionary, error) {
	if path == "" {
		return &Dictionary{words: fallbackWords}, nil
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Dictionary{words: fallbackWords}, nil
		}
		return nil, fmt.Errorf("failed to open dictionary: %w", err)
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())

		// slugs stay short and url-safe
		if len(word) >= 3 && len(word) <= 12 && isAlpha(word) {
			words = append(words, strings.ToLower(word))
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dictionary: %w", err)
	}

	if len(words) == 0 {
		return nil, fmt.Errorf("no valid words found in dictionary")
	}

	return &Dictionary{words: words}, nil
}

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// RandomWord returns a random word from the dictionary
func (d *Dictionary) RandomWord(rng *rand.Rand) string {
	if len(d.words) == 0 {
		return "item"
	}
	return d.words[rng.Intn(len(d.words))]
}

// Slug joins n random words with dashes, e.g. "fast-lantern"
func (d *Dictionary) Slug(n int, rng *rand.Rand) string {
	if n <= 0 {
		return ""
	}

	parts := make([]string, n)
	for i := range parts {
		parts[i] = d.RandomWord(rng)
	}
	return strings.Join(parts, "-")
}

// Size returns the number of words in the dictionary
func (d *Dictionary) Size() int {
	return len(d.words)
}
