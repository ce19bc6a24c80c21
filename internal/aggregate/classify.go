package aggregate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/robalyx/stemdata/internal/dictionary"
	"github.com/robalyx/stemdata/pkg/utils"
)

// ErrMalformedRecord indicates a paradigm or variant that lacks the data needed to classify it.
var ErrMalformedRecord = errors.New("malformed record")

// DefaultClosedTags are the GrammarDB part-of-speech letters of closed word classes:
// C conjunction, I preposition, E particle, Y interjection, W parenthetic word.
// Z (predicative) inflects for tense and is left out.
var DefaultClosedTags = []string{"C", "I", "E", "Y", "W"}

// Route tells the aggregator what to do with a classified variant.
type Route int

const (
	// RouteInflecting sends the variant to the flexion extractor.
	RouteInflecting Route = iota
	// RouteInvariant adds the variant's words to the invariant set.
	RouteInvariant
	// RouteCompound skips hyphenated and multi-word variants.
	RouteCompound
)

// String returns the name of the route.
func (r Route) String() string {
	switch r {
	case RouteInflecting:
		return "inflecting"
	case RouteInvariant:
		return "invariant"
	case RouteCompound:
		return "compound"
	default:
		return fmt.Sprintf("Route(%d)", int(r))
	}
}

// Classification is the outcome of classifying a single variant.
type Classification struct {
	Route Route
	// Words holds the normalized lemma followed by the distinct kept forms.
	Words []string
}

// Classifier normalizes variants and decides their route.
// It owns a FormNormalizer and is therefore not safe for concurrent use.
type Classifier struct {
	normalizer *utils.FormNormalizer
	closedTags []string
}

// NewClassifier creates a new Classifier.
func NewClassifier(normalizer *utils.FormNormalizer, closedTags []string) *Classifier {
	tags := make([]string, 0, len(closedTags))
	for _, tag := range closedTags {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}

	return &Classifier{
		normalizer: normalizer,
		closedTags: tags,
	}
}

// Classify normalizes the lemma and forms of a variant and picks its route.
// Records without a lemma or without any usable form return ErrMalformedRecord.
func (c *Classifier) Classify(paradigm *dictionary.Paradigm, variant *dictionary.Variant) (*Classification, error) {
	lemma := c.normalizer.Normalize(paradigm.VariantLemma(variant))
	if lemma == "" {
		return nil, fmt.Errorf("%w: paradigm %s variant %s has no lemma", ErrMalformedRecord, paradigm.ID, variant.ID)
	}

	if len(variant.Forms) == 0 {
		return nil, fmt.Errorf("%w: paradigm %s variant %s has no forms", ErrMalformedRecord, paradigm.ID, variant.ID)
	}

	if utils.IsCompound(lemma) {
		return &Classification{Route: RouteCompound, Words: []string{lemma}}, nil
	}

	forms := make([]string, 0, len(variant.Forms))
	empty := 0

	for _, raw := range variant.Values() {
		value := c.normalizer.Normalize(raw)
		switch {
		case value == "":
			empty++
		case utils.IsCompound(value):
		default:
			forms = append(forms, value)
		}
	}

	if empty == len(variant.Forms) {
		return nil, fmt.Errorf("%w: paradigm %s variant %s has only empty forms", ErrMalformedRecord, paradigm.ID, variant.ID)
	}

	if len(forms) == 0 {
		return &Classification{Route: RouteCompound, Words: []string{lemma}}, nil
	}

	forms = utils.RemoveDuplicates(forms)
	words := utils.RemoveDuplicates(append([]string{lemma}, forms...))

	if c.isClosed(paradigm.VariantTag(variant)) {
		return &Classification{Route: RouteInvariant, Words: words}, nil
	}

	if len(forms) == 1 && forms[0] == lemma {
		return &Classification{Route: RouteInvariant, Words: []string{lemma}}, nil
	}

	return &Classification{Route: RouteInflecting, Words: words}, nil
}

// isClosed reports whether the tag belongs to a closed part of speech.
func (c *Classifier) isClosed(tag string) bool {
	for _, prefix := range c.closedTags {
		if strings.HasPrefix(tag, prefix) {
			return true
		}
	}
	return false
}
