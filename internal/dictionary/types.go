package dictionary

import (
	"context"
	"errors"
	"strings"
)

// ErrSourceUnavailable indicates that the dictionary cannot be located, listed, opened or decoded.
var ErrSourceUnavailable = errors.New("dictionary source unavailable")

// Source provides the paradigms of a morphological dictionary split across files.
type Source interface {
	// Files returns the dictionary files in a stable order.
	Files() ([]string, error)
	// Walk streams every paradigm of a file to fn. An error returned by fn stops the walk.
	Walk(ctx context.Context, file string, fn func(*Paradigm) error) error
}

// Paradigm is a lexeme entry grouping one or more lexical variants.
type Paradigm struct {
	ID       string    `xml:"pdgId,attr"`
	Lemma    string    `xml:"lemma,attr"`
	Tag      string    `xml:"tag,attr"`
	Variants []Variant `xml:"Variant"`
}

// Variant is a single spelling or stress variant of a paradigm together with its forms.
type Variant struct {
	ID    string `xml:"id,attr"`
	Lemma string `xml:"lemma,attr"`
	Tag   string `xml:"tag,attr"`
	Forms []Form `xml:"Form"`
}

// Form is one inflected surface form.
type Form struct {
	Tag   string `xml:"tag,attr"`
	Value string `xml:",chardata"`
}

// VariantLemma returns the variant lemma, falling back to the paradigm lemma.
func (p *Paradigm) VariantLemma(v *Variant) string {
	if strings.TrimSpace(v.Lemma) != "" {
		return v.Lemma
	}
	return p.Lemma
}

// VariantTag returns the variant tag, falling back to the paradigm tag.
func (p *Paradigm) VariantTag(v *Variant) string {
	if v.Tag != "" {
		return v.Tag
	}
	return p.Tag
}

// Values returns the raw text of every form.
func (v *Variant) Values() []string {
	values := make([]string, 0, len(v.Forms))
	for _, form := range v.Forms {
		values = append(values, form.Value)
	}
	return values
}
