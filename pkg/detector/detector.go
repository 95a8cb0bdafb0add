package detector

import (
	"strings"
	"unicode/utf8"

	"github.com/pemistahl/lingua-go"
)

// DefaultLanguages covers the wikis this tool is normally pointed at.
var DefaultLanguages = []lingua.Language{
	lingua.English,
	lingua.German,
	lingua.French,
	lingua.Spanish,
	lingua.Polish,
	lingua.Korean,
	lingua.Japanese,
}

// maxSample bounds the amount of text handed to the detector.
const maxSample = 4000

// Detector guesses the language of article text.
type Detector struct {
	detector lingua.LanguageDetector
}

// New builds a detector restricted to langs (DefaultLanguages when empty).
// Language models are loaded on first use and shared by all detectors.
func New(langs ...lingua.Language) *Detector {
	if len(langs) == 0 {
		langs = DefaultLanguages
	}
	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(langs...).
			Build(),
	}
}

// Detect returns the ISO-639-1 code (lower case) of the text's language.
func (d *Detector) Detect(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	if len(text) > maxSample {
		cut := maxSample
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}

	language, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(language.IsoCode639_1().String()), true
}
