package post

import (
	"fmt"
	"net/url"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/Roma7-7-7/finnish-word-bot/internal/word"
)

const (
	// MaxLength is the longest post the posting API accepts, in characters.
	MaxLength = 280

	DefaultDictionaryURL = "https://www.suomisanakirja.fi/"

	ellipsis = "..."

	missingWord = "N/A"

	header   = "🇫🇮 Päivän Sana / Finnish Word of the Day"
	prompt   = "Osaatko käyttää tätä sanaa lauseessa? 🤔\nCan you use this word in a sentence?"
	hashtags = "#Finnish #Suomi #LearnFinnish #OpiSuomea"
)

var (
	recordTemplate = template.Must(template.New("record").Parse(header + `

✨ {{.Word}} ✨
{{- with .Definition}}

📖 {{.}}
{{- end}}

` + prompt + `

` + hashtags))

	wordTemplate = template.Must(template.New("word").Parse(header + `

✨ {{.Word}} ✨

🔎 Katso sanakirjasta / Look it up: {{.Link}}

` + prompt + `

` + hashtags))

	shortWordTemplate = template.Must(template.New("short_word").Parse(header + `

✨ {{.Word}} ✨

{{.Link}}

` + hashtags))

	fallbackText = header + `

😢 Ei sanaa tänään / No word today

Tarkista huomenna uudelleen!
Check back tomorrow!

` + hashtags
)

// Formatter turns today's word into post text no longer than MaxLength characters.
// All methods are pure.
type Formatter struct {
	// DictionaryURL is the prefix of the lookup link; the word is appended as a path segment.
	DictionaryURL string
}

func NewFormatter(dictionaryURL string) Formatter {
	if dictionaryURL == "" {
		dictionaryURL = DefaultDictionaryURL
	}
	if !strings.HasSuffix(dictionaryURL, "/") {
		dictionaryURL += "/"
	}
	return Formatter{DictionaryURL: dictionaryURL}
}

// Record formats a word of the day record. A blank word is shown as N/A. Overlong
// text is cut to MaxLength characters ending with an ellipsis.
func (f Formatter) Record(rec word.Record) string {
	w := strings.TrimSpace(rec.Word)
	if w == "" {
		w = missingWord
	}
	return truncate(render(recordTemplate, word.Record{
		Word:       w,
		Definition: strings.TrimSpace(rec.Definition),
	}))
}

// Word formats a word picked from a list together with a dictionary link. When the
// full template is too long the short one is used, so the link stays intact.
func (f Formatter) Word(w string) string {
	data := linkData{
		Word: strings.TrimSpace(w),
		Link: f.Link(w),
	}

	if text := render(wordTemplate, data); fits(text) {
		return text
	}
	// only a very long word gets past the short template
	return truncate(render(shortWordTemplate, data))
}

// Fallback is posted when no word could be fetched, whatever the reason.
func (f Formatter) Fallback() string {
	return fallbackText
}

func (f Formatter) Link(w string) string {
	return f.DictionaryURL + url.PathEscape(strings.TrimSpace(w))
}

type linkData struct {
	Word string
	Link string
}

func render(t *template.Template, data any) string {
	buff := &strings.Builder{}
	if err := t.Execute(buff, data); err != nil {
		panic(fmt.Sprintf("render %s template: %v", t.Name(), err))
	}
	return buff.String()
}

func fits(text string) bool {
	return utf8.RuneCountInString(text) <= MaxLength
}

func truncate(text string) string {
	if fits(text) {
		return text
	}
	runes := []rune(text)
	return string(runes[:MaxLength-len(ellipsis)]) + ellipsis
}
