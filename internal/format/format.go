// Package format renders citation and preview strings from templates.
//
// Templates contain {placeholder} tokens drawn from a fixed vocabulary
// plus any key of a reference's Extra map. Rendering resolves tokens,
// removes empty ones together with the punctuation they leave behind,
// and reports the span of every substituted value in the final text so
// callers can highlight them. Spans are computed in a single emit pass
// after all structural cleanup, so later edits never invalidate them.
package format

import (
	"regexp"
	"strings"

	"github.com/matsen/zotpick/internal/reference"
)

// DefaultCiteTemplate is the fallback citation template, guaranteeing a
// non-empty citation for every reference.
const DefaultCiteTemplate = "{title} ({year})"

// Category classifies a substituted value for highlighting.
type Category string

const (
	CategoryTitle      Category = "title"      // title, publication
	CategoryNumber     Category = "number"     // year
	CategoryIdentifier Category = "identifier" // authors, key, item type
	CategoryPlain      Category = "plain"      // everything else
)

// Span marks the half-open byte range [Start, End) of one substituted
// value in the rendered text.
type Span struct {
	Start    int      `json:"start"`
	End      int      `json:"end"`
	Category Category `json:"category"`
}

// Result is a rendered template with highlight spans.
type Result struct {
	Text  string `json:"text"`
	Spans []Span `json:"spans,omitempty"`
}

// segment is either literal template text or a resolved placeholder value.
type segment struct {
	text  string
	cat   Category
	value bool
}

// Render substitutes the reference's fields into the template.
//
// Empty placeholders are removed entirely: parenthetical groups they
// leave empty, doubled separators, and leading/trailing separators are
// cleaned up rather than left behind. Unrecognized tokens pass through
// verbatim.
func Render(template string, ref *reference.Reference) Result {
	segs := resolve(parse(template), ref)
	segs = mergeLiterals(segs)
	segs = cleanup(segs)
	return emit(segs)
}

// Citation renders the template and wraps the text as a link to the
// reference's deep-link URI. A blank render falls back to
// DefaultCiteTemplate, and a blank fallback to the title sentinel, so
// the bracketed display text is never empty.
func Citation(template string, ref *reference.Reference) string {
	text := Render(template, ref).Text
	if strings.TrimSpace(text) == "" {
		text = Render(DefaultCiteTemplate, ref).Text
	}
	if strings.TrimSpace(text) == "" {
		text = reference.DefaultTitle
	}
	return "[" + text + "](" + ref.DeepLink() + ")"
}

// Preview renders the template as plain annotated text, no link wrapping.
func Preview(template string, ref *reference.Reference) Result {
	return Render(template, ref)
}

// parse splits a template into literal text and placeholder names.
// A placeholder is {name} with a non-empty name containing no braces or
// whitespace; anything else stays literal.
func parse(template string) []segment {
	var segs []segment
	for len(template) > 0 {
		open := strings.IndexByte(template, '{')
		if open < 0 {
			segs = append(segs, segment{text: template})
			break
		}
		if open > 0 {
			segs = append(segs, segment{text: template[:open]})
			template = template[open:]
		}

		end := strings.IndexByte(template, '}')
		name := ""
		if end > 1 {
			name = template[1:end]
		}
		if name == "" || strings.ContainsAny(name, "{ \t\n") {
			// Not a placeholder. Emit the brace literally and move on.
			segs = append(segs, segment{text: template[:1]})
			template = template[1:]
			continue
		}

		segs = append(segs, segment{text: name, value: true})
		template = template[end+1:]
	}
	return segs
}

// resolve replaces placeholder names with their values. Empty values
// are dropped; unknown names are restored as literal {name} text.
func resolve(segs []segment, ref *reference.Reference) []segment {
	out := segs[:0]
	for _, s := range segs {
		if !s.value {
			out = append(out, s)
			continue
		}
		v, cat, known := placeholderValue(ref, s.text)
		switch {
		case !known:
			out = append(out, segment{text: "{" + s.text + "}"})
		case v == "":
			// Dropped entirely; cleanup removes leftover punctuation.
		default:
			out = append(out, segment{text: v, cat: cat, value: true})
		}
	}
	return out
}

// placeholderValue maps a placeholder name to a field of the reference.
// The fixed vocabulary is always known, even when the value is absent;
// other names are known only if present in the Extra map.
func placeholderValue(ref *reference.Reference, name string) (string, Category, bool) {
	switch name {
	case "title":
		return ref.Title, CategoryTitle, true
	case "publication":
		return ref.Publication, CategoryTitle, true
	case "year":
		return ref.Year, CategoryNumber, true
	case "authors":
		return ref.AuthorsDisplay, CategoryIdentifier, true
	case "type":
		return ref.Type, CategoryIdentifier, true
	case "key":
		return ref.Key, CategoryIdentifier, true
	case "url":
		return ref.URL, CategoryPlain, true
	case "abstract":
		return ref.Abstract, CategoryPlain, true
	case "abbreviation":
		return ref.Abbreviation(), CategoryPlain, true
	case "organization":
		return ref.Organization(), CategoryPlain, true
	case "eventshort":
		return ref.EventShort(), CategoryPlain, true
	}
	if v, ok := ref.Extra[name]; ok {
		return v, CategoryPlain, true
	}
	return "", "", false
}

// mergeLiterals joins adjacent literal segments so punctuation left by
// a dropped placeholder becomes contiguous text that cleanup can see.
func mergeLiterals(segs []segment) []segment {
	var out []segment
	for _, s := range segs {
		if !s.value && len(out) > 0 && !out[len(out)-1].value {
			out[len(out)-1].text += s.text
			continue
		}
		out = append(out, s)
	}
	return out
}

var (
	emptyGroupRe = regexp.MustCompile(`\(\s*\)|\[\s*\]`)
	doubledSepRe = regexp.MustCompile(`([,;:])\s*[,;:]`)
	blankLineRe  = regexp.MustCompile(`\n[ \t]*\n+`)
	multiSpaceRe = regexp.MustCompile(`[ \t]{2,}`)
)

// cleanup rewrites literal segments only: substituted values are never
// touched, and a bracket pair enclosing a surviving value sits in
// separate segments, out of reach of the empty-group rule.
func cleanup(segs []segment) []segment {
	for i := range segs {
		if segs[i].value {
			continue
		}
		t := segs[i].text
		for {
			prev := t
			t = emptyGroupRe.ReplaceAllString(t, "")
			t = doubledSepRe.ReplaceAllString(t, "$1")
			t = blankLineRe.ReplaceAllString(t, "\n")
			t = multiSpaceRe.ReplaceAllString(t, " ")
			if t == prev {
				break
			}
		}
		segs[i].text = t
	}

	// Separators stranded at the edges of the whole rendering.
	if n := len(segs); n > 0 {
		if !segs[0].value {
			segs[0].text = strings.TrimLeft(segs[0].text, " \t\n,;:")
		}
		if !segs[n-1].value {
			segs[n-1].text = strings.TrimRight(segs[n-1].text, " \t\n,;:")
		}
	}

	out := segs[:0]
	for _, s := range segs {
		if s.text != "" {
			out = append(out, s)
		}
	}
	return out
}

// emit concatenates the segments, recording a span for every value.
func emit(segs []segment) Result {
	var b strings.Builder
	var spans []Span
	for _, s := range segs {
		if s.value {
			spans = append(spans, Span{
				Start:    b.Len(),
				End:      b.Len() + len(s.text),
				Category: s.cat,
			})
		}
		b.WriteString(s.text)
	}
	return Result{Text: b.String(), Spans: spans}
}
