package format

import (
	"reflect"
	"strings"
	"testing"

	"github.com/matsen/zotpick/internal/reference"
)

var fullRef = &reference.Reference{
	ItemID:         10,
	Key:            "AAAA1111",
	Title:          "Likelihood of trees",
	Year:           "2020",
	AuthorsDisplay: "Felsenstein & Editorson",
	Publication:    "Journal of Theoretical Biology",
	Type:           "journalArticle",
	URL:            "https://example.org/trees",
	Abstract:       "We study trees.",
	Extra: map[string]string{
		"abbreviation": "JTB",
		"eventshort":   "ProbGen",
		"doi":          "10.1000/trees",
	},
}

func TestRenderText(t *testing.T) {
	empty := &reference.Reference{Key: "BBBB2222", Title: "Solo"}

	tests := []struct {
		name     string
		template string
		ref      *reference.Reference
		want     string
	}{
		{
			name:     "plain substitution",
			template: "{authors} ({year}) {title}",
			ref:      fullRef,
			want:     "Felsenstein & Editorson (2020) Likelihood of trees",
		},
		{
			name:     "extra field placeholder",
			template: "{title} [{abbreviation}]",
			ref:      fullRef,
			want:     "Likelihood of trees [JTB]",
		},
		{
			name:     "custom extra key",
			template: "{title} {doi}",
			ref:      fullRef,
			want:     "Likelihood of trees 10.1000/trees",
		},
		{
			name:     "empty parenthetical removed",
			template: "({organization}) {title}",
			ref:      empty,
			want:     "Solo",
		},
		{
			name:     "empty bracket group removed",
			template: "{title} [{eventshort}]",
			ref:      empty,
			want:     "Solo",
		},
		{
			name:     "doubled separator collapsed",
			template: "{authors}, {year}, {title}",
			ref:      empty,
			want:     "Solo",
		},
		{
			name:     "separator between surviving values collapsed once",
			template: "{title}, {year}, {publication}",
			ref:      &reference.Reference{Title: "Solo", Publication: "Nature"},
			want:     "Solo, Nature",
		},
		{
			name:     "trailing separator removed",
			template: "{title}: {year}",
			ref:      empty,
			want:     "Solo",
		},
		{
			name:     "unrecognized token passes through verbatim",
			template: "{title} {frobnicate}",
			ref:      empty,
			want:     "Solo {frobnicate}",
		},
		{
			name:     "unclosed brace stays literal",
			template: "{title} {oops",
			ref:      empty,
			want:     "Solo {oops",
		},
		{
			name:     "all placeholders empty yields empty text",
			template: "{authors} ({year})",
			ref:      &reference.Reference{},
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.template, tt.ref)
			if got.Text != tt.want {
				t.Errorf("Render(%q).Text = %q, want %q", tt.template, got.Text, tt.want)
			}
		})
	}
}

func TestRenderSpans(t *testing.T) {
	got := Render("{authors} ({year}) {title}", fullRef)

	want := []Span{
		{Start: 0, End: 23, Category: CategoryIdentifier},
		{Start: 25, End: 29, Category: CategoryNumber},
		{Start: 31, End: 50, Category: CategoryTitle},
	}
	if !reflect.DeepEqual(got.Spans, want) {
		t.Errorf("Spans = %+v, want %+v", got.Spans, want)
	}

	// Each span must slice out exactly its value.
	values := []string{"Felsenstein & Editorson", "2020", "Likelihood of trees"}
	for i, s := range got.Spans {
		if got.Text[s.Start:s.End] != values[i] {
			t.Errorf("span %d slices %q, want %q", i, got.Text[s.Start:s.End], values[i])
		}
	}
}

func TestRenderSpansSurviveCleanup(t *testing.T) {
	// The empty organization group before the title disappears; the
	// title span must point at the cleaned-up positions.
	ref := &reference.Reference{Title: "Solo", Year: "1999"}
	got := Render("({organization}) {title} ({year})", ref)

	if got.Text != "Solo (1999)" {
		t.Fatalf("Text = %q, want %q", got.Text, "Solo (1999)")
	}
	want := []Span{
		{Start: 0, End: 4, Category: CategoryTitle},
		{Start: 6, End: 10, Category: CategoryNumber},
	}
	if !reflect.DeepEqual(got.Spans, want) {
		t.Errorf("Spans = %+v, want %+v", got.Spans, want)
	}
}

func TestCitation(t *testing.T) {
	tests := []struct {
		name     string
		template string
		ref      *reference.Reference
		want     string
	}{
		{
			name:     "default template",
			template: DefaultCiteTemplate,
			ref: &reference.Reference{
				Key: "CCCC3333", Title: "Foo", Year: "2020",
			},
			want: "[Foo (2020)](zotero://select/library/items/CCCC3333)",
		},
		{
			name:     "blank render falls back to default template",
			template: "{organization}",
			ref: &reference.Reference{
				Key: "CCCC3333", Title: "Foo", Year: "2020",
			},
			want: "[Foo (2020)](zotero://select/library/items/CCCC3333)",
		},
		{
			name:     "empty title and year fall back to sentinel",
			template: "{title} ({year})",
			ref:      &reference.Reference{Key: "CCCC3333"},
			want:     "[Untitled](zotero://select/library/items/CCCC3333)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Citation(tt.template, tt.ref); got != tt.want {
				t.Errorf("Citation() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCitationNeverEmpty(t *testing.T) {
	got := Citation("{organization}", &reference.Reference{Key: "K"})
	display := strings.TrimPrefix(strings.SplitN(got, "](", 2)[0], "[")
	if strings.TrimSpace(display) == "" {
		t.Errorf("citation display text empty: %q", got)
	}
}

func TestPreviewMultiline(t *testing.T) {
	ref := &reference.Reference{
		Title:          "Solo",
		AuthorsDisplay: "Aa et al.",
	}
	got := Preview("{title}\n{authors} ({year}) {publication}", ref)

	if got.Text != "Solo\nAa et al." {
		t.Errorf("Text = %q, want %q", got.Text, "Solo\nAa et al.")
	}
	for _, s := range got.Spans {
		if s.Start < 0 || s.End > len(got.Text) || s.Start >= s.End {
			t.Errorf("invalid span %+v for text %q", s, got.Text)
		}
	}
}
