package markup

import (
	"strings"
	"testing"
)

func TestText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "tags removed", input: "<p>Hello <b>world</b></p>", want: "Hello world"},
		{name: "entities kept", input: "rock &amp; roll", want: "rock &amp; roll"},
		{name: "escaped brackets kept", input: "<p>1 &lt; 2 &gt; 0</p>", want: "1 &lt; 2 &gt; 0"},
		{name: "numeric and named references kept", input: "caf&eacute; &#233; &#xE9;", want: "caf&eacute; &#233; &#xE9;"},
		{name: "bare ampersand", input: "<b>R&D</b>", want: "R&D"},
		{name: "script text untouched", input: "<script>a && b</script>", want: "a && b"},
		{name: "nested tags", input: "<div><p><span>deep</span></p></div>", want: "deep"},
		{name: "self-closing tags", input: "line1<br/>line2", want: "line1line2"},
		{name: "unclosed tags", input: "<p>Hi<b>there", want: "Hithere"},
		{name: "empty string", input: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Text(tt.input)
			if err != nil {
				t.Fatalf("Text(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("Text(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTextLeavesNoAngleBrackets(t *testing.T) {
	inputs := []string{
		"<p>one</p>",
		`<a href="https://example.com/?a=1&b=2">link</a>`,
		"<h2>Title</h2><p>Body <em>text</em></p>",
		"<ul><li>a</li><li>b</li></ul>",
		"<img src=\"x.png\"/>",
		"<p>1 &lt; 2</p>",
		"<b>x &gt; y</b>",
		"<p>a &amp; b &amp;lt;</p>",
		"&lt;script&gt;alert(1)&lt;/script&gt;",
	}
	for _, input := range inputs {
		got, err := Text(input)
		if err != nil {
			t.Fatalf("Text(%q) returned error: %v", input, err)
		}
		if strings.ContainsAny(got, "<>") {
			t.Fatalf("Text(%q) = %q still contains markup", input, got)
		}
	}
}

func TestStripTags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple", input: "<p>Hi</p>", want: "Hi"},
		{name: "entities kept", input: "<p>a &amp; b</p>", want: "a &amp; b"},
		{name: "escaped brackets kept", input: "<p>1 &lt; 2</p>", want: "1 &lt; 2"},
		{name: "attributes", input: `<a href="x">link</a> text`, want: "link text"},
		{name: "nested angle bracket left behind", input: "<a <b>>x", want: "<a >x"},
		{name: "no tags", input: "plain", want: "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripTags(tt.input); got != tt.want {
				t.Fatalf("StripTags(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
