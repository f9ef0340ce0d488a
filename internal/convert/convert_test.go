package convert

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// stubRunner records invocations and plays back canned output.
type stubRunner struct {
	out  string
	err  error
	name string
	args []string
	in   string
}

func (r *stubRunner) Run(_ context.Context, stdin, name string, args ...string) (string, error) {
	r.in = stdin
	r.name = name
	r.args = args
	if r.err != nil {
		return "", r.err
	}
	return r.out, nil
}

func TestCommandConvert(t *testing.T) {
	runner := &stubRunner{out: "<p>hello</p>\n"}
	c := NewCommand("markdown", "--html4tags")
	c.runner = runner

	got, err := c.Convert(context.Background(), "hello\n")
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if got != "<p>hello</p>\n" {
		t.Errorf("Convert output = %q", got)
	}
	if runner.name != "markdown" || len(runner.args) != 1 || runner.args[0] != "--html4tags" {
		t.Errorf("ran %q %v, want markdown [--html4tags]", runner.name, runner.args)
	}
	if runner.in != "hello\n" {
		t.Errorf("stdin = %q, want the source text", runner.in)
	}
}

func TestCommandConvertError(t *testing.T) {
	failure := errors.New("exec: \"markdown\": executable file not found in $PATH")
	c := NewCommand("markdown")
	c.runner = &stubRunner{err: failure}

	_, err := c.Convert(context.Background(), "text")
	if err == nil {
		t.Fatal("Convert: expected error")
	}
	if !errors.Is(err, failure) {
		t.Errorf("error %v does not wrap the runner failure", err)
	}
}

func TestApply(t *testing.T) {
	const cut = "<!--end-of-post-->"

	runner := &stubRunner{out: "<p>converted body</p>\n"}
	c := NewCommand("markdown")
	c.runner = runner

	text := "body line one\nbody line two\n" + cut + "\n[category x]\n[status draft]\n"
	got, err := Apply(context.Background(), c, text, cut)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	want := "<p>converted body</p>\n[category x]\n[status draft]\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Apply mismatch (-want +got):\n%s", diff)
	}
	if runner.in != "body line one\nbody line two\n" {
		t.Errorf("converter received %q, want the pre-marker span", runner.in)
	}
}

func TestApplyMissingMarker(t *testing.T) {
	runner := &stubRunner{out: ""}
	c := NewCommand("markdown")
	c.runner = runner

	// Without a marker the boundary stays at the start: the converter
	// sees an empty span and the first line is consumed from the
	// working copy.
	got, err := Apply(context.Background(), c, "first\nsecond\n", "<!--end-of-post-->")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got != "second\n" {
		t.Errorf("Apply = %q, want %q", got, "second\n")
	}
	if runner.in != "" {
		t.Errorf("converter received %q, want empty input", runner.in)
	}
}

func TestApplyConverterFailure(t *testing.T) {
	failure := errors.New("pandoc: exit status 2")
	c := NewCommand("pandoc")
	c.runner = &stubRunner{err: failure}

	_, err := Apply(context.Background(), c, "text\n<!--end-of-post-->\n", "<!--end-of-post-->")
	if !errors.Is(err, failure) {
		t.Errorf("Apply error = %v, want the converter failure", err)
	}
}

func TestUnwrap(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "soft-wrapped paragraph joined",
			in:   "<p>one\ntwo\nthree</p>\n",
			want: "<p>one two three</p>\n",
		},
		{
			name: "blank lines preserved as separators",
			in:   "para one\nstill one\n\npara two\n",
			want: "para one still one\n\npara two\n",
		},
		{
			name: "trailing spaces trimmed before joining",
			in:   "one  \ntwo\n",
			want: "one two\n",
		},
		{
			name: "no trailing newline",
			in:   "one\ntwo",
			want: "one two",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Unwrap(tt.in); got != tt.want {
				t.Errorf("Unwrap(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestGoldmarkConvert(t *testing.T) {
	g := NewGoldmark()

	got, err := g.Convert(context.Background(), "# Title\n\nSome *emphasis* here.\n")
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !strings.Contains(got, "<h1") {
		t.Errorf("output missing heading: %q", got)
	}
	if !strings.Contains(got, "<em>emphasis</em>") {
		t.Errorf("output missing emphasis: %q", got)
	}
}
