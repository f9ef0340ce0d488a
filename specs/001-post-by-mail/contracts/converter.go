// Package contracts/converter defines the content conversion interface.
// Conversion is optional: with no converter configured the buffer text
// is mailed exactly as written.
//
// Library: yuin/goldmark (builtin Markdown renderer);
// external commands run via os/exec with the source on stdin
package contracts

import "context"

// Converter turns source text (typically Markdown) into the body that
// is actually mailed.
type Converter interface {
	Convert(ctx context.Context, src string) (string, error)
}

// Runner executes an external converter command line. It exists so
// tests can stub the subprocess.
type Runner interface {
	Run(ctx context.Context, stdin, name string, args ...string) (string, error)
}

// Key operations:
//
// Selection (config value `converter`):
//   ""        conversion disabled
//   "builtin" in-process goldmark rendering (GFM, XHTML output)
//   anything else is parsed as a command line, e.g. "pandoc -f markdown -t html"
//
// Pipeline (applied to a working copy, never the live buffer):
//   1. Split the text at the cutoff marker line. Content above the
//      marker is convertible; the marker line itself is dropped; the
//      directive block below passes through untouched.
//   2. Run the convertible part through the Converter.
//   3. Unwrap the converted output: each run of non-blank lines joins
//      into one long line, blank lines survive. Counteracts the
//      receiving platform's newline-to-<br> conversion.
//   4. Reattach the directive block.
//
// Error handling:
//   - Missing executable or non-zero exit: error carrying stderr,
//     propagated unchanged. No fallback to the unconverted text.
//   - Conversion failure aborts the send; nothing is mailed.
