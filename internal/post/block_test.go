package post

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestShortcodeBlock(t *testing.T) {
	got := ShortcodeBlock(BlockOptions{
		Category: "golang",
		Tags:     "til,notes",
	})

	want := strings.Join([]string{
		"[category golang]",
		"[tags til,notes]",
		"[status draft]",
		"-- ",
		`Anything after the signature line "-- " will not appear in the post.`,
		"Status can be publish, pending, or draft.",
		"[slug some-url-name]",
		"[excerpt]some excerpt[/excerpt]",
		"[delay +1 hour]",
		"[comments on | off]",
		"[password secret-password]",
	}, "\n") + "\n"

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ShortcodeBlock() mismatch (-want +got):\n%s", diff)
	}
}

func TestShortcodeBlockCutoffMarker(t *testing.T) {
	got := ShortcodeBlock(BlockOptions{
		Category:     "golang",
		CutoffMarker: "<!--end-of-post-->",
	})

	first, _, _ := strings.Cut(got, "\n")
	if first != "<!--end-of-post-->" {
		t.Errorf("first line = %q, want the cutoff marker", first)
	}

	// Without a marker the category line leads.
	got = ShortcodeBlock(BlockOptions{Category: "golang"})
	first, _, _ = strings.Cut(got, "\n")
	if first != "[category golang]" {
		t.Errorf("first line = %q, want the category line", first)
	}
}

func TestShortcodeBlockCategoryIsTag(t *testing.T) {
	tests := []struct {
		name     string
		opts     BlockOptions
		wantTags string
	}{
		{
			name:     "category appended to tags",
			opts:     BlockOptions{Category: "golang", Tags: "til", CategoryIsTag: true},
			wantTags: "[tags til,golang]",
		},
		{
			name:     "category appended to empty tags keeps the comma",
			opts:     BlockOptions{Category: "golang", CategoryIsTag: true},
			wantTags: "[tags ,golang]",
		},
		{
			name:     "category not a tag",
			opts:     BlockOptions{Category: "golang", Tags: "til"},
			wantTags: "[tags til]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block := ShortcodeBlock(tt.opts)
			if !strings.Contains(block, tt.wantTags+"\n") {
				t.Errorf("block missing %q:\n%s", tt.wantTags, block)
			}
		})
	}
}

func TestShortcodeBlockSingleStatusLine(t *testing.T) {
	block := ShortcodeBlock(BlockOptions{
		Category:     "misc",
		Tags:         "a,b",
		CutoffMarker: "<!--end-of-post-->",
	})

	if n := strings.Count(block, "[status draft]"); n != 1 {
		t.Errorf("block contains %d [status draft] lines, want exactly 1", n)
	}
	if !strings.Contains(block, "\n-- \n") {
		t.Error("block missing the signature line with its trailing space")
	}
}
