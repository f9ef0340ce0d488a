package compose_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nhle/mailpost/internal/compose"
	"github.com/nhle/mailpost/tests/testutil"
)

func TestCreateDraft(t *testing.T) {
	cfg := testConfig()
	cfg.PostsDir = t.TempDir()
	cfg.Categories = []string{"tech"}
	st := testutil.NewTestStore(t)

	d, content, err := compose.CreateDraft(
		context.Background(), cfg, st, "Hello, World!", "tech", "golang,email",
	)
	if err != nil {
		t.Fatalf("CreateDraft() error = %v", err)
	}

	if want := filepath.Join(cfg.PostsDir, "hello-world.post"); d.Path != want {
		t.Errorf("Path = %q, want %q", d.Path, want)
	}
	if d.ID == "" {
		t.Error("draft not indexed: empty ID")
	}
	if d.Title != "Hello, World!" || d.Category != "tech" {
		t.Errorf("indexed draft = %+v", d)
	}

	data, err := os.ReadFile(d.Path)
	if err != nil {
		t.Fatalf("reading draft file: %v", err)
	}
	if string(data) != content {
		t.Errorf("file content %q differs from returned content %q", data, content)
	}
	for _, want := range []string{"[category tech]", "[tags golang,email]", "[status draft]"} {
		if !strings.Contains(content, want) {
			t.Errorf("content missing %q:\n%s", want, content)
		}
	}
}

func TestCreateDraftMarkdownExtension(t *testing.T) {
	cfg := testConfig()
	cfg.PostsDir = t.TempDir()
	cfg.Converter = "builtin"

	d, content, err := compose.CreateDraft(
		context.Background(), cfg, nil, "Notes", "tech", "",
	)
	if err != nil {
		t.Fatalf("CreateDraft() error = %v", err)
	}

	if !strings.HasSuffix(d.Path, "notes.post.md") {
		t.Errorf("Path = %q, want a .post.md file", d.Path)
	}
	if !d.Converted {
		t.Error("Converted = false with a converter configured")
	}
	if !strings.Contains(content, cfg.CutoffMarker) {
		t.Errorf("content missing cutoff marker:\n%s", content)
	}
}

func TestCreateDraftRefusesOverwrite(t *testing.T) {
	cfg := testConfig()
	cfg.PostsDir = t.TempDir()

	if _, _, err := compose.CreateDraft(context.Background(), cfg, nil, "Twice", "", ""); err != nil {
		t.Fatalf("first CreateDraft() error = %v", err)
	}
	if _, _, err := compose.CreateDraft(context.Background(), cfg, nil, "Twice", "", ""); err == nil {
		t.Fatal("second CreateDraft() did not error on existing file")
	}
}
