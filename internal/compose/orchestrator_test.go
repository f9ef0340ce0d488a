package compose_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nhle/mailpost/internal/compose"
	"github.com/nhle/mailpost/internal/config"
	"github.com/nhle/mailpost/internal/mail"
	"github.com/nhle/mailpost/internal/post"
	"github.com/nhle/mailpost/tests/testutil"
)

type scriptPrompter struct {
	confirm bool
	prompts []string
}

func (p *scriptPrompter) Confirm(prompt string) (bool, error) {
	p.prompts = append(p.prompts, prompt)
	return p.confirm, nil
}

func (p *scriptPrompter) Input(string, string, []string) (string, error) {
	return "", nil
}

func (p *scriptPrompter) Select(string, []string) (string, error) {
	return "", nil
}

type scriptComposer struct {
	calls   []string
	openErr error
	sendErr error

	to      string
	subject string
	body    string
}

func (c *scriptComposer) Open(recipient, subject string) (*mail.Composition, error) {
	c.calls = append(c.calls, "open")
	if c.openErr != nil {
		return nil, c.openErr
	}
	c.to, c.subject = recipient, subject
	return &mail.Composition{To: recipient, Subject: subject}, nil
}

func (c *scriptComposer) Insert(comp *mail.Composition, body string) error {
	c.calls = append(c.calls, "insert")
	c.body = body
	comp.Body = body
	return nil
}

func (c *scriptComposer) Send(ctx context.Context, comp *mail.Composition) error {
	c.calls = append(c.calls, "send")
	return c.sendErr
}

type stubConverter struct {
	out string
	err error
	in  string
}

func (s *stubConverter) Convert(ctx context.Context, src string) (string, error) {
	s.in = src
	if s.err != nil {
		return "", s.err
	}
	return s.out, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Recipient:    "post@example.com",
		CutoffMarker: "<!--end-of-post-->",
		DefaultTags:  "golang",
	}
}

func TestSendConfiguredPost(t *testing.T) {
	cfg := testConfig()
	composer := &scriptComposer{}
	prompter := &scriptPrompter{}
	orch := compose.New(cfg, composer, nil, prompter, nil)

	p := &post.Post{
		Title:   "Hello World",
		Content: "body text\n\n[category tech]\n[status draft]\n",
	}

	sent, err := orch.Send(context.Background(), p, "")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if !sent {
		t.Fatal("Send() = false, want true")
	}

	if diff := cmp.Diff([]string{"open", "insert", "send"}, composer.calls); diff != "" {
		t.Errorf("composer call order mismatch (-want +got):\n%s", diff)
	}
	if len(prompter.prompts) != 0 {
		t.Errorf("configured post prompted anyway: %v", prompter.prompts)
	}
	if composer.to != "post@example.com" || composer.subject != "Hello World" {
		t.Errorf("composition addressed to %q / %q", composer.to, composer.subject)
	}
	if composer.body != p.Content {
		t.Errorf("body = %q, want untouched content", composer.body)
	}
}

func TestSendUnconfiguredDeclined(t *testing.T) {
	composer := &scriptComposer{}
	prompter := &scriptPrompter{confirm: false}
	orch := compose.New(testConfig(), composer, nil, prompter, nil)

	p := &post.Post{Content: "just some notes"}

	sent, err := orch.Send(context.Background(), p, "")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if sent {
		t.Error("Send() = true after declining, want false")
	}
	if len(composer.calls) != 0 {
		t.Errorf("composer touched after decline: %v", composer.calls)
	}
	if len(prompter.prompts) != 1 {
		t.Errorf("got %d prompts, want 1", len(prompter.prompts))
	}
}

func TestSendUnconfiguredConfirmed(t *testing.T) {
	composer := &scriptComposer{}
	prompter := &scriptPrompter{confirm: true}
	orch := compose.New(testConfig(), composer, nil, prompter, nil)

	p := &post.Post{Content: "just some notes"}

	sent, err := orch.Send(context.Background(), p, "")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if !sent {
		t.Fatal("Send() = false after confirming, want true")
	}
	if diff := cmp.Diff([]string{"open", "insert", "send"}, composer.calls); diff != "" {
		t.Errorf("composer call order mismatch (-want +got):\n%s", diff)
	}
}

func TestSendConvertsBeforeMailing(t *testing.T) {
	cfg := testConfig()
	composer := &scriptComposer{}
	conv := &stubConverter{out: "<p>rendered</p>\n"}
	orch := compose.New(cfg, composer, conv, &scriptPrompter{}, nil)

	p := &post.Post{
		Title:   "Converted",
		Content: "some *markdown*\n" + cfg.CutoffMarker + "\n[status draft]\n",
	}

	sent, err := orch.Send(context.Background(), p, "")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if !sent {
		t.Fatal("Send() = false, want true")
	}

	if conv.in != "some *markdown*\n" {
		t.Errorf("converter input = %q, want the pre-marker span", conv.in)
	}
	want := "<p>rendered</p>\n[status draft]\n"
	if composer.body != want {
		t.Errorf("body = %q, want %q", composer.body, want)
	}
}

func TestSendConverterFailure(t *testing.T) {
	composer := &scriptComposer{}
	convErr := errors.New("pandoc exploded")
	orch := compose.New(testConfig(), composer, &stubConverter{err: convErr}, &scriptPrompter{}, nil)

	p := &post.Post{Title: "T", Content: "x\n[status draft]\n"}

	sent, err := orch.Send(context.Background(), p, "")
	if sent {
		t.Error("Send() = true despite converter failure")
	}
	if !errors.Is(err, convErr) {
		t.Errorf("Send() error = %v, want wrapped converter error", err)
	}
	if len(composer.calls) != 0 {
		t.Errorf("composer touched despite converter failure: %v", composer.calls)
	}
}

func TestSendOpenFailure(t *testing.T) {
	openErr := errors.New("no recipient configured")
	composer := &scriptComposer{openErr: openErr}
	orch := compose.New(testConfig(), composer, nil, &scriptPrompter{}, nil)

	p := &post.Post{Title: "T", Content: "x\n[status draft]\n"}

	_, err := orch.Send(context.Background(), p, "")
	if !errors.Is(err, openErr) {
		t.Errorf("Send() error = %v, want wrapped open error", err)
	}
	if diff := cmp.Diff([]string{"open"}, composer.calls); diff != "" {
		t.Errorf("composer call order mismatch (-want +got):\n%s", diff)
	}
}

func TestSendRecordsHistory(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	d := post.Draft{Path: "/posts/hello.post", Title: "Hello"}
	if err := s.UpsertDraft(ctx, d); err != nil {
		t.Fatalf("UpsertDraft() error = %v", err)
	}
	row, err := s.GetDraftByPath(ctx, d.Path)
	if err != nil {
		t.Fatalf("GetDraftByPath() error = %v", err)
	}

	orch := compose.New(testConfig(), &scriptComposer{}, nil, &scriptPrompter{}, s)

	p := &post.Post{Title: "Hello", Content: "body\n[status draft]\n"}
	sent, err := orch.Send(ctx, p, d.Path)
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if !sent {
		t.Fatal("Send() = false, want true")
	}

	after, err := s.GetDraftByPath(ctx, d.Path)
	if err != nil {
		t.Fatalf("GetDraftByPath() error = %v", err)
	}
	if !after.Sent() {
		t.Error("draft not marked sent")
	}

	sends, err := s.GetSends(ctx, 0)
	if err != nil {
		t.Fatalf("GetSends() error = %v", err)
	}
	if len(sends) != 1 {
		t.Fatalf("got %d send records, want 1", len(sends))
	}
	rec := sends[0]
	if rec.Title != "Hello" || rec.Recipient != "post@example.com" {
		t.Errorf("send record = %+v", rec)
	}
	if rec.DraftID == nil || *rec.DraftID != row.ID {
		t.Errorf("send record DraftID = %v, want %q", rec.DraftID, row.ID)
	}
}

func TestSendUnindexedPathStillRecords(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	orch := compose.New(testConfig(), &scriptComposer{}, nil, &scriptPrompter{}, s)

	p := &post.Post{Title: "Loose", Content: "body\n[status draft]\n"}
	if _, err := orch.Send(ctx, p, "/posts/not-indexed.post"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	sends, err := s.GetSends(ctx, 0)
	if err != nil {
		t.Fatalf("GetSends() error = %v", err)
	}
	if len(sends) != 1 {
		t.Fatalf("got %d send records, want 1", len(sends))
	}
	if sends[0].DraftID != nil {
		t.Errorf("DraftID = %v, want nil for unindexed path", sends[0].DraftID)
	}
}

func TestInitialize(t *testing.T) {
	cfg := testConfig()
	orch := compose.New(cfg, &scriptComposer{}, nil, &scriptPrompter{}, nil)

	p := &post.Post{Content: "hello world"}
	done, err := orch.Initialize(p, "My Title", "tech")
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if !done {
		t.Fatal("Initialize() = false, want true")
	}

	if p.Title != "My Title" {
		t.Errorf("Title = %q, want %q", p.Title, "My Title")
	}
	for _, want := range []string{"[category tech]", "[tags golang]", "[status draft]"} {
		if !strings.Contains(p.Content, want) {
			t.Errorf("content missing %q:\n%s", want, p.Content)
		}
	}
	// No converter configured, so no cutoff marker either.
	if strings.Contains(p.Content, cfg.CutoffMarker) {
		t.Errorf("content has cutoff marker without a converter:\n%s", p.Content)
	}
	if !p.Configured() {
		t.Error("post not configured after Initialize")
	}
}

func TestInitializeWithOverridesTags(t *testing.T) {
	cfg := testConfig()
	orch := compose.New(cfg, &scriptComposer{}, nil, &scriptPrompter{}, nil)

	p := &post.Post{Content: "hello world"}
	if _, err := orch.InitializeWith(p, "My Title", "tech", "vim,email"); err != nil {
		t.Fatalf("InitializeWith() error = %v", err)
	}

	if !strings.Contains(p.Content, "[tags vim,email]") {
		t.Errorf("content missing overridden tags:\n%s", p.Content)
	}
	if strings.Contains(p.Content, "[tags golang]") {
		t.Errorf("content still carries default tags:\n%s", p.Content)
	}
}

func TestInitializeWithConverterAddsMarker(t *testing.T) {
	cfg := testConfig()
	cfg.Converter = "builtin"
	orch := compose.New(cfg, &scriptComposer{}, nil, &scriptPrompter{}, nil)

	p := &post.Post{Content: "hello world"}
	if _, err := orch.Initialize(p, "My Title", "tech"); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	if !strings.Contains(p.Content, "\n"+cfg.CutoffMarker+"\n") {
		t.Errorf("content missing cutoff marker line:\n%s", p.Content)
	}
}

func TestInitializeReinitDeclined(t *testing.T) {
	orch := compose.New(testConfig(), &scriptComposer{}, nil, &scriptPrompter{confirm: false}, nil)

	p := &post.Post{Title: "Old", Content: "x\n[status draft]\n"}
	before := p.Content

	done, err := orch.Initialize(p, "New", "tech")
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if done {
		t.Error("Initialize() = true after declining, want false")
	}
	if p.Title != "Old" || p.Content != before {
		t.Errorf("post changed after decline: %+v", p)
	}
}

func TestInitializeReinitConfirmed(t *testing.T) {
	orch := compose.New(testConfig(), &scriptComposer{}, nil, &scriptPrompter{confirm: true}, nil)

	p := &post.Post{Title: "Old", Content: "x\n[status draft]\n"}

	done, err := orch.Initialize(p, "New", "tech")
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if !done {
		t.Fatal("Initialize() = false after confirming, want true")
	}
	if p.Title != "New" {
		t.Errorf("Title = %q, want overwritten", p.Title)
	}
	if got := strings.Count(p.Content, "[status draft]"); got != 2 {
		t.Errorf("got %d status directives after re-init, want 2", got)
	}
}
