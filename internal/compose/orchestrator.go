// Package compose ties the pieces of a submission together: it decides
// whether a post is ready, runs the configured converter, drives the
// mail composer, and records history. The TUI and the CLI both sit on
// top of it.
package compose

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/nhle/mailpost/internal/config"
	"github.com/nhle/mailpost/internal/convert"
	"github.com/nhle/mailpost/internal/mail"
	"github.com/nhle/mailpost/internal/post"
	"github.com/nhle/mailpost/internal/store"
)

// Orchestrator runs the send and initialize flows.
type Orchestrator struct {
	cfg      *config.Config
	composer mail.Composer
	conv     convert.Converter // nil when conversion is disabled
	prompt   Prompter
	store    store.Store // nil when no draft index is in play
}

// New assembles an orchestrator. conv and st may be nil; prompt must
// not be.
func New(
	cfg *config.Config,
	composer mail.Composer,
	conv convert.Converter,
	prompt Prompter,
	st store.Store,
) *Orchestrator {
	return &Orchestrator{
		cfg:      cfg,
		composer: composer,
		conv:     conv,
		prompt:   prompt,
		store:    st,
	}
}

// Send submits the post by mail. path is the draft file the post was
// loaded from, empty for an unsaved buffer; it only feeds the history
// record. The bool result reports whether a message actually went out:
// declining the not-configured confirmation is a quiet no-op, not an
// error.
func (o *Orchestrator) Send(ctx context.Context, p *post.Post, path string) (bool, error) {
	if !p.Configured() {
		ok, err := o.prompt.Confirm("Post has no title or status directive. Send anyway?")
		if err != nil {
			return false, fmt.Errorf("confirming send: %w", err)
		}
		if !ok {
			return false, nil
		}
	}

	body := p.Content
	if o.conv != nil {
		converted, err := convert.Apply(ctx, o.conv, body, o.cfg.CutoffMarker)
		if err != nil {
			return false, fmt.Errorf("converting post: %w", err)
		}
		body = converted
	}

	comp, err := o.composer.Open(o.cfg.Recipient, p.Title)
	if err != nil {
		return false, fmt.Errorf("opening composition: %w", err)
	}
	if err := o.composer.Insert(comp, body); err != nil {
		return false, fmt.Errorf("inserting post body: %w", err)
	}
	if err := o.composer.Send(ctx, comp); err != nil {
		return false, err
	}

	o.recordSend(ctx, p, path)
	return true, nil
}

// recordSend updates the draft index and the send history. The mail is
// already out at this point, so failures are logged, not returned.
func (o *Orchestrator) recordSend(ctx context.Context, p *post.Post, path string) {
	if o.store == nil {
		return
	}

	rec := post.SendRecord{
		Title:     p.Title,
		Recipient: o.cfg.Recipient,
		Converted: o.conv != nil,
	}

	if path != "" {
		d, err := o.store.GetDraftByPath(ctx, path)
		switch {
		case err != nil:
			log.Printf("looking up draft %s: %v", path, err)
		case d != nil:
			rec.DraftID = &d.ID
			if err := o.store.MarkDraftSent(ctx, d.ID, time.Now().UTC()); err != nil {
				log.Printf("marking draft sent: %v", err)
			}
		}
	}

	if err := o.store.RecordSend(ctx, rec); err != nil {
		log.Printf("recording send history: %v", err)
	}
}

// Initialize binds the title and appends the shortcode block with the
// configured default tags. A post that already looks configured is only
// re-initialized after an explicit confirmation; re-initializing
// overwrites the title and appends a second block.
func (o *Orchestrator) Initialize(p *post.Post, title, category string) (bool, error) {
	return o.InitializeWith(p, title, category, o.cfg.DefaultTags)
}

// InitializeWith is Initialize with an explicit tag list, for callers
// that collected their own.
func (o *Orchestrator) InitializeWith(p *post.Post, title, category, tags string) (bool, error) {
	if p.Configured() {
		ok, err := o.prompt.Confirm("Post already configured. Initialize again?")
		if err != nil {
			return false, fmt.Errorf("confirming re-initialize: %w", err)
		}
		if !ok {
			return false, nil
		}
	}

	p.Title = title
	p.AppendBlock(DirectiveBlock(o.cfg, category, tags))

	return true, nil
}
