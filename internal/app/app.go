package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/mailpost/internal/compose"
	"github.com/nhle/mailpost/internal/config"
	"github.com/nhle/mailpost/internal/convert"
	"github.com/nhle/mailpost/internal/keys"
	"github.com/nhle/mailpost/internal/post"
	"github.com/nhle/mailpost/internal/store"
	"github.com/nhle/mailpost/internal/ui"
	"github.com/nhle/mailpost/internal/ui/command"
	"github.com/nhle/mailpost/internal/ui/confirm"
	"github.com/nhle/mailpost/internal/ui/draftlist"
	"github.com/nhle/mailpost/internal/ui/editor"
	helpview "github.com/nhle/mailpost/internal/ui/help"
	"github.com/nhle/mailpost/internal/ui/postform"
	"github.com/nhle/mailpost/internal/ui/preview"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewDrafts ViewState = iota
	ViewEditor
	ViewForm
	ViewPreview
	ViewConfirm
	ViewHelp
	ViewCommand
)

// Confirmation tokens. The confirm view echoes the token back so the
// answer can be routed to the flow that asked.
const (
	tokenSend    = "send"
	tokenReinit  = "reinit"
	tokenDelete  = "delete"
	tokenDiscard = "discard"
)

// Model is the root Bubble Tea model that manages view routing,
// layout, and access to the draft index and the send flows.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	cfg          *config.Config
	store        store.Store
	orch         *compose.Orchestrator
	conv         convert.Converter
	keys         *keys.KeyMap

	draftList   draftlist.Model
	editorView  editor.Model
	formView    postform.Model
	previewView preview.Model
	confirmView confirm.Model
	helpView    helpview.Model
	commandView command.Model

	// State stashed while a confirmation dialog is up.
	pendingPost  post.Post
	pendingPath  string
	pendingLine  string
	pendingDraft post.Draft

	ready         bool
	sending       bool
	statusMessage string
}

// New creates the root application model: the store-backed views, the
// converter and mail transport selected by cfg, and the orchestrator
// driving the send and initialize flows.
func New(cfg *config.Config, s store.Store) (Model, error) {
	composer, err := compose.ComposerFor(cfg)
	if err != nil {
		return Model{}, err
	}

	// The TUI runs its own confirmation views before a flow starts, so
	// the orchestrator-level prompts are always pre-answered.
	k := keys.DefaultKeyMap()
	conv := compose.ConverterFor(cfg)
	orch := compose.New(cfg, composer, conv, compose.AssumeYes{}, s)

	return Model{
		currentView: ViewDrafts,
		cfg:         cfg,
		store:       s,
		orch:        orch,
		conv:        conv,
		keys:        k,
		draftList:   draftlist.New(s, k, 80, 24),
		editorView:  editor.New(s, k, 80, 24),
		formView:    postform.New(cfg.Categories, cfg.DefaultTags, 80, 24),
		previewView: preview.New(k, 80, 24),
		confirmView: confirm.New(80, 24),
		helpView:    helpview.New(k, 80, 24),
		commandView: command.New(80, 24),
	}, nil
}

// Init scans the posts directory into the index and loads the list.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.draftList.Init(),
		m.syncDrafts(),
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.draftList.SetSize(contentWidth, contentHeight)
		m.editorView.SetSize(contentWidth, contentHeight)
		m.formView.SetSize(contentWidth, contentHeight)
		m.previewView.SetSize(contentWidth, contentHeight)
		m.confirmView.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.commandView.SetSize(contentWidth, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case draftsSyncedMsg:
		switch {
		case msg.err != nil:
			m.statusMessage = "draft scan failed: " + msg.err.Error()
		case msg.added > 0 || msg.removed > 0:
			m.statusMessage = scanSummary(msg.added, msg.removed)
		default:
			m.statusMessage = ""
		}
		return m, m.draftList.LoadDrafts()

	case draftDeletedMsg:
		if msg.err != nil {
			m.statusMessage = "delete failed: " + msg.err.Error()
		}
		return m, m.draftList.LoadDrafts()

	case draftlist.SelectedDraftMsg:
		return m, editor.Open(msg.Draft)

	case draftlist.DeleteDraftMsg:
		m.pendingDraft = msg.Draft
		m.previousView = m.currentView
		m.currentView = ViewConfirm
		cmd := m.confirmView.Start(
			"Delete \""+msg.Draft.Title+"\"? The draft file is removed as well.",
			tokenDelete,
		)
		return m, cmd

	case editor.OpenedMsg:
		// Sent both when a listed draft is opened and when a freshly
		// created post lands in the editor.
		m.previousView = m.currentView
		m.currentView = ViewEditor
		var cmd tea.Cmd
		m.editorView, cmd = m.editorView.Update(msg)
		return m, cmd

	case editor.OpenErrorMsg:
		m.statusMessage = msg.Err.Error()
		return m, nil

	case editor.SavedMsg:
		var cmd tea.Cmd
		m.editorView, cmd = m.editorView.Update(msg)
		m.statusMessage = "Draft saved"
		return m, tea.Batch(cmd, m.draftList.LoadDrafts())

	case editor.SaveErrorMsg:
		m.statusMessage = "save failed: " + msg.Err.Error()
		return m, nil

	case editor.CloseMsg:
		if m.editorView.Dirty() {
			m.previousView = m.currentView
			m.currentView = ViewConfirm
			cmd := m.confirmView.Start("Discard unsaved changes?", tokenDiscard)
			return m, cmd
		}
		m.currentView = ViewDrafts
		return m, m.draftList.LoadDrafts()

	case editor.SendRequestMsg:
		if !msg.Post.Configured() {
			m.pendingPost = msg.Post
			m.pendingPath = msg.Path
			m.previousView = m.currentView
			m.currentView = ViewConfirm
			cmd := m.confirmView.Start(
				"Post has no title or status directive. Send anyway?",
				tokenSend,
			)
			return m, cmd
		}
		m.sending = true
		return m, m.sendPost(msg.Post, msg.Path)

	case editor.InitRequestMsg:
		if msg.Post.Configured() {
			m.pendingPost = msg.Post
			m.pendingPath = msg.Path
			m.pendingLine = msg.Line
			m.previousView = m.currentView
			m.currentView = ViewConfirm
			cmd := m.confirmView.Start(
				"Post already configured. Initialize again?",
				tokenReinit,
			)
			return m, cmd
		}
		m.previousView = m.currentView
		m.currentView = ViewForm
		cmd := m.formView.StartInitialize(titleSuggestions(msg.Post, msg.Path, msg.Line))
		return m, cmd

	case editor.PreviewRequestMsg:
		m.previousView = m.currentView
		m.currentView = ViewPreview
		m.previewView.SetLoading()
		return m, preview.Build(m.cfg, m.conv, msg.Post)

	case preview.BackMsg:
		m.currentView = m.previousView
		return m, nil

	case postform.DoneMsg:
		if msg.Init {
			p := m.editorView.Post()
			if _, err := m.orch.InitializeWith(&p, msg.Title, msg.Category, msg.Tags); err != nil {
				m.statusMessage = err.Error()
				m.currentView = ViewEditor
				return m, nil
			}
			m.editorView.SetBuffer(p)
			m.currentView = ViewEditor
			return m, nil
		}
		m.currentView = ViewDrafts
		return m, m.createPost(msg.Title, msg.Category, msg.Tags)

	case postform.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case postCreatedMsg:
		if msg.err != nil {
			m.statusMessage = "creating post: " + msg.err.Error()
			return m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewEditor
		var cmd tea.Cmd
		m.editorView, cmd = m.editorView.Update(editor.OpenedMsg{
			Draft:   msg.draft,
			Content: msg.content,
		})
		return m, tea.Batch(cmd, m.draftList.LoadDrafts())

	case sendResultMsg:
		m.sending = false
		if msg.err != nil {
			m.statusMessage = sendFailureStatus(msg.err)
			return m, nil
		}
		m.statusMessage = sentStatus(msg.title, m.cfg.Recipient)
		m.currentView = ViewDrafts
		return m, m.draftList.LoadDrafts()

	case confirm.DoneMsg:
		m.currentView = m.previousView
		if !msg.OK {
			return m, nil
		}
		switch msg.Token {
		case tokenSend:
			m.sending = true
			return m, m.sendPost(m.pendingPost, m.pendingPath)
		case tokenReinit:
			m.currentView = ViewForm
			cmd := m.formView.StartInitialize(
				titleSuggestions(m.pendingPost, m.pendingPath, m.pendingLine),
			)
			return m, cmd
		case tokenDelete:
			return m, m.deleteDraft(m.pendingDraft)
		case tokenDiscard:
			m.currentView = ViewDrafts
			return m, m.draftList.LoadDrafts()
		}
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		cmd := m.executeCommand(string(msg))
		return m, cmd

	case tea.KeyMsg:
		// Global keys that work regardless of current view.
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.currentView == ViewDrafts && !m.draftList.Searching() {
				return m, tea.Quit
			}

		case "esc":
			if m.currentView == ViewHelp || m.currentView == ViewCommand {
				m.currentView = m.previousView
				return m, nil
			}

		case "?":
			if m.textEntry() {
				break
			}
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}
			m.previousView = m.currentView
			m.currentView = ViewHelp
			return m, nil

		case ":":
			if m.currentView == ViewCommand {
				m.currentView = m.previousView
				return m, nil
			}
			if m.textEntry() {
				break
			}
			m.previousView = m.currentView
			m.currentView = ViewCommand
			cmd := m.commandView.Focus()
			return m, cmd

		case "n":
			if m.currentView == ViewDrafts && !m.draftList.Searching() {
				m.previousView = m.currentView
				m.currentView = ViewForm
				cmd := m.formView.StartNew()
				return m, cmd
			}

		case "r":
			if m.currentView == ViewDrafts && !m.draftList.Searching() {
				return m, m.syncDrafts()
			}
		}
	}

	// Delegate to active sub-view.
	return m.updateActiveView(msg)
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewDrafts:
		m.draftList, cmd = m.draftList.Update(msg)
	case ViewEditor:
		m.editorView, cmd = m.editorView.Update(msg)
	case ViewForm:
		m.formView, cmd = m.formView.Update(msg)
	case ViewPreview:
		m.previewView, cmd = m.previewView.Update(msg)
	case ViewConfirm:
		m.confirmView, cmd = m.confirmView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}

	return m, cmd
}

// textEntry reports whether the active view is consuming raw typing,
// in which case global shortcut keys must not intercept.
func (m Model) textEntry() bool {
	switch m.currentView {
	case ViewEditor, ViewForm, ViewCommand, ViewConfirm:
		return true
	case ViewDrafts:
		return m.draftList.Searching()
	}
	return false
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Mailpost", m.headerStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewDrafts:
		return m.draftList.View()
	case ViewEditor:
		return m.editorView.View()
	case ViewForm:
		return m.formView.View()
	case ViewPreview:
		return m.previewView.View()
	case ViewConfirm:
		return m.confirmView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	default:
		return ""
	}
}

// headerStatus returns the short status string shown in the header: a
// send in flight, or where submissions go.
func (m Model) headerStatus() string {
	if m.sending {
		return "sending..."
	}
	if m.cfg.Recipient == "" {
		return "no recipient configured"
	}
	return "→ " + m.cfg.Recipient
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	// Show flow results prominently when present.
	if m.statusMessage != "" &&
		(m.currentView == ViewDrafts || m.currentView == ViewEditor) {
		return m.statusMessage
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | esc back"
	case ViewEditor:
		return "ctrl+s save | ctrl+d send | ctrl+t init | ctrl+p preview | esc back"
	case ViewPreview:
		return "j/k scroll | esc back"
	case ViewForm:
		return "enter submit | esc cancel"
	case ViewConfirm:
		return "←/→ choose | enter confirm"
	default:
		return "q quit | ? help | n new | / search | s sent | tab sort | r rescan"
	}
}

// executeCommand handles a command string from the command palette.
func (m *Model) executeCommand(cmd string) tea.Cmd {
	switch cmd {
	case "new", "new post":
		m.previousView = m.currentView
		m.currentView = ViewForm
		return m.formView.StartNew()
	case "sync", "rescan", "refresh":
		return m.syncDrafts()
	case "sent", "toggle sent":
		return m.draftList.ToggleSent()
	case "help":
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return nil
	case "quit", "q":
		return tea.Quit
	default:
		return nil
	}
}
