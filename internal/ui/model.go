package ui

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"

	"github.com/hjens/json-explorer/internal/config"
	"github.com/hjens/json-explorer/internal/expr"
	"github.com/hjens/json-explorer/pkg/document"
	"github.com/hjens/json-explorer/pkg/logger"
	"github.com/hjens/json-explorer/pkg/view"
)

// Mode identifies which input handler owns the next key press.
type Mode int

const (
	ModeBrowse Mode = iota
	ModeSearchInput
	ModeSearchBrowse
	ModeExpr
	ModeHelp
)

func (m Mode) String() string {
	switch m {
	case ModeBrowse:
		return "browse"
	case ModeSearchInput:
		return "search-input"
	case ModeSearchBrowse:
		return "search-browse"
	case ModeExpr:
		return "expr"
	case ModeHelp:
		return "help"
	default:
		return "unknown"
	}
}

const (
	inputBarHeight  = 3
	bottomBarHeight = 3
	minListHeight   = 5
)

// Model is the bubbletea model for one browsing session. Every state
// transition runs on the program goroutine: one message, one transition,
// then one View. Nothing here is safe for concurrent use and nothing
// needs to be.
type Model struct {
	State *view.State
	Doc   *document.Node

	Mode       Mode
	HelpReturn Mode // mode to restore when the help overlay closes

	Filename string
	Theme    Theme
	Cfg      *config.Config

	WinWidth  int
	WinHeight int

	SearchInput textinput.Model
	ExprInput   textinput.Model

	// DocStack holds the documents replaced by expression results; esc
	// pops back to them with selection, collapse and search state intact.
	DocStack  []docFrame
	ExprTitle string // expression shown next to the filename, if any

	PendingKey string // "y" while a yank payload key is awaited
	Notice     string // transient status-pane text, cleared on the next key

	evaluator *expr.Evaluator

	// writeClipboard is swapped out in tests.
	writeClipboard func(string) error
}

type docFrame struct {
	doc       *document.Node
	state     *view.State
	exprTitle string
}

// Options configures a new Model.
type Options struct {
	Filename      string
	Config        *config.Config
	Theme         Theme
	CollapseDepth *int // containers at this depth or deeper start collapsed; nil leaves all open
	Width         int  // initial size; the first WindowSizeMsg overrides
	Height        int
}

// NewModel builds the model for a parsed document.
func NewModel(doc *document.Node, opts Options) *Model {
	if opts.Config == nil {
		opts.Config = &config.Config{}
	}
	if opts.Width <= 0 {
		opts.Width = 80
	}
	if opts.Height <= 0 {
		opts.Height = 24
	}
	if opts.Filename == "" {
		opts.Filename = "(stdin)"
	}

	m := &Model{
		Doc:            doc,
		Mode:           ModeBrowse,
		Filename:       opts.Filename,
		Theme:          opts.Theme,
		Cfg:            opts.Config,
		WinWidth:       opts.Width,
		WinHeight:      opts.Height,
		writeClipboard: clipboard.WriteAll,
	}
	m.State = m.newState(doc)
	if opts.CollapseDepth != nil {
		m.State.CollapseToDepth(*opts.CollapseDepth)
	}

	m.SearchInput = newInput("/", "name, name=value, =value")
	m.ExprInput = newInput(":", "expression, the document is _")
	m.applyLayout()
	return m
}

func newInput(prompt, placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = placeholder
	ti.CharLimit = 500
	ti.SetWidth(76)
	return ti
}

// newState flattens a document into fresh browsing state sized to the
// current row pane.
func (m *Model) newState(doc *document.Node) *view.State {
	s := view.New(doc, m.listHeight())
	s.SetLiveSearchThreshold(m.Cfg.LiveThreshold())
	return s
}

// title is the row pane heading: the filename, plus the expression that
// produced the current document when one is being browsed.
func (m *Model) title() string {
	if m.ExprTitle == "" {
		return m.Filename
	}
	return m.Filename + " : " + m.ExprTitle
}

// applyLayout re-derives everything that depends on the window size or
// the visible chrome: the row pane height and the input field widths.
func (m *Model) applyLayout() {
	m.State.SetHeight(m.listHeight())
	inner := m.WinWidth - 4 // borders plus the prompt glyph
	if inner < 10 {
		inner = 10
	}
	m.SearchInput.SetWidth(inner)
	m.ExprInput.SetWidth(inner)
}

// listHeight is the height of the row pane including its title border.
func (m *Model) listHeight() int {
	h := m.WinHeight - bottomBarHeight
	if m.inputBarVisible() {
		h -= inputBarHeight
	}
	if h < minListHeight {
		h = minListHeight
	}
	return h
}

func (m *Model) inputBarVisible() bool {
	return m.Mode == ModeSearchInput || m.Mode == ModeSearchBrowse || m.Mode == ModeExpr
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width == m.WinWidth && msg.Height == m.WinHeight {
			return m, nil
		}
		m.WinWidth = msg.Width
		m.WinHeight = msg.Height
		m.applyLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Everything else (cursor blinks and the like) belongs to whichever
	// input has focus.
	return m.updateFocusedInput(msg)
}

func (m *Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.Mode {
	case ModeSearchInput:
		m.SearchInput, cmd = m.SearchInput.Update(msg)
	case ModeExpr:
		m.ExprInput, cmd = m.ExprInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	logger.Get().V(1).Info("key", "key", keyStr, "mode", m.Mode.String())
	m.Notice = ""

	switch m.Mode {
	case ModeHelp:
		return m.handleHelpKey(keyStr)
	case ModeSearchInput:
		return m.handleSearchInputKey(msg, keyStr)
	case ModeExpr:
		return m.handleExprKey(msg, keyStr)
	case ModeSearchBrowse:
		if m.PendingKey == "" {
			if action, ok := SearchBrowseKeyBindings[keyStr]; ok {
				return m.executeAction(action)
			}
		}
		return m.handleBrowseKey(keyStr)
	default:
		return m.handleBrowseKey(keyStr)
	}
}

func (m *Model) handleBrowseKey(keyStr string) (tea.Model, tea.Cmd) {
	if m.PendingKey == "y" {
		m.PendingKey = ""
		return m.yankPayload(keyStr)
	}
	action, ok := BrowseKeyBindings[keyStr]
	if !ok {
		return m, nil
	}
	if action == ActionYank {
		m.PendingKey = "y"
		return m, nil
	}
	return m.executeAction(action)
}

// handleHelpKey closes the overlay on any key; ctrl+c still quits.
func (m *Model) handleHelpKey(keyStr string) (tea.Model, tea.Cmd) {
	if keyStr == "ctrl+c" {
		return m, tea.Quit
	}
	m.Mode = m.HelpReturn
	m.applyLayout()
	return m, nil
}

func (m *Model) handleSearchInputKey(msg tea.KeyMsg, keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		return m.submitSearch()
	case "esc":
		return m.cancelSearch()
	}
	prev := m.SearchInput.Value()
	var cmd tea.Cmd
	m.SearchInput, cmd = m.SearchInput.Update(msg)
	if v := m.SearchInput.Value(); v != prev {
		m.State.UpdateSearchLive(v)
	}
	return m, cmd
}

func (m *Model) handleExprKey(msg tea.KeyMsg, keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		return m.submitExpr()
	case "esc":
		m.ExprInput.Blur()
		m.Mode = ModeBrowse
		m.applyLayout()
		return m, nil
	}
	var cmd tea.Cmd
	m.ExprInput, cmd = m.ExprInput.Update(msg)
	return m, cmd
}

func (m *Model) executeAction(action Action) (tea.Model, tea.Cmd) {
	switch action {
	case ActionQuit:
		return m, tea.Quit
	case ActionDown:
		m.State.MoveRelative(1)
	case ActionUp:
		m.State.MoveRelative(-1)
	case ActionSiblingDown:
		m.State.MoveToSibling(1)
	case ActionSiblingUp:
		m.State.MoveToSibling(-1)
	case ActionToggleCollapse:
		m.State.ToggleCollapse()
	case ActionCollapseLevel:
		m.State.CollapseLevel()
	case ActionUncollapseAll:
		m.State.UncollapseAll()
	case ActionTop:
		m.State.MoveToTop()
	case ActionBottom:
		m.State.MoveToBottom()
	case ActionScreenTop:
		m.State.MoveToScreenTop()
	case ActionScreenMiddle:
		m.State.MoveToScreenMiddle()
	case ActionScreenBottom:
		m.State.MoveToScreenBottom()
	case ActionPageDown:
		m.State.MoveRelative(m.pageStep())
	case ActionPageUp:
		m.State.MoveRelative(-m.pageStep())
	case ActionSearch:
		return m.enterSearch()
	case ActionSearchName:
		return m.searchSelectedName()
	case ActionNextMatch:
		m.State.NextMatch()
	case ActionPrevMatch:
		m.State.PrevMatch()
	case ActionExpr:
		return m.enterExpr()
	case ActionPopDocument:
		return m.popDocument()
	case ActionHelp:
		m.HelpReturn = m.Mode
		m.Mode = ModeHelp
		m.applyLayout()
	case ActionLeaveSearch:
		return m.leaveSearch()
	}
	return m, nil
}

// pageStep is one page of movement: the window height minus a small
// overlap so context survives the jump.
func (m *Model) pageStep() int {
	step := m.WinHeight - 5
	if step < 1 {
		step = 1
	}
	return step
}

func (m *Model) enterSearch() (tea.Model, tea.Cmd) {
	m.Mode = ModeSearchInput
	m.SearchInput.SetValue("")
	m.applyLayout()
	return m, m.SearchInput.Focus()
}

// submitSearch commits the query and switches to walking the results.
// When live recompute was deferred, the full scan happens here. The
// selection jumps to the nearest match unless it already is one.
func (m *Model) submitSearch() (tea.Model, tea.Cmd) {
	m.State.UpdateSearch(m.SearchInput.Value())
	m.SearchInput.Blur()
	m.Mode = ModeSearchBrowse
	m.applyLayout()
	if m.State.MatchCount() > 0 && m.State.MatchPosition() == 0 {
		m.State.NextMatch()
	}
	return m, nil
}

func (m *Model) cancelSearch() (tea.Model, tea.Cmd) {
	m.State.ClearSearch()
	m.SearchInput.Blur()
	m.Mode = ModeBrowse
	m.applyLayout()
	return m, nil
}

func (m *Model) leaveSearch() (tea.Model, tea.Cmd) {
	m.State.ClearSearch()
	m.Mode = ModeBrowse
	m.applyLayout()
	return m, nil
}

// searchSelectedName searches for the selected row's name, jumping
// straight to result browsing. Rows without a name do nothing.
func (m *Model) searchSelectedName() (tea.Model, tea.Cmd) {
	row := m.State.SelectedRow()
	if !row.HasName {
		return m, nil
	}
	m.SearchInput.SetValue(row.Name)
	m.State.UpdateSearch(row.Name)
	m.Mode = ModeSearchBrowse
	m.applyLayout()
	return m, nil
}

func (m *Model) enterExpr() (tea.Model, tea.Cmd) {
	m.Mode = ModeExpr
	m.ExprInput.SetValue("")
	m.applyLayout()
	return m, m.ExprInput.Focus()
}

// submitExpr evaluates the expression against the document currently
// browsed and pushes the result as a new browsing session.
func (m *Model) submitExpr() (tea.Model, tea.Cmd) {
	src := strings.TrimSpace(m.ExprInput.Value())
	if src == "" {
		m.ExprInput.Blur()
		m.Mode = ModeBrowse
		m.applyLayout()
		return m, nil
	}
	if m.evaluator == nil {
		ev, err := expr.NewEvaluator()
		if err != nil {
			m.Notice = "error: " + err.Error()
			return m, nil
		}
		m.evaluator = ev
	}
	result, err := m.evaluator.Evaluate(src, m.Doc)
	if err != nil {
		logger.Get().Error(err, "expression failed", "expr", src)
		m.Notice = "error: " + err.Error()
		return m, nil
	}
	logger.Get().V(1).Info("expression evaluated", "expr", src)

	m.pushDocument(result, src)
	m.ExprInput.Blur()
	m.ExprInput.SetValue("")
	m.Mode = ModeBrowse
	m.applyLayout()
	return m, nil
}

func (m *Model) pushDocument(doc *document.Node, exprText string) {
	m.DocStack = append(m.DocStack, docFrame{doc: m.Doc, state: m.State, exprTitle: m.ExprTitle})
	m.Doc = doc
	m.State = m.newState(doc)
	m.ExprTitle = exprText
}

// popDocument restores the last document replaced by an expression,
// with its full browsing state. No-op when nothing is pushed.
func (m *Model) popDocument() (tea.Model, tea.Cmd) {
	if len(m.DocStack) == 0 {
		return m, nil
	}
	frame := m.DocStack[len(m.DocStack)-1]
	m.DocStack = m.DocStack[:len(m.DocStack)-1]
	m.Doc = frame.doc
	m.State = frame.state
	m.ExprTitle = frame.exprTitle
	m.applyLayout() // the window may have been resized while pushed
	return m, nil
}
