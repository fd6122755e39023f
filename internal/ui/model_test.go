//nolint:forcetypeassert
package ui

import (
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hjens/json-explorer/internal/config"
	"github.com/hjens/json-explorer/pkg/document"
)

// uiSampleJSON flattens to 18 rows with stable IDs:
//
//	0  {            1  a: {        2  id: 42      3  }
//	4  b: {         5  id: 7       6  }           7  list: [
//	8  10           9  20         10  {          11  deep: true
//	12 }           13  ]          14  empty: {   15  }
//	16 note: null  17  }
const uiSampleJSON = `{
  "a": {"id": 42},
  "b": {"id": 7},
  "list": [10, 20, {"deep": true}],
  "empty": {},
  "note": null
}`

func newTestModel(t *testing.T) *Model {
	t.Helper()
	return newTestModelFrom(t, uiSampleJSON, 80, 24)
}

func newTestModelFrom(t *testing.T, input string, width, height int) *Model {
	t.Helper()
	doc, err := document.ParseJSON([]byte(input))
	require.NoError(t, err)
	return NewModel(doc, Options{Config: &config.Config{}, Width: width, Height: height})
}

// keyMsg builds the key message for a human-readable key name, the same
// names the binding maps use.
func keyMsg(key string) tea.KeyPressMsg {
	switch key {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case "home":
		return tea.KeyPressMsg{Code: tea.KeyHome}
	case "end":
		return tea.KeyPressMsg{Code: tea.KeyEnd}
	case "space":
		return tea.KeyPressMsg{Code: ' ', Text: " "}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "ctrl+c":
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	}
	r := []rune(key)[0]
	return tea.KeyPressMsg{Code: r, Text: key}
}

// press feeds a sequence of keys through Update and returns the final
// model.
func press(m *Model, keys ...string) *Model {
	cur := m
	for _, k := range keys {
		nm, _ := cur.Update(keyMsg(k))
		cur = nm.(*Model)
	}
	return cur
}

func TestNewModelDefaults(t *testing.T) {
	doc, err := document.ParseJSON([]byte(uiSampleJSON))
	require.NoError(t, err)

	m := NewModel(doc, Options{})
	assert.Equal(t, 80, m.WinWidth)
	assert.Equal(t, 24, m.WinHeight)
	assert.Equal(t, "(stdin)", m.Filename)
	assert.Equal(t, ModeBrowse, m.Mode)
	assert.Equal(t, 0, m.State.SelectedID())
	assert.Equal(t, 18, m.State.TotalRows())
	assert.NotNil(t, m.Init())
}

func TestNewModelCollapseDepth(t *testing.T) {
	doc, err := document.ParseJSON([]byte(uiSampleJSON))
	require.NoError(t, err)

	depth := 1
	m := NewModel(doc, Options{Config: &config.Config{}, CollapseDepth: &depth})
	// Depth-1 containers a, b, list and empty all start collapsed.
	assert.True(t, m.State.Row(1).Collapsed)
	assert.True(t, m.State.Row(7).Collapsed)
	assert.Equal(t, 7, m.State.VisibleLen())

	// Nil depth leaves everything open.
	open := NewModel(doc, Options{Config: &config.Config{}})
	assert.Equal(t, 18, open.State.VisibleLen())
}

func TestMovementKeys(t *testing.T) {
	m := newTestModel(t)

	m = press(m, "j", "j")
	assert.Equal(t, 2, m.State.SelectedID())

	m = press(m, "k")
	assert.Equal(t, 1, m.State.SelectedID())

	m = press(m, "down", "down")
	assert.Equal(t, 3, m.State.SelectedID())

	m = press(m, "up")
	assert.Equal(t, 2, m.State.SelectedID())
}

func TestSiblingKeys(t *testing.T) {
	m := newTestModel(t)
	m.State.SelectID(1) // a: {

	m = press(m, "J")
	assert.Equal(t, 3, m.State.SelectedID(), "next row at the same depth is a's end marker")

	m = press(m, "J")
	assert.Equal(t, 4, m.State.SelectedID(), "then b's opening row")

	m = press(m, "K", "K")
	assert.Equal(t, 1, m.State.SelectedID())
}

func TestJumpKeys(t *testing.T) {
	m := newTestModel(t)

	m = press(m, "G")
	assert.Equal(t, 17, m.State.SelectedID())

	m = press(m, "g")
	assert.Equal(t, 0, m.State.SelectedID())

	m = press(m, "end")
	assert.Equal(t, 17, m.State.SelectedID())

	m = press(m, "home")
	assert.Equal(t, 0, m.State.SelectedID())
}

func TestScreenPositionKeys(t *testing.T) {
	m := newTestModel(t)
	// Height 24 leaves a 21-row pane; all 18 rows fit, top stays 0.

	m = press(m, "L")
	assert.Equal(t, 17, m.State.SelectedID())

	m = press(m, "M")
	assert.Equal(t, 9, m.State.SelectedID())

	m = press(m, "H")
	assert.Equal(t, 0, m.State.SelectedID())
}

func TestPagingKeys(t *testing.T) {
	m := newTestModelFrom(t, uiSampleJSON, 80, 10) // page step 5

	m = press(m, "space")
	assert.Equal(t, 5, m.State.SelectedID())

	m = press(m, "space")
	assert.Equal(t, 10, m.State.SelectedID())

	m = press(m, "backspace")
	assert.Equal(t, 5, m.State.SelectedID())
}

func TestPagingClampsAtEnds(t *testing.T) {
	m := newTestModel(t) // page step 19 > row count

	m = press(m, "space")
	assert.Equal(t, 17, m.State.SelectedID())

	m = press(m, "backspace")
	assert.Equal(t, 0, m.State.SelectedID())
}

func TestToggleCollapseKey(t *testing.T) {
	m := newTestModel(t)
	m.State.SelectID(7) // list: [

	m = press(m, "c")
	assert.True(t, m.State.Row(7).Collapsed)
	assert.Equal(t, 12, m.State.VisibleLen())

	m = press(m, "c")
	assert.False(t, m.State.Row(7).Collapsed)
	assert.Equal(t, 18, m.State.VisibleLen())
}

func TestToggleCollapseFromLeafTargetsContainer(t *testing.T) {
	m := newTestModel(t)
	m.State.SelectID(8) // the 10 inside list

	m = press(m, "c")
	assert.True(t, m.State.Row(7).Collapsed)
	assert.Equal(t, 7, m.State.SelectedID(), "selection falls back to the collapsed container")
}

func TestCollapseLevelKey(t *testing.T) {
	m := newTestModel(t)
	m.State.SelectID(2) // id inside a

	m = press(m, "C")
	// Every depth-1 container is collapsed; the selection lands on a.
	assert.Equal(t, 1, m.State.SelectedID())
	assert.Equal(t, 7, m.State.VisibleLen())

	m = press(m, "u")
	assert.Equal(t, 18, m.State.VisibleLen())
	assert.Equal(t, 1, m.State.SelectedID(), "expanding keeps the selection in place")
}

func TestQuitKeys(t *testing.T) {
	for _, key := range []string{"q", "ctrl+c"} {
		m := newTestModel(t)
		_, cmd := m.Update(keyMsg(key))
		require.NotNil(t, cmd, "key %q should quit", key)
		_, ok := cmd().(tea.QuitMsg)
		assert.True(t, ok, "key %q should produce a quit message", key)
	}
}

func TestWindowResize(t *testing.T) {
	m := newTestModel(t)

	nm, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = nm.(*Model)
	assert.Equal(t, 100, m.WinWidth)
	assert.Equal(t, 40, m.WinHeight)
	assert.Equal(t, 37, m.State.Height())

	// The input bar steals three more rows while search is open.
	m = press(m, "/")
	assert.Equal(t, 34, m.State.Height())
	m = press(m, "esc")
	assert.Equal(t, 37, m.State.Height())
}

func TestWindowResizeEnforcesMinimumPane(t *testing.T) {
	m := newTestModel(t)

	nm, _ := m.Update(tea.WindowSizeMsg{Width: 30, Height: 4})
	m = nm.(*Model)
	assert.Equal(t, minListHeight, m.State.Height())
}

func TestSearchFlow(t *testing.T) {
	m := newTestModel(t)

	m = press(m, "/")
	assert.Equal(t, ModeSearchInput, m.Mode)
	assert.True(t, m.SearchInput.Focused())

	m = press(m, "i", "d")
	assert.Equal(t, "id", m.SearchInput.Value())
	assert.Equal(t, 2, m.State.MatchCount(), "matches update while typing")

	m = press(m, "enter")
	assert.Equal(t, ModeSearchBrowse, m.Mode)
	assert.Equal(t, 2, m.State.SelectedID(), "submit jumps to the first match")
	assert.Equal(t, 1, m.State.MatchPosition())

	m = press(m, "n")
	assert.Equal(t, 5, m.State.SelectedID())

	m = press(m, "n")
	assert.Equal(t, 2, m.State.SelectedID(), "next wraps past the last match")

	m = press(m, "N")
	assert.Equal(t, 5, m.State.SelectedID())

	m = press(m, "esc")
	assert.Equal(t, ModeBrowse, m.Mode)
	assert.Equal(t, 0, m.State.MatchCount())
	assert.Equal(t, "", m.State.SearchQuery())
}

func TestSearchEscapeWhileTypingCancels(t *testing.T) {
	m := newTestModel(t)

	m = press(m, "/", "i", "d")
	assert.Equal(t, 2, m.State.MatchCount())

	m = press(m, "esc")
	assert.Equal(t, ModeBrowse, m.Mode)
	assert.Equal(t, 0, m.State.MatchCount())
	assert.False(t, m.SearchInput.Focused())
}

func TestSearchBrowseMovementStillWorks(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "/", "i", "d", "enter")
	require.Equal(t, 2, m.State.SelectedID())

	// Keys without a search-browse binding fall through to browsing.
	m = press(m, "j")
	assert.Equal(t, 3, m.State.SelectedID())
	assert.Equal(t, ModeSearchBrowse, m.Mode)
	assert.Equal(t, 2, m.State.MatchCount(), "matches survive plain movement")
}

func TestSearchSlashRestartsWithEmptyInput(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "/", "i", "d", "enter")

	m = press(m, "/")
	assert.Equal(t, ModeSearchInput, m.Mode)
	assert.Equal(t, "", m.SearchInput.Value())
}

func TestSearchSelectedNameKey(t *testing.T) {
	m := newTestModel(t)
	m.State.SelectID(2) // id: 42

	m = press(m, "s")
	assert.Equal(t, ModeSearchBrowse, m.Mode)
	assert.Equal(t, "id", m.State.SearchQuery())
	assert.Equal(t, 2, m.State.MatchCount())
	assert.Equal(t, "id", m.SearchInput.Value())
}

func TestSearchSelectedNameIgnoresNamelessRow(t *testing.T) {
	m := newTestModel(t)
	m.State.SelectID(8) // array element, no name

	m = press(m, "s")
	assert.Equal(t, ModeBrowse, m.Mode)
	assert.Equal(t, "", m.State.SearchQuery())
}

func TestSearchDeferredAboveThreshold(t *testing.T) {
	threshold := 1
	doc, err := document.ParseJSON([]byte(uiSampleJSON))
	require.NoError(t, err)
	m := NewModel(doc, Options{
		Config: &config.Config{Search: config.SearchConfig{LiveThreshold: &threshold}},
	})

	m = press(m, "/", "i", "d")
	assert.True(t, m.State.SearchDeferred())
	assert.Equal(t, 0, m.State.MatchCount(), "no live recompute above the threshold")

	m = press(m, "enter")
	assert.False(t, m.State.SearchDeferred())
	assert.Equal(t, 2, m.State.MatchCount())
	assert.Equal(t, 2, m.State.SelectedID())
}

func TestExprPushAndPop(t *testing.T) {
	m := newTestModel(t)
	m.State.SelectID(5)

	m = press(m, ":")
	assert.Equal(t, ModeExpr, m.Mode)
	assert.True(t, m.ExprInput.Focused())

	m = press(m, "_", ".", "l", "i", "s", "t", "enter")
	assert.Equal(t, ModeBrowse, m.Mode)
	assert.Equal(t, "_.list", m.ExprTitle)
	assert.Equal(t, 7, m.State.TotalRows(), "browsing the three-element list now")
	assert.Len(t, m.DocStack, 1)
	assert.Equal(t, 0, m.State.SelectedID())

	m = press(m, "esc")
	assert.Equal(t, "", m.ExprTitle)
	assert.Equal(t, 18, m.State.TotalRows())
	assert.Empty(t, m.DocStack)
	assert.Equal(t, 5, m.State.SelectedID(), "pop restores the previous selection")
}

func TestExprErrorKeepsInputOpen(t *testing.T) {
	m := newTestModel(t)

	m = press(m, ":", "_", ".", "n", "o", "p", "e", "enter")
	assert.Equal(t, ModeExpr, m.Mode)
	assert.Contains(t, m.Notice, "error:")
	assert.Empty(t, m.DocStack)
	assert.Equal(t, 18, m.State.TotalRows())
}

func TestExprEmptySubmitJustCloses(t *testing.T) {
	m := newTestModel(t)

	m = press(m, ":", "enter")
	assert.Equal(t, ModeBrowse, m.Mode)
	assert.Empty(t, m.DocStack)
}

func TestExprEscapeCloses(t *testing.T) {
	m := newTestModel(t)

	m = press(m, ":", "x", "esc")
	assert.Equal(t, ModeBrowse, m.Mode)
	assert.False(t, m.ExprInput.Focused())
	assert.Empty(t, m.DocStack)
}

func TestEscWithoutStackIsNoOp(t *testing.T) {
	m := newTestModel(t)
	m.State.SelectID(3)

	m = press(m, "esc")
	assert.Equal(t, ModeBrowse, m.Mode)
	assert.Equal(t, 3, m.State.SelectedID())
}

func TestHelpOverlay(t *testing.T) {
	m := newTestModel(t)

	m = press(m, "?")
	assert.Equal(t, ModeHelp, m.Mode)

	m = press(m, "j")
	assert.Equal(t, ModeBrowse, m.Mode, "any key closes help")
	assert.Equal(t, 0, m.State.SelectedID(), "the closing key is not replayed")
}

func TestHelpReturnsToSearchBrowse(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "/", "i", "d", "enter", "?")
	assert.Equal(t, ModeHelp, m.Mode)

	m = press(m, "q")
	assert.Equal(t, ModeSearchBrowse, m.Mode)
	assert.Equal(t, 2, m.State.MatchCount())
}

func TestHelpCtrlCStillQuits(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "?")

	_, cmd := m.Update(keyMsg("ctrl+c"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestYankValue(t *testing.T) {
	m := newTestModel(t)
	var copied string
	m.writeClipboard = func(s string) error { copied = s; return nil }
	m.State.SelectID(2) // id: 42

	m = press(m, "y", "y")
	assert.Equal(t, "42", copied)
	assert.Equal(t, "copied value", m.Notice)
}

func TestYankPath(t *testing.T) {
	m := newTestModel(t)
	var copied string
	m.writeClipboard = func(s string) error { copied = s; return nil }
	m.State.SelectID(11) // deep: true

	m = press(m, "y", "p")
	assert.Equal(t, "list ▶ [2] ▶ deep", copied)
	assert.Equal(t, "copied path", m.Notice)
}

func TestYankSubtree(t *testing.T) {
	m := newTestModel(t)
	var copied string
	m.writeClipboard = func(s string) error { copied = s; return nil }
	m.State.SelectID(1) // a: {

	m = press(m, "y", "v")
	assert.Equal(t, "{\n  \"id\": 42\n}\n", copied)
	assert.Equal(t, "copied subtree", m.Notice)
}

func TestYankValueOnContainerCopiesSubtree(t *testing.T) {
	m := newTestModel(t)
	var copied string
	m.writeClipboard = func(s string) error { copied = s; return nil }
	m.State.SelectID(7) // list: [

	m = press(m, "y", "y")
	assert.Contains(t, copied, "\"deep\": true")
}

func TestYankNull(t *testing.T) {
	m := newTestModel(t)
	var copied string
	m.writeClipboard = func(s string) error { copied = s; return nil }
	m.State.SelectID(16) // note: null

	m = press(m, "y", "y")
	assert.Equal(t, "null", copied)
}

func TestYankCancelledByOtherKey(t *testing.T) {
	m := newTestModel(t)
	called := false
	m.writeClipboard = func(string) error { called = true; return nil }

	m = press(m, "y", "j")
	assert.False(t, called)
	assert.Equal(t, 0, m.State.SelectedID(), "the cancelling key is consumed, not replayed")
	assert.Equal(t, "", m.PendingKey)
}

func TestYankClipboardError(t *testing.T) {
	m := newTestModel(t)
	m.writeClipboard = func(string) error { return errors.New("no display") }

	m = press(m, "y", "y")
	assert.Contains(t, m.Notice, "error: clipboard:")
}

func TestNoticeClearedOnNextKey(t *testing.T) {
	m := newTestModel(t)
	m.Notice = "copied value"

	m = press(m, "j")
	assert.Equal(t, "", m.Notice)
}

func TestUnknownKeyIsIgnored(t *testing.T) {
	m := newTestModel(t)

	m = press(m, "x")
	assert.Equal(t, ModeBrowse, m.Mode)
	assert.Equal(t, 0, m.State.SelectedID())
}
