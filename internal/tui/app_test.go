package tui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

func newTestApp(src ProgramSource) App {
	a := NewApp(src, zerolog.Nop())
	model, _ := a.Update(tea.WindowSizeMsg{Width: 100, Height: 60})
	return model.(App)
}

// feed runs cmd, pushes every resulting message through the app and
// follows the commands those produce.
func feed(t *testing.T, a App, cmd tea.Cmd) App {
	t.Helper()
	for _, msg := range drain(t, cmd) {
		model, next := a.Update(msg)
		a = feed(t, model.(App), next)
	}
	return a
}

func TestNewAppStartsLoadingCatalog(t *testing.T) {
	a := NewApp(newFakeSource(), zerolog.Nop())
	if a.view != viewCatalog {
		t.Errorf("expected catalog view, got %s", a.view)
	}
	if a.catalog.loader.status != statusLoading {
		t.Errorf("catalog status = %s, want loading", a.catalog.loader.status)
	}
	if a.Init() == nil {
		t.Error("Init should return the initial load")
	}
	if !strings.Contains(a.View(), "loading programs") {
		t.Errorf("expected loading view, got:\n%s", a.View())
	}
}

func TestAppCatalogToDetailAndBack(t *testing.T) {
	src := newFakeSource()
	a := newTestApp(src)
	a = feed(t, a, a.initCmd)

	if !strings.Contains(a.View(), "Alpha") || !strings.Contains(a.View(), "Beta") {
		t.Fatalf("catalog should list programs:\n%s", a.View())
	}

	// Select Beta.
	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	a = model.(App)
	model, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	a = model.(App)
	a = feed(t, a, cmd) // openProgramMsg
	if a.view != viewDetail {
		t.Fatalf("expected detail view, got %s", a.view)
	}
	if a.detail.loader.programID != "b" {
		t.Fatalf("detail program = %q, want b", a.detail.loader.programID)
	}

	view := a.View()
	if !strings.Contains(view, "Beta") || !strings.Contains(view, "Start Application") {
		t.Errorf("detail view missing content:\n%s", view)
	}
	if got := src.detailReqs; len(got) != 1 || got[0] != "b" {
		t.Errorf("detail requests = %v, want [b]", got)
	}

	// Back remounts the catalog from Loading.
	model, cmd = a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	a = model.(App)
	model, reload := a.Update(cmd())
	a = model.(App)
	if a.view != viewCatalog {
		t.Fatalf("expected catalog view after back, got %s", a.view)
	}
	if a.catalog.loader.status != statusLoading {
		t.Errorf("catalog status after back = %s, want loading", a.catalog.loader.status)
	}
	a = feed(t, a, reload)
	if a.catalog.loader.status != statusSuccess {
		t.Errorf("catalog status after reload = %s, want success", a.catalog.loader.status)
	}
	if src.listCalls != 2 {
		t.Errorf("listCalls = %d, want 2", src.listCalls)
	}
}

func TestAppIgnoresResultFromUnmountedCatalog(t *testing.T) {
	src := newFakeSource()
	a := newTestApp(src)
	stale := a.initCmd

	// Navigate away and back before the first load resolves.
	model, _ := a.Update(openProgramMsg{id: "a"})
	a = model.(App)
	model, _ = a.Update(backMsg{})
	a = model.(App)

	a = feed(t, a, stale)
	if a.catalog.loader.status != statusLoading {
		t.Errorf("stale catalog result was applied: status=%s", a.catalog.loader.status)
	}
}

func TestAppDetailErrorShowsMessage(t *testing.T) {
	a := newTestApp(newFakeSource())
	model, cmd := a.Update(openProgramMsg{id: "nope"})
	a = feed(t, model.(App), cmd)

	if !strings.Contains(a.View(), "program not found") {
		t.Errorf("expected not-found error:\n%s", a.View())
	}
}

func TestAppGlobalQuitOnQ(t *testing.T) {
	a := newTestApp(newFakeSource())
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command on 'q', got nil")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestAppHelpOverlay(t *testing.T) {
	a := newTestApp(newFakeSource())

	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")})
	a = model.(App)
	if !a.helpOpen {
		t.Fatal("expected helpOpen after h")
	}
	view := a.View()
	if !strings.Contains(view, "catalyst programs list") || !strings.Contains(view, "catalyst.vc") {
		t.Errorf("help overlay missing content:\n%s", view)
	}

	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	a = model.(App)
	if a.helpCursor != 1 {
		t.Errorf("helpCursor = %d, want 1", a.helpCursor)
	}

	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	a = model.(App)
	if a.helpOpen {
		t.Error("expected esc to close help")
	}
	if a.view != viewCatalog {
		t.Error("closing help should not navigate")
	}
}

func TestAppHelpOverlayOpensLink(t *testing.T) {
	opened, _ := stubLinks(t)
	a := newTestApp(newFakeSource())
	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")})
	a = model.(App)

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter in help should open a link")
	}
	cmd()
	if len(*opened) != 1 || (*opened)[0] != helpItems[0].url {
		t.Errorf("opened = %v, want [%s]", *opened, helpItems[0].url)
	}
}

func TestAppCatalogShowsLinkFailure(t *testing.T) {
	prev := openLink
	openLink = func(string) error { return errors.New("browser.Open: no display") }
	t.Cleanup(func() { openLink = prev })

	var logs bytes.Buffer
	a := NewApp(newFakeSource(), zerolog.New(&logs))
	model, _ := a.Update(tea.WindowSizeMsg{Width: 100, Height: 60})
	a = model.(App)
	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")})
	a = model.(App)

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	a = feed(t, a, cmd)

	if !strings.Contains(a.View(), "no display") {
		t.Errorf("expected link failure in catalog view:\n%s", a.View())
	}
	if !strings.Contains(logs.String(), "link action failed") {
		t.Errorf("expected failure to be logged, got %q", logs.String())
	}

	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	a = model.(App)
	if strings.Contains(a.View(), "no display") {
		t.Error("notice should clear on the next key")
	}
}

func TestAppHeaderShowsWordmark(t *testing.T) {
	a := newTestApp(newFakeSource())
	if !strings.Contains(a.View(), "C  A  T  A  L  Y  S  T") {
		t.Errorf("expected spaced wordmark in header:\n%s", a.View())
	}
}

func TestAppShimmerAdvancesFrame(t *testing.T) {
	a := newTestApp(newFakeSource())
	model, cmd := a.Update(shimmerTickMsg{})
	if model.(App).frame != 1 {
		t.Errorf("frame = %d, want 1", model.(App).frame)
	}
	if cmd == nil {
		t.Error("shimmer should schedule the next tick")
	}
}
