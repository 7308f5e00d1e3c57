package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/naveenspark/catalyst/pkg/domain"
)

// ProgramSource is the read-only content source the loaders fetch from.
// *client.Client satisfies it.
type ProgramSource interface {
	ListPrograms(ctx context.Context) ([]domain.ProgramSummary, error)
	GetProgram(ctx context.Context, id string) (*domain.ProgramDetail, error)
}

type loadStatus int

const (
	statusIdle loadStatus = iota
	statusLoading
	statusSuccess
	statusFailure
)

func (s loadStatus) String() string {
	switch s {
	case statusLoading:
		return "loading"
	case statusSuccess:
		return "success"
	case statusFailure:
		return "failure"
	default:
		return "idle"
	}
}

var errEmptyProgramID = errors.New("no program selected")

// catalogLoadedMsg carries the result of one catalog activation.
type catalogLoadedMsg struct {
	req      uuid.UUID
	programs []domain.ProgramSummary
	err      error
}

// detailLoadedMsg carries the result of one detail activation, tagged with
// the program id it was issued for.
type detailLoadedMsg struct {
	req       uuid.UUID
	programID string
	program   *domain.ProgramDetail
	err       error
}

// catalogLoader fetches the full program list. Each activation gets a fresh
// request tag; results carrying any other tag are stale and dropped. Tags
// are UUIDs rather than counters so a remounted loader never accepts the
// result of its predecessor.
type catalogLoader struct {
	source   ProgramSource
	status   loadStatus
	programs []domain.ProgramSummary
	err      string
	req      uuid.UUID
	cancel   context.CancelFunc
}

func newCatalogLoader(src ProgramSource) catalogLoader {
	return catalogLoader{source: src}
}

// activate enters Loading and returns the single command for this activation.
func (l catalogLoader) activate() (catalogLoader, tea.Cmd) {
	l.stop()
	ctx, cancel := context.WithCancel(context.Background())
	l.req = uuid.New()
	l.cancel = cancel
	l.status = statusLoading
	l.programs = nil
	l.err = ""

	src, req := l.source, l.req
	return l, func() tea.Msg {
		defer cancel()
		programs, err := src.ListPrograms(ctx)
		return catalogLoadedMsg{req: req, programs: programs, err: err}
	}
}

// resolve applies msg when it belongs to the current activation. The bool
// reports whether it was applied.
func (l catalogLoader) resolve(msg catalogLoadedMsg) (catalogLoader, bool) {
	if l.status != statusLoading || msg.req != l.req {
		return l, false
	}
	l.cancel = nil
	if msg.err != nil {
		l.status = statusFailure
		l.err = msg.err.Error()
		l.programs = nil
		return l, true
	}
	l.status = statusSuccess
	l.programs = msg.programs
	return l, true
}

// stop cancels the in-flight request, if any. Its result stays stale.
func (l catalogLoader) stop() {
	if l.cancel != nil {
		l.cancel()
	}
}

// detailLoader fetches one program by id. A new id supersedes any
// outstanding request; only a result tagged with both the current id and
// the current request is applied.
type detailLoader struct {
	source    ProgramSource
	programID string
	status    loadStatus
	program   *domain.ProgramDetail
	err       string
	req       uuid.UUID
	cancel    context.CancelFunc
}

func newDetailLoader(src ProgramSource) detailLoader {
	return detailLoader{source: src}
}

// activate loads programID. An empty id fails immediately without a request.
func (l detailLoader) activate(programID string) (detailLoader, tea.Cmd) {
	l.stop()
	l.cancel = nil
	l.programID = programID
	l.program = nil
	l.req = uuid.New()

	if programID == "" {
		l.status = statusFailure
		l.err = errEmptyProgramID.Error()
		return l, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.status = statusLoading
	l.err = ""

	src, req := l.source, l.req
	return l, func() tea.Msg {
		defer cancel()
		program, err := src.GetProgram(ctx, programID)
		return detailLoadedMsg{req: req, programID: programID, program: program, err: err}
	}
}

func (l detailLoader) resolve(msg detailLoadedMsg) (detailLoader, bool) {
	if l.status != statusLoading || msg.req != l.req || msg.programID != l.programID {
		return l, false
	}
	l.cancel = nil
	if msg.err != nil {
		l.status = statusFailure
		l.err = msg.err.Error()
		return l, true
	}
	if msg.program == nil {
		l.status = statusFailure
		l.err = "empty response for " + msg.programID
		return l, true
	}
	// A record for a different program is never rendered under this id.
	if msg.program.ID != "" && msg.program.ID != msg.programID {
		l.status = statusFailure
		l.err = fmt.Sprintf("program %q returned record %q", msg.programID, msg.program.ID)
		return l, true
	}
	l.status = statusSuccess
	l.program = msg.program
	return l, true
}

func (l detailLoader) stop() {
	if l.cancel != nil {
		l.cancel()
	}
}
