package engine

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// ViewState is the in-memory navigation state. It lives for one session.
type ViewState struct {
	Mode   Mode
	Detail bool
	Help   bool

	ListIndex int
	MapIndex  int

	MapScroll     int
	StatsScroll   int
	SidebarScroll int
}

// SelectedIndex is the region index the level and detail commands act on:
// the map selection while the map is shown, the list selection otherwise.
func (v ViewState) SelectedIndex() int {
	if v.Mode == ModeMap {
		return v.MapIndex
	}
	return v.ListIndex
}

// ToggleMode activates target, or falls back to List if target is already
// active. Activation closes both overlays. Cursors are left untouched.
func (v ViewState) ToggleMode(target Mode) ViewState {
	if v.Mode == target {
		v.Mode = ModeList
		return v
	}
	v.Mode = target
	v.Detail = false
	v.Help = false
	return v
}

// Move applies a direction according to the active mode.
func (v ViewState) Move(c *Catalog, d Direction) ViewState {
	n := c.Len()
	step := 1
	if d == DirUp || d == DirLeft {
		step = -1
	}
	vertical := d == DirUp || d == DirDown
	switch v.Mode {
	case ModeList:
		if vertical {
			v.ListIndex = clamp(v.ListIndex+step, 0, n-1)
		}
	case ModeMap:
		layout := NewMapLayout(c)
		if vertical {
			v.MapScroll = clamp(v.MapScroll+step, 0, layout.MaxScroll())
			break
		}
		v.MapIndex = clamp(v.MapIndex+step, 0, n-1)
		v.MapScroll = EnsureVisible(layout.LineOf(v.MapIndex), v.MapScroll, MapViewportHeight)
	case ModeStats:
		if vertical {
			v.StatsScroll = clamp(v.StatsScroll+step, 0, StatsScrollMax)
		}
	case ModeAltMap:
		if vertical {
			v.SidebarScroll = clamp(v.SidebarScroll+step, 0, max(0, n-SidebarVisible))
		}
	}
	return v
}

// Transition is the pure state machine: it maps a command to the next view
// state, the next progress and the side effect the caller must perform.
func Transition(c *Catalog, v ViewState, p Progress, cmd Command) (ViewState, Progress, Effect) {
	switch cmd {
	case CommandQuit:
		return v, p, EffectQuit
	case CommandToggleHelp:
		v.Help = !v.Help
	case CommandToggleMap:
		v = v.ToggleMode(ModeMap)
	case CommandToggleStats:
		v = v.ToggleMode(ModeStats)
	case CommandToggleAltMap:
		v = v.ToggleMode(ModeAltMap)
	case CommandUp:
		v = v.Move(c, DirUp)
	case CommandDown:
		v = v.Move(c, DirDown)
	case CommandLeft:
		v = v.Move(c, DirLeft)
	case CommandRight:
		v = v.Move(c, DirRight)
	case CommandToggleDetail:
		v.Detail = !v.Detail
	case CommandCloseDetail:
		v.Detail = false
		v.Help = false
	case CommandExportJSON:
		return v, p, EffectExportJSON
	case CommandExportCSV:
		return v, p, EffectExportCSV
	case CommandExportReport:
		return v, p, EffectExportReport
	case CommandCycleTheme:
		return v, p, EffectCycleTheme
	default:
		if lvl, ok := cmd.Level(); ok && c.Len() > 0 {
			r := c.At(v.SelectedIndex())
			return v, p.With(r.ID, lvl), EffectSave
		}
	}
	return v, p, EffectNone
}

// Session owns the state of one interactive run and performs the effects
// requested by Transition.
type Session struct {
	catalog  *Catalog
	state    ViewState
	progress Progress
	store    ProgressStore
	exporter Exporter
	logger   *log.Logger
	status   string
}

func NewSession(c *Catalog, p Progress, store ProgressStore, exporter Exporter, logger *log.Logger) *Session {
	if p == nil {
		p = Progress{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Session{catalog: c, progress: p, store: store, exporter: exporter, logger: logger}
}

func (s *Session) Catalog() *Catalog   { return s.catalog }
func (s *Session) State() ViewState     { return s.state }
func (s *Session) Progress() Progress   { return s.progress }
func (s *Session) Stats() Stats         { return ComputeStats(s.catalog, s.progress) }
func (s *Session) Status() string       { return s.status }
func (s *Session) SetStatus(msg string) { s.status = msg }

// Selected returns the region the detail overlay and level commands refer to.
func (s *Session) Selected() Region { return s.catalog.At(s.state.SelectedIndex()) }

// Handle applies cmd and runs its effect to completion. Save and export
// failures are reported on the status line and never stop the session. The
// returned effect lets the caller react to quit and theme changes.
func (s *Session) Handle(ctx context.Context, cmd Command) Effect {
	next, prog, eff := Transition(s.catalog, s.state, s.progress, cmd)
	s.state, s.progress = next, prog
	switch eff {
	case EffectSave:
		s.save(ctx)
	case EffectExportJSON:
		s.export(ctx, FormatJSON)
	case EffectExportCSV:
		s.export(ctx, FormatCSV)
	case EffectExportReport:
		s.export(ctx, FormatMarkdown)
	}
	return eff
}

func (s *Session) save(ctx context.Context) {
	r := s.Selected()
	lvl := s.progress.Get(r.ID)
	if s.store == nil {
		s.status = fmt.Sprintf("%s → %s (not saved)", r.ID, lvl)
		return
	}
	if err := s.store.Save(ctx, s.progress); err != nil {
		s.status = "save failed: " + err.Error()
		s.logger.Error("save progress", "region", r.ID, "level", int(lvl), "err", err)
		return
	}
	s.status = fmt.Sprintf("%s → %s", r.ID, lvl)
	s.logger.Debug("saved progress", "region", r.ID, "level", int(lvl))
}

func (s *Session) export(ctx context.Context, f Format) {
	if s.exporter == nil {
		s.status = "export unavailable"
		return
	}
	path, err := s.exporter.Export(ctx, f, s.catalog, s.progress, s.Stats())
	if err != nil {
		s.status = "export failed: " + err.Error()
		s.logger.Error("export", "format", string(f), "err", err)
		return
	}
	s.status = "exported " + path
	s.logger.Info("export", "format", string(f), "path", path)
}
