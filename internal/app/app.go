package app

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nhle/fleet-dispatch/internal/keys"
	"github.com/nhle/fleet-dispatch/internal/metrics"
	"github.com/nhle/fleet-dispatch/internal/model"
	"github.com/nhle/fleet-dispatch/internal/shadow"
	"github.com/nhle/fleet-dispatch/internal/status"
	"github.com/nhle/fleet-dispatch/internal/store"
	appsync "github.com/nhle/fleet-dispatch/internal/sync"
	"github.com/nhle/fleet-dispatch/internal/ui"
	"github.com/nhle/fleet-dispatch/internal/ui/dashboard"
	"github.com/nhle/fleet-dispatch/internal/ui/detail"
	"github.com/nhle/fleet-dispatch/internal/ui/diagnostics"
	"github.com/nhle/fleet-dispatch/internal/ui/driverlist"
	helpview "github.com/nhle/fleet-dispatch/internal/ui/help"
	"github.com/nhle/fleet-dispatch/internal/ui/loadform"
	"github.com/nhle/fleet-dispatch/internal/ui/loadlist"
	"github.com/nhle/fleet-dispatch/internal/ui/statuspicker"
)

// Backend is the slice of the remote client the UI needs for writes
// and per-load reads. The poller owns the bulk reads.
type Backend interface {
	UpdateLoadStatus(ctx context.Context, loadID, newStatus string) error
	UpdateLoad(ctx context.Context, loadID string, edit model.LoadEdit) error
	MigrateLegacyActive(ctx context.Context) (int, error)
	ListNotes(ctx context.Context, loadID string) ([]model.Note, error)
	AddNote(ctx context.Context, loadID, text, noteType string) error
	DeliveriesForLoad(ctx context.Context, loadID string) ([]model.Stop, error)
}

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewLoads ViewState = iota
	ViewDetail
	ViewDashboard
	ViewDrivers
	ViewDiagnostics
	ViewHelp
	ViewStatusPicker
	ViewEditForm
)

// pendingChange records the rollback data for an in-flight optimistic
// status write.
type pendingChange struct {
	previous string
	seq      uint64
}

// cachedSnapshotMsg carries the warm-start cache contents.
type cachedSnapshotMsg struct {
	snap store.Snapshot
}

// unreadCountMsg carries the number of unread notifications to the UI.
type unreadCountMsg struct {
	count int
}

// Model is the root Bubble Tea model that manages view routing, the
// shadow load list, and the optimistic write lifecycle.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	loads        *shadow.List
	backend      Backend
	store        store.Store
	poller       *appsync.Poller
	keys         *keys.KeyMap
	log          *zap.Logger

	loadList    loadlist.Model
	detailView  detail.Model
	dashView    dashboard.Model
	driverView  driverlist.Model
	diagView    diagnostics.Model
	helpView    helpview.Model
	picker      statuspicker.Model
	editForm    loadform.Model
	toast       ui.Toast
	pending     map[string]pendingChange
	ready       bool
	unreadCount int
	authError   string
}

// New creates the root application model.
func New(b Backend, s store.Store, p *appsync.Poller, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	k := keys.DefaultKeyMap()
	loads := shadow.NewList()

	return Model{
		currentView: ViewLoads,
		loads:       loads,
		backend:     b,
		store:       s,
		poller:      p,
		keys:        k,
		log:         log,
		loadList:    loadlist.New(loads, k, 80, 24),
		detailView:  detail.New(k, 80, 24),
		dashView:    dashboard.New(80, 24),
		driverView:  driverlist.New(k, 80, 24),
		diagView:    diagnostics.New(loads, k, 80, 24),
		helpView:    helpview.New(k, 80, 24),
		editForm:    loadform.New(80, 24),
		pending:     make(map[string]pendingChange),
	}
}

// Init warm-starts from the cache, then starts the background poller.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadCachedSnapshot(),
		m.poller.Start(),
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
		m.loadList.SetSize(w, h)
		m.detailView.SetSize(w, h)
		m.dashView.SetSize(w, h)
		m.driverView.SetSize(w, h)
		m.diagView.SetSize(w, h)
		m.helpView.SetSize(w, h)
		m.editForm.SetSize(w, h)
		// Forward to the active view so huh forms can size themselves.
		return m.updateActiveView(msg)

	case cachedSnapshotMsg:
		// Only warm-start while nothing fresher has arrived.
		if len(m.loads.Loads()) == 0 && len(msg.snap.Loads) > 0 {
			m.loads.Replace(msg.snap.Loads)
			m.poller.SeedKnownLoads(msg.snap.Loads)
			m.loadList.Reload()
			m.diagView.Reload()
			m.driverView.SetDrivers(msg.snap.Drivers)
			// The cache holds no stop data, so pickup and delivery
			// counts stay at zero until the first refresh lands.
			m.dashView.SetData(
				metrics.Compute(msg.snap.Loads, msg.snap.Drivers, nil, nil, time.Now()),
				msg.snap.Activity,
			)
		}
		return m, nil

	case appsync.RefreshResultMsg:
		return m.handleRefreshResult(msg)

	case unreadCountMsg:
		m.unreadCount = msg.count
		return m, nil

	case ui.ToastExpiredMsg:
		if m.toast.ShownAt.Equal(msg.ShownAt) {
			m.toast = ui.Toast{}
		}
		return m, nil

	case loadlist.SelectedLoadMsg:
		return m.openDetail(msg.LoadID)

	case loadlist.ChangeStatusMsg:
		return m.openStatusPicker(msg.LoadID)

	case loadlist.EditLoadMsg:
		return m.openEditForm(msg.LoadID)

	case detail.ChangeStatusMsg:
		return m.openStatusPicker(msg.LoadID)

	case detail.EditMsg:
		return m.openEditForm(msg.LoadID)

	case detail.BackMsg:
		m.currentView = ViewLoads
		return m, nil

	case detail.NotesLoadedMsg:
		var cmd tea.Cmd
		m.detailView, cmd = m.detailView.Update(msg)
		return m, cmd

	case detail.AddNoteMsg:
		return m, m.addNote(msg.LoadID, msg.Text)

	case noteAddedMsg:
		if msg.err != nil {
			return m.showToast(ui.ToastError, "Adding note failed: "+msg.err.Error())
		}
		// Reload the note list so the new note shows immediately.
		return m, m.fetchLoadDetail(msg.loadID)

	case statuspicker.ChangeRequestedMsg:
		return m.beginStatusChange(msg.LoadID, msg.NewStatus)

	case statuspicker.ClosedMsg:
		m.currentView = m.previousView
		return m, nil

	case statuspicker.ResultMsg:
		return m.resolveStatusChange(msg)

	case loadform.SubmittedMsg:
		m.currentView = m.previousView
		return m, m.updateLoad(msg.LoadID, msg.Edit)

	case loadform.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case loadUpdatedMsg:
		if msg.err != nil {
			return m.showToast(ui.ToastError, "Saving load failed: "+msg.err.Error())
		}
		next, _ := m.showToast(ui.ToastSuccess, "Load "+msg.loadID+" saved")
		nm := next.(Model)
		return nm, tea.Batch(nm.toast.Expire(), nm.poller.Refresh())

	case diagnostics.MigrateRequestedMsg:
		return m, m.runMigration()

	case diagnostics.MigrationDoneMsg:
		var cmd tea.Cmd
		m.diagView, cmd = m.diagView.Update(msg)
		return m, tea.Batch(cmd, m.poller.Refresh())

	case tea.KeyMsg:
		if handled, nm, cmd := m.handleGlobalKeys(msg); handled {
			return nm, cmd
		}
	}

	return m.updateActiveView(msg)
}

// handleGlobalKeys processes keys that work in any non-modal view.
func (m Model) handleGlobalKeys(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	// Modal views and focused text inputs own their input completely.
	inputFocused := m.currentView == ViewStatusPicker ||
		m.currentView == ViewEditForm ||
		(m.currentView == ViewLoads && m.loadList.Searching()) ||
		(m.currentView == ViewDetail && m.detailView.Composing())
	if inputFocused {
		if msg.String() == "ctrl+c" {
			m.poller.Stop()
			return true, m, tea.Quit
		}
		return false, m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		m.poller.Stop()
		return true, m, tea.Quit

	case "q":
		if m.currentView == ViewLoads {
			m.poller.Stop()
			return true, m, tea.Quit
		}

	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return true, m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return true, m, nil

	case "r":
		return true, m, m.poller.Refresh()

	case "1":
		m.currentView = ViewLoads
		return true, m, nil

	case "2":
		m.currentView = ViewDashboard
		return true, m, nil

	case "3":
		m.currentView = ViewDrivers
		return true, m, nil

	case "4":
		m.currentView = ViewDiagnostics
		m.diagView.Reload()
		return true, m, nil
	}

	return false, m, nil
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewLoads:
		m.loadList, cmd = m.loadList.Update(msg)
	case ViewDetail:
		m.detailView, cmd = m.detailView.Update(msg)
	case ViewDashboard:
		m.dashView, cmd = m.dashView.Update(msg)
	case ViewDrivers:
		m.driverView, cmd = m.driverView.Update(msg)
	case ViewDiagnostics:
		m.diagView, cmd = m.diagView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewStatusPicker:
		m.picker, cmd = m.picker.Update(msg)
	case ViewEditForm:
		m.editForm, cmd = m.editForm.Update(msg)
	}

	return m, cmd
}

// handleRefreshResult folds a completed background refresh into the UI.
func (m Model) handleRefreshResult(msg appsync.RefreshResultMsg) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.poller.WaitForNextResult()}

	if msg.AuthError != nil {
		m.authError = msg.AuthError.Message
	} else if msg.Error != nil {
		// The cached shadow stays on screen; the toast sticks around
		// until another one replaces it.
		m.toast = ui.NewToast(ui.ToastError, "Refresh failed: "+msg.Error.Error())
	} else {
		m.authError = ""
	}

	if msg.Snapshot != nil {
		snap := msg.Snapshot
		m.loads.Replace(snap.Loads)
		m.loadList.Reload()
		m.diagView.Reload()
		m.dashView.SetData(snap.Metrics, snap.Activity)
		m.driverView.SetDrivers(snap.Drivers)

		// Keep the open detail view in step with the refreshed data.
		if id := m.detailView.LoadID(); id != "" {
			if ld, ok := m.loads.Get(id); ok {
				m.detailView.RefreshLoad(ld)
			}
		}

		cmds = append(cmds, m.fetchUnreadCount())

		if msg.NewLoadCount > 0 {
			next, _ := m.showToast(ui.ToastInfo,
				fmt.Sprintf("%d new load(s) booked", msg.NewLoadCount))
			nm := next.(Model)
			cmds = append(cmds, nm.toast.Expire())
			return nm, tea.Batch(cmds...)
		}
	}

	return m, tea.Batch(cmds...)
}

// openDetail switches to the detail view for a load and fetches its
// notes and stops.
func (m Model) openDetail(loadID string) (tea.Model, tea.Cmd) {
	ld, ok := m.loads.Get(loadID)
	if !ok {
		return m, nil
	}
	m.previousView = m.currentView
	m.currentView = ViewDetail
	m.detailView.SetLoad(ld)
	return m, m.fetchLoadDetail(loadID)
}

// openStatusPicker opens the modal status selector for a load.
func (m Model) openStatusPicker(loadID string) (tea.Model, tea.Cmd) {
	ld, ok := m.loads.Get(loadID)
	if !ok {
		return m, nil
	}
	m.previousView = m.currentView
	m.currentView = ViewStatusPicker
	m.picker = statuspicker.New(ld.LoadID, ld.Status, m.keys)
	return m, nil
}

// openEditForm opens the modal edit form for a load.
func (m Model) openEditForm(loadID string) (tea.Model, tea.Cmd) {
	ld, ok := m.loads.Get(loadID)
	if !ok {
		return m, nil
	}
	m.previousView = m.currentView
	m.currentView = ViewEditForm
	return m, m.editForm.Start(ld)
}

// beginStatusChange applies the edit to the shadow list immediately and
// kicks off the remote write.
func (m Model) beginStatusChange(loadID, newStatus string) (tea.Model, tea.Cmd) {
	m.currentView = m.previousView

	previous, seq, ok := m.loads.BeginStatusChange(loadID, newStatus)
	if !ok {
		return m, nil
	}
	m.pending[loadID] = pendingChange{previous: previous, seq: seq}

	m.loadList.Reload()
	m.diagView.Reload()
	if ld, found := m.loads.Get(loadID); found {
		m.detailView.RefreshLoad(ld)
	}

	return m, m.writeStatus(loadID, newStatus, previous, seq)
}

// resolveStatusChange commits or rolls back an optimistic status edit
// once the remote write resolves.
func (m Model) resolveStatusChange(msg statuspicker.ResultMsg) (tea.Model, tea.Cmd) {
	pc, tracked := m.pending[msg.LoadID]

	// A resolution whose sequence is no longer the newest belongs to an
	// edit that was superseded mid-flight. It must not touch the display;
	// the newest edit's own resolution settles the load.
	if tracked && pc.seq != msg.Seq {
		if msg.Err != nil {
			// The superseded write never landed, so the remote row still
			// holds that edit's base value. Point the surviving rollback
			// record at it, or a later failure would restore a value the
			// backend never had.
			m.pending[msg.LoadID] = pendingChange{previous: msg.Previous, seq: pc.seq}
			m.log.Warn("superseded status write failed",
				zap.String("load_id", msg.LoadID), zap.Error(msg.Err))
		}
		return m, nil
	}
	delete(m.pending, msg.LoadID)

	if msg.Err != nil {
		if tracked {
			if m.loads.Rollback(msg.LoadID, pc.previous, pc.seq) {
				m.loadList.Reload()
				m.diagView.Reload()
				if ld, ok := m.loads.Get(msg.LoadID); ok {
					m.detailView.RefreshLoad(ld)
				}
			}
		}
		m.log.Warn("status update failed",
			zap.String("load_id", msg.LoadID), zap.Error(msg.Err))
		return m.showToast(ui.ToastError,
			"Updating "+msg.LoadID+" failed: "+msg.Err.Error())
	}

	if status.Normalize(msg.NewStatus) == status.Issues {
		// Issues is an operational alert, keep it on screen.
		return m.showToast(ui.ToastWarn,
			"Load "+msg.LoadID+" flagged with issues")
	}

	next, _ := m.showToast(ui.ToastSuccess,
		"Load "+msg.LoadID+" set to "+status.Label(msg.NewStatus))
	nm := next.(Model)
	return nm, nm.toast.Expire()
}

// showToast replaces the current toast.
func (m Model) showToast(level ui.ToastLevel, message string) (tea.Model, tea.Cmd) {
	m.toast = ui.NewToast(level, message)
	return m, nil
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	headerTitle := "Fleet Dispatch"
	if m.unreadCount > 0 {
		headerTitle = fmt.Sprintf("Fleet Dispatch [%d new]", m.unreadCount)
	}
	header := m.layout.RenderHeader(headerTitle, m.syncStatus())
	content := m.renderContent()

	bottom := m.keyHints()
	if t := m.toast.View(); t != "" {
		bottom = t
	}
	statusBar := m.layout.RenderStatusBar(bottom)

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewLoads:
		return m.loadList.View()
	case ViewDetail:
		return m.detailView.View()
	case ViewDashboard:
		return m.dashView.View()
	case ViewDrivers:
		return m.driverView.View()
	case ViewDiagnostics:
		return m.diagView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewStatusPicker:
		return m.picker.View()
	case ViewEditForm:
		return m.editForm.View()
	default:
		return ""
	}
}

// syncStatus returns a short string describing the refresh state.
func (m Model) syncStatus() string {
	st := m.poller.Status()
	switch st.State {
	case appsync.SyncRunning:
		return "refreshing"
	case appsync.SyncError:
		return "unreachable"
	default:
		if st.LastSync.IsZero() {
			return ""
		}
		return "updated " + st.LastSync.Format("15:04")
	}
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.authError != "" && m.currentView == ViewLoads {
		return m.authError
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewDetail:
		return "esc back | s status | e edit | n note | j/k scroll"
	case ViewStatusPicker:
		return "enter select | esc cancel"
	case ViewEditForm:
		return "enter submit | esc cancel"
	case ViewDrivers:
		return "tab available only | 1 loads | r refresh"
	case ViewDiagnostics:
		return "m migrate | 1 loads | r refresh"
	case ViewDashboard:
		return "1 loads | 3 drivers | r refresh"
	default:
		return "q quit | ? help | / search | tab filter | s status | e edit | enter detail"
	}
}
