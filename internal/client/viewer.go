package client

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"airquality_dashboard/internal/airquality"
	"airquality_dashboard/internal/logger"
	"airquality_dashboard/internal/models"

	"github.com/charmbracelet/lipgloss"
)

// Poll intervals used by the browser viewer.
const (
	DefaultPollInterval   = 2 * time.Second
	DefaultStatusInterval = 5 * time.Second
)

// View is what one refresh shows.
type View struct {
	Online     bool
	Scope      models.Scope
	Reading    models.Reading
	Assessment models.Assessment
	Devices    models.DeviceState
	Err        error
}

// Viewer polls the store and prints a line block per refresh plus
// ONLINE/OFFLINE transitions. A failed call only flips the status; the
// next tick is the retry.
type Viewer struct {
	client *Client
	scope  models.Scope
	out    io.Writer
	log    *logger.Logger
	online *bool
}

// NewViewer shows scope, or the store's selected room when scope is empty.
func NewViewer(c *Client, scope models.Scope, out io.Writer, log *logger.Logger) *Viewer {
	return &Viewer{client: c, scope: scope, out: out, log: log}
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Faint(true)
	onStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88")).Bold(true)
	offStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff006e")).Bold(true)

	labelStyles = map[models.Label]lipgloss.Style{
		models.LabelExcellent: lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88")),
		models.LabelModerate:  lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd700")),
		models.LabelPoor:      lipgloss.NewStyle().Foreground(lipgloss.Color("#ff006e")),
	}
)

// Refresh fetches the snapshot, scores the shown scope and prints it.
func (v *Viewer) Refresh(ctx context.Context) View {
	snap, err := v.client.Fetch(ctx)
	if err != nil {
		v.setOnline(false, err)
		return View{Err: err}
	}
	v.setOnline(true, nil)

	scope := v.scope
	if scope == "" {
		scope = snap.CurrentRoom
	}
	if scope == "" {
		scope = models.ScopeAll
	}
	r, err := snap.Aggregate().ReadingFor(scope)
	if err != nil {
		fmt.Fprintln(v.out, offStyle.Render("ERROR")+" "+err.Error())
		return View{Online: true, Scope: scope, Err: err}
	}

	view := View{
		Online:     true,
		Scope:      scope,
		Reading:    r,
		Assessment: airquality.Assess(scope, r, snap.Timestamp),
		Devices:    snap.Devices,
	}
	fmt.Fprint(v.out, Render(view))
	return view
}

// CheckStatus pings /api/status and reports a transition if any.
func (v *Viewer) CheckStatus(ctx context.Context) bool {
	_, err := v.client.Status(ctx)
	v.setOnline(err == nil, err)
	return err == nil
}

// Run refreshes every poll and checks status every statusEvery until ctx
// is canceled.
func (v *Viewer) Run(ctx context.Context, poll, statusEvery time.Duration) {
	refresh := time.NewTicker(poll)
	status := time.NewTicker(statusEvery)
	defer func() {
		refresh.Stop()
		status.Stop()
	}()

	v.Refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-refresh.C:
			v.Refresh(ctx)
		case <-status.C:
			v.CheckStatus(ctx)
		}
	}
}

func (v *Viewer) setOnline(online bool, err error) {
	if v.online != nil && *v.online == online {
		return
	}
	v.online = &online
	if online {
		fmt.Fprintln(v.out, onStyle.Render("SYSTEM ONLINE"))
		return
	}
	fmt.Fprintln(v.out, offStyle.Render("SYSTEM OFFLINE"))
	if v.log != nil {
		v.log.Warnw("store_unreachable", "err", err)
	}
}

// Render formats one view as plain lines; styling is dropped when the
// output is not a terminal.
func Render(view View) string {
	var b strings.Builder
	label := labelStyles[view.Assessment.Label].Render(string(view.Assessment.Label))
	fmt.Fprintf(&b, "%s  score %d/100  %s  %s\n",
		titleStyle.Render(strings.ToUpper(string(view.Scope))),
		view.Assessment.Score, label,
		dimStyle.Render(view.Assessment.Timestamp.Format(time.TimeOnly)))

	r := view.Reading
	fmt.Fprintf(&b, "  pm25 %d µg/m³  co2 %d ppm  voc %d ppb  humidity %d%%  temp %.1f°C\n",
		r.PM25, r.CO2, r.VOC, r.Humidity, r.Temp)

	d := view.Devices
	fan := "OFF"
	if d.IntakeFan.Active {
		fan = fmt.Sprintf("ON %d%%", d.IntakeFan.Speed)
	}
	parts := []string{
		"intakeFan " + fan,
		"hepaFilter " + onOff(d.HepaFilter.Active, "ACTIVE", "IDLE"),
		"airPurifier " + onOff(d.AirPurifier.Active, "ON", "OFF"),
		"window " + onOff(d.WindowServo.Active, "OPEN", "CLOSED"),
	}
	sort.Strings(parts)
	fmt.Fprintf(&b, "  %s\n", strings.Join(parts, "  "))
	return b.String()
}

func onOff(active bool, on, off string) string {
	if active {
		return on
	}
	return off
}
