package wm

import (
	"context"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/xsoder/oxwm/internal/config"
)

// blockState is one status block's runtime bookkeeping: its last rendered
// string and when it's next due to refresh.
type blockState struct {
	cfg      config.BlockConfig
	rendered string
	nextDue  time.Time

	pending   *exec.Cmd
	pendingOut chan string
	pendingSince time.Time
}

const shellBlockTimeout = 5 * time.Second

// ensureBlockState lazily creates the per-monitor block runtime state the
// first time the scheduler runs, mirroring the per-monitor bar ownership
// (every monitor renders the same configured blocks independently).
func (wm *WM) ensureBlockState(m *Monitor) []*blockState {
	if m.bar == nil {
		return nil
	}
	if m.bar.blocks == nil {
		for _, bc := range wm.cfg.Blocks {
			m.bar.blocks = append(m.bar.blocks, &blockState{cfg: bc})
		}
	}
	return m.bar.blocks
}

// nextBlockDeadline returns the nearest next-due timestamp across every
// monitor's blocks, used by the event loop to size its select timeout.
func (wm *WM) nextBlockDeadline() time.Time {
	var nearest time.Time
	for _, m := range wm.monitors {
		for _, b := range wm.ensureBlockState(m) {
			if nearest.IsZero() || b.nextDue.Before(nearest) {
				nearest = b.nextDue
			}
		}
	}
	return nearest
}

// runDueBlocks refreshes every block whose deadline has passed and reports
// which monitors' rendered status actually changed, so the caller redraws
// only the bars that need it.
func (wm *WM) runDueBlocks() map[*Monitor]bool {
	changed := map[*Monitor]bool{}
	now := time.Now()
	for _, m := range wm.monitors {
		for _, b := range wm.ensureBlockState(m) {
			if b.pending != nil {
				wm.pollShellBlock(b)
				continue
			}
			if now.Before(b.nextDue) {
				continue
			}
			before := b.rendered
			wm.refreshBlock(b)
			if b.rendered != before {
				changed[m] = true
			}
		}
	}
	return changed
}

func (wm *WM) refreshBlock(b *blockState) {
	switch b.cfg.Source {
	case config.BlockStatic:
		b.rendered = renderFormat(b.cfg.Format, map[string]string{})
		b.nextDue = time.Now().Add(maxDuration(b.cfg.Interval, time.Hour))
	case config.BlockRAM:
		used, total := readMeminfo()
		b.rendered = renderFormat(b.cfg.Format, map[string]string{
			"used": strconv.FormatUint(used, 10), "total": strconv.FormatUint(total, 10),
		})
		b.nextDue = time.Now().Add(b.cfg.Interval)
	case config.BlockDateTime:
		b.rendered = time.Now().Format(strftimeToGo(b.cfg.DateTimeFormat))
		b.nextDue = time.Now().Add(b.cfg.Interval)
	case config.BlockBattery:
		b.rendered = readBattery(b.cfg)
		b.nextDue = time.Now().Add(b.cfg.Interval)
	case config.BlockShell:
		wm.startShellBlock(b)
		// nextDue is set once the child exits, in pollShellBlock.
	}
}

func renderFormat(format string, fields map[string]string) string {
	out := format
	for k, v := range fields {
		out = strings.ReplaceAll(out, "{"+k+"}", v)
	}
	if !strings.Contains(format, "{") {
		return format
	}
	return out
}

// strftimeToGo translates the handful of strftime directives status blocks
// commonly use into Go's reference-time layout; unrecognized directives
// pass through unchanged rather than erroring.
func strftimeToGo(f string) string {
	repl := strings.NewReplacer(
		"%Y", "2006", "%m", "01", "%d", "02",
		"%H", "15", "%M", "04", "%S", "05",
		"%A", "Monday", "%B", "January", "%p", "PM",
	)
	return repl.Replace(f)
}

func readMeminfo() (used, total uint64) {
	data, err := os.ReadFile("/proc/meminfo")
	if err != nil {
		return 0, 0
	}
	var memTotal, memAvailable uint64
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		v, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			continue
		}
		switch fields[0] {
		case "MemTotal:":
			memTotal = v
		case "MemAvailable:":
			memAvailable = v
		}
	}
	if memTotal == 0 {
		return 0, 0
	}
	return (memTotal - memAvailable) / 1024, memTotal / 1024
}

func readBattery(cfg config.BlockConfig) string {
	const base = "/sys/class/power_supply/BAT0/"
	capacity, err := os.ReadFile(base + "capacity")
	if err != nil {
		return ""
	}
	status, _ := os.ReadFile(base + "status")
	pct := strings.TrimSpace(string(capacity))

	idx := 1 // discharging
	switch strings.TrimSpace(string(status)) {
	case "Charging":
		idx = 0
	case "Full":
		idx = 2
	}
	if cfg.BatteryFormats[idx] != "" {
		return renderFormat(cfg.BatteryFormats[idx], map[string]string{"": pct})
	}
	return renderFormat(cfg.Format, map[string]string{"": pct})
}

// startShellBlock forks the configured command and captures its stdout
// asynchronously, so a slow command never blocks the event loop.
func (wm *WM) startShellBlock(b *blockState) {
	ctx, cancel := context.WithTimeout(context.Background(), shellBlockTimeout)
	cmd := exec.CommandContext(ctx, "sh", "-c", b.cfg.ShellCommand)
	out := make(chan string, 1)
	b.pending = cmd
	b.pendingOut = out
	b.pendingSince = time.Now()
	go func() {
		defer cancel()
		data, err := cmd.Output()
		if err != nil {
			out <- ""
			return
		}
		out <- strings.TrimSpace(string(data))
	}()
}

// pollShellBlock is called once per event-loop iteration to pick up a
// finished shell block's output without blocking the loop.
func (wm *WM) pollShellBlock(b *blockState) {
	select {
	case s := <-b.pendingOut:
		b.pending = nil
		if s != "" {
			b.rendered = renderFormat(b.cfg.Format, map[string]string{"": s})
		} else if time.Since(b.pendingSince) >= shellBlockTimeout {
			log.WithField("component", "bar").Warnf("shell block timed out: %s", b.cfg.ShellCommand)
		}
		b.nextDue = time.Now().Add(b.cfg.Interval)
	default:
		if time.Since(b.pendingSince) >= shellBlockTimeout {
			b.pending = nil
			b.nextDue = time.Now().Add(b.cfg.Interval)
		}
	}
}

// statusString joins every non-empty block's last-rendered text, left to
// right in config order, for the bar's right-aligned status region.
func (wm *WM) statusString(m *Monitor) string {
	blocks := wm.ensureBlockState(m)
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b.rendered != "" {
			parts = append(parts, b.rendered)
		}
	}
	return strings.Join(parts, "  ")
}

func maxDuration(a, b time.Duration) time.Duration {
	if a > b {
		return a
	}
	return b
}
