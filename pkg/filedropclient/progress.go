package filedropclient

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

const (
	progressBarWidth     = 32
	progressRenderPeriod = 120 * time.Millisecond
)

// progressBar рисует ASCII-индикатор выполнения. Нулевой указатель означает выключенный индикатор.
type progressBar struct {
	out        io.Writer
	prefix     string
	total      int64
	current    int64
	lastRender time.Time
	finished   bool
	mu         sync.Mutex
}

func (h *httpClient) newBar(prefix string, total int64) *progressBar {
	if h.progress == nil {
		return nil
	}
	return &progressBar{out: h.progress, prefix: prefix, total: total}
}

// reader оборачивает r так, чтобы каждый прочитанный байт двигал индикатор.
func (p *progressBar) reader(r io.Reader) io.Reader {
	if p == nil {
		return r
	}
	return io.TeeReader(r, p)
}

func (p *progressBar) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.finished {
		return len(b), nil
	}
	p.current += int64(len(b))
	if now := time.Now(); now.Sub(p.lastRender) >= progressRenderPeriod {
		p.lastRender = now
		fmt.Fprintf(p.out, "\r%s", p.line())
	}
	return len(b), nil
}

func (p *progressBar) Finish() {
	p.complete(" ✓")
}

func (p *progressBar) Fail(err error) {
	p.complete(fmt.Sprintf(" ✗ %v", err))
}

func (p *progressBar) complete(suffix string) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.finished {
		return
	}
	p.finished = true
	fmt.Fprintf(p.out, "\r%s%s\n", p.line(), suffix)
}

func (p *progressBar) line() string {
	if p.total <= 0 {
		return fmt.Sprintf("%s %s transferred", p.prefix, humanBytes(p.current))
	}

	ratio := min(float64(p.current)/float64(p.total), 1)
	filled := min(int(ratio*progressBarWidth+0.5), progressBarWidth)
	return fmt.Sprintf("%s [%s%s] %3d%% %s/%s",
		p.prefix,
		strings.Repeat("=", filled),
		strings.Repeat(" ", progressBarWidth-filled),
		int(ratio*100+0.5),
		humanBytes(p.current),
		humanBytes(p.total),
	)
}

func humanBytes(v int64) string {
	units := []string{"B", "KB", "MB", "GB", "TB", "PB"}
	value := float64(v)
	unit := 0
	for value >= 1024 && unit < len(units)-1 {
		value /= 1024
		unit++
	}
	if unit == 0 {
		return fmt.Sprintf("%d %s", v, units[unit])
	}
	return fmt.Sprintf("%.1f %s", value, units[unit])
}
