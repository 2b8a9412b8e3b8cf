package log

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
)

// InitLogger sets up Apex with a text handler and a log level from the
// RECIPES_LOG env variable. Unknown levels fall back to INFO.
func InitLogger() {
	log.SetHandler(NewHandler(os.Stdout))
	log.SetLevel(levelFromEnv(os.Getenv("RECIPES_LOG")))
}

func levelFromEnv(v string) log.Level {
	if v == "" {
		return log.InfoLevel
	}
	level, err := log.ParseLevel(strings.ToLower(v))
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Handler formats entries as a single line with sorted key=value fields.
type Handler struct {
	mu  sync.Mutex
	out io.Writer
	now func() time.Time
}

// NewHandler returns a Handler writing to out.
func NewHandler(out io.Writer) *Handler {
	return &Handler{out: out, now: time.Now}
}

// HandleLog implements the log.Handler interface
func (h *Handler) HandleLog(e *log.Entry) error {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %-5s %s", h.now().Format("2006-01-02 15:04:05"), strings.ToUpper(e.Level.String()), e.Message)
	for _, name := range names {
		fmt.Fprintf(&sb, " %s=%v", name, e.Fields[name])
	}
	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, sb.String())
	return err
}
