// Package logger collects diagnostics produced while walking and chunking a
// source tree. It mirrors the teacher's stderr-writing helpers but keeps the
// messages in memory so a caller (the CLI, a test, the pkg/api Build result)
// can inspect them after a run completes.
package logger

import "fmt"

type Kind uint8

const (
	Info Kind = iota
	Warning
	Error
	Debug
)

func (k Kind) String() string {
	switch k {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Debug:
		return "debug"
	default:
		return "unknown"
	}
}

// Location names the file (and, when known, the referrer) a diagnostic is
// about. Line/Col are left zero when the extractor doesn't track positions.
type Location struct {
	File     string
	Referrer string
	Line     int
	Col      int
}

type MsgData struct {
	Text     string
	Location *Location
}

type Msg struct {
	Kind Kind
	Data MsgData
}

func (m Msg) String() string {
	if m.Data.Location != nil && m.Data.Location.File != "" {
		return fmt.Sprintf("%s: %s: %s", m.Kind, m.Data.Location.File, m.Data.Text)
	}
	return fmt.Sprintf("%s: %s", m.Kind, m.Data.Text)
}

// Log accumulates Msg values across a build. It is not safe for concurrent
// writes from multiple goroutines; callers that parallelize file walking
// must funnel diagnostics back through the owning task.
type Log struct {
	msgs []Msg
}

func NewLog() *Log {
	return &Log{}
}

func (l *Log) add(kind Kind, loc *Location, format string, args ...any) {
	l.msgs = append(l.msgs, Msg{
		Kind: kind,
		Data: MsgData{
			Text:     fmt.Sprintf(format, args...),
			Location: loc,
		},
	})
}

func (l *Log) Infof(format string, args ...any) {
	l.add(Info, nil, format, args...)
}

func (l *Log) Debugf(format string, args ...any) {
	l.add(Debug, nil, format, args...)
}

func (l *Log) Warnf(loc *Location, format string, args ...any) {
	l.add(Warning, loc, format, args...)
}

func (l *Log) Errorf(loc *Location, format string, args ...any) {
	l.add(Error, loc, format, args...)
}

func (l *Log) Msgs() []Msg {
	return l.msgs
}

func (l *Log) HasErrors() bool {
	for _, m := range l.msgs {
		if m.Kind == Error {
			return true
		}
	}
	return false
}
