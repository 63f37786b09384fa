package consoles

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

type stdoutConsole struct {
	mutex    sync.Mutex
	out      io.Writer
	err      io.Writer
	prefixes []string
}

func NewStdOutConsole() Console {
	return &stdoutConsole{
		out: os.Stdout,
		err: os.Stderr,
	}
}

func (o *stdoutConsole) Printf(format string, a ...any) {
	o.write(o.out, "", format, a...)
}

func (o *stdoutConsole) Warnf(format string, a ...any) {
	o.write(o.err, "WARN ", format, a...)
}

func (o *stdoutConsole) Errorf(format string, a ...any) {
	o.write(o.err, "ERROR ", format, a...)
}

func (o *stdoutConsole) write(w io.Writer, level string, format string, a ...any) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	builder := strings.Builder{}
	builder.WriteString(o.prefix())
	builder.WriteString(level)
	builder.WriteString(fmt.Sprintf(format, a...))
	_, _ = io.WriteString(w, builder.String())
}

func (o *stdoutConsole) Prefix() string {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	return o.prefix()
}

func (o *stdoutConsole) prefix() string {
	builder := strings.Builder{}
	builder.WriteString("[")
	builder.WriteString(time.Now().Format("15:04:05"))
	builder.WriteString("] ")
	for _, prefix := range o.prefixes {
		builder.WriteString(prefix)
	}
	return builder.String()
}

func (o *stdoutConsole) PushPrefix(format string, a ...any) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.prefixes = append(o.prefixes, fmt.Sprintf(format, a...))
}

func (o *stdoutConsole) PopPrefix() {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if len(o.prefixes) > 0 {
		o.prefixes = o.prefixes[:len(o.prefixes)-1]
	}
}
