package consoles

import (
	"fmt"
	"strings"
	"sync"
)

type Message struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// MemoryConsole keeps every message, so callers can hand notices back to a client.
type MemoryConsole struct {
	mutex    sync.Mutex
	prefixes []string
	messages []Message
}

func NewMemoryConsole() *MemoryConsole {
	return &MemoryConsole{}
}

func (m *MemoryConsole) Printf(format string, a ...any) {
	m.add(LevelInfo, format, a...)
}

func (m *MemoryConsole) Warnf(format string, a ...any) {
	m.add(LevelWarning, format, a...)
}

func (m *MemoryConsole) Errorf(format string, a ...any) {
	m.add(LevelError, format, a...)
}

func (m *MemoryConsole) add(level Level, format string, a ...any) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	text := strings.Join(m.prefixes, "") + fmt.Sprintf(format, a...)
	m.messages = append(m.messages, Message{Level: level, Text: strings.TrimRight(text, "\n")})
}

func (m *MemoryConsole) PushPrefix(format string, a ...any) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.prefixes = append(m.prefixes, fmt.Sprintf(format, a...))
}

func (m *MemoryConsole) PopPrefix() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if len(m.prefixes) > 0 {
		m.prefixes = m.prefixes[:len(m.prefixes)-1]
	}
}

func (m *MemoryConsole) Prefix() string {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return strings.Join(m.prefixes, "")
}

func (m *MemoryConsole) Messages() []Message {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	result := make([]Message, len(m.messages))
	copy(result, m.messages)
	return result
}

// Notices returns warnings and errors only.
func (m *MemoryConsole) Notices() []Message {
	var result []Message
	for _, msg := range m.Messages() {
		if msg.Level != LevelInfo {
			result = append(result, msg)
		}
	}
	return result
}
