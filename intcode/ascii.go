package intcode

import "strings"

// AddString queues every byte of s as an input value. Programs that read
// ASCII commands usually expect a trailing newline, which the caller must
// include.
func (m *Machine) AddString(s string) {
	for i := 0; i < len(s); i++ {
		m.AddInput(int64(s[i]))
	}
}

// ReadString drains the output queue. Values in the ASCII range are
// returned as text, all others are returned in order as extra.
func (m *Machine) ReadString() (text string, extra []int64) {
	var b strings.Builder
	for _, v := range m.Outputs() {
		if v >= 0 && v < 128 {
			b.WriteByte(byte(v))
		} else {
			extra = append(extra, v)
		}
	}
	return b.String(), extra
}
