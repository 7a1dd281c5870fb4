package commands

// SetClipboard replaces the clipboard reader and returns a function restoring it.
func SetClipboard(read func() (string, error)) (restore func()) {
	prev := readClipboard
	readClipboard = read
	return func() { readClipboard = prev }
}
