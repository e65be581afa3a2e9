//go:build !linux

package platform

// Notify is a no-op outside Linux desktops.
func Notify(title, body string, opts Options) error {
	return nil
}
