//go:build !linux

package bluetooth

import "tinygo.org/x/bluetooth"

// openAdapter ignores id: only BlueZ exposes more than one adapter.
func openAdapter(id string) *bluetooth.Adapter {
	return bluetooth.DefaultAdapter
}
