package bluetooth

import "tinygo.org/x/bluetooth"

// openAdapter returns the BlueZ adapter with the given id. The default
// adapter is shared so repeated scans reuse its D-Bus connection.
func openAdapter(id string) *bluetooth.Adapter {
	if id == "" || id == "hci0" {
		return bluetooth.DefaultAdapter
	}
	return bluetooth.NewAdapter(id)
}
