package discovery

import "netinventory/internal/remote"

// ListDevicesCommand prints one "<device>: <mac>" line per entry under
// /sys/class/net.
const ListDevicesCommand = `find /sys/class/net/ -type l -printf "%P: " -execdir cat {}/address \;`

// ShowIPv4Command returns the command printing the IPv4 configuration of dev.
func ShowIPv4Command(dev string) string {
	return "ip -4 addr show " + remote.ShellQuote(dev)
}
