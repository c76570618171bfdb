package discovery

import (
	"regexp"
	"strings"
)

// LoopbackDevice is never reported
const LoopbackDevice = "lo"

const inetMarker = "inet"

var dottedQuad = regexp.MustCompile(`(?:[0-9]{1,3}\.){3}[0-9]{1,3}`)

// DeviceEntry is one line of the device listing
type DeviceEntry struct {
	Name string
	MAC  string
}

// ParseDeviceLine splits "<device>: <mac>" at the first colon. The MAC keeps
// its own colons; surrounding whitespace is trimmed from both parts.
func ParseDeviceLine(line string) (DeviceEntry, error) {
	name, mac, ok := strings.Cut(line, ":")
	if !ok {
		return DeviceEntry{}, NewParseError(line, "device line has no ':' separator")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return DeviceEntry{}, NewParseError(line, "device line has an empty device name")
	}
	return DeviceEntry{Name: name, MAC: strings.TrimSpace(mac)}, nil
}

// ParseDeviceList parses the output of ListDevicesCommand in order. Blank
// lines are skipped and CRLF line endings are accepted.
func ParseDeviceList(output string) ([]DeviceEntry, error) {
	var entries []DeviceEntry
	for _, line := range splitLines(output) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entry, err := ParseDeviceLine(line)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ExtractFirstIPv4 returns the first dotted quad on the first line carrying
// an "inet" field. On `ip addr` output that is the address, never the
// broadcast that follows it.
func ExtractFirstIPv4(output string) (string, bool) {
	for _, line := range splitLines(output) {
		if !hasField(line, inetMarker) {
			continue
		}
		quad := dottedQuad.FindString(line)
		return quad, quad != ""
	}
	return "", false
}

func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func hasField(line, field string) bool {
	for _, f := range strings.Fields(line) {
		if f == field {
			return true
		}
	}
	return false
}
