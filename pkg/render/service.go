package render

import "github.com/leshylabs/LinkLog/pkg/event"

// Service names for the ports that show up in home router logs, spelled the
// way /etc/services spells them. A port missing here falls back to its number.
var serviceNames = map[event.Protocol]map[uint16]string{
	event.TCP: {
		20:   "ftp-data",
		21:   "ftp",
		22:   "ssh",
		23:   "telnet",
		25:   "smtp",
		53:   "domain",
		80:   "http",
		110:  "pop3",
		119:  "nntp",
		143:  "imap",
		443:  "https",
		445:  "microsoft-ds",
		465:  "smtps",
		587:  "submission",
		993:  "imaps",
		995:  "pop3s",
		1723: "pptp",
		3306: "mysql",
		3389: "ms-wbt-server",
		5432: "postgresql",
		6379: "redis",
		8080: "http-alt",
	},
	event.UDP: {
		53:   "domain",
		67:   "bootps",
		68:   "bootpc",
		69:   "tftp",
		123:  "ntp",
		137:  "netbios-ns",
		138:  "netbios-dgm",
		161:  "snmp",
		162:  "snmptrap",
		500:  "isakmp",
		514:  "syslog",
		1900: "ssdp",
		4500: "ipsec-nat-t",
		5353: "mdns",
	},
}

// ServiceName returns the well-known service name for a port, if one exists.
func ServiceName(proto event.Protocol, port uint16) (string, bool) {
	name, ok := serviceNames[proto][port]
	return name, ok
}
