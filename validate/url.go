package validate

import (
	"fmt"
	"net"
	"net/url"

	"github.com/mediaforge/mediaforge"
)

// lookupIP is swapped out in tests to avoid real DNS.
var lookupIP = net.LookupIP

// CheckPublicURL rejects URLs that could be used to reach internal network
// resources. The scheme must be http or https and every address the host
// resolves to must be public: loopback, private, link-local, unspecified, and
// multicast addresses all fail with InvalidArgument.
func CheckPublicURL(rawURL string) error {
	parsed, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return mediaforge.NewArgumentError("image_url", "is not a valid URL")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return mediaforge.NewArgumentError("image_url", fmt.Sprintf("scheme %q is not allowed", parsed.Scheme))
	}

	host := parsed.Hostname()
	if host == "" {
		return mediaforge.NewArgumentError("image_url", "has no host")
	}

	var ips []net.IP
	if ip := net.ParseIP(host); ip != nil {
		ips = []net.IP{ip}
	} else {
		resolved, err := lookupIP(host)
		if err != nil {
			return mediaforge.NewArgumentError("image_url", fmt.Sprintf("host %q did not resolve", host))
		}
		ips = resolved
	}
	if len(ips) == 0 {
		return mediaforge.NewArgumentError("image_url", fmt.Sprintf("host %q did not resolve", host))
	}

	// Every resolved address must be public; a single internal A record is
	// enough to reject the whole host.
	for _, ip := range ips {
		if !isPublicIP(ip) {
			return mediaforge.NewArgumentError("image_url", fmt.Sprintf("resolves to restricted address %s", ip))
		}
	}

	return nil
}

func isPublicIP(ip net.IP) bool {
	switch {
	case ip.IsLoopback(),
		ip.IsPrivate(),
		ip.IsLinkLocalUnicast(),
		ip.IsLinkLocalMulticast(),
		ip.IsUnspecified(),
		ip.IsMulticast():
		return false
	}
	return true
}
