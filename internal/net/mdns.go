package net

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/mdns"
)

const serviceType = "_kolam._tcp"

// Advertise announces a sharing host on the local network. Callers shut the
// returned server down when sharing stops.
func Advertise(port int) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}

	service, err := mdns.NewMDNSService(host, serviceType, "", "", port, nil, []string{"KolamBoard"})
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return server, nil
}

// Discover returns the share link of the first host that answers within
// timeout.
func Discover(ctx context.Context, timeout time.Duration) (string, error) {
	return discover(ctx, timeout, mdns.Query)
}

func discover(ctx context.Context, timeout time.Duration, query func(*mdns.QueryParam) error) (string, error) {
	entries := make(chan *mdns.ServiceEntry, 8)
	found := make(chan string, 1)
	drained := make(chan struct{})

	go func() {
		defer close(drained)
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			select {
			case found <- ShareLink(e.AddrV4.String(), e.Port):
			default:
			}
		}
	}()

	params := mdns.DefaultParams(serviceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true

	errc := make(chan error, 1)
	go func() {
		errc <- query(params)
		close(entries)
	}()

	select {
	case link := <-found:
		return link, nil
	case err := <-errc:
		if err != nil {
			return "", fmt.Errorf("mDNS query: %w", err)
		}
		<-drained
		select {
		case link := <-found:
			return link, nil
		default:
			return "", fmt.Errorf("no sharing host found within %s", timeout)
		}
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
