package discovery

import (
	"fmt"
	"log/slog"
	"net"
	"os"

	"github.com/hashicorp/mdns"
)

const ServiceType = "_drawboard._tcp"

// Advertiser announces the board server on the local network.
type Advertiser struct {
	server *mdns.Server
}

// NewService describes the server as an mDNS service. An empty instance
// uses the hostname; nil ips are resolved from the hostname.
func NewService(instance string, port int, ips []net.IP) (*mdns.MDNSService, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("get hostname: %w", err)
	}
	if instance == "" {
		instance = host
	}

	info := []string{"drawboard", "ws=/ws/board/{boardId}"}

	service, err := mdns.NewMDNSService(instance, ServiceType, "", host+".", port, ips, info)
	if err != nil {
		return nil, fmt.Errorf("create mdns service: %w", err)
	}
	return service, nil
}

// Advertise starts answering mDNS queries for the server on port.
func Advertise(instance string, port int) (*Advertiser, error) {
	service, err := NewService(instance, port, nil)
	if err != nil {
		return nil, err
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("start mdns server: %w", err)
	}

	slog.Info("mdns advertising", "instance", service.Instance, "service", ServiceType, "port", port)
	return &Advertiser{server: server}, nil
}

func (a *Advertiser) Shutdown() error {
	if a == nil || a.server == nil {
		return nil
	}
	return a.server.Shutdown()
}
