// Package pcapreplay feeds recorded transport frames into event bindings.
// Each UDP datagram in the capture is routed by destination port to the
// binding registered for it; the datagram payload is the raw event frame.
package pcapreplay

import (
	"fmt"
	"io"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"

	"github.com/adaptivemw/someipbind/internal/event"
	"github.com/adaptivemw/someipbind/internal/log"
)

// Source replays one capture file into registered bindings.
type Source struct {
	path     string
	bindings map[uint16]*event.Binding
}

// New creates a replay source for the capture at path.
func New(path string) *Source {
	return &Source{
		path:     path,
		bindings: make(map[uint16]*event.Binding),
	}
}

// Bind routes datagrams with the given destination port to b.
func (s *Source) Bind(port uint16, b *event.Binding) {
	s.bindings[port] = b
}

// Run replays the whole file and returns the number of frames delivered to
// bindings. Non-UDP packets and unmapped ports are skipped.
func (s *Source) Run() (int, error) {
	handle, err := pcap.OpenOffline(s.path)
	if err != nil {
		return 0, fmt.Errorf("failed to open pcap file %s: %w", s.path, err)
	}
	defer handle.Close()

	delivered := 0
	for {
		data, ci, err := handle.ReadPacketData()
		if err == io.EOF {
			break
		}
		if err != nil {
			return delivered, fmt.Errorf("failed to read packet: %w", err)
		}

		pkt := gopacket.NewPacket(data, handle.LinkType(), gopacket.NoCopy)
		udpLayer := pkt.Layer(layers.LayerTypeUDP)
		if udpLayer == nil {
			continue
		}
		udp := udpLayer.(*layers.UDP)
		binding, ok := s.bindings[uint16(udp.DstPort)]
		if !ok {
			continue
		}
		binding.HandleFrame(udp.Payload, ci.Timestamp)
		delivered++
	}
	log.GetLogger().WithField("frames", delivered).Info("pcap replay finished")
	return delivered, nil
}
