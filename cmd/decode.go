package cmd

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/adaptivemw/someipbind/internal/interpreter"
	"github.com/adaptivemw/someipbind/internal/someip"
)

var (
	decodeVariant       string
	decodeE2eHeaderSize int
	decodeLayoutPairs   []string
)

// decodeReport is the YAML rendering of one interpreted frame.
type decodeReport struct {
	FrameLen     int           `yaml:"frame_len"`
	SomeIpHeader *headerReport `yaml:"someip_header,omitempty"`
	PduHeader    *pduReport    `yaml:"pdu_header,omitempty"`
	Payload      *spanReport   `yaml:"payload,omitempty"`
	Protected    *spanReport   `yaml:"e2e_protected,omitempty"`
	CheckEnabled *bool         `yaml:"e2e_check_enabled,omitempty"`
	Errors       []string      `yaml:"errors,omitempty"`
}

type headerReport struct {
	Service          string `yaml:"service"`
	Method           string `yaml:"method"`
	Length           uint32 `yaml:"length"`
	Client           string `yaml:"client"`
	Session          string `yaml:"session"`
	ProtocolVersion  uint8  `yaml:"protocol_version"`
	InterfaceVersion uint8  `yaml:"interface_version"`
	MessageType      string `yaml:"message_type"`
	ReturnCode       string `yaml:"return_code"`
}

type pduReport struct {
	ID     string `yaml:"id"`
	Length uint32 `yaml:"length"`
}

type spanReport struct {
	Offset int    `yaml:"offset"`
	Len    int    `yaml:"len"`
	Hex    string `yaml:"hex"`
}

var decodeCmd = &cobra.Command{
	Use:   "decode <hex-frame>",
	Short: "Interpret a raw event frame against a wire layout",
	Long: `Decode interprets one hex-encoded frame with the given variant and
layout, reporting the payload range, the E2E-protected range and the update
bit, exactly as the sample readers would see them.

Examples:
  someipbind decode --variant someip 013880010000000a...
  someipbind decode --variant signal-e2e -l protected_offset=4 -l protected_length_bits=64 <hex>
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		frame, err := hex.DecodeString(strings.ReplaceAll(args[0], " ", ""))
		if err != nil {
			return fmt.Errorf("invalid hex frame: %w", err)
		}

		layout, err := parseLayoutFlags(decodeLayoutPairs)
		if err != nil {
			return err
		}

		report := buildReport(frame, decodeVariant, layout)
		out, err := yaml.Marshal(report)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(out)
		return err
	},
}

// parseLayoutFlags turns repeated -l key=value flags into a SignalLayout;
// values are decoded weakly so plain decimal strings become ints.
func parseLayoutFlags(pairs []string) (interpreter.SignalLayout, error) {
	raw := make(map[string]interface{}, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok {
			return interpreter.SignalLayout{}, fmt.Errorf("invalid layout flag %q (want key=value)", p)
		}
		raw[k] = v
	}
	var section struct {
		ExtensionSize       int  `mapstructure:"extension_size"`
		PayloadOffset       int  `mapstructure:"payload_offset"`
		ProtectedOffset     int  `mapstructure:"protected_offset"`
		ProtectedLengthBits int  `mapstructure:"protected_length_bits"`
		UpdateBit           *int `mapstructure:"update_bit"`
	}
	if err := mapstructure.WeakDecode(raw, &section); err != nil {
		return interpreter.SignalLayout{}, fmt.Errorf("invalid layout: %w", err)
	}
	return interpreter.SignalLayout{
		ExtensionSize:       section.ExtensionSize,
		PayloadOffset:       section.PayloadOffset,
		ProtectedOffset:     section.ProtectedOffset,
		ProtectedLengthBits: section.ProtectedLengthBits,
		UpdateBit:           section.UpdateBit,
	}, nil
}

func buildReport(frame []byte, variant string, layout interpreter.SignalLayout) *decodeReport {
	report := &decodeReport{FrameLen: len(frame)}

	var plain interpreter.SampleInterpreter
	var protected interpreter.E2eSampleInterpreter

	switch variant {
	case "someip":
		plain = interpreter.SomeIp{}
		report.someIpHeader(frame)
	case "someip-e2e":
		protected = interpreter.NewSomeIpE2e(decodeE2eHeaderSize)
		report.someIpHeader(frame)
	case "signal":
		plain = interpreter.NewSignal(layout.ExtensionSize)
		report.pduHeader(frame)
	case "signal-e2e":
		protected = interpreter.NewSignalE2e(layout)
		report.pduHeader(frame)
	case "signal-e2e-legacy":
		protected = interpreter.NewLegacySignalE2e(layout)
		report.pduHeader(frame)
	default:
		report.Errors = append(report.Errors, fmt.Sprintf("unknown variant %q", variant))
		return report
	}
	if protected != nil {
		plain = protected
	}

	if payload, err := plain.PayloadSpan(frame); err != nil {
		report.Errors = append(report.Errors, "payload: "+err.Error())
	} else {
		report.Payload = newSpanReport(frame, payload)
	}

	if protected != nil {
		if span, err := protected.ProtectedSpan(frame); err != nil {
			report.Errors = append(report.Errors, "e2e_protected: "+err.Error())
		} else {
			report.Protected = newSpanReport(frame, span)
		}
		if enabled, err := protected.CheckEnabled(frame); err != nil {
			report.Errors = append(report.Errors, "e2e_check_enabled: "+err.Error())
		} else {
			report.CheckEnabled = &enabled
		}
	}
	return report
}

func (r *decodeReport) someIpHeader(frame []byte) {
	hdr, err := someip.ParseHeader(frame)
	if err != nil {
		r.Errors = append(r.Errors, "someip_header: "+err.Error())
		return
	}
	r.SomeIpHeader = &headerReport{
		Service:          fmt.Sprintf("0x%04x", hdr.ServiceID),
		Method:           fmt.Sprintf("0x%04x", hdr.MethodID),
		Length:           hdr.Length,
		Client:           fmt.Sprintf("0x%04x", hdr.ClientID),
		Session:          fmt.Sprintf("0x%04x", hdr.SessionID),
		ProtocolVersion:  hdr.ProtocolVersion,
		InterfaceVersion: hdr.InterfaceVersion,
		MessageType:      hdr.MessageType.String(),
		ReturnCode:       hdr.ReturnCode.String(),
	}
}

func (r *decodeReport) pduHeader(frame []byte) {
	hdr, err := someip.ParsePduHeader(frame)
	if err != nil {
		r.Errors = append(r.Errors, "pdu_header: "+err.Error())
		return
	}
	r.PduHeader = &pduReport{
		ID:     fmt.Sprintf("0x%08x", hdr.ID),
		Length: hdr.Length,
	}
}

// newSpanReport records where span sits inside frame. The span is always a
// sub-slice of the decoded frame, so its start offset falls out of the
// capacities of the two slices.
func newSpanReport(frame, span []byte) *spanReport {
	offset := cap(frame) - cap(span)
	return &spanReport{
		Offset: offset,
		Len:    len(span),
		Hex:    hex.EncodeToString(span),
	}
}

func init() {
	decodeCmd.Flags().StringVar(&decodeVariant, "variant", "someip",
		"wire layout: someip | signal | someip-e2e | signal-e2e | signal-e2e-legacy")
	decodeCmd.Flags().IntVar(&decodeE2eHeaderSize, "e2e-header-size", 0,
		"E2E header size in bytes (someip-e2e)")
	decodeCmd.Flags().StringArrayVarP(&decodeLayoutPairs, "layout", "l", nil,
		"signal layout field, key=value (repeatable)")
}
