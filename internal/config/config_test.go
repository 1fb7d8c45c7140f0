package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adaptivemw/someipbind/internal/core"
	"github.com/adaptivemw/someipbind/internal/event"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validConfig = `
someipbind:
  log:
    level: debug
    format: json
  metrics:
    enabled: true
  replay:
    pcap: /tmp/capture.pcap
  events:
    - name: speed
      service: "0x1234"
      instance: "0x0001"
      event: "0x8005"
      variant: someip-e2e
      udp_port: 30501
    - name: door-state
      service: "4660"
      instance: "1"
      event: "32774"
      variant: signal-e2e
      udp_port: 30502
      queue_depth: 64
      max_samples: 16
      e2e:
        check_disabled: true
      layout:
        extension_size: 4
        protected_offset: 2
        protected_length_bits: 24
        update_bit: 7
`

func TestLoadValidConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, ":9123", cfg.Metrics.Listen, "default listen address")
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "/tmp/capture.pcap", cfg.Replay.Pcap)
	require.Len(t, cfg.Events, 2)

	speed := cfg.Events[0]
	assert.Equal(t, uint16(30501), speed.UDPPort)
	assert.Equal(t, 32, speed.QueueDepth, "default queue depth")
	assert.Equal(t, 8, speed.MaxSamples, "default max samples")

	door := cfg.Events[1]
	assert.Equal(t, 64, door.QueueDepth)
	assert.Equal(t, 16, door.MaxSamples)
	assert.True(t, door.E2E.CheckDisabled)
	require.NotNil(t, door.Layout.UpdateBit)
	assert.Equal(t, 7, *door.Layout.UpdateBit)
}

func TestLoadParsesIdentities(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	// Hex and decimal spellings of the same identity parse identically.
	hexID, err := cfg.Events[0].Identity()
	require.NoError(t, err)
	decID, err := cfg.Events[1].Identity()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), hexID.ServiceID)
	assert.Equal(t, uint16(0x1234), decID.ServiceID)
	assert.Equal(t, uint16(0x0001), decID.InstanceID)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
}

func TestLoadRejectsInvalidLogLevel(t *testing.T) {
	_, err := Load(writeConfig(t, `
someipbind:
  log:
    level: loud
`))
	require.ErrorIs(t, err, core.ErrConfigInvalid)
}

func TestLoadRejectsUnknownVariant(t *testing.T) {
	_, err := Load(writeConfig(t, `
someipbind:
  events:
    - name: speed
      service: "0x1234"
      instance: "0x0001"
      event: "0x8005"
      variant: carrier-pigeon
`))
	require.ErrorIs(t, err, core.ErrConfigInvalid)
}

func TestLoadRejectsBadIdentity(t *testing.T) {
	_, err := Load(writeConfig(t, `
someipbind:
  events:
    - name: speed
      service: "0x12345"
      instance: "0x0001"
      event: "0x8005"
      variant: someip
`))
	require.ErrorIs(t, err, core.ErrConfigInvalid)
}

func TestLoadRejectsDuplicateEventNames(t *testing.T) {
	_, err := Load(writeConfig(t, `
someipbind:
  events:
    - name: speed
      service: "0x1234"
      instance: "0x0001"
      event: "0x8005"
      variant: someip
    - name: speed
      service: "0x1234"
      instance: "0x0001"
      event: "0x8006"
      variant: someip
`))
	require.ErrorIs(t, err, core.ErrConfigInvalid)
}

func TestLoadRejectsSignalE2eWithoutProtectedLength(t *testing.T) {
	_, err := Load(writeConfig(t, `
someipbind:
  events:
    - name: speed
      service: "0x1234"
      instance: "0x0001"
      event: "0x8005"
      variant: signal-e2e
`))
	require.ErrorIs(t, err, core.ErrConfigInvalid)
}

func TestBindingConfigTranslation(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	bcfg, err := cfg.Events[1].BindingConfig()
	require.NoError(t, err)
	assert.Equal(t, event.VariantSignalE2e, bcfg.Variant)
	assert.True(t, bcfg.CheckDisabled)
	assert.Equal(t, 4, bcfg.Layout.ExtensionSize)
	assert.Equal(t, 2, bcfg.Layout.ProtectedOffset)
	assert.Equal(t, 24, bcfg.Layout.ProtectedLengthBits)
	assert.Equal(t, 64, bcfg.QueueDepth)
}
