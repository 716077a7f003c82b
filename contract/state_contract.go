package contract

import (
	"fmt"

	"medfund_ledger/contract/ledger"
	"medfund_ledger/sdk"
)

// -----------------------------------------------------------------------------
// Platform Configuration State
// -----------------------------------------------------------------------------

// loadConfig reads the platform config, ErrNotInitialized before Initialize ran.
func loadConfig(r Reader) (ledger.PlatformConfig, error) {
	cfg, ok, err := getRecord[ledger.PlatformConfig](r, configKey)
	if err != nil {
		return cfg, err
	}
	if !ok {
		return cfg, ledger.ErrNotInitialized
	}
	return cfg, nil
}

func saveConfig(c *opContext, cfg *ledger.PlatformConfig) error {
	return putRecord(c, configKey, cfg)
}

// loadActiveConfig also rejects calls while the platform is paused.
func loadActiveConfig(r Reader) (ledger.PlatformConfig, error) {
	cfg, err := loadConfig(r)
	if err != nil {
		return cfg, err
	}
	if cfg.EmergencyPause {
		return cfg, ledger.ErrEmergencyPauseActive
	}
	return cfg, nil
}

// checkAddress rejects empty or malformed actor ids before any state is touched.
func checkAddress(addrs ...sdk.Address) error {
	for _, a := range addrs {
		if !a.IsValid() {
			return fmt.Errorf("%w: %q", ledger.ErrInvalidAddress, a)
		}
	}
	return nil
}
