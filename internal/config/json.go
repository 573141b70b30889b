package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	Vault struct {
		KDFTime      uint32 `json:"kdf_time"`
		KDFMemoryKiB uint32 `json:"kdf_memory_kib"`
		KDFThreads   uint8  `json:"kdf_threads"`
		DeviceName   string `json:"device_name"`
	} `json:"vault,omitempty"`

	Storage struct {
		DSN string `json:"dsn"`
	} `json:"storage,omitempty"`

	Registry struct {
		BaseURL        string   `json:"base_url"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"registry,omitempty"`

	Workers struct {
		AutoLockAfter Duration `json:"auto_lock_after"`
		ApprovalPoll  Duration `json:"approval_poll"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Vault: Vault{
			KDFTime:      jsonCfg.Vault.KDFTime,
			KDFMemoryKiB: jsonCfg.Vault.KDFMemoryKiB,
			KDFThreads:   jsonCfg.Vault.KDFThreads,
			DeviceName:   jsonCfg.Vault.DeviceName,
		},
		Storage: Storage{
			DSN: jsonCfg.Storage.DSN,
		},
		Registry: Registry{
			BaseURL:        jsonCfg.Registry.BaseURL,
			RequestTimeout: time.Duration(jsonCfg.Registry.RequestTimeout),
		},
		Workers: Workers{
			AutoLockAfter: time.Duration(jsonCfg.Workers.AutoLockAfter),
			ApprovalPoll:  time.Duration(jsonCfg.Workers.ApprovalPoll),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
