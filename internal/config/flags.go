package config

import (
	"flag"
	"time"
)

// ParseFlags parses the global configuration flags. Flags stop at the
// first non-flag argument, which is the CLI subcommand; subcommands parse
// their own flag sets from the remaining arguments.
//
// Flags:
//
//	-d database file path
//	-a registry base URL
//	-c/-config json file path with configs
//	-request-timeout registry request timeout (e.g., "30s", "1m")
//	-device-name device label used at registration
//	-auto-lock-after idle interval before the session locks itself
//	-approval-poll poll interval while waiting for device approval
//	-kdf-time / -kdf-memory-kib / -kdf-threads Argon2id cost overrides
func ParseFlags() *StructuredConfig {
	var databaseDSN string
	var registryURL string
	var jsonConfigPath string
	var requestTimeout time.Duration
	var deviceName string
	var autoLockAfter time.Duration
	var approvalPoll time.Duration
	var kdfTime uint
	var kdfMemoryKiB uint
	var kdfThreads uint

	flag.StringVar(&databaseDSN, "d", "", "Database file path")
	flag.StringVar(&registryURL, "a", "", "Registry base URL")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Registry request timeout (e.g., 30s, 1m)")
	flag.StringVar(&deviceName, "device-name", "", "Device label used at registration")
	flag.DurationVar(&autoLockAfter, "auto-lock-after", 0, "Idle interval before the session locks itself")
	flag.DurationVar(&approvalPoll, "approval-poll", 0, "Poll interval while waiting for device approval")
	flag.UintVar(&kdfTime, "kdf-time", 0, "Argon2id iterations override")
	flag.UintVar(&kdfMemoryKiB, "kdf-memory-kib", 0, "Argon2id memory cost override, KiB")
	flag.UintVar(&kdfThreads, "kdf-threads", 0, "Argon2id parallelism override")

	flag.Parse()

	return &StructuredConfig{
		Vault: Vault{
			KDFTime:      uint32(kdfTime),
			KDFMemoryKiB: uint32(kdfMemoryKiB),
			KDFThreads:   uint8(kdfThreads),
			DeviceName:   deviceName,
		},
		Storage: Storage{
			DSN: databaseDSN,
		},
		Registry: Registry{
			BaseURL:        registryURL,
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			AutoLockAfter: autoLockAfter,
			ApprovalPoll:  approvalPoll,
		},
		JSONFilePath: jsonConfigPath,
	}
}
