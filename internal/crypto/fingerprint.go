package crypto

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/pswdapp/vaultcore/models"
)

// Fingerprint computes the stable device fingerprint: the hex SHA-256 of
// the device attributes, NUL-separated so that field boundaries cannot
// be shifted. The same installation always produces the same value; two
// installations differ because InstallID is generated per installation.
func Fingerprint(attrs models.DeviceAttributes) string {
	h := sha256.New()
	for _, field := range []string{attrs.Hostname, attrs.OS, attrs.Arch, attrs.InstallID} {
		h.Write([]byte(field))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
