package credential

import (
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Load reads the session token stored at path. A missing file, a read error
// or a blank file all mean the user has no credential yet.
func Load(path string) (string, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Debugf("quota token: read %s: %v", path, err)
		}
		return "", false
	}

	token := strings.TrimSpace(string(content))
	if token == "" {
		return "", false
	}
	return token, true
}
