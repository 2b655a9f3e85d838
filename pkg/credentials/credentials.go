package credentials

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Credentials is the local credentials file's parsed contents (spec.md
// §6): domain, integration id/secret, and the last acquired token.
type Credentials struct {
	Domain            string
	IntegrationID     string
	IntegrationSecret string
	Token             string
	ExpiresAt         time.Time
}

// Load reads and parses a credentials file. A missing file is reported
// as a plain *os.PathError so callers can map it to a UsageError with
// the usual "run `swsync auth` first" guidance.
func Load(path string) (*Credentials, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c := &Credentials{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(strings.Trim(val, `"`))
		switch key {
		case "domain":
			c.Domain = val
		case "integration_id":
			c.IntegrationID = val
		case "integration_secret":
			c.IntegrationSecret = val
		case "token":
			c.Token = val
		case "expires_at":
			if unix, err := strconv.ParseInt(val, 10, 64); err == nil {
				c.ExpiresAt = time.Unix(unix, 0)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

// Save writes c to path as plaintext key/value pairs with 0600
// permissions, and warns on stderr that the file is unencrypted — the
// teacher's habit of warning at the point of a security-relevant write
// (spec.md §6: "The file is plaintext, the tool warns about that on
// write").
func Save(path string, c *Credentials) error {
	var b strings.Builder
	fmt.Fprintf(&b, "domain = %q\n", c.Domain)
	fmt.Fprintf(&b, "integration_id = %q\n", c.IntegrationID)
	fmt.Fprintf(&b, "integration_secret = %q\n", c.IntegrationSecret)
	if c.Token != "" {
		fmt.Fprintf(&b, "token = %q\n", c.Token)
		fmt.Fprintf(&b, "expires_at = %d\n", c.ExpiresAt.Unix())
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "warning: %s stores credentials in plaintext; protect this file accordingly\n", path)
	return nil
}
