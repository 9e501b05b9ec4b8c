package clickhouse

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrRefreshUnsupported is returned by CheckRefresh for servers without
// refreshable materialized views.
var ErrRefreshUnsupported = errors.New("server does not support SYSTEM REFRESH VIEW")

var versionPattern = regexp.MustCompile(`^(\d+)\.(\d+)(?:\.(\d+))?(?:\.(\d+))?`)

// VersionInfo is a parsed server version.
type VersionInfo struct {
	Major int
	Minor int
	Patch int
	Raw   string
}

func (v VersionInfo) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// IsAtLeast reports whether v >= major.minor.
func (v VersionInfo) IsAtLeast(major, minor int) bool {
	if v.Major != major {
		return v.Major > major
	}
	return v.Minor >= minor
}

// SupportsRefreshableViews reports whether SYSTEM REFRESH VIEW exists
// (ClickHouse 23.12 and later).
func (v VersionInfo) SupportsRefreshableViews() bool {
	return v.IsAtLeast(23, 12)
}

// GetVersion queries and parses the server version.
func (c *Client) GetVersion(ctx context.Context) (*VersionInfo, error) {
	var raw string
	if err := c.conn.QueryRow(ctx, "SELECT version()").Scan(&raw); err != nil {
		return nil, errors.Wrap(err, "failed to query ClickHouse version")
	}

	version, err := parseVersion(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse ClickHouse version: %s", raw)
	}

	return version, nil
}

// CheckRefresh fails with ErrRefreshUnsupported when the server is too old to
// refresh materialized views.
func (c *Client) CheckRefresh(ctx context.Context) error {
	v, err := c.GetVersion(ctx)
	if err != nil {
		return err
	}

	return checkRefresh(v)
}

func checkRefresh(v *VersionInfo) error {
	if !v.SupportsRefreshableViews() {
		return errors.Wrapf(ErrRefreshUnsupported, "version %s", v)
	}
	return nil
}

// parseVersion accepts "21.10.3.9", "21.10.3.9-testing",
// "21.10.3.9 (official build)" and shorter forms down to "21.10".
func parseVersion(raw string) (*VersionInfo, error) {
	cleaned := strings.TrimSpace(raw)
	if i := strings.Index(cleaned, " "); i != -1 {
		cleaned = cleaned[:i]
	}
	if i := strings.Index(cleaned, "-"); i != -1 {
		cleaned = cleaned[:i]
	}

	m := versionPattern.FindStringSubmatch(cleaned)
	if len(m) < 3 {
		return nil, errors.Errorf("invalid version format: %s", raw)
	}

	// The pattern only matches digits so Atoi can't fail.
	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])

	patch := 0
	if m[3] != "" {
		patch, _ = strconv.Atoi(m[3])
	}

	return &VersionInfo{Major: major, Minor: minor, Patch: patch, Raw: raw}, nil
}
