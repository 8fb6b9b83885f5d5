// Package featureflags gates incremental rollout of gastronet features
// without a redeploy. Flags come from the FEATURE_FLAGS config value as a
// comma-separated list:
//
//	FEATURE_FLAGS=supplier_claiming=on,follow_suggestions=25%
//
// Entries override the built-in defaults below; names not present in
// either are treated as disabled, so the API can reference a flag before
// operations has configured it.
package featureflags

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
)

// defaultFlags are evaluated in every deployment even when FEATURE_FLAGS
// is empty. New gastronet features land here behind "off" until rollout.
var defaultFlags = map[string]string{
	"supplier_claiming":  "on",
	"job_board":          "on",
	"post_images":        "on",
	"follow_suggestions": "off",
}

// Manager resolves flag values for individual users. Percentage values
// bucket users deterministically so a given user sees a stable result
// across requests and instances.
type Manager struct {
	flags map[string]string
}

// NewManager builds a manager from the FEATURE_FLAGS config string,
// layered over the built-in defaults. Malformed entries are skipped.
func NewManager(raw string) *Manager {
	flags := make(map[string]string, len(defaultFlags))
	for name, value := range defaultFlags {
		flags[name] = value
	}

	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		name = normalize(name)
		value = normalize(value)
		if name == "" || value == "" {
			continue
		}
		flags[name] = value
	}

	return &Manager{flags: flags}
}

// Enabled reports whether a flag is on for the given user. Values are
// on/true/1, off/false/0, or N% for a deterministic per-user rollout.
// Unknown flags and unparseable values are off.
func (m *Manager) Enabled(name string, userID uint) bool {
	if m == nil {
		return false
	}
	value, ok := m.flags[normalize(name)]
	if !ok {
		return false
	}
	return evaluate(name, value, userID)
}

// Raw returns a copy of the resolved flag table (defaults plus config
// overrides), unevaluated.
func (m *Manager) Raw() map[string]string {
	out := make(map[string]string, len(m.flags))
	for name, value := range m.flags {
		out[name] = value
	}
	return out
}

// Snapshot evaluates every flag for one user. Served at /api/flags so
// clients fetch the full table once at startup.
func (m *Manager) Snapshot(userID uint) map[string]bool {
	out := make(map[string]bool, len(m.flags))
	for name := range m.flags {
		out[name] = m.Enabled(name, userID)
	}
	return out
}

func evaluate(name, value string, userID uint) bool {
	switch value {
	case "on", "true", "1":
		return true
	case "off", "false", "0":
		return false
	}

	pctRaw, isPct := strings.CutSuffix(value, "%")
	if !isPct {
		return false
	}
	pct, err := strconv.Atoi(pctRaw)
	if err != nil || pct <= 0 {
		return false
	}
	if pct >= 100 {
		return true
	}
	// Anonymous evaluation has no stable bucket to land in.
	if userID == 0 {
		return false
	}
	return rolloutBucket(name, userID) < pct
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func rolloutBucket(name string, userID uint) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(fmt.Sprintf("%s:%d", normalize(name), userID)))
	return int(h.Sum32() % 100)
}
