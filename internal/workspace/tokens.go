package workspace

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/motioncore/motioncore/internal/registry"
)

// TokenSyncState classifies the outcome of a token sync attempt.
type TokenSyncState int

const (
	// TokenSyncMissingConfig means tailwind.css is not configured.
	TokenSyncMissingConfig TokenSyncState = iota
	// TokenSyncMissingFile means the configured stylesheet does not exist.
	TokenSyncMissingFile
	// TokenSyncAlreadyPresent means the sentinel was found, nothing to do.
	TokenSyncAlreadyPresent
	// TokenSyncDryRun means the stylesheet would have been updated.
	TokenSyncDryRun
	// TokenSyncUpdated means the tokens were written.
	TokenSyncUpdated
)

// TokenSyncStatus reports the outcome plus the stylesheet it refers to.
type TokenSyncStatus struct {
	State  TokenSyncState
	Target string
}

// SyncTailwindTokens merges the registry's design tokens into the workspace
// stylesheet. The insertion point honors existing @import lines, the file's
// newline convention is preserved, and the write goes through a backup so a
// failure never corrupts the stylesheet.
func SyncTailwindTokens(ctx context.Context, root string, config Config, client *registry.Client, dryRun bool) (TokenSyncStatus, error) {
	cssPath := strings.TrimSpace(config.Tailwind.CSS)
	if cssPath == "" {
		return TokenSyncStatus{State: TokenSyncMissingConfig}, nil
	}

	target := Path(root, cssPath)
	display := relativeDisplay(root, target)
	raw, err := os.ReadFile(target)
	if err != nil {
		if os.IsNotExist(err) {
			return TokenSyncStatus{State: TokenSyncMissingFile, Target: display}, nil
		}
		return TokenSyncStatus{}, fmt.Errorf("workspace: read stylesheet %s: %w", target, err)
	}
	existing := string(raw)
	if strings.Contains(existing, TokenSentinel) {
		return TokenSyncStatus{State: TokenSyncAlreadyPresent, Target: display}, nil
	}

	tokens, err := client.FetchComponentFile(ctx, TokenRegistryPath)
	if err != nil {
		return TokenSyncStatus{}, err
	}

	importLine, tokenBody := splitTokenBundle(string(tokens))
	tokenBody = trimTokenBody(tokenBody)
	if tokenBody == "" {
		return TokenSyncStatus{}, ErrTokensEmpty
	}

	newline := detectNewline(existing)
	insertAt := findImportInsertionIndex(existing)
	prefix := existing[:insertAt]
	suffix := existing[insertAt:]

	var block strings.Builder
	if importLine != "" && !hasTailwindImport(existing) {
		block.WriteString(strings.TrimSpace(importLine))
		block.WriteString(newline)
		block.WriteString(newline)
	}
	block.WriteString(tokenBody)
	if !strings.HasSuffix(block.String(), newline) {
		block.WriteString(newline)
	}

	blank := newline + newline
	var updated strings.Builder
	updated.WriteString(prefix)
	if prefix != "" {
		if strings.HasSuffix(prefix, blank) {
			// Already separated.
		} else if strings.HasSuffix(prefix, newline) {
			updated.WriteString(newline)
		} else {
			updated.WriteString(blank)
		}
	}
	updated.WriteString(block.String())
	if suffix != "" && !strings.HasSuffix(updated.String(), newline) {
		updated.WriteString(newline)
	}
	updated.WriteString(suffix)

	if dryRun {
		return TokenSyncStatus{State: TokenSyncDryRun, Target: display}, nil
	}

	backup, err := createBackup(target)
	if err != nil {
		return TokenSyncStatus{}, err
	}
	if err := os.WriteFile(target, []byte(updated.String()), 0o644); err != nil {
		if restoreErr := restoreBackup(backup, target); restoreErr != nil {
			return TokenSyncStatus{}, fmt.Errorf("workspace: write %s failed (%v) and backup restore from %s failed: %w", target, err, backup, restoreErr)
		}
		return TokenSyncStatus{}, fmt.Errorf("workspace: write stylesheet %s: %w", target, err)
	}
	_ = os.Remove(backup)
	return TokenSyncStatus{State: TokenSyncUpdated, Target: display}, nil
}

// splitTokenBundle separates a leading @import line from the token body so
// the import can be skipped when the stylesheet already pulls in tailwind.
func splitTokenBundle(source string) (string, string) {
	trimmed := strings.TrimPrefix(source, "\ufeff")
	if !strings.HasPrefix(strings.TrimLeft(trimmed, " \t\r\n"), "@import") {
		return "", trimmed
	}
	if idx := strings.IndexByte(trimmed, '\n'); idx >= 0 {
		return strings.TrimSpace(trimmed[:idx]), trimmed[idx+1:]
	}
	return strings.TrimSpace(trimmed), ""
}

func trimTokenBody(body string) string {
	return strings.Trim(body, "\r\n")
}

func detectNewline(contents string) string {
	if strings.Contains(contents, "\r\n") {
		return "\r\n"
	}
	return "\n"
}

// findImportInsertionIndex returns the offset just past the last @import
// line, or 0 when the stylesheet has none.
func findImportInsertionIndex(contents string) int {
	last := 0
	offset := 0
	for {
		idx := strings.IndexByte(contents[offset:], '\n')
		var segment string
		if idx < 0 {
			segment = contents[offset:]
		} else {
			segment = contents[offset : offset+idx+1]
		}
		line := strings.TrimLeft(strings.TrimRight(segment, "\r\n"), " \t")
		if strings.HasPrefix(line, "@import") {
			last = offset + len(segment)
		}
		if idx < 0 {
			break
		}
		offset += idx + 1
		if offset >= len(contents) {
			break
		}
	}
	return last
}

func hasTailwindImport(contents string) bool {
	for _, line := range strings.Split(contents, "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "@import") && strings.Contains(trimmed, "tailwindcss") {
			return true
		}
	}
	return false
}

func createBackup(path string) (string, error) {
	backup := path + ".motion-core.bak"
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("workspace: back up %s: %w", path, err)
	}
	if err := os.WriteFile(backup, data, 0o644); err != nil {
		return "", fmt.Errorf("workspace: back up %s: %w", path, err)
	}
	return backup, nil
}

func restoreBackup(backup, target string) error {
	data, err := os.ReadFile(backup)
	if err != nil {
		return err
	}
	return os.WriteFile(target, data, 0o644)
}
