package build

import (
	"regexp"
	"strings"

	kxerrors "github.com/griffithind/kitchenx/internal/errors"
)

var (
	successfullyBuiltRe = regexp.MustCompile(`(?i)successfully built\s+(\S+)`)
	writingImageRe      = regexp.MustCompile(`(?i)writing image\s+(sha256:[0-9a-f]+)`)
	imageIDLineRe       = regexp.MustCompile(`(?i)image id|build successful`)

	// An image id or digest standing alone, as printed by build -q.
	bareDigestRe = regexp.MustCompile(`^(sha256:)?[0-9a-f]{64}$`)
	idFieldRe    = regexp.MustCompile(`^(sha256:)?[0-9a-f]{12,64}$`)
)

// ParseImageID extracts the built image id from build output. Stdout is
// searched before stderr, and within each stream the last matching line
// wins.
func ParseImageID(stdout, stderr string) (string, error) {
	for _, out := range []string{stdout, stderr} {
		if id, ok := scanImageID(out); ok {
			return id, nil
		}
	}
	if strings.TrimSpace(stdout) != "" {
		return "", kxerrors.ImageIDParse(stdout)
	}
	return "", kxerrors.ImageIDParse(stderr)
}

func scanImageID(out string) (string, bool) {
	lines := strings.Split(out, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if m := successfullyBuiltRe.FindStringSubmatch(line); m != nil {
			return m[1], true
		}
		if m := writingImageRe.FindStringSubmatch(line); m != nil {
			return m[1], true
		}
		if bareDigestRe.MatchString(line) {
			return line, true
		}
		if imageIDLineRe.MatchString(line) {
			fields := strings.Fields(line)
			if last := fields[len(fields)-1]; idFieldRe.MatchString(last) {
				return last, true
			}
		}
	}
	return "", false
}
