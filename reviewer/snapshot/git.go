/*
Copyright 2026 The Up for Grabs Authors
SPDX-License-Identifier: Apache-2.0
*/

package snapshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// gitResult captures the structured outcome of a single git invocation.
type gitResult struct {
	status int
	stdout string
	stderr string
}

// runGit invokes git with an explicit argument list (never through a shell,
// so untrusted clone URLs and refs cannot be interpolated) and returns the
// structured result. A non-zero exit status is returned as an error that
// carries the stderr detail.
func runGit(ctx context.Context, dir string, args ...string) (*gitResult, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := &gitResult{
		stdout: stdout.String(),
		stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.status = exitErr.ExitCode()
			return res, fmt.Errorf("git %s exited with status %d: %s",
				args[0], res.status, strings.TrimSpace(res.stderr))
		}
		return res, fmt.Errorf("running git %s: %w", args[0], err)
	}

	return res, nil
}
