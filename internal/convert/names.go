// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"strings"

	"github.com/pdiddy/pdfclean/pkg/types"
)

// namer hands out output file names for one run. Names are compared
// case-insensitively so that Report.pdf and report.PDF cannot overwrite
// each other's output on any filesystem.
type namer struct {
	policy types.CollisionPolicy
	used   map[string]bool
}

func newNamer(policy types.CollisionPolicy) *namer {
	if policy == "" {
		policy = types.CollisionSuffix
	}
	return &namer{policy: policy, used: make(map[string]bool)}
}

// pick returns the output file name for base and whether it differs from
// base+".txt". Nothing is reserved until take is called with the name.
func (n *namer) pick(base string) (string, bool, error) {
	name := base + txtExt
	if !n.used[strings.ToLower(name)] {
		return name, false, nil
	}

	if n.policy == types.CollisionError {
		return "", false, fmt.Errorf("%w: %s", ErrCollision, name)
	}

	for i := 2; ; i++ {
		name = fmt.Sprintf("%s-%d%s", base, i, txtExt)
		if !n.used[strings.ToLower(name)] {
			return name, true, nil
		}
	}
}

// take reserves name once a file has been written under it.
func (n *namer) take(name string) {
	n.used[strings.ToLower(name)] = true
}
