package backport

import (
	"strconv"
	"strings"
)

// Vars are the values the PR title and body templates may reference.
type Vars struct {
	PRNumber      int
	OriginalTitle string
	BaseBranch    string
	// PRBranch is the branch the backport PR targets, not the branch it is
	// opened from.
	PRBranch string
}

// Render substitutes the recognized placeholders {pr_number},
// {original_title}, {base_branch} and {pr_branch} in a single pass.
// Unrecognized placeholders pass through literally; substituted values are
// never re-scanned.
func Render(template string, vars Vars) string {
	r := strings.NewReplacer(
		"{pr_number}", strconv.Itoa(vars.PRNumber),
		"{original_title}", vars.OriginalTitle,
		"{base_branch}", vars.BaseBranch,
		"{pr_branch}", vars.PRBranch,
	)
	return r.Replace(template)
}
