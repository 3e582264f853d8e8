package backport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	vars := Vars{
		PRNumber:      42,
		OriginalTitle: "Fix critical bug in login",
		BaseBranch:    "main",
		PRBranch:      "release",
	}

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{
			name:     "all placeholders",
			template: "{base_branch} -> {pr_branch}: {original_title} (#{pr_number})",
			want:     "main -> release: Fix critical bug in login (#42)",
		},
		{
			name:     "no placeholders passes through unchanged",
			template: "Automated backport, please review carefully.",
			want:     "Automated backport, please review carefully.",
		},
		{
			name:     "unrecognized placeholder stays literal",
			template: "Backport #{pr_number} by {author}",
			want:     "Backport #42 by {author}",
		},
		{
			name:     "repeated placeholder",
			template: "{pr_number} and {pr_number}",
			want:     "42 and 42",
		},
		{
			name:     "empty template",
			template: "",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.template, vars))
		})
	}
}

func TestRender_SubstitutedValuesNotRescanned(t *testing.T) {
	vars := Vars{
		PRNumber:      7,
		OriginalTitle: "Document the {pr_number} placeholder",
		BaseBranch:    "main",
		PRBranch:      "release",
	}

	got := Render("{original_title} (#{pr_number})", vars)
	assert.Equal(t, "Document the {pr_number} placeholder (#7)", got)
}
