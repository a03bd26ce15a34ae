package actions

import "zyra.dev/zyra/internal/runtime"

// Prompter is the interactive collaborator: free text for PR titles and
// bodies, yes/no for the draft flag, and a single choice among branches.
type Prompter = runtime.Prompter
