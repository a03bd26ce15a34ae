package engine

import (
	"encoding/json"
	"fmt"
)

// legacyStackFields are stack-level keys written by older versions that no
// longer exist in the model. head_branch was a denormalized copy of the root.
var legacyStackFields = []string{"head_branch"}

// normalizeLegacy rewrites older encodings into the canonical form before
// the typed decode: a null parent becomes "", a null pr_id becomes NoPR, a
// null or missing status becomes Pending and obsolete fields are dropped.
func normalizeLegacy(data []byte) ([]byte, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("metadata document is null")
	}

	rawStacks, ok := doc["stacks"]
	if !ok || rawStacks == nil {
		doc["stacks"] = []any{}
		return json.Marshal(doc)
	}

	stacks, ok := rawStacks.([]any)
	if !ok {
		return nil, fmt.Errorf("stacks must be a list")
	}
	for i, rawStack := range stacks {
		stack, ok := rawStack.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("stack %d must be an object", i)
		}
		for _, field := range legacyStackFields {
			delete(stack, field)
		}

		rawBranches, ok := stack["branches"]
		if !ok || rawBranches == nil {
			stack["branches"] = []any{}
			continue
		}
		branches, ok := rawBranches.([]any)
		if !ok {
			return nil, fmt.Errorf("branches of stack %d must be a list", i)
		}
		for j, rawBranch := range branches {
			branch, ok := rawBranch.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("branch %d of stack %d must be an object", j, i)
			}
			normalizeBranch(branch)
		}
	}
	return json.Marshal(doc)
}

func normalizeBranch(branch map[string]any) {
	if v, ok := branch["parent"]; !ok || v == nil {
		branch["parent"] = ""
	}
	if v, ok := branch["pr_id"]; !ok || v == nil {
		branch["pr_id"] = NoPR
	}
	if v, ok := branch["status"]; !ok || v == nil {
		branch["status"] = string(StatusPending)
	}
}
