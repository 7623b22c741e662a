package tools

import (
	"fmt"
	"strings"

	"repo-event-relay/internal/model"
)

func stringParam(params map[string]interface{}, key string) string {
	if v, ok := params[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func requiredString(params map[string]interface{}, key string) (string, error) {
	v := stringParam(params, key)
	if v == "" {
		return "", fmt.Errorf("%s parameter is required", key)
	}
	return v, nil
}

func requiredPRNumber(params map[string]interface{}) (int, error) {
	n, ok := model.ParsePRNumber(params["pr_number"])
	if !ok {
		return 0, fmt.Errorf("pr_number parameter must be a positive integer")
	}
	return n, nil
}

// prParams reads the repo + pr_number pair shared by the pull request tools.
func prParams(params map[string]interface{}) (string, int, error) {
	repo, err := requiredString(params, "repo")
	if err != nil {
		return "", 0, err
	}
	n, err := requiredPRNumber(params)
	if err != nil {
		return "", 0, err
	}
	return repo, n, nil
}

func repoAndPRSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"repo": map[string]interface{}{
				"type":        "string",
				"description": "Repository full name, e.g. 'octo-org/octo-repo'",
			},
			"pr_number": map[string]interface{}{
				"type":        "integer",
				"description": "Pull request number",
			},
		},
		"required": []string{"repo", "pr_number"},
	}
}

func positiveInt(v interface{}) (int, bool) {
	return model.ParsePRNumber(v)
}
