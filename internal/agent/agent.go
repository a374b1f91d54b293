// Package agent models the specialized LLM stages of the optimization
// pipeline. An Agent is a plain record of role, goal and backstory paired
// with a Task; a single Invoke call covers every stage.
package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/RohitSen1235/resumegen/internal/llm"
	"github.com/RohitSen1235/resumegen/internal/token"
)

// ContextPlaceholder is the literal marker in a task description that is
// replaced with the caller-supplied context string.
const ContextPlaceholder = "{task.context}"

// Agent is a dispatchable LLM role.
type Agent struct {
	Name        string
	Role        string
	Goal        string
	Backstory   string
	Model       string
	Temperature float64
	MaxTokens   int
}

// Task is the stage-specific work description handed to an agent.
type Task struct {
	Description    string // Contains ContextPlaceholder.
	ExpectedOutput string
}

// SystemPrompt composes the agent's system message from role, goal and
// backstory.
func (a Agent) SystemPrompt() string {
	return fmt.Sprintf("You are %s. Your goal: %s\n\n%s", a.Role, a.Goal, a.Backstory)
}

// Invoke runs one agent stage: substitutes the context into the task
// description, calls the LLM, and records usage on the accountant. Errors
// propagate unchanged; there is no in-stage retry.
func Invoke(ctx context.Context, client llm.Client, acct *token.Accountant, a Agent, t Task, taskContext string) (string, error) {
	userPrompt := strings.ReplaceAll(t.Description, ContextPlaceholder, taskContext)

	resp, err := client.ChatCompletion(ctx, llm.Request{
		Model: a.Model,
		Messages: []llm.Message{
			{Role: "system", Content: a.SystemPrompt()},
			{Role: "user", Content: userPrompt},
		},
		Temperature: a.Temperature,
		MaxTokens:   a.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("agent: %s: %w", a.Name, err)
	}

	acct.RecordAgentCall(a.Name, userPrompt, resp.Content)
	return resp.Content, nil
}
