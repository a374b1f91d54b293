package model

import "time"

// AgentCall is an immutable audit record of a single LLM or agent
// invocation. Costs are in the billing currency after FX conversion.
type AgentCall struct {
	Timestamp    time.Time `json:"timestamp"`
	AgentName    string    `json:"agent_name"`
	InputTokens  int       `json:"input_tokens"`
	OutputTokens int       `json:"output_tokens"`
	InputCost    float64   `json:"input_cost"`
	OutputCost   float64   `json:"output_cost"`
	TotalCost    float64   `json:"total_cost"`
}

// UsageTotals aggregates AgentCall records for one job.
//
// Direct LLM calls and agent calls are accounted in separate buckets; the
// direct buckets carry a x2 weight preserved from the original billing
// convention (see token.DirectCallWeight).
type UsageTotals struct {
	TotalInputTokens  int         `json:"total_input_tokens"`
	TotalOutputTokens int         `json:"total_output_tokens"`
	AgentInputTokens  int         `json:"agent_input_tokens"`
	AgentOutputTokens int         `json:"agent_output_tokens"`
	TotalTokens       int         `json:"total_tokens"`
	TotalInputCost    float64     `json:"total_input_cost"`
	TotalOutputCost   float64     `json:"total_output_cost"`
	TotalCost         float64     `json:"total_cost"`
	Calls             []AgentCall `json:"calls"`
	AgentCalls        []AgentCall `json:"agent_calls"`
}
