package model

import "time"

// Status is the lifecycle state of a generation job as published to the
// progress channel.
type Status string

const (
	StatusParsing      Status = "parsing"
	StatusAnalyzing    Status = "analyzing"
	StatusOptimizing   Status = "optimizing"
	StatusConstructing Status = "constructing"
	StatusCompleted    Status = "completed"
	StatusFailed       Status = "failed"
)

// Terminal reports whether the status ends the job's lifecycle.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// ProgressRecord is a point-in-time view of a running job, assembled from
// the progress channel keys in a single read.
type ProgressRecord struct {
	Status                 Status        `json:"status"`
	Progress               int           `json:"progress"`
	CurrentStep            string        `json:"current_step"`
	EstimatedTimeRemaining time.Duration `json:"estimated_time_remaining,omitempty"`
	StartTime              time.Time     `json:"start_time"`
	ElapsedTime            time.Duration `json:"elapsed_time"`
}

// ResultRecord is the final artifact of a completed job. It is published to
// the progress channel only after the credit debit has committed.
type ResultRecord struct {
	JobID        string      `json:"job_id"`
	JobTitle     string      `json:"job_title"`
	Content      string      `json:"content"`
	AgentOutputs string      `json:"agent_outputs"`
	TokenUsage   int         `json:"token_usage"`
	TotalUsage   UsageTotals `json:"total_usage"`
	Message      string      `json:"message"`
}
