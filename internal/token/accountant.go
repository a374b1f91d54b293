// Package token counts tokens and computes monetary cost for LLM and agent
// calls within a single generation job.
package token

import (
	"fmt"
	"sync"
	"time"

	"github.com/pkoukk/tiktoken-go"

	"github.com/RohitSen1235/resumegen/internal/model"
)

// DirectCallWeight is the multiplier applied to token counts of direct LLM
// calls recorded via RecordLLMCall. The x2 weight reproduces the two-pass
// accounting convention of the original billing pipeline; agent calls are
// weighted x1.
const DirectCallWeight = 2

// Tokenizer turns text into a deterministic token count. Identical inputs
// must yield identical counts across processes.
type Tokenizer interface {
	Count(text string) int
}

type tiktokenizer struct {
	enc *tiktoken.Tiktoken
}

func (t tiktokenizer) Count(text string) int {
	return len(t.enc.Encode(text, nil, nil))
}

// NewTokenizer loads the named tiktoken byte-pair encoding.
func NewTokenizer(encoding string) (Tokenizer, error) {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("token: load encoding %q: %w", encoding, err)
	}
	return tiktokenizer{enc: enc}, nil
}

// Accountant accumulates per-call usage records for one job. An Accountant
// is created per job; the mutex exists because analyzer stages may record
// concurrently.
type Accountant struct {
	tok    Tokenizer
	rate   float64 // USD per million tokens.
	fx     float64 // Fixed multiplier into the billing currency.
	now    func() time.Time
	mu     sync.Mutex
	totals model.UsageTotals
}

// NewAccountant builds an accountant around an already-initialized
// tokenizer. Tokenizer initialization failure is fatal for the caller; an
// accountant cannot operate without one.
func NewAccountant(tok Tokenizer, ratePerMTokenUSD, fxRate float64) *Accountant {
	return &Accountant{
		tok:  tok,
		rate: ratePerMTokenUSD,
		fx:   fxRate,
		now:  time.Now,
	}
}

// Count returns the token count of text. Never negative.
func (a *Accountant) Count(text string) int {
	n := a.tok.Count(text)
	if n < 0 {
		return 0
	}
	return n
}

// Cost converts a token count to monetary cost in the billing currency.
// Pure: cost(n) = n/1e6 * rate * fx.
func (a *Accountant) Cost(tokens int) float64 {
	return float64(tokens) / 1_000_000 * a.rate * a.fx
}

// RecordLLMCall records a direct LLM call (draft bootstrap, job-title
// extraction). Counts are weighted by DirectCallWeight. Never fails.
func (a *Accountant) RecordLLMCall(prompt, response string) model.AgentCall {
	in := a.Count(prompt) * DirectCallWeight
	out := a.Count(response) * DirectCallWeight
	call := a.newCall("llm", in, out)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.totals.TotalInputTokens += in
	a.totals.TotalOutputTokens += out
	a.totals.Calls = append(a.totals.Calls, call)
	return call
}

// RecordAgentCall records an agent stage invocation at weight 1. Never fails.
func (a *Accountant) RecordAgentCall(agentName, context, response string) model.AgentCall {
	in := a.Count(context)
	out := a.Count(response)
	call := a.newCall(agentName, in, out)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.totals.AgentInputTokens += in
	a.totals.AgentOutputTokens += out
	a.totals.AgentCalls = append(a.totals.AgentCalls, call)
	return call
}

// Totals returns a snapshot of accumulated usage with derived fields filled in.
func (a *Accountant) Totals() model.UsageTotals {
	a.mu.Lock()
	defer a.mu.Unlock()

	t := a.totals
	t.Calls = append([]model.AgentCall(nil), a.totals.Calls...)
	t.AgentCalls = append([]model.AgentCall(nil), a.totals.AgentCalls...)
	t.TotalTokens = t.TotalInputTokens + t.TotalOutputTokens + t.AgentInputTokens + t.AgentOutputTokens
	t.TotalInputCost = a.Cost(t.TotalInputTokens + t.AgentInputTokens)
	t.TotalOutputCost = a.Cost(t.TotalOutputTokens + t.AgentOutputTokens)
	t.TotalCost = t.TotalInputCost + t.TotalOutputCost
	return t
}

func (a *Accountant) newCall(name string, in, out int) model.AgentCall {
	inCost := a.Cost(in)
	outCost := a.Cost(out)
	return model.AgentCall{
		Timestamp:    a.now().UTC(),
		AgentName:    name,
		InputTokens:  in,
		OutputTokens: out,
		InputCost:    inCost,
		OutputCost:   outCost,
		TotalCost:    inCost + outCost,
	}
}
