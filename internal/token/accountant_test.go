package token

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wordTokenizer counts whitespace-separated words. Deterministic and cheap,
// which is all the accountant requires from a tokenizer.
type wordTokenizer struct{}

func (wordTokenizer) Count(text string) int {
	return len(strings.Fields(text))
}

// negativeTokenizer simulates a misbehaving implementation.
type negativeTokenizer struct{}

func (negativeTokenizer) Count(string) int { return -5 }

func TestCountNeverNegative(t *testing.T) {
	a := NewAccountant(negativeTokenizer{}, 40, 90)
	assert.Equal(t, 0, a.Count("anything"))
}

func TestCountDeterministic(t *testing.T) {
	a := NewAccountant(wordTokenizer{}, 40, 90)
	b := NewAccountant(wordTokenizer{}, 40, 90)

	text := "senior golang engineer with distributed systems experience"
	assert.Equal(t, a.Count(text), b.Count(text))
	assert.Equal(t, a.Count(text), a.Count(text))
}

func TestCostIsPure(t *testing.T) {
	a := NewAccountant(wordTokenizer{}, 40, 90)

	assert.Equal(t, 0.0, a.Cost(0))
	// 1M tokens at 40 USD/M with FX 90.
	assert.InDelta(t, 3600.0, a.Cost(1_000_000), 1e-9)
	// Linear in the token count.
	assert.InDelta(t, a.Cost(100)*2, a.Cost(200), 1e-9)
}

func TestRecordLLMCallAppliesDirectWeight(t *testing.T) {
	a := NewAccountant(wordTokenizer{}, 40, 90)

	call := a.RecordLLMCall("one two three", "four five")

	require.Equal(t, 3*DirectCallWeight, call.InputTokens)
	require.Equal(t, 2*DirectCallWeight, call.OutputTokens)
	assert.Equal(t, "llm", call.AgentName)
	assert.InDelta(t, a.Cost(call.InputTokens)+a.Cost(call.OutputTokens), call.TotalCost, 1e-9)

	totals := a.Totals()
	assert.Equal(t, 3*DirectCallWeight, totals.TotalInputTokens)
	assert.Equal(t, 2*DirectCallWeight, totals.TotalOutputTokens)
	assert.Len(t, totals.Calls, 1)
	assert.Empty(t, totals.AgentCalls)
}

func TestRecordAgentCallUnweighted(t *testing.T) {
	a := NewAccountant(wordTokenizer{}, 40, 90)

	call := a.RecordAgentCall("skills_analyst", "one two three four", "five")

	require.Equal(t, 4, call.InputTokens)
	require.Equal(t, 1, call.OutputTokens)
	assert.Equal(t, "skills_analyst", call.AgentName)

	totals := a.Totals()
	assert.Equal(t, 4, totals.AgentInputTokens)
	assert.Equal(t, 1, totals.AgentOutputTokens)
	assert.Len(t, totals.AgentCalls, 1)
	assert.Empty(t, totals.Calls)
}

func TestTotalsAggregation(t *testing.T) {
	a := NewAccountant(wordTokenizer{}, 40, 90)

	a.RecordLLMCall("a b", "c")               // 4 in, 2 out after x2 weight
	a.RecordAgentCall("content_quality", "a b c", "d e") // 3 in, 2 out
	a.RecordAgentCall("experience", "a", "b c d")        // 1 in, 3 out

	totals := a.Totals()
	assert.Equal(t, 4, totals.TotalInputTokens)
	assert.Equal(t, 2, totals.TotalOutputTokens)
	assert.Equal(t, 4, totals.AgentInputTokens)
	assert.Equal(t, 5, totals.AgentOutputTokens)
	assert.Equal(t, 15, totals.TotalTokens)

	assert.InDelta(t, a.Cost(8), totals.TotalInputCost, 1e-9)
	assert.InDelta(t, a.Cost(7), totals.TotalOutputCost, 1e-9)
	assert.InDelta(t, totals.TotalInputCost+totals.TotalOutputCost, totals.TotalCost, 1e-9)
}

func TestTotalsSnapshotIsolation(t *testing.T) {
	a := NewAccountant(wordTokenizer{}, 40, 90)
	a.RecordLLMCall("a", "b")

	snap := a.Totals()
	snap.Calls[0].AgentName = "mutated"
	snap.TotalTokens = 0

	fresh := a.Totals()
	assert.Equal(t, "llm", fresh.Calls[0].AgentName)
	assert.Equal(t, 4, fresh.TotalTokens)
}

func TestConcurrentRecording(t *testing.T) {
	a := NewAccountant(wordTokenizer{}, 40, 90)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.RecordAgentCall("analyst", "one two", "three")
		}()
	}
	wg.Wait()

	totals := a.Totals()
	assert.Equal(t, 100, totals.AgentInputTokens)
	assert.Equal(t, 50, totals.AgentOutputTokens)
	assert.Len(t, totals.AgentCalls, 50)
}

func TestZeroRateProducesZeroCost(t *testing.T) {
	a := NewAccountant(wordTokenizer{}, 0, 90)
	a.RecordLLMCall("some prompt here", "a reply")

	totals := a.Totals()
	assert.NotZero(t, totals.TotalTokens)
	assert.Zero(t, totals.TotalCost)
}
